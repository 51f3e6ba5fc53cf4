// Package form publishes the screening questionnaire as a Google Form and
// collects its responses.
package form

import (
	"context"
	"fmt"
	"time"

	"github.com/Jumpaku/go-screening"
	"github.com/Jumpaku/go-screening/errors"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/forms/v1"
	"google.golang.org/api/option"
)

// Scopes are the OAuth scopes requested for the service account.
var Scopes = []string{
	forms.FormsBodyScope,
	forms.FormsResponsesReadonlyScope,
}

type Client struct {
	service *forms.Service
}

func New(service *forms.Service) *Client {
	return &Client{service: service}
}

// Dial authenticates with the service account credential JSON.
func Dial(ctx context.Context, credentialsJSON []byte) (*Client, error) {
	conf, err := google.JWTConfigFromJSON(credentialsJSON, Scopes...)
	if err != nil {
		return nil, errors.NewConfigError("failed to parse service account credential", err)
	}
	service, err := forms.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, errors.NewAPIError("failed to create forms service", err)
	}
	return New(service), nil
}

// Publish creates a form containing the screening questions and opens it for responses.
func (c *Client) Publish(ctx context.Context, title string) (form *Form, err error) {
	f, err := c.service.Forms.Create(&forms.Form{
		Info: &forms.Info{
			Title:         title,
			DocumentTitle: title,
			Description:   "Silakan jawab pertanyaan di bawah ini dengan 'Ya' atau 'Tidak'.",
		},
	}).Context(ctx).Do()
	if err != nil {
		return nil, errors.NewAPIError("failed to create form", err)
	}

	_, err = c.service.Forms.BatchUpdate(f.FormId, &forms.BatchUpdateFormRequest{
		Requests: createItemRequests(screening.Questions()),
	}).Context(ctx).Do()
	if err != nil {
		return nil, errors.NewAPIError("failed to add questions", err)
	}

	_, err = c.service.Forms.SetPublishSettings(f.FormId, &forms.SetPublishSettingsRequest{
		PublishSettings: &forms.PublishSettings{
			PublishState: &forms.PublishState{
				IsAcceptingResponses: true,
				IsPublished:          true,
			},
		},
		UpdateMask: "publish_state",
	}).Context(ctx).Do()
	if err != nil {
		return nil, errors.NewAPIError("failed to change publish state", err)
	}

	return c.Get(ctx, FormID(f.FormId))
}

func (c *Client) Get(ctx context.Context, formID FormID) (form *Form, err error) {
	f, err := c.service.Forms.Get(string(formID)).Context(ctx).Do()
	if err != nil {
		return nil, errors.NewAPIError("failed to get form", err)
	}
	return newForm(f), nil
}

// Responses lists all responses of the form in the order returned by the API.
func (c *Client) Responses(ctx context.Context, formID FormID) (responses []Response, err error) {
	form, err := c.Get(ctx, formID)
	if err != nil {
		return nil, err
	}
	if !form.Complete() {
		return nil, fmt.Errorf("form '%s' does not contain every screening question: %w", formID, errors.ErrNotFound)
	}

	var raw []*forms.FormResponse
	err = c.service.Forms.Responses.
		List(string(formID)).
		Pages(ctx, func(resp *forms.ListFormResponsesResponse) error {
			raw = append(raw, resp.Responses...)
			return nil
		})
	if err != nil {
		return nil, errors.NewAPIError("failed to list responses", err)
	}

	for _, r := range raw {
		responses = append(responses, newResponse(form, r))
	}
	return responses, nil
}

func newForm(f *forms.Form) *Form {
	form := &Form{
		ID:           FormID(f.FormId),
		ResponderURI: f.ResponderUri,
		Questions:    map[string]int{},
	}
	if f.Info != nil {
		form.Title = f.Info.Title
	}
	form.PublishState = PublishStateUnpublished
	if f.PublishSettings != nil && f.PublishSettings.PublishState != nil {
		state := f.PublishSettings.PublishState
		form.PublishState = publishStateOf(state.IsPublished, state.IsAcceptingResponses)
	}
	for _, item := range f.Items {
		if item.QuestionItem == nil || item.QuestionItem.Question == nil {
			continue
		}
		q, found := screening.QuestionByText(item.Title)
		if !found {
			continue
		}
		form.Questions[item.QuestionItem.Question.QuestionId] = q.Index
	}
	return form
}

func newResponse(form *Form, r *forms.FormResponse) Response {
	createTime, _ := time.Parse(time.RFC3339Nano, r.CreateTime)
	lastSubmittedTime, _ := time.Parse(time.RFC3339Nano, r.LastSubmittedTime)
	resp := Response{
		ResponseID:        r.ResponseId,
		RespondentEmail:   r.RespondentEmail,
		CreateTime:        createTime,
		LastSubmittedTime: lastSubmittedTime,
		Answers:           make([]screening.Answer, screening.QuestionCount),
	}
	for questionID, index := range form.Questions {
		answer, ok := r.Answers[questionID]
		if !ok || answer.TextAnswers == nil || len(answer.TextAnswers.Answers) == 0 {
			continue
		}
		a, err := screening.ParseAnswer(answer.TextAnswers.Answers[0].Value)
		if err != nil {
			continue
		}
		resp.Answers[index-1] = a
	}
	return resp
}
