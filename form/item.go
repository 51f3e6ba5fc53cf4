package form

import (
	"github.com/Jumpaku/go-screening"
	"google.golang.org/api/forms/v1"
)

const choiceTypeRadio = "RADIO"

// questionItem builds a required Ya/Tidak radio question.
func questionItem(q screening.Question) *forms.Item {
	return &forms.Item{
		Title: q.Text,
		QuestionItem: &forms.QuestionItem{
			Question: &forms.Question{
				Required: true,
				ChoiceQuestion: &forms.ChoiceQuestion{
					Type: choiceTypeRadio,
					Options: []*forms.Option{
						{Value: screening.LabelYes},
						{Value: screening.LabelNo},
					},
				},
			},
		},
	}
}

// createItemRequests returns one CreateItem request per question, in question order.
func createItemRequests(questions []screening.Question) (requests []*forms.Request) {
	for i, q := range questions {
		requests = append(requests, &forms.Request{
			CreateItem: &forms.CreateItemRequest{
				Item: questionItem(q),
				Location: &forms.Location{
					Index: int64(i),
					// Index 0 would otherwise be dropped as empty.
					ForceSendFields: []string{"Index"},
				},
			},
		})
	}
	return requests
}
