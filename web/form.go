package web

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/Jumpaku/go-screening"
	"github.com/Jumpaku/go-screening/sink"
)

const incompleteMessage = "Harap menjawab semua pertanyaan sebelum submit."

type pageData struct {
	Error   string
	Columns [][]questionView
	Result  *resultView
}

type questionView struct {
	Index  int
	Text   string
	Answer string
}

type resultView struct {
	Positive     bool
	Message      template.HTML
	Answers      []questionView
	SavedMessage string
	Warnings     []string
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, pageData{Columns: columns(nil)})
}

// handleFormSubmit writes and flushes the verdict before the record is saved,
// then appends the save notice or warnings.
func (s *Server) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	answers, err := parseFormAnswers(r.PostForm)
	if err != nil {
		s.renderPage(w, http.StatusBadRequest, pageData{Error: err.Error(), Columns: columns(answers)})
		return
	}

	submission, err := s.score(answers)
	if errors.Is(err, screening.ErrIncompleteAnswers) {
		s.renderPage(w, http.StatusUnprocessableEntity, pageData{Error: incompleteMessage, Columns: columns(answers)})
		return
	}
	if err != nil {
		s.logger.WithError(err).Error("Failed to score submission")
		http.Error(w, "failed to score submission", http.StatusInternalServerError)
		return
	}

	verdict := submission.Verdict()
	message, err := s.renderMarkdown(verdict.Message())
	if err != nil {
		s.logger.WithError(err).Error("Failed to render verdict")
		http.Error(w, "failed to render verdict", http.StatusInternalServerError)
		return
	}
	data := pageData{
		Columns: columns(answers),
		Result: &resultView{
			Positive: verdict.Positive(),
			Message:  message,
			Answers:  questionViews(answers),
		},
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := s.page.ExecuteTemplate(w, "top", data); err != nil {
		s.logger.WithError(err).Error("Failed to render page")
		return
	}
	if err := http.NewResponseController(w).Flush(); err != nil {
		s.logger.WithError(err).Debug("Response writer does not support flushing")
	}

	results := s.save(r.Context(), submission.Record(s.location))
	if saved := sink.Saved(results); len(saved) > 0 {
		data.Result.SavedMessage = fmt.Sprintf("Jawaban berhasil disimpan ke %s.", strings.Join(saved, " dan "))
	}
	for _, f := range sink.Failed(results) {
		data.Result.Warnings = append(data.Result.Warnings, fmt.Sprintf("Terjadi kesalahan saat menyimpan ke %s: %v", f.Name, f.Err))
	}
	if err := s.page.ExecuteTemplate(w, "bottom", data); err != nil {
		s.logger.WithError(err).Error("Failed to render page")
	}
}

// parseFormAnswers reads q1..q20. Invalid values are left unset so the page can
// keep every valid choice; the first one is reported.
func parseFormAnswers(form url.Values) (answers []screening.Answer, err error) {
	answers = make([]screening.Answer, screening.QuestionCount)
	for i := range answers {
		a, parseErr := screening.ParseAnswer(form.Get(fmt.Sprintf("q%d", i+1)))
		if parseErr != nil {
			if err == nil {
				err = fmt.Errorf("question %d: %w", i+1, parseErr)
			}
			continue
		}
		answers[i] = a
	}
	return answers, err
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.page.Execute(w, data); err != nil {
		s.logger.WithError(err).Error("Failed to render page")
	}
}

func questionViews(answers []screening.Answer) []questionView {
	questions := screening.Questions()
	views := make([]questionView, 0, len(questions))
	for i, q := range questions {
		v := questionView{Index: q.Index, Text: q.Text}
		if i < len(answers) {
			v.Answer = answers[i].Label()
		}
		views = append(views, v)
	}
	return views
}

// columns splits the questions into two halves shown side by side.
func columns(answers []screening.Answer) [][]questionView {
	views := questionViews(answers)
	half := len(views) / 2
	return [][]questionView{views[:half], views[half:]}
}
