package form

import (
	"github.com/Jumpaku/go-screening"
)

type FormID string

// Form is a Google Form holding the screening questionnaire.
type Form struct {
	ID           FormID
	Title        string
	ResponderURI string
	PublishState PublishState

	// Questions maps the form's question ids to screening question indices (1-based).
	// Items that are not screening questions are absent.
	Questions map[string]int
}

// Complete reports whether every screening question appears on the form.
func (f *Form) Complete() bool {
	seen := map[int]bool{}
	for _, index := range f.Questions {
		seen[index] = true
	}
	return len(seen) == screening.QuestionCount
}
