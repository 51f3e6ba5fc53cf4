package screening

import (
	"fmt"
	"strings"
)

// Answer is a response to a single question. The zero value means the
// question was left unanswered.
type Answer int

const (
	AnswerUnset Answer = iota
	AnswerYes
	AnswerNo
)

const (
	LabelYes = "Ya"
	LabelNo  = "Tidak"
)

// Label returns the label shown on the form and stored in records.
func (a Answer) Label() string {
	switch a {
	case AnswerYes:
		return LabelYes
	case AnswerNo:
		return LabelNo
	}
	return ""
}

func (a Answer) String() string {
	if a == AnswerUnset {
		return "unset"
	}
	return a.Label()
}

// IsSet reports whether the question was answered.
func (a Answer) IsSet() bool {
	return a == AnswerYes || a == AnswerNo
}

// Feature returns the numeric encoding used as classifier input: 1 for yes, 0 otherwise.
func (a Answer) Feature() float64 {
	if a == AnswerYes {
		return 1
	}
	return 0
}

// ParseAnswer parses a form value. An empty value yields AnswerUnset.
func ParseAnswer(s string) (answer Answer, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return AnswerUnset, nil
	case "ya", "yes", "y", "1":
		return AnswerYes, nil
	case "tidak", "no", "n", "0":
		return AnswerNo, nil
	}
	return AnswerUnset, newAnswerError(fmt.Sprintf("unknown answer %q", s), nil)
}

// ParseAnswers parses one value per question. Missing trailing values are left unset.
func ParseAnswers(values []string) (answers []Answer, err error) {
	if len(values) > QuestionCount {
		return nil, newAnswerError(fmt.Sprintf("got %d answers for %d questions", len(values), QuestionCount), nil)
	}
	answers = make([]Answer, QuestionCount)
	for i, v := range values {
		a, err := ParseAnswer(v)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		answers[i] = a
	}
	return answers, nil
}

// ValidateAnswers checks that there is exactly one set answer per question.
func ValidateAnswers(answers []Answer) error {
	if len(answers) != QuestionCount {
		return newIncompleteError(fmt.Sprintf("got %d answers, want %d", len(answers), QuestionCount))
	}
	var missing []string
	for i, a := range answers {
		if !a.IsSet() {
			missing = append(missing, fmt.Sprint(i+1))
		}
	}
	if len(missing) > 0 {
		return newIncompleteError("unanswered questions " + strings.Join(missing, ","))
	}
	return nil
}

// CountYes returns the number of yes answers.
func CountYes(answers []Answer) (count int) {
	for _, a := range answers {
		if a == AnswerYes {
			count++
		}
	}
	return count
}
