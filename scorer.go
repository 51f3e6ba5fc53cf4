package screening

import "fmt"

// Scorer turns a complete set of answers into a verdict.
// Implementations must reject incomplete answers with ErrIncompleteAnswers.
type Scorer interface {
	Score(answers []Answer) (verdict Verdict, err error)
}

// DefaultCutoff is the number of yes answers from which ThresholdScorer reports a positive verdict.
const DefaultCutoff = 6

// ThresholdScorer reports a positive verdict when at least Cutoff questions are answered yes.
// A zero Cutoff means DefaultCutoff.
type ThresholdScorer struct {
	Cutoff int
}

var _ Scorer = ThresholdScorer{}

func NewThresholdScorer(cutoff int) ThresholdScorer {
	return ThresholdScorer{Cutoff: cutoff}
}

func (s ThresholdScorer) Score(answers []Answer) (verdict Verdict, err error) {
	if err := ValidateAnswers(answers); err != nil {
		return VerdictNegative, fmt.Errorf("failed to score answers: %w", err)
	}
	if CountYes(answers) >= s.cutoff() {
		return VerdictPositive, nil
	}
	return VerdictNegative, nil
}

func (s ThresholdScorer) cutoff() int {
	if s.Cutoff <= 0 {
		return DefaultCutoff
	}
	return s.Cutoff
}
