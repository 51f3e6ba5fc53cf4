// Package model scores screening answers with an externally trained binary classifier.
//
// The classifier is loaded once at startup from an artifact file and is only
// read afterwards, so a single Scorer may serve concurrent submissions.
package model

import (
	"fmt"

	"github.com/Jumpaku/go-screening"
	"github.com/Jumpaku/go-screening/errors"
)

// Scorer implements screening.Scorer by delegating to a Classifier.
type Scorer struct {
	classifier Classifier
}

var _ screening.Scorer = (*Scorer)(nil)

// NewScorer returns a Scorer for classifier, which must take one feature per question.
func NewScorer(classifier Classifier) (*Scorer, error) {
	if classifier.Features() != screening.QuestionCount {
		return nil, errors.NewModelError(fmt.Sprintf("classifier takes %d features, want %d", classifier.Features(), screening.QuestionCount), nil)
	}
	return &Scorer{classifier: classifier}, nil
}

// LoadScorer loads the artifact at path and wraps it in a Scorer.
func LoadScorer(path string) (*Scorer, error) {
	classifier, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewScorer(classifier)
}

func (s *Scorer) Score(answers []screening.Answer) (verdict screening.Verdict, err error) {
	if err := screening.ValidateAnswers(answers); err != nil {
		return screening.VerdictNegative, fmt.Errorf("failed to score answers: %w", err)
	}
	features := FeatureVector(answers)
	if len(features) != s.classifier.Features() {
		return screening.VerdictNegative, errors.NewModelError(fmt.Sprintf("got %d features, want %d", len(features), s.classifier.Features()), nil)
	}
	output, err := s.classifier.Predict(features)
	if err != nil {
		return screening.VerdictNegative, fmt.Errorf("failed to run classifier: %w", err)
	}
	return screening.VerdictFromOutput(output)
}

// FeatureVector encodes answers in question order, yes as 1 and anything else as 0.
func FeatureVector(answers []screening.Answer) []float64 {
	features := make([]float64, len(answers))
	for i, a := range answers {
		features[i] = a.Feature()
	}
	return features
}
