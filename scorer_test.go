package screening_test

import (
	"errors"
	"testing"

	"github.com/Jumpaku/go-screening"
)

func TestThresholdScorer_Score(t *testing.T) {
	scorer := screening.ThresholdScorer{}
	for yes := 0; yes <= screening.QuestionCount; yes++ {
		got, err := scorer.Score(answersOf(yes))
		if err != nil {
			t.Fatalf("Score(%d yes) error = %v", yes, err)
		}
		want := screening.VerdictNegative
		if yes >= 6 {
			want = screening.VerdictPositive
		}
		if got != want {
			t.Fatalf("Score(%d yes) = %v, want %v", yes, got, want)
		}
	}
}

func TestThresholdScorer_Examples(t *testing.T) {
	scorer := screening.NewThresholdScorer(screening.DefaultCutoff)

	got, err := scorer.Score(answersOf(0))
	if err != nil {
		t.Fatalf("Score(all no) error = %v", err)
	}
	if got.Positive() || got.Label() != "Tidak ada gangguan mental health" {
		t.Fatalf("Score(all no) = %q, want negative", got.Label())
	}

	// Order of yes answers must not matter.
	answers := answersOf(0)
	for _, i := range []int{1, 4, 9, 13, 17, 19} {
		answers[i] = screening.AnswerYes
	}
	got, err = scorer.Score(answers)
	if err != nil {
		t.Fatalf("Score(6 yes) error = %v", err)
	}
	if !got.Positive() || got.Label() != "Ada gangguan mental health" {
		t.Fatalf("Score(6 yes) = %q, want positive", got.Label())
	}
}

func TestThresholdScorer_CustomCutoff(t *testing.T) {
	scorer := screening.NewThresholdScorer(10)
	if got, _ := scorer.Score(answersOf(9)); got.Positive() {
		t.Fatalf("Score(9 yes, cutoff 10) = positive, want negative")
	}
	if got, _ := scorer.Score(answersOf(10)); !got.Positive() {
		t.Fatalf("Score(10 yes, cutoff 10) = negative, want positive")
	}
}

func TestThresholdScorer_RejectsIncomplete(t *testing.T) {
	answers := answersOf(20)
	answers[7] = screening.AnswerUnset
	if _, err := (screening.ThresholdScorer{}).Score(answers); !errors.Is(err, screening.ErrIncompleteAnswers) {
		t.Fatalf("Score(incomplete) error = %v, want ErrIncompleteAnswers", err)
	}
}

func TestVerdictFromOutput(t *testing.T) {
	if v, err := screening.VerdictFromOutput(1); err != nil || v != screening.VerdictPositive {
		t.Fatalf("VerdictFromOutput(1) = (%v, %v)", v, err)
	}
	if v, err := screening.VerdictFromOutput(0); err != nil || v != screening.VerdictNegative {
		t.Fatalf("VerdictFromOutput(0) = (%v, %v)", v, err)
	}
	if _, err := screening.VerdictFromOutput(2); !errors.Is(err, screening.ErrInvalidVerdict) {
		t.Fatalf("VerdictFromOutput(2) error = %v, want ErrInvalidVerdict", err)
	}
}
