package screening_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Jumpaku/go-screening"
)

type countingScorer struct {
	calls int
}

func (s *countingScorer) Score(answers []screening.Answer) (screening.Verdict, error) {
	s.calls++
	return screening.VerdictPositive, nil
}

func TestSubmit(t *testing.T) {
	now := time.Date(2024, 3, 1, 17, 30, 5, 0, time.UTC)
	answers := answersOf(6)

	sub, err := screening.Submit(screening.ThresholdScorer{}, answers, now)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !sub.Verdict().Positive() {
		t.Fatalf("Verdict() = %v, want positive", sub.Verdict())
	}
	if sub.YesCount() != 6 {
		t.Fatalf("YesCount() = %d, want 6", sub.YesCount())
	}
	if !sub.Time().Equal(now) {
		t.Fatalf("Time() = %v, want %v", sub.Time(), now)
	}

	answers[0] = screening.AnswerNo
	if sub.Answers()[0] != screening.AnswerYes {
		t.Fatalf("Submission shares answers with caller")
	}
}

func TestSubmit_IncompleteIsRejectedBeforeScoring(t *testing.T) {
	scorer := &countingScorer{}
	answers := answersOf(20)
	answers[19] = screening.AnswerUnset

	if _, err := screening.Submit(scorer, answers, time.Now()); !errors.Is(err, screening.ErrIncompleteAnswers) {
		t.Fatalf("Submit() error = %v, want ErrIncompleteAnswers", err)
	}
	if scorer.calls != 0 {
		t.Fatalf("scorer called %d times, want 0", scorer.calls)
	}
}

func TestSubmission_Record(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	now := time.Date(2024, 3, 1, 17, 30, 5, 0, time.UTC)
	answers := answersOf(0)
	answers[2] = screening.AnswerYes

	sub, err := screening.Submit(screening.ThresholdScorer{}, answers, now)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	rec := sub.Record(jakarta)

	if rec.Timestamp != "2024-03-02 00:30:05" {
		t.Fatalf("Timestamp = %q, want %q", rec.Timestamp, "2024-03-02 00:30:05")
	}
	if rec.SubmissionID != sub.ID().String() {
		t.Fatalf("SubmissionID = %q, want %q", rec.SubmissionID, sub.ID())
	}

	row := rec.Row()
	if len(row) != 2+screening.QuestionCount {
		t.Fatalf("len(Row()) = %d, want %d", len(row), 2+screening.QuestionCount)
	}
	if row[0] != rec.Timestamp || row[1] != "Tidak ada gangguan mental health" {
		t.Fatalf("Row()[:2] = %v", row[:2])
	}
	for i, a := range answers {
		if row[2+i] != a.Label() {
			t.Fatalf("Row()[%d] = %q, want %q", 2+i, row[2+i], a.Label())
		}
	}
}

func TestSubmission_RecordNilLocation(t *testing.T) {
	now := time.Date(2024, 3, 1, 17, 30, 5, 0, time.UTC)
	sub, err := screening.Submit(screening.ThresholdScorer{}, answersOf(0), now)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if got := sub.Record(nil).Timestamp; got != "2024-03-01 17:30:05" {
		t.Fatalf("Timestamp = %q, want UTC", got)
	}
}
