package screening

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the layout of record timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Submission is a scored, complete set of answers. It is never mutated after Submit returns.
type Submission struct {
	id      uuid.UUID
	time    time.Time
	answers []Answer
	verdict Verdict
}

// Submit validates answers, scores them with scorer and returns the resulting submission.
// Incomplete answers are rejected before the scorer is called.
func Submit(scorer Scorer, answers []Answer, now time.Time) (submission Submission, err error) {
	if err := ValidateAnswers(answers); err != nil {
		return Submission{}, err
	}
	verdict, err := scorer.Score(answers)
	if err != nil {
		return Submission{}, fmt.Errorf("failed to submit answers: %w", err)
	}
	return Submission{
		id:      uuid.New(),
		time:    now,
		answers: append([]Answer{}, answers...),
		verdict: verdict,
	}, nil
}

func (s Submission) ID() uuid.UUID     { return s.id }
func (s Submission) Time() time.Time   { return s.time }
func (s Submission) Verdict() Verdict  { return s.verdict }
func (s Submission) Answers() []Answer { return append([]Answer{}, s.answers...) }
func (s Submission) YesCount() int     { return CountYes(s.answers) }

// Record returns the persisted form of the submission with its timestamp rendered in loc.
// A nil loc means UTC.
func (s Submission) Record(loc *time.Location) Record {
	if loc == nil {
		loc = time.UTC
	}
	labels := make([]string, 0, len(s.answers))
	for _, a := range s.answers {
		labels = append(labels, a.Label())
	}
	return Record{
		SubmissionID: s.id.String(),
		Timestamp:    s.time.In(loc).Format(TimestampLayout),
		Verdict:      s.verdict.Label(),
		Answers:      labels,
	}
}

// Record is one row of the result sink.
type Record struct {
	SubmissionID string
	Timestamp    string
	Verdict      string
	Answers      []string
}

// Row returns the record cells in column order: timestamp, verdict, then one answer per question.
func (r Record) Row() []string {
	return append([]string{r.Timestamp, r.Verdict}, r.Answers...)
}
