package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Jumpaku/go-screening"
	"github.com/Jumpaku/go-screening/config"
	"github.com/Jumpaku/go-screening/form"
	"github.com/Jumpaku/go-screening/sink"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

var fixedNow = time.Date(2024, 3, 1, 17, 30, 5, 0, time.UTC)

type memorySink struct {
	records []screening.Record
	err     error
}

func (s *memorySink) Append(_ context.Context, record screening.Record) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, record)
	return nil
}

func newQuestionnaire(input string, resultSink *memorySink) (*questionnaire, *bytes.Buffer) {
	out := &bytes.Buffer{}
	q := &questionnaire{
		in:       bufio.NewScanner(strings.NewReader(input)),
		out:      out,
		scorer:   screening.NewThresholdScorer(0),
		location: time.UTC,
		now:      func() time.Time { return fixedNow },
	}
	if resultSink != nil {
		q.sinks = sink.Multi{{Name: sheetsStorageName, Sink: resultSink}}
	}
	return q, out
}

func lines(values ...string) string {
	return strings.Join(values, "\n") + "\n"
}

func repeat(value string, n int) []string {
	values := make([]string, n)
	for i := range values {
		values[i] = value
	}
	return values
}

func TestQuestionnaire_Positive(t *testing.T) {
	resultSink := &memorySink{}
	input := lines(append(repeat("ya", 6), repeat("tidak", 14)...)...)
	q, out := newQuestionnaire(input, resultSink)

	submission, err := q.run(context.Background())
	require.NoError(t, err)

	assert.True(t, submission.Verdict().Positive())
	assert.Contains(t, out.String(), "Prediksi: Ada gangguan mental health")
	assert.Contains(t, out.String(), "Jawaban berhasil disimpan ke Google Sheets.")
	require.Len(t, resultSink.records, 1)
	assert.Equal(t, "2024-03-01 17:30:05", resultSink.records[0].Timestamp)
	assert.Equal(t, "Ya", resultSink.records[0].Answers[0])
	assert.Equal(t, "Tidak", resultSink.records[0].Answers[19])
}

func TestQuestionnaire_RepeatsInvalidAnswers(t *testing.T) {
	input := lines(append([]string{"maybe", "", "n"}, repeat("n", 19)...)...)
	q, out := newQuestionnaire(input, nil)

	submission, err := q.run(context.Background())
	require.NoError(t, err)

	assert.False(t, submission.Verdict().Positive())
	assert.Equal(t, 2, strings.Count(out.String(), "Jawab dengan 'Ya' atau 'Tidak'."))
	assert.Contains(t, out.String(), "Prediksi: Tidak ada gangguan mental health")
	assert.NotContains(t, out.String(), "disimpan")
}

func TestQuestionnaire_EndOfInput(t *testing.T) {
	resultSink := &memorySink{}
	q, out := newQuestionnaire(lines(repeat("ya", 5)...), resultSink)

	_, err := q.run(context.Background())

	assert.ErrorIs(t, err, screening.ErrIncompleteAnswers)
	assert.Contains(t, out.String(), incompleteMessage)
	assert.Empty(t, resultSink.records)
}

func TestQuestionnaire_SinkFailureKeepsVerdict(t *testing.T) {
	resultSink := &memorySink{err: errors.New("quota exceeded")}
	q, out := newQuestionnaire(lines(repeat("ya", 20)...), resultSink)

	submission, err := q.run(context.Background())
	require.NoError(t, err)

	assert.True(t, submission.Verdict().Positive())
	assert.Contains(t, out.String(), "Prediksi: Ada gangguan mental health")
	assert.Contains(t, out.String(), "Terjadi kesalahan saat menyimpan ke Google Sheets: quota exceeded")
}

func TestQuestionnaire_ReportsEverySinkSeparately(t *testing.T) {
	sheets := &memorySink{}
	journal := &memorySink{err: errors.New("journal disk full")}
	q, out := newQuestionnaire(lines(repeat("ya", 7)...)+lines(repeat("tidak", 13)...), nil)
	q.sinks = sink.Multi{
		{Name: sheetsStorageName, Sink: sheets},
		{Name: journalStorageName, Sink: journal},
	}

	_, err := q.run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Jawaban berhasil disimpan ke Google Sheets.")
	assert.Contains(t, out.String(), "Terjadi kesalahan saat menyimpan ke journal: journal disk full")
	assert.NotContains(t, out.String(), "menyimpan ke Google Sheets")
	assert.Len(t, sheets.records, 1)
}

func responseWithYes(id string, yes int, answered int) form.Response {
	answers := make([]screening.Answer, screening.QuestionCount)
	for i := 0; i < answered; i++ {
		answers[i] = screening.AnswerNo
		if i < yes {
			answers[i] = screening.AnswerYes
		}
	}
	return form.Response{ResponseID: id, LastSubmittedTime: fixedNow, Answers: answers}
}

func TestScoreResponses(t *testing.T) {
	resultSink := &memorySink{}
	out := &bytes.Buffer{}
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	responses := []form.Response{
		responseWithYes("r1", 6, 20),
		responseWithYes("r2", 2, 20),
		responseWithYes("r3", 6, 19),
	}
	err = scoreResponses(context.Background(), out, screening.NewThresholdScorer(0), resultSink, jakarta, responses)
	require.NoError(t, err)

	assert.Equal(t, lines(
		"r1\t2024-03-02 00:30:05\tAda gangguan mental health",
		"r2\t2024-03-02 00:30:05\tTidak ada gangguan mental health",
		"r3\t-\tincomplete",
	), out.String())
	require.Len(t, resultSink.records, 2)
	assert.Equal(t, "Ada gangguan mental health", resultSink.records[0].Verdict)
}

func TestScoreResponses_SinkFailure(t *testing.T) {
	resultSink := &memorySink{err: errors.New("forbidden")}
	out := &bytes.Buffer{}

	responses := []form.Response{responseWithYes("r1", 0, 20), responseWithYes("r2", 20, 20)}
	err := scoreResponses(context.Background(), out, screening.NewThresholdScorer(0), resultSink, time.UTC, responses)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "response r1")
	assert.Contains(t, err.Error(), "response r2")
	assert.Equal(t, 2, strings.Count(out.String(), "\n"))
}

func TestNewScorer(t *testing.T) {
	cfg := config.Default()
	scorer, err := newScorer(cfg)
	require.NoError(t, err)
	assert.IsType(t, screening.ThresholdScorer{}, scorer)

	cfg.Scorer = config.ScorerModel
	cfg.ModelPath = filepath.Join("..", "..", "model", "testdata", "count.yaml")
	scorer, err = newScorer(cfg)
	require.NoError(t, err)
	answers := make([]screening.Answer, screening.QuestionCount)
	for i := range answers {
		answers[i] = screening.AnswerYes
	}
	verdict, err := scorer.Score(answers)
	require.NoError(t, err)
	assert.True(t, verdict.Positive())

	cfg.ModelPath = filepath.Join("testdata", "missing.yaml")
	_, err = newScorer(cfg)
	assert.Error(t, err)
}

func TestQuestionsCmd(t *testing.T) {
	out := &bytes.Buffer{}
	cmd := newQuestionsCmd()
	cmd.SetOut(out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	got := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, got, screening.QuestionCount)
	assert.Equal(t, fmt.Sprintf("%2d. %s", 1, screening.Questions()[0].Text), got[0])
}
