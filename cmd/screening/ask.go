package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Jumpaku/go-screening"
	"github.com/Jumpaku/go-screening/sink"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const incompleteMessage = "Harap menjawab semua pertanyaan sebelum submit."

func newAskCmd(f *rootFlags) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Answer the questionnaire in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if raw || !isatty.IsTerminal(os.Stdout.Fd()) {
				color.NoColor = true
			}
			cfg, cleanup, err := f.setup()
			if err != nil {
				return err
			}
			defer cleanup()

			scorer, err := newScorer(cfg)
			if err != nil {
				return err
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			s, err := openSinks(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			q := &questionnaire{
				in:       bufio.NewScanner(cmd.InOrStdin()),
				out:      cmd.OutOrStdout(),
				scorer:   scorer,
				sinks:    s.all,
				location: loc,
				now:      time.Now,
			}
			_, err = q.run(cmd.Context())
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Plain text output (no colors)")

	return cmd
}

// questionnaire asks every question on a line-oriented terminal.
type questionnaire struct {
	in       *bufio.Scanner
	out      io.Writer
	scorer   screening.Scorer
	sinks    sink.Multi
	location *time.Location
	now      func() time.Time
}

// run collects the answers, prints the verdict and saves the record.
// Input ending before every question is answered yields ErrIncompleteAnswers.
func (q *questionnaire) run(ctx context.Context) (submission screening.Submission, err error) {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	bold.Fprintln(q.out, "Mental Health Questionnaire")
	fmt.Fprintf(q.out, "Jawab setiap pertanyaan dengan '%s' atau '%s'.\n\n", screening.LabelYes, screening.LabelNo)

	answers := make([]screening.Answer, screening.QuestionCount)
	for i, question := range screening.Questions() {
		answer, ok := q.ask(question, cyan, red)
		if !ok {
			break
		}
		answers[i] = answer
	}

	submission, err = screening.Submit(q.scorer, answers, q.now())
	if errors.Is(err, screening.ErrIncompleteAnswers) {
		red.Fprintln(q.out, incompleteMessage)
	}
	if err != nil {
		return screening.Submission{}, err
	}

	verdict := submission.Verdict()
	fmt.Fprintln(q.out)
	verdictColor := color.New(color.FgGreen, color.Bold)
	if verdict.Positive() {
		verdictColor = color.New(color.FgRed, color.Bold)
	}
	verdictColor.Fprintf(q.out, "Prediksi: %s\n", verdict.Label())
	fmt.Fprintf(q.out, "Jumlah jawaban '%s': %d dari %d\n", screening.LabelYes, submission.YesCount(), screening.QuestionCount)

	results := q.sinks.AppendEach(ctx, submission.Record(q.location))
	if saved := sink.Saved(results); len(saved) > 0 {
		green.Fprintf(q.out, "Jawaban berhasil disimpan ke %s.\n", strings.Join(saved, " dan "))
	}
	for _, f := range sink.Failed(results) {
		log.WithError(f.Err).WithFields(log.Fields{
			"submission": submission.ID(),
			"storage":    f.Name,
		}).Error("Failed to save submission")
		yellow.Fprintf(q.out, "Terjadi kesalahan saat menyimpan ke %s: %v\n", f.Name, f.Err)
	}
	return submission, nil
}

// ask repeats the question until it gets a valid answer. ok is false at end of input.
func (q *questionnaire) ask(question screening.Question, prompt, warn *color.Color) (answer screening.Answer, ok bool) {
	for {
		prompt.Fprintf(q.out, "%2d. %s ", question.Index, question.Text)
		fmt.Fprintf(q.out, "[%s/%s]: ", screening.LabelYes, screening.LabelNo)
		if !q.in.Scan() {
			fmt.Fprintln(q.out)
			return screening.AnswerUnset, false
		}
		answer, err := screening.ParseAnswer(q.in.Text())
		if err == nil && answer.IsSet() {
			return answer, true
		}
		warn.Fprintf(q.out, "Jawab dengan '%s' atau '%s'.\n", screening.LabelYes, screening.LabelNo)
	}
}
