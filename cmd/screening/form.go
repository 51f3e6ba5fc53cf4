package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Jumpaku/go-screening"
	"github.com/Jumpaku/go-screening/form"
	"github.com/Jumpaku/go-screening/sink"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newFormCmd(f *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Collect answers through Google Forms",
	}
	cmd.AddCommand(newFormPublishCmd(f), newFormScoreCmd(f))
	return cmd
}

func newFormPublishCmd(f *rootFlags) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Create a Google Form with the questionnaire and open it for responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cleanup, err := f.setup()
			if err != nil {
				return err
			}
			defer cleanup()

			credentials, err := cfg.Google.Credentials()
			if err != nil {
				return err
			}
			client, err := form.Dial(cmd.Context(), credentials)
			if err != nil {
				return err
			}
			published, err := client.Publish(cmd.Context(), title)
			if err != nil {
				return err
			}
			log.WithField("form", published.ID).Info("Published form")
			fmt.Fprintf(cmd.OutOrStdout(), "Form ID:   %s\nResponder: %s\nState:     %s\n",
				published.ID, published.ResponderURI, published.PublishState)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "Mental Health Questionnaire", "Form title")

	return cmd
}

func newFormScoreCmd(f *rootFlags) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "score <form-id>",
		Short: "Score every response of a published form and save the records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			credentials, err := cfg.Google.Credentials()
			if err != nil {
				return err
			}
			client, err := form.Dial(cmd.Context(), credentials)
			if err != nil {
				return err
			}
			responses, err := client.Responses(cmd.Context(), form.FormID(args[0]))
			if err != nil {
				return err
			}

			var resultSink sink.Sink
			if !dryRun {
				s, err := openSinks(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				defer s.Close()
				resultSink = s.Sink()
			}
			return scoreResponses(cmd.Context(), cmd.OutOrStdout(), scorer, resultSink, loc, responses)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print verdicts without saving records")

	return cmd
}

// scoreResponses prints one line per response and appends the complete ones to resultSink.
// Incomplete responses are skipped. Sink failures are reported after every response is processed.
func scoreResponses(ctx context.Context, out io.Writer, scorer screening.Scorer, resultSink sink.Sink, loc *time.Location, responses []form.Response) error {
	var errs []error
	for _, r := range responses {
		logger := log.WithField("response", r.ResponseID)
		submittedAt := r.LastSubmittedTime
		if submittedAt.IsZero() {
			submittedAt = r.CreateTime
		}
		submission, err := screening.Submit(scorer, r.Answers, submittedAt)
		if errors.Is(err, screening.ErrIncompleteAnswers) {
			logger.WithError(err).Warn("Skipped incomplete response")
			fmt.Fprintf(out, "%s\t-\t%s\n", r.ResponseID, "incomplete")
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to score response %s: %w", r.ResponseID, err)
		}

		record := submission.Record(loc)
		fmt.Fprintf(out, "%s\t%s\t%s\n", r.ResponseID, record.Timestamp, record.Verdict)
		if resultSink == nil {
			continue
		}
		if err := resultSink.Append(ctx, record); err != nil {
			logger.WithError(err).Error("Failed to save response")
			errs = append(errs, fmt.Errorf("response %s: %w", r.ResponseID, err))
		}
	}
	return errors.Join(errs...)
}
