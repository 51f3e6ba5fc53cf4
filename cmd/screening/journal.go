package main

import (
	"fmt"
	"strings"

	"github.com/Jumpaku/go-screening/errors"
	"github.com/Jumpaku/go-screening/sink"
	"github.com/spf13/cobra"
)

func newJournalCmd(f *rootFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Print the most recent records of the local journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cleanup, err := f.setup()
			if err != nil {
				return err
			}
			defer cleanup()

			if cfg.JournalPath == "" {
				return errors.NewConfigError("no journal configured (SCREENING_JOURNAL_PATH)", nil)
			}
			journal, err := sink.OpenJournal(cfg.JournalPath)
			if err != nil {
				return err
			}
			defer journal.Close()

			records, err := journal.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range records {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", r.SubmissionID, r.Timestamp, r.Verdict, strings.Join(r.Answers, ","))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of records")

	return cmd
}
