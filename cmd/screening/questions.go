package main

import (
	"fmt"

	"github.com/Jumpaku/go-screening"
	"github.com/spf13/cobra"
)

func newQuestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "Print the questionnaire",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, q := range screening.Questions() {
				if _, err := fmt.Fprintf(out, "%2d. %s\n", q.Index, q.Text); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
