// Command screening runs the mental health screening questionnaire.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:           "screening",
		Short:         "Mental health self-report screening questionnaire",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	persistent := root.PersistentFlags()
	persistent.StringVar(&f.configPath, "config", "", "YAML configuration file")
	persistent.StringVar(&f.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	persistent.StringVar(&f.logLevel, "log-level", "", "Override the configured log level")

	root.AddCommand(
		newServeCmd(f),
		newAskCmd(f),
		newQuestionsCmd(),
		newFormCmd(f),
		newJournalCmd(f),
	)

	if err := root.Execute(); err != nil {
		log.WithError(err).Debug("Command failed")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
