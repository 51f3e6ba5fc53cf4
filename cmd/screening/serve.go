package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Jumpaku/go-screening/web"
	"github.com/spf13/cobra"
)

func newServeCmd(f *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the questionnaire over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cleanup, err := f.setup()
			if err != nil {
				return err
			}
			defer cleanup()
			if addr != "" {
				cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			scorer, err := newScorer(cfg)
			if err != nil {
				return err
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			s, err := openSinks(ctx, cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			server, err := web.New(scorer, s.Sink(), loc)
			if err != nil {
				return err
			}
			return server.ListenAndServe(ctx, cfg.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides SCREENING_ADDR)")

	return cmd
}
