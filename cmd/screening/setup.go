package main

import (
	"context"
	"fmt"

	"github.com/Jumpaku/go-screening"
	"github.com/Jumpaku/go-screening/config"
	"github.com/Jumpaku/go-screening/logging"
	"github.com/Jumpaku/go-screening/model"
	"github.com/Jumpaku/go-screening/sink"
	log "github.com/sirupsen/logrus"
)

type rootFlags struct {
	configPath string
	envFile    string
	logLevel   string
}

// setup loads the configuration and configures logging.
// The returned cleanup must be called before the command returns.
func (f *rootFlags) setup() (cfg config.Config, cleanup func(), err error) {
	cfg, err = config.Load(f.configPath, f.envFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	closer, err := logging.Setup(log.StandardLogger(), cfg.Log)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return config.Config{}, nil, err
	}
	return cfg, func() { _ = closer.Close() }, nil
}

// newScorer loads the scoring strategy selected by cfg.
// A model that cannot be loaded is an error.
func newScorer(cfg config.Config) (screening.Scorer, error) {
	switch cfg.Scorer {
	case config.ScorerModel:
		scorer, err := model.LoadScorer(cfg.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load model %q: %w", cfg.ModelPath, err)
		}
		log.WithField("path", cfg.ModelPath).Info("Loaded model")
		return scorer, nil
	default:
		log.WithField("cutoff", cfg.Threshold).Info("Using threshold scorer")
		return screening.NewThresholdScorer(cfg.Threshold), nil
	}
}

const (
	sheetsStorageName  = "Google Sheets"
	journalStorageName = "journal"
)

// sinks holds the result sinks enabled by the configuration.
type sinks struct {
	all     sink.Multi
	journal *sink.JournalSink
}

func openSinks(ctx context.Context, cfg config.Config) (s *sinks, err error) {
	s = &sinks{}
	if cfg.SheetsEnabled() {
		credentials, err := cfg.Google.Credentials()
		if err != nil {
			return nil, err
		}
		sheets, err := sink.DialSheets(ctx, credentials, cfg.Google.SheetID, cfg.Google.SheetName)
		if err != nil {
			return nil, err
		}
		if err := sheets.Check(ctx); err != nil {
			log.WithError(err).WithField("spreadsheet", cfg.Google.SheetID).Warn("Spreadsheet is not reachable, appends will likely fail")
		}
		s.all = append(s.all, sink.Named{Name: sheetsStorageName, Sink: sheets})
	}
	if cfg.JournalPath != "" {
		journal, err := sink.OpenJournal(cfg.JournalPath)
		if err != nil {
			return nil, err
		}
		s.journal = journal
		s.all = append(s.all, sink.Named{Name: journalStorageName, Sink: journal})
	}
	if len(s.all) == 0 {
		log.Info("No result sink configured, results are only displayed")
	}
	return s, nil
}

// Sink returns nil when no sink is configured. Otherwise it is a sink.Multi
// so each store is reported under its own name.
func (s *sinks) Sink() sink.Sink {
	if len(s.all) == 0 {
		return nil
	}
	return s.all
}

func (s *sinks) Close() error {
	if s.journal != nil {
		return s.journal.Close()
	}
	return nil
}
