// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/Jumpaku/go-screening/config"
	"github.com/Jumpaku/go-screening/errors"
	"github.com/getsentry/raven-go"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogFileMB      = 50
	maxLogFileBackups = 5
	maxLogFileAgeDays = 28
)

// Setup applies cfg to logger. The returned closer
// releases the log file, if any, and must be called before exit.
func Setup(logger *log.Logger, cfg config.LogConfig) (closer io.Closer, err error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.NewConfigError("invalid log level", err)
	}
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	case "", "text":
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return nil, errors.NewConfigError(fmt.Sprintf("unknown log format %q", cfg.Format), nil)
	}

	closer = io.NopCloser(nil)
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxLogFileMB,
			MaxBackups: maxLogFileBackups,
			MaxAge:     maxLogFileAgeDays,
		}
		logger.SetOutput(io.MultiWriter(os.Stderr, file))
		closer = file
	}

	if cfg.SentryDSN != "" {
		if err := raven.SetDSN(cfg.SentryDSN); err != nil {
			return closer, errors.NewConfigError("invalid sentry dsn", err)
		}
		logger.AddHook(NewSentryHook(raven.CaptureError, raven.CaptureMessage))
	}
	return closer, nil
}
