// Package config loads service configuration from .env files, an optional
// YAML file and the process environment, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/Jumpaku/go-screening"
	"github.com/Jumpaku/go-screening/errors"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	ScorerThreshold = "threshold"
	ScorerModel     = "model"

	DefaultAddr     = ":8080"
	DefaultTimezone = "Asia/Jakarta"
)

// Config represents screening service configuration
type Config struct {
	// Addr is the HTTP listen address
	Addr string `yaml:"addr"`

	// Scorer selects the verdict strategy (threshold, model)
	Scorer string `yaml:"scorer"`

	// Threshold is the yes-count cutoff of the threshold scorer
	Threshold int `yaml:"threshold"`

	// ModelPath is the classifier artifact used by the model scorer
	ModelPath string `yaml:"model_path"`

	// Timezone is the zone record timestamps are rendered in
	Timezone string `yaml:"timezone"`

	// JournalPath enables the local SQLite journal when set
	JournalPath string `yaml:"journal_path"`

	Google GoogleConfig `yaml:"google"`
	Log    LogConfig    `yaml:"log"`
}

// GoogleConfig configures the spreadsheet result sink and the Google Forms collector.
type GoogleConfig struct {
	// SheetID is the spreadsheet id; empty disables the spreadsheet sink
	SheetID string `yaml:"sheet_id"`

	// SheetName is the tab rows are appended to; empty means the first sheet
	SheetName string `yaml:"sheet_name"`

	// ServiceAccountJSON is the service account credential blob
	ServiceAccountJSON string `yaml:"service_account_json"`

	// ServiceAccountFile is read when ServiceAccountJSON is empty
	ServiceAccountFile string `yaml:"service_account_file"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is the logrus level (trace, debug, info, warn, error)
	Level string `yaml:"level"`

	// Format is text or json
	Format string `yaml:"format"`

	// File additionally writes logs to a rotated file when set
	File string `yaml:"file"`

	// SentryDSN forwards error logs to Sentry when set
	SentryDSN string `yaml:"sentry_dsn"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Addr:      DefaultAddr,
		Scorer:    ScorerThreshold,
		Threshold: screening.DefaultCutoff,
		Timezone:  DefaultTimezone,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration. Variables from envFiles are loaded into the
// environment first without overriding it; missing env files are ignored.
// path is an optional YAML file. Environment variables override the file.
func Load(path string, envFiles ...string) (cfg Config, err error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, errors.NewConfigError(fmt.Sprintf("failed to load env file %q", f), err)
		}
		log.WithField("file", f).Debug("Loaded env file")
	}

	cfg = Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.NewIOError(fmt.Sprintf("failed to read config file %q", path), err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.NewConfigError(fmt.Sprintf("failed to parse config file %q", path), err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	vars := map[string]*string{
		"SCREENING_ADDR":              &c.Addr,
		"SCREENING_SCORER":            &c.Scorer,
		"SCREENING_MODEL_PATH":        &c.ModelPath,
		"SCREENING_TIMEZONE":          &c.Timezone,
		"SCREENING_JOURNAL_PATH":      &c.JournalPath,
		"GOOGLE_SHEET_ID":             &c.Google.SheetID,
		"GOOGLE_SHEET_NAME":           &c.Google.SheetName,
		"GOOGLE_SERVICE_ACCOUNT_JSON": &c.Google.ServiceAccountJSON,
		"GOOGLE_SERVICE_ACCOUNT_FILE": &c.Google.ServiceAccountFile,
		"LOG_LEVEL":                   &c.Log.Level,
		"LOG_FORMAT":                  &c.Log.Format,
		"LOG_FILE":                    &c.Log.File,
		"SENTRY_DSN":                  &c.Log.SentryDSN,
	}
	for key, dst := range vars {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := os.LookupEnv("SCREENING_THRESHOLD"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.NewConfigError("SCREENING_THRESHOLD must be an integer", err)
		}
		c.Threshold = n
	}
	return nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	switch c.Scorer {
	case ScorerThreshold:
		if c.Threshold < 1 || c.Threshold > screening.QuestionCount {
			return errors.NewConfigError(fmt.Sprintf("threshold %d out of range 1..%d", c.Threshold, screening.QuestionCount), nil)
		}
	case ScorerModel:
		if c.ModelPath == "" {
			return errors.NewConfigError("model scorer requires a model path", nil)
		}
	default:
		return errors.NewConfigError(fmt.Sprintf("unknown scorer %q", c.Scorer), nil)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Google.SheetID != "" && c.Google.ServiceAccountJSON == "" && c.Google.ServiceAccountFile == "" {
		return errors.NewConfigError("spreadsheet sink requires a service account credential", nil)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.NewConfigError("invalid log level", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.NewConfigError(fmt.Sprintf("unknown log format %q", c.Log.Format), nil)
	}
	return nil
}

// Location returns the time zone of record timestamps.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("unknown timezone %q", c.Timezone), err)
	}
	return loc, nil
}

// SheetsEnabled reports whether records should be appended to a spreadsheet.
func (c Config) SheetsEnabled() bool {
	return c.Google.SheetID != ""
}

// Credentials returns the service account credential JSON.
func (c GoogleConfig) Credentials() ([]byte, error) {
	if c.ServiceAccountJSON != "" {
		return []byte(c.ServiceAccountJSON), nil
	}
	if c.ServiceAccountFile == "" {
		return nil, errors.NewConfigError("no service account credential configured", nil)
	}
	data, err := os.ReadFile(c.ServiceAccountFile)
	if err != nil {
		return nil, errors.NewIOError(fmt.Sprintf("failed to read service account file %q", c.ServiceAccountFile), err)
	}
	return data, nil
}
