package logging

import (
	"fmt"

	"github.com/getsentry/raven-go"
	log "github.com/sirupsen/logrus"
)

// SentryHook forwards error-level entries to Sentry.
type SentryHook struct {
	captureError   func(err error, tags map[string]string, interfaces ...raven.Interface) string
	captureMessage func(message string, tags map[string]string, interfaces ...raven.Interface) string
}

var _ log.Hook = (*SentryHook)(nil)

// NewSentryHook creates a hook reporting through the given capture functions,
// normally raven.CaptureError and raven.CaptureMessage.
func NewSentryHook(
	captureError func(err error, tags map[string]string, interfaces ...raven.Interface) string,
	captureMessage func(message string, tags map[string]string, interfaces ...raven.Interface) string,
) *SentryHook {
	return &SentryHook{captureError: captureError, captureMessage: captureMessage}
}

func (h *SentryHook) Levels() []log.Level {
	return []log.Level{log.PanicLevel, log.FatalLevel, log.ErrorLevel}
}

func (h *SentryHook) Fire(entry *log.Entry) error {
	tags := map[string]string{"message": entry.Message}
	var cause error
	for k, v := range entry.Data {
		if k == log.ErrorKey {
			if err, ok := v.(error); ok {
				cause = err
				continue
			}
		}
		tags[k] = fmt.Sprint(v)
	}
	if cause != nil {
		h.captureError(cause, tags)
		return nil
	}
	h.captureMessage(entry.Message, tags)
	return nil
}
