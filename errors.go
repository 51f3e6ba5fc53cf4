package screening

import (
	"errors"
)

var (
	ErrIncompleteAnswers = errors.New("incomplete answers")
	ErrInvalidAnswer     = errors.New("invalid answer")
	ErrInvalidVerdict    = errors.New("invalid verdict")
)

type wrapError struct {
	underlying error
	msg        string
	cause      error
}

var _ error = (*wrapError)(nil)

func newIncompleteError(msg string) error {
	return &wrapError{
		underlying: ErrIncompleteAnswers,
		msg:        msg,
	}
}

func newAnswerError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrInvalidAnswer,
		msg:        msg,
		cause:      cause,
	}
}

func (err *wrapError) Error() string {
	if err == nil {
		return "(*wrapError)(nil)"
	}
	message := err.underlying.Error() + ": " + err.msg
	if err.cause != nil {
		message += ": " + err.cause.Error()
	}
	return message
}

func (err *wrapError) Unwrap() []error {
	if err.cause == nil {
		return []error{err.underlying}
	}
	return []error{err.underlying, err.cause}
}
