package errors

import (
	"errors"
)

var (
	ErrAPIError       = errors.New("api error")
	ErrIOError        = errors.New("io error")
	ErrNotFound       = errors.New("not found")
	ErrInvalidConfig  = errors.New("invalid config")
	ErrInvalidModel   = errors.New("invalid model")
	ErrInvalidRequest = errors.New("invalid request")
)

type wrapError struct {
	underlying error
	msg        string
	cause      error
}

var _ error = (*wrapError)(nil)

func NewAPIError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrAPIError,
		msg:        msg,
		cause:      cause,
	}
}

func NewIOError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrIOError,
		msg:        msg,
		cause:      cause,
	}
}

func NewConfigError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrInvalidConfig,
		msg:        msg,
		cause:      cause,
	}
}

func NewModelError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrInvalidModel,
		msg:        msg,
		cause:      cause,
	}
}

func NewRequestError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrInvalidRequest,
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
