package errors_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	. "github.com/Jumpaku/go-screening/errors"
)

func TestErrVars_IsAndMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrAPIError", ErrAPIError, "api error"},
		{"ErrAPIError2", NewAPIError("", fmt.Errorf("")), "api error"},
		{"ErrIOError", ErrIOError, "io error"},
		{"ErrIOError2", NewIOError("", fmt.Errorf("")), "io error"},
		{"ErrNotFound", ErrNotFound, "not found"},
		{"ErrInvalidConfig", ErrInvalidConfig, "invalid config"},
		{"ErrInvalidConfig2", NewConfigError("", nil), "invalid config"},
		{"ErrInvalidModel", ErrInvalidModel, "invalid model"},
		{"ErrInvalidModel2", NewModelError("", nil), "invalid model"},
		{"ErrInvalidRequest", ErrInvalidRequest, "invalid request"},
		{"ErrInvalidRequest2", NewRequestError("", nil), "invalid request"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name+"/IsWrapped", func(t *testing.T) {
			wrapped := fmt.Errorf("higher: %w", c.err)
			if !errors.Is(wrapped, c.err) {
				t.Fatalf("errors.Is(wrapped, %s) = false, want true", c.name)
			}
		})

		t.Run(c.name+"/Message", func(t *testing.T) {
			wrapped := fmt.Errorf("higher: %w", c.err)
			if !strings.Contains(wrapped.Error(), c.msg) {
				t.Fatalf("%s.Error() = %q does not contain %q", c.name, wrapped.Error(), c.msg)
			}
		})
	}
}

func TestNewAPIError_KeepsCause(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := NewAPIError("failed to append row", cause)
	if !errors.Is(err, ErrAPIError) || !errors.Is(err, cause) {
		t.Fatalf("NewAPIError() does not wrap both sentinel and cause: %v", err)
	}
	if got, want := err.Error(), "api error: failed to append row: quota exceeded"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
