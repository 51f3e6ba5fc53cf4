// Package sink persists scored submissions.
//
// Sinks are best-effort: a failed Append never changes the verdict already
// shown to the respondent, and callers report it as a warning.
package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/Jumpaku/go-screening"
)

// Sink appends one record per submission.
type Sink interface {
	Append(ctx context.Context, record screening.Record) error
}

// Discard is a Sink that drops every record.
var Discard Sink = discard{}

type discard struct{}

func (discard) Append(context.Context, screening.Record) error { return nil }

// Named is a sink together with the store name shown to respondents.
type Named struct {
	Name string
	Sink Sink
}

// Result is the outcome of appending one record to a named sink.
type Result struct {
	Name string
	Err  error
}

// Multi appends to each sink in order. Every sink is attempted.
type Multi []Named

var _ Sink = Multi(nil)

// Append joins the errors of the failed sinks, each prefixed with its name.
func (m Multi) Append(ctx context.Context, record screening.Record) error {
	var errs []error
	for _, r := range m.AppendEach(ctx, record) {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name, r.Err))
		}
	}
	return errors.Join(errs...)
}

// AppendEach appends record to every sink and reports each outcome in order.
func (m Multi) AppendEach(ctx context.Context, record screening.Record) []Result {
	results := make([]Result, 0, len(m))
	for _, n := range m {
		results = append(results, Result{Name: n.Name, Err: n.Sink.Append(ctx, record)})
	}
	return results
}

// AppendEach appends record to s. A Multi reports one result per entry,
// any other sink a single result under name.
func AppendEach(ctx context.Context, s Sink, name string, record screening.Record) []Result {
	if m, ok := s.(Multi); ok {
		return m.AppendEach(ctx, record)
	}
	return []Result{{Name: name, Err: s.Append(ctx, record)}}
}

// Saved returns the names of the sinks that stored the record.
func Saved(results []Result) (names []string) {
	for _, r := range results {
		if r.Err == nil {
			names = append(names, r.Name)
		}
	}
	return names
}

// Failed returns the results of the sinks that did not store the record.
func Failed(results []Result) (failed []Result) {
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
