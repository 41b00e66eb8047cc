package report

import (
	"context"
	"errors"
)

// Multi delivers each record to every sink in order. All sinks are attempted
// even if some fail; the failures are joined.
type Multi []Sink

// Report fans r out to every sink.
func (m Multi) Report(ctx context.Context, r Record) error {
	var errs []error
	for _, s := range m {
		if err := s.Report(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
