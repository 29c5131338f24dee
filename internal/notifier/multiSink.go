package notifier

import (
	"context"
	"errors"

	"github.com/mailmind/mailmind/internal/entity"
)

type multiSink struct {
	sinks []Sink
}

// NewMultiSink fans a notification out to every sink. All sinks are tried
// even when an earlier one fails; the errors are joined.
func NewMultiSink(sinks ...Sink) Sink {
	return &multiSink{sinks: sinks}
}

func (m *multiSink) Notify(ctx context.Context, reminder *entity.Reminder) error {
	var errs []error
	for _, sink := range m.sinks {
		if err := sink.Notify(ctx, reminder); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
