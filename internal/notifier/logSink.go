package notifier

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mailmind/mailmind/internal/entity"
)

type logSink struct{}

// NewLogSink returns a sink that only writes to the application log. It is
// the default driver; useful in development and as a safe fallback.
func NewLogSink() Sink {
	return &logSink{}
}

func (s *logSink) Notify(_ context.Context, reminder *entity.Reminder) error {
	logrus.WithFields(logrus.Fields{
		"reminder_id": reminder.ID,
		"email_id":    reminder.EmailID,
		"due_at":      reminder.EffectiveDueAt(),
	}).Infof("Reminder fired: %s", reminder.Message)
	return nil
}
