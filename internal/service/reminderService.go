package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mailmind/mailmind/internal/database"
	"github.com/mailmind/mailmind/internal/entity"
	"github.com/mailmind/mailmind/internal/notifier"
)

type reminderService struct {
	repo database.ReminderRepository
	sink notifier.Sink
}

func NewReminderService(repo database.ReminderRepository, sink notifier.Sink) ReminderUseCase {
	return &reminderService{repo: repo, sink: sink}
}

func (s *reminderService) CreateReminder(ctx context.Context, req *entity.ReminderRequest) (*entity.Reminder, error) {
	dueAt, err := entity.ParseTime(req.DueAt)
	if err != nil {
		return nil, err
	}

	reminder := &entity.Reminder{
		ID:        uuid.New().String(),
		EmailID:   req.EmailID,
		DueAt:     dueAt,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
		Active:    true,
	}
	if err := s.repo.Create(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	logrus.WithField("reminder_id", reminder.ID).Infof("Created reminder due at %s", dueAt.Format(time.RFC3339))
	return reminder, nil
}

func (s *reminderService) GetReminder(ctx context.Context, id string) (*entity.Reminder, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *reminderService) ListReminders(ctx context.Context, activeOnly bool, emailID string) ([]*entity.Reminder, error) {
	return s.repo.List(ctx, database.ReminderFilter{ActiveOnly: activeOnly, EmailID: emailID})
}

func (s *reminderService) UpdateReminder(ctx context.Context, id string, upd *entity.ReminderUpdate) (*entity.Reminder, error) {
	reminder, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.IsEmpty() {
		return reminder, nil
	}

	if upd.DueAt != nil {
		dueAt, err := entity.ParseTime(*upd.DueAt)
		if err != nil {
			return nil, err
		}
		reminder.DueAt = dueAt
	}
	if upd.Message != nil {
		reminder.Message = *upd.Message
	}
	if upd.Active != nil {
		reminder.Active = *upd.Active
	}

	// Snoozing rewrites the due time and keeps the reminder active, even if
	// it had already fired. Re-activation through snooze is a deliberate
	// recovery path.
	if upd.SnoozedUntil != nil {
		snoozedUntil, err := entity.ParseTime(*upd.SnoozedUntil)
		if err != nil {
			return nil, err
		}
		reminder.SnoozedUntil = &snoozedUntil
		reminder.DueAt = snoozedUntil
		reminder.Active = true
	} else if upd.ClearSnooze {
		reminder.SnoozedUntil = nil
	}

	if err := s.repo.Update(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}
	return reminder, nil
}

func (s *reminderService) DeleteReminder(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// FireDue processes one snapshot of the due set. Every reminder in the
// snapshot is deactivated whether or not its notification was delivered
// (at-most-once semantics), and a sink failure on one reminder never blocks
// its siblings.
func (s *reminderService) FireDue(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	due, err := s.repo.DueBefore(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to query due reminders: %w", err)
	}

	fired := 0
	for _, reminder := range due {
		if err := s.sink.Notify(ctx, reminder); err != nil {
			logrus.WithField("reminder_id", reminder.ID).Errorf("Failed to deliver notification: %v", err)
		}

		reminder.Active = false
		if err := s.repo.Update(ctx, reminder); err != nil {
			logrus.WithField("reminder_id", reminder.ID).Errorf("Failed to deactivate reminder: %v", err)
			continue
		}
		fired++
	}

	if fired > 0 {
		logrus.Infof("Fired %d due reminders", fired)
	}
	return fired, nil
}
