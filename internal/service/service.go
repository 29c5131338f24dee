package service

import (
	"context"
	"time"

	"github.com/mailmind/mailmind/internal/entity"
)

type ReminderUseCase interface {
	CreateReminder(ctx context.Context, req *entity.ReminderRequest) (*entity.Reminder, error)
	GetReminder(ctx context.Context, id string) (*entity.Reminder, error)
	ListReminders(ctx context.Context, activeOnly bool, emailID string) ([]*entity.Reminder, error)
	UpdateReminder(ctx context.Context, id string, upd *entity.ReminderUpdate) (*entity.Reminder, error)
	DeleteReminder(ctx context.Context, id string) (bool, error)
	// FireDue notifies the sink about every reminder due at the time of the
	// call and deactivates each one. Returns the number fired.
	FireDue(ctx context.Context) (int, error)
}

type EmailUseCase interface {
	// SyncOnce pulls new mail once and returns the newly ingested count.
	SyncOnce(ctx context.Context, fetchLimit int) (int, error)
	GetEmail(ctx context.Context, id string) (*entity.Email, error)
	ListEmails(ctx context.Context) ([]*entity.Email, error)
}

type AssistantUseCase interface {
	Summarize(ctx context.Context, emailID string) (string, error)
	DraftReply(ctx context.Context, emailID, instructions string) (string, error)
}

type CalendarUseCase interface {
	// ListEvents returns events overlapping the [from, to) window, soonest
	// first.
	ListEvents(ctx context.Context, from, to time.Time) ([]*entity.CalendarEvent, error)
}
