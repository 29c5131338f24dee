package database

import (
	"context"
	"time"

	"github.com/mailmind/mailmind/internal/entity"
)

// ReminderFilter narrows List results. Zero value means "everything".
type ReminderFilter struct {
	ActiveOnly bool
	EmailID    string
}

type ReminderRepository interface {
	Create(ctx context.Context, reminder *entity.Reminder) error
	GetByID(ctx context.Context, id string) (*entity.Reminder, error)
	List(ctx context.Context, filter ReminderFilter) ([]*entity.Reminder, error)
	Update(ctx context.Context, reminder *entity.Reminder) error
	Delete(ctx context.Context, id string) (bool, error)
	// DueBefore returns one consistent snapshot of the active reminders whose
	// effective due time is at or before t, ordered by due time ascending.
	DueBefore(ctx context.Context, t time.Time) ([]*entity.Reminder, error)
}

type EmailRepository interface {
	Save(ctx context.Context, email *entity.Email) error
	GetByID(ctx context.Context, id string) (*entity.Email, error)
	List(ctx context.Context) ([]*entity.Email, error)
	Count(ctx context.Context) (int, error)
}

// DedupCache records which provider message ids have already been ingested.
// Membership is the sole deduplication signal; there is no content hashing.
type DedupCache interface {
	Seen(ctx context.Context, id string) (bool, error)
	MarkSeen(ctx context.Context, id string) error
}
