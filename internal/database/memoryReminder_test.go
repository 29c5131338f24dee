package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailmind/mailmind/internal/entity"
)

func newTestReminder(dueAt time.Time) *entity.Reminder {
	return &entity.Reminder{
		ID:        uuid.New().String(),
		DueAt:     dueAt,
		Message:   "test reminder",
		CreatedAt: time.Now().UTC(),
		Active:    true,
	}
}

func TestMemoryReminderCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReminderRepository()

	reminder := newTestReminder(time.Now().UTC().Add(time.Hour))
	require.NoError(t, repo.Create(ctx, reminder))

	got, err := repo.GetByID(ctx, reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, reminder.ID, got.ID)
	assert.Equal(t, "test reminder", got.Message)
	assert.True(t, got.Active)

	got.Message = "edited"
	got.Active = false
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.GetByID(ctx, reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Message)
	assert.False(t, updated.Active)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrReminderNotFound)

	err = repo.Update(ctx, newTestReminder(time.Now()))
	assert.ErrorIs(t, err, entity.ErrReminderNotFound)
}

func TestMemoryReminderDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReminderRepository()

	reminder := newTestReminder(time.Now().UTC())
	require.NoError(t, repo.Create(ctx, reminder))

	deleted, err := repo.Delete(ctx, reminder.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Second delete reports nothing removed, but is not an error.
	deleted, err = repo.Delete(ctx, reminder.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemoryReminderListOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReminderRepository()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	later := newTestReminder(base.Add(2 * time.Hour))
	earlier := newTestReminder(base)
	middle := newTestReminder(base.Add(time.Hour))
	middle.Active = false

	for _, r := range []*entity.Reminder{later, earlier, middle} {
		require.NoError(t, repo.Create(ctx, r))
	}

	all, err := repo.List(ctx, ReminderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, earlier.ID, all[0].ID)
	assert.Equal(t, middle.ID, all[1].ID)
	assert.Equal(t, later.ID, all[2].ID)

	active, err := repo.List(ctx, ReminderFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestMemoryReminderListByEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReminderRepository()

	linked := newTestReminder(time.Now().UTC())
	linked.EmailID = "msg-42"
	other := newTestReminder(time.Now().UTC())

	require.NoError(t, repo.Create(ctx, linked))
	require.NoError(t, repo.Create(ctx, other))

	got, err := repo.List(ctx, ReminderFilter{EmailID: "msg-42"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, linked.ID, got[0].ID)
}

func TestMemoryReminderDueBefore(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReminderRepository()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	past := newTestReminder(now.Add(-time.Minute))
	future := newTestReminder(now.Add(time.Hour))
	inactive := newTestReminder(now.Add(-time.Hour))
	inactive.Active = false

	// Snoozed into the past: the snooze time decides, not the original due.
	snoozedDue := newTestReminder(now.Add(time.Hour))
	snooze := now.Add(-time.Second)
	snoozedDue.SnoozedUntil = &snooze

	for _, r := range []*entity.Reminder{past, future, inactive, snoozedDue} {
		require.NoError(t, repo.Create(ctx, r))
	}

	due, err := repo.DueBefore(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 2)

	ids := []string{due[0].ID, due[1].ID}
	assert.Contains(t, ids, past.ID)
	assert.Contains(t, ids, snoozedDue.ID)
}

func TestMemoryReminderSnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReminderRepository()

	reminder := newTestReminder(time.Now().UTC().Add(-time.Minute))
	require.NoError(t, repo.Create(ctx, reminder))

	due, err := repo.DueBefore(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, due, 1)

	// Mutating the snapshot must not reach the store.
	due[0].Message = "mutated"
	stored, err := repo.GetByID(ctx, reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, "test reminder", stored.Message)
}
