package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mailmind/mailmind/internal/entity"
)

// memoryReminderRepository keeps reminders in a mutex-guarded map. It is the
// default store; the postgres variant is selected through configuration.
type memoryReminderRepository struct {
	mu    sync.RWMutex
	items map[string]*entity.Reminder
}

func NewMemoryReminderRepository() ReminderRepository {
	return &memoryReminderRepository{
		items: make(map[string]*entity.Reminder),
	}
}

func (r *memoryReminderRepository) Create(_ context.Context, reminder *entity.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[reminder.ID] = reminder.Clone()
	return nil
}

func (r *memoryReminderRepository) GetByID(_ context.Context, id string) (*entity.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reminder, ok := r.items[id]
	if !ok {
		return nil, entity.ErrReminderNotFound
	}
	return reminder.Clone(), nil
}

func (r *memoryReminderRepository) List(_ context.Context, filter ReminderFilter) ([]*entity.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reminders := make([]*entity.Reminder, 0, len(r.items))
	for _, reminder := range r.items {
		if filter.ActiveOnly && !reminder.Active {
			continue
		}
		if filter.EmailID != "" && reminder.EmailID != filter.EmailID {
			continue
		}
		reminders = append(reminders, reminder.Clone())
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].DueAt.Before(reminders[j].DueAt)
	})
	return reminders, nil
}

func (r *memoryReminderRepository) Update(_ context.Context, reminder *entity.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[reminder.ID]; !ok {
		return entity.ErrReminderNotFound
	}
	// Whole-record replacement under the lock: an update is either fully
	// visible to a concurrent due query or not at all.
	r.items[reminder.ID] = reminder.Clone()
	return nil
}

func (r *memoryReminderRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *memoryReminderRepository) DueBefore(_ context.Context, t time.Time) ([]*entity.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var due []*entity.Reminder
	for _, reminder := range r.items {
		if reminder.IsDue(t) {
			due = append(due, reminder.Clone())
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].EffectiveDueAt().Before(due[j].EffectiveDueAt())
	})
	return due, nil
}
