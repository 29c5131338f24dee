package database

import (
	"context"
	"sort"
	"sync"

	"github.com/mailmind/mailmind/internal/entity"
)

type memoryEmailRepository struct {
	mu    sync.RWMutex
	items map[string]*entity.Email
}

func NewMemoryEmailRepository() EmailRepository {
	return &memoryEmailRepository{
		items: make(map[string]*entity.Email),
	}
}

func (r *memoryEmailRepository) Save(_ context.Context, email *entity.Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *email
	r.items[email.ID] = &clone
	return nil
}

func (r *memoryEmailRepository) GetByID(_ context.Context, id string) (*entity.Email, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email, ok := r.items[id]
	if !ok {
		return nil, entity.ErrEmailNotFound
	}
	clone := *email
	return &clone, nil
}

func (r *memoryEmailRepository) List(_ context.Context) ([]*entity.Email, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emails := make([]*entity.Email, 0, len(r.items))
	for _, email := range r.items {
		clone := *email
		emails = append(emails, &clone)
	}

	// Newest first, the way a mailbox client lists them.
	sort.SliceStable(emails, func(i, j int) bool {
		return emails[i].ReceivedAt.After(emails[j].ReceivedAt)
	})
	return emails, nil
}

func (r *memoryEmailRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}
