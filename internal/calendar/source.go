// Package calendar reads the user's calendar feed so upcoming events can be
// listed alongside emails and reminders.
package calendar

import (
	"context"
	"fmt"

	"github.com/mailmind/mailmind/config"
	"github.com/mailmind/mailmind/internal/entity"
)

// Source yields the events currently published by a calendar provider.
type Source interface {
	Events(ctx context.Context) ([]*entity.CalendarEvent, error)
}

// NewSource selects the provider implementation once, at construction time.
func NewSource(cfg config.CalendarConfig) (Source, error) {
	switch cfg.Provider {
	case "ics", "":
		return NewICSSource(cfg), nil
	default:
		return nil, fmt.Errorf("unknown calendar provider %q", cfg.Provider)
	}
}
