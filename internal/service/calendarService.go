package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mailmind/mailmind/internal/calendar"
	"github.com/mailmind/mailmind/internal/entity"
)

type calendarService struct {
	source calendar.Source
}

func NewCalendarService(source calendar.Source) CalendarUseCase {
	return &calendarService{source: source}
}

func (s *calendarService) ListEvents(ctx context.Context, from, to time.Time) ([]*entity.CalendarEvent, error) {
	events, err := s.source.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar events: %w", err)
	}

	var matched []*entity.CalendarEvent
	for _, event := range events {
		if event.StartsAt.Before(to) && !event.EndsAt.Before(from) {
			matched = append(matched, event)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].StartsAt.Before(matched[j].StartsAt)
	})
	return matched, nil
}
