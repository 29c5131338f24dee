package calendar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/mailmind/mailmind/config"
	"github.com/mailmind/mailmind/internal/entity"
)

// ICSSource downloads a published iCalendar feed over HTTP. The feed URL is
// a capability secret (e.g. an Outlook "publish calendar" link), so no OAuth
// flow is involved.
type ICSSource struct {
	url    string
	client *http.Client
}

func NewICSSource(cfg config.CalendarConfig) *ICSSource {
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ICSSource{
		url:    cfg.ICSURL,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *ICSSource) Events(ctx context.Context) ([]*entity.CalendarEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download calendar feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar feed returned status %d", resp.StatusCode)
	}
	return decodeEvents(resp.Body)
}

// decodeEvents parses an ICS payload. Events without a parseable start time
// are skipped; a feed-level parse failure is an error.
func decodeEvents(r io.Reader) ([]*entity.CalendarEvent, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar feed: %w", err)
	}

	var events []*entity.CalendarEvent
	for _, v := range cal.Events() {
		startsAt, err := v.GetStartAt()
		if err != nil {
			if startsAt, err = v.GetAllDayStartAt(); err != nil {
				continue
			}
		}

		event := &entity.CalendarEvent{
			ID:          v.Id(),
			Title:       propValue(v, ics.ComponentPropertySummary),
			Description: propValue(v, ics.ComponentPropertyDescription),
			Location:    propValue(v, ics.ComponentPropertyLocation),
			StartsAt:    startsAt.UTC(),
			AllDay:      isAllDay(v),
		}

		endsAt, err := v.GetEndAt()
		if err != nil {
			if endsAt, err = v.GetAllDayEndAt(); err != nil {
				endsAt = event.StartsAt
			}
		}
		event.EndsAt = endsAt.UTC()

		events = append(events, event)
	}
	return events, nil
}

func propValue(v *ics.VEvent, name ics.ComponentProperty) string {
	if p := v.GetProperty(name); p != nil {
		return p.Value
	}
	return ""
}

func isAllDay(v *ics.VEvent) bool {
	p := v.GetProperty(ics.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	for _, value := range p.ICalParameters["VALUE"] {
		if value == "DATE" {
			return true
		}
	}
	return false
}
