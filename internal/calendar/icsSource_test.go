package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailmind/mailmind/config"
)

var sampleFeed = strings.Join([]string{
	"BEGIN:VCALENDAR",
	"VERSION:2.0",
	"PRODID:-//mailmind//test//EN",
	"BEGIN:VEVENT",
	"UID:evt-1",
	"DTSTART:20250601T090000Z",
	"DTEND:20250601T100000Z",
	"SUMMARY:Standup",
	"LOCATION:Room 1",
	"DESCRIPTION:Daily sync",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:evt-2",
	"DTSTART;VALUE=DATE:20250602",
	"DTEND;VALUE=DATE:20250603",
	"SUMMARY:Offsite",
	"END:VEVENT",
	"END:VCALENDAR",
	"",
}, "\r\n")

func TestDecodeEvents(t *testing.T) {
	events, err := decodeEvents(strings.NewReader(sampleFeed))
	require.NoError(t, err)
	require.Len(t, events, 2)

	standup := events[0]
	assert.Equal(t, "evt-1", standup.ID)
	assert.Equal(t, "Standup", standup.Title)
	assert.Equal(t, "Room 1", standup.Location)
	assert.Equal(t, "Daily sync", standup.Description)
	assert.True(t, standup.StartsAt.Equal(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)))
	assert.True(t, standup.EndsAt.Equal(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)))
	assert.False(t, standup.AllDay)

	offsite := events[1]
	assert.Equal(t, "evt-2", offsite.ID)
	assert.Equal(t, "Offsite", offsite.Title)
	assert.True(t, offsite.AllDay)
	assert.True(t, offsite.StartsAt.Equal(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)))
}

func TestDecodeEventsRejectsGarbage(t *testing.T) {
	_, err := decodeEvents(strings.NewReader("this is not a calendar"))
	assert.Error(t, err)
}

func TestICSSourceFetchesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/calendar")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	source := NewICSSource(config.CalendarConfig{ICSURL: srv.URL})
	events, err := source.Events(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestICSSourceFeedUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	source := NewICSSource(config.CalendarConfig{ICSURL: srv.URL})
	_, err := source.Events(context.Background())
	assert.ErrorContains(t, err, "status 403")
}
