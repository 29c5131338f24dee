package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailmind/mailmind/internal/database"
	"github.com/mailmind/mailmind/internal/entity"
	"github.com/mailmind/mailmind/internal/notifier"
	"github.com/mailmind/mailmind/internal/scheduler"
	"github.com/mailmind/mailmind/internal/service"
)

type stubFetcher struct {
	emails []*entity.Email
}

func (f *stubFetcher) Fetch(context.Context, int) ([]*entity.Email, error) {
	return f.emails, nil
}

func newTestRouter(t *testing.T, fetched []*entity.Email) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	emailRepo := database.NewMemoryEmailRepository()
	emailService := service.NewEmailService(&stubFetcher{emails: fetched}, emailRepo, database.NewMemoryDedupCache(), 0)
	reminderService := service.NewReminderService(database.NewMemoryReminderRepository(), notifier.NewLogSink())
	sched := scheduler.New(emailService, reminderService, nil)
	t.Cleanup(sched.Stop)

	return InitRoutes(reminderService, emailService, nil, nil, sched, notifier.NewHub(), 5*time.Second)
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestReminderLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/reminders", gin.H{
		"due_at":  "2030-01-01T10:00:00",
		"message": "reply to Alice",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created entity.Reminder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Active)
	assert.True(t, created.DueAt.Equal(time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)))

	w = doJSON(router, http.MethodGet, "/api/v1/reminders/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPatch, "/api/v1/reminders/"+created.ID, gin.H{
		"message": "reply to Alice today",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated entity.Reminder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "reply to Alice today", updated.Message)

	w = doJSON(router, http.MethodDelete, "/api/v1/reminders/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted": true}`, w.Body.String())

	// Deleting again succeeds but reports nothing removed.
	w = doJSON(router, http.MethodDelete, "/api/v1/reminders/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted": false}`, w.Body.String())
}

func TestReminderValidationErrors(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name     string
		method   string
		path     string
		body     any
		wantCode int
	}{
		{
			name:     "missing due_at",
			method:   http.MethodPost,
			path:     "/api/v1/reminders",
			body:     gin.H{"message": "no due time"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unparseable due_at",
			method:   http.MethodPost,
			path:     "/api/v1/reminders",
			body:     gin.H{"due_at": "next tuesday"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "get unknown reminder",
			method:   http.MethodGet,
			path:     "/api/v1/reminders/nope",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "patch unknown reminder",
			method:   http.MethodPatch,
			path:     "/api/v1/reminders/nope",
			body:     gin.H{"message": "x"},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestListRemindersFiltering(t *testing.T) {
	router := newTestRouter(t, nil)

	for i, body := range []gin.H{
		{"due_at": "2030-01-01T00:00:00Z", "email_id": "msg-1"},
		{"due_at": "2030-01-02T00:00:00Z"},
	} {
		w := doJSON(router, http.MethodPost, "/api/v1/reminders", body)
		require.Equal(t, http.StatusCreated, w.Code, "reminder %d", i)
	}

	w := doJSON(router, http.MethodGet, "/api/v1/reminders", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Reminders []*entity.Reminder `json:"reminders"`
		Count     int                `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Equal(t, 2, listed.Count)

	w = doJSON(router, http.MethodGet, "/api/v1/reminders?email_id=msg-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Equal(t, 1, listed.Count)
}

func TestSchedulerEndpoints(t *testing.T) {
	router := newTestRouter(t, []*entity.Email{
		{ID: "m-1", Subject: "hello", ReceivedAt: time.Now().UTC()},
	})

	w := doJSON(router, http.MethodGet, "/api/v1/scheduler/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"running":false`)

	w = doJSON(router, http.MethodPost, "/api/v1/scheduler/run", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var run struct {
		Ingested int `json:"ingested"`
		Fired    int `json:"fired"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	assert.Equal(t, 1, run.Ingested)
	assert.Equal(t, 0, run.Fired)

	w = doJSON(router, http.MethodPost, "/api/v1/scheduler/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(router, http.MethodGet, "/api/v1/scheduler/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"running":true`)
	assert.Contains(t, w.Body.String(), `"last_cycle"`)

	w = doJSON(router, http.MethodPost, "/api/v1/scheduler/stop", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(router, http.MethodGet, "/api/v1/scheduler/status", nil)
	assert.Contains(t, w.Body.String(), `"running":false`)
}

func TestEmailEndpoints(t *testing.T) {
	router := newTestRouter(t, []*entity.Email{
		{ID: "m-1", Subject: "quarterly report", Sender: "Bob", ReceivedAt: time.Now().UTC()},
	})

	// Populate the store through a manual cycle.
	w := doJSON(router, http.MethodPost, "/api/v1/scheduler/run", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/emails", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "quarterly report")

	w = doJSON(router, http.MethodGet, "/api/v1/emails/m-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/emails/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The assistant is disabled in this fixture.
	w = doJSON(router, http.MethodPost, "/api/v1/emails/m-1/summary", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCalendarEndpointDisabled(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodGet, "/api/v1/calendar/events", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCalendarEndpointWindowValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	events := []*entity.CalendarEvent{
		{
			ID:       "evt-1",
			Title:    "Standup",
			StartsAt: time.Now().UTC().Add(time.Hour),
			EndsAt:   time.Now().UTC().Add(2 * time.Hour),
		},
	}
	router := gin.New()
	handler := NewCalendarHandler(service.NewCalendarService(&stubCalendarSource{events: events}))
	router.GET("/calendar/events", handler.ListEvents)

	w := doJSON(router, http.MethodGet, "/calendar/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Standup")

	w = doJSON(router, http.MethodGet, "/calendar/events?from=whenever", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type stubCalendarSource struct {
	events []*entity.CalendarEvent
}

func (s *stubCalendarSource) Events(context.Context) ([]*entity.CalendarEvent, error) {
	return s.events, nil
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
