package entity

import (
	"time"
)

// Reminder is a user-created follow-up, optionally tied to an ingested email.
// Active=false is the terminal state: a reminder fires at most once unless it
// is explicitly re-activated through an update.
type Reminder struct {
	ID           string     `json:"id"`
	EmailID      string     `json:"email_id,omitempty"`
	DueAt        time.Time  `json:"due_at"`
	Message      string     `json:"message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	Active       bool       `json:"active"`
	SnoozedUntil *time.Time `json:"snoozed_until,omitempty"`
}

// EffectiveDueAt returns the instant the reminder actually becomes due:
// the snooze time when set, the original due time otherwise.
func (r *Reminder) EffectiveDueAt() time.Time {
	if r.SnoozedUntil != nil {
		return *r.SnoozedUntil
	}
	return r.DueAt
}

// IsDue reports whether the reminder is active and its effective due time
// has passed.
func (r *Reminder) IsDue(now time.Time) bool {
	return r.Active && !r.EffectiveDueAt().After(now)
}

// Clone returns a deep copy so callers never share pointers with the store.
func (r *Reminder) Clone() *Reminder {
	c := *r
	if r.SnoozedUntil != nil {
		t := *r.SnoozedUntil
		c.SnoozedUntil = &t
	}
	return &c
}

type ReminderRequest struct {
	DueAt   string `json:"due_at" binding:"required"`
	EmailID string `json:"email_id"`
	Message string `json:"message"`
}

// ReminderUpdate is a partial update. Nil fields are left untouched.
// Setting SnoozedUntil rewrites DueAt to the same instant and forces
// Active=true; ClearSnooze drops the snooze without touching DueAt.
type ReminderUpdate struct {
	DueAt        *string `json:"due_at"`
	Message      *string `json:"message"`
	Active       *bool   `json:"active"`
	SnoozedUntil *string `json:"snoozed_until"`
	ClearSnooze  bool    `json:"clear_snooze"`
}

// IsEmpty reports whether the update carries no changes at all.
func (u *ReminderUpdate) IsEmpty() bool {
	return u.DueAt == nil && u.Message == nil && u.Active == nil &&
		u.SnoozedUntil == nil && !u.ClearSnooze
}
