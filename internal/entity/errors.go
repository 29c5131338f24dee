package entity

import "errors"

var (
	// Reminder errors
	ErrReminderNotFound = errors.New("reminder not found")
	ErrInvalidDueAt     = errors.New("due_at is not a valid timestamp")

	// Email errors
	ErrEmailNotFound = errors.New("email not found")

	// Scheduler errors
	ErrCycleInProgress = errors.New("a sync cycle is already running")
)
