package entity

import "time"

// Email is a message pulled from the mailbox provider. ID is the
// provider-assigned identifier and is stable across fetches; it is the
// sole deduplication signal.
type Email struct {
	ID          string    `json:"id"`
	Subject     string    `json:"subject"`
	Sender      string    `json:"sender"`
	SenderEmail string    `json:"sender_email"`
	Body        string    `json:"body,omitempty"`
	ReceivedAt  time.Time `json:"received_at"`
	Unread      bool      `json:"unread"`
}
