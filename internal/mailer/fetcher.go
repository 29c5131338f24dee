package mailer

import (
	"context"
	"fmt"

	"github.com/mailmind/mailmind/config"
	"github.com/mailmind/mailmind/internal/entity"
)

// Fetcher pulls the newest messages from a mailbox provider. Implementations
// must return stable, provider-assigned message ids so deduplication works
// across fetches.
type Fetcher interface {
	Fetch(ctx context.Context, limit int) ([]*entity.Email, error)
}

// NewFetcher selects the provider implementation once, at construction time.
func NewFetcher(cfg config.MailConfig) (Fetcher, error) {
	switch cfg.Provider {
	case "imap", "":
		return NewIMAPFetcher(cfg), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}
