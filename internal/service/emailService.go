package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mailmind/mailmind/internal/database"
	"github.com/mailmind/mailmind/internal/entity"
	"github.com/mailmind/mailmind/internal/mailer"
)

type emailService struct {
	fetcher      mailer.Fetcher
	emails       database.EmailRepository
	dedup        database.DedupCache
	fetchTimeout time.Duration
}

func NewEmailService(fetcher mailer.Fetcher, emails database.EmailRepository, dedup database.DedupCache, fetchTimeout time.Duration) EmailUseCase {
	if fetchTimeout <= 0 {
		fetchTimeout = 30 * time.Second
	}
	return &emailService{
		fetcher:      fetcher,
		emails:       emails,
		dedup:        dedup,
		fetchTimeout: fetchTimeout,
	}
}

// SyncOnce fetches up to fetchLimit newest messages and stores the ones not
// seen before. A fetch failure is reported through the returned error with a
// zero count; callers running inside a cycle log it and carry on.
//
// The fetch is bounded by fetchTimeout even when the fetcher ignores
// cancellation: a provider stuck mid-handshake must not wedge the cycle.
func (s *emailService) SyncOnce(ctx context.Context, fetchLimit int) (int, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	fetched, err := s.fetch(fetchCtx, fetchLimit)
	if err != nil {
		return 0, err
	}
	if len(fetched) == 0 {
		logrus.Debug("Mail sync: nothing fetched")
		return 0, nil
	}

	ingested := 0
	for _, email := range fetched {
		seen, err := s.dedup.Seen(ctx, email.ID)
		if err != nil {
			logrus.WithField("email_id", email.ID).Errorf("Dedup check failed: %v", err)
			continue
		}
		if seen {
			continue
		}

		if err := s.emails.Save(ctx, email); err != nil {
			logrus.WithField("email_id", email.ID).Errorf("Failed to store email: %v", err)
			continue
		}
		if err := s.dedup.MarkSeen(ctx, email.ID); err != nil {
			logrus.WithField("email_id", email.ID).Errorf("Failed to mark email as seen: %v", err)
		}
		ingested++
	}

	logrus.Infof("Mail sync: fetched %d, ingested %d new", len(fetched), ingested)
	return ingested, nil
}

func (s *emailService) fetch(ctx context.Context, fetchLimit int) ([]*entity.Email, error) {
	type result struct {
		emails []*entity.Email
		err    error
	}
	resCh := make(chan result, 1)

	go func() {
		emails, err := s.fetcher.Fetch(ctx, fetchLimit)
		resCh <- result{emails: emails, err: err}
	}()

	select {
	case res := <-resCh:
		return res.emails, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("mail fetch did not finish within %s: %w", s.fetchTimeout, ctx.Err())
	}
}

func (s *emailService) GetEmail(ctx context.Context, id string) (*entity.Email, error) {
	return s.emails.GetByID(ctx, id)
}

func (s *emailService) ListEmails(ctx context.Context) ([]*entity.Email, error) {
	return s.emails.List(ctx)
}
