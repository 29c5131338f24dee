package mailer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-message/mail"

	"github.com/mailmind/mailmind/config"
	"github.com/mailmind/mailmind/internal/entity"
)

// IMAPFetcher pulls recent messages over IMAP. A fresh connection is opened
// per fetch; the sync cadence is minutes, so connection reuse buys nothing.
type IMAPFetcher struct {
	cfg config.MailConfig
}

func NewIMAPFetcher(cfg config.MailConfig) *IMAPFetcher {
	return &IMAPFetcher{cfg: cfg}
}

func (f *IMAPFetcher) connect() (*imapclient.Client, error) {
	addr := f.cfg.Host + ":" + f.cfg.Port

	var client *imapclient.Client
	var err error
	if f.cfg.TLS {
		client, err = imapclient.DialTLS(addr, nil)
	} else {
		client, err = imapclient.DialStartTLS(addr, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to IMAP %s: %w", addr, err)
	}

	if err := client.Login(f.cfg.Username, f.cfg.Password).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, fmt.Errorf("IMAP login failed for %s: %w", f.cfg.Username, err)
	}
	return client, nil
}

// Fetch returns up to limit of the newest messages in the configured mailbox,
// with envelope data and a plain-text body when one is present.
//
// The IMAP protocol calls have no per-call deadline, so the whole session
// runs in its own goroutine and is abandoned once ctx expires. An abandoned
// session finishes (or fails) on its own when the network call returns.
func (f *IMAPFetcher) Fetch(ctx context.Context, limit int) ([]*entity.Email, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		emails []*entity.Email
		err    error
	}
	resCh := make(chan result, 1)

	go func() {
		emails, err := f.fetchSession(limit)
		resCh <- result{emails: emails, err: err}
	}()

	select {
	case res := <-resCh:
		return res.emails, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *IMAPFetcher) fetchSession(limit int) ([]*entity.Email, error) {
	client, err := f.connect()
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Logout().Wait() }()

	mailbox := f.cfg.Mailbox
	if mailbox == "" {
		mailbox = "INBOX"
	}
	if _, err := client.Select(mailbox, nil).Wait(); err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", mailbox, err)
	}

	sinceDays := f.cfg.SinceDays
	if sinceDays <= 0 {
		sinceDays = 7
	}
	criteria := &imap.SearchCriteria{
		Since: time.Now().AddDate(0, 0, -sinceDays),
	}

	searchData, err := client.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("failed to search mailbox: %w", err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}
	// Newest messages have the highest UIDs.
	if limit > 0 && len(uids) > limit {
		uids = uids[len(uids)-limit:]
	}

	uidSet := imap.UIDSetNum(uids...)
	bodySection := &imap.FetchItemBodySection{Peek: true}
	fetchOpts := &imap.FetchOptions{
		Envelope:    true,
		Flags:       true,
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	}

	fetchCmd := client.Fetch(uidSet, fetchOpts)

	var emails []*entity.Email
	for {
		msg := fetchCmd.Next()
		if msg == nil {
			break
		}
		buf, err := msg.Collect()
		if err != nil {
			continue
		}
		email := emailFromBuffer(buf)
		if rawBody := buf.FindBodySection(bodySection); rawBody != nil {
			email.Body = plainTextBody(rawBody)
		}
		emails = append(emails, email)
	}

	if err := fetchCmd.Close(); err != nil {
		return emails, fmt.Errorf("failed to fetch messages: %w", err)
	}
	return emails, nil
}

func emailFromBuffer(buf *imapclient.FetchMessageBuffer) *entity.Email {
	email := &entity.Email{
		ID:     strconv.FormatUint(uint64(buf.UID), 10),
		Unread: true,
	}

	for _, flag := range buf.Flags {
		if flag == imap.FlagSeen {
			email.Unread = false
		}
	}

	env := buf.Envelope
	if env == nil {
		return email
	}
	email.Subject = env.Subject
	email.ReceivedAt = env.Date
	if len(env.From) > 0 {
		email.Sender = env.From[0].Name
		email.SenderEmail = env.From[0].Addr()
		if email.Sender == "" {
			email.Sender = email.SenderEmail
		}
	}
	return email
}

// plainTextBody extracts the first text/plain part from a raw MIME message.
func plainTextBody(raw []byte) string {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return ""
	}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := header.ContentType()
		if contentType == "text/plain" || contentType == "" {
			body, _ := io.ReadAll(part.Body)
			return strings.TrimSpace(string(body))
		}
	}
	return ""
}
