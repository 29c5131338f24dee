package service

import (
	"context"

	"github.com/mailmind/mailmind/internal/ai"
	"github.com/mailmind/mailmind/internal/database"
)

type assistantService struct {
	client *ai.Client
	emails database.EmailRepository
}

func NewAssistantService(client *ai.Client, emails database.EmailRepository) AssistantUseCase {
	return &assistantService{client: client, emails: emails}
}

func (s *assistantService) Summarize(ctx context.Context, emailID string) (string, error) {
	email, err := s.emails.GetByID(ctx, emailID)
	if err != nil {
		return "", err
	}
	return s.client.SummarizeEmail(ctx, email)
}

func (s *assistantService) DraftReply(ctx context.Context, emailID, instructions string) (string, error) {
	email, err := s.emails.GetByID(ctx, emailID)
	if err != nil {
		return "", err
	}
	return s.client.DraftReply(ctx, email, instructions)
}
