package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/mailmind/mailmind/internal/entity"
)

// Client talks to an OpenAI-compatible chat-completion endpoint.
type Client struct {
	client *openai.Client
	model  string
}

func New(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

const summarySystemPrompt = "You are an email assistant. Summarize the email in at most three sentences, keeping names, dates and requested actions."

const draftSystemPrompt = "You are an email assistant. Write a polite, concise reply to the email. Return only the reply body, no subject line."

// SummarizeEmail returns a short summary of the given email.
func (c *Client) SummarizeEmail(ctx context.Context, email *entity.Email) (string, error) {
	return c.complete(ctx, summarySystemPrompt, emailPrompt(email, ""))
}

// DraftReply produces a reply draft. Instructions, when non-empty, steer the
// tone and content of the draft.
func (c *Client) DraftReply(ctx context.Context, email *entity.Email, instructions string) (string, error) {
	return c.complete(ctx, draftSystemPrompt, emailPrompt(email, instructions))
}

func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func emailPrompt(email *entity.Email, instructions string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\n", email.Sender, email.SenderEmail)
	fmt.Fprintf(&b, "Subject: %s\n", email.Subject)
	fmt.Fprintf(&b, "Received: %s\n\n", email.ReceivedAt.Format("2006-01-02 15:04"))
	b.WriteString(email.Body)
	if instructions != "" {
		fmt.Fprintf(&b, "\n\nInstructions: %s", instructions)
	}
	return b.String()
}
