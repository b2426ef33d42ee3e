package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"
)

const (
	mailtrapSendURL = "https://send.api.mailtrap.io/api/send"
	mailCategory    = "Vendora"
)

// Sender is the From address of every message.
type Sender struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type recipient struct {
	Email string `json:"email"`
}

type sendRequest struct {
	From     Sender      `json:"from"`
	To       []recipient `json:"to"`
	Subject  string      `json:"subject"`
	Text     string      `json:"text"`
	HTML     string      `json:"html,omitempty"`
	Category string      `json:"category"`
}

// MailtrapClient sends through the Mailtrap sending API.
type MailtrapClient struct {
	url     string
	token   string
	sender  Sender
	client  *http.Client
	cb      *gobreaker.CircuitBreaker
	limiter ratelimit.Limiter
}

// NewMailtrapClient returns a client authenticated with token. An empty url
// uses the public sending endpoint.
func NewMailtrapClient(url, token string, sender Sender) *MailtrapClient {
	if url == "" {
		url = mailtrapSendURL
	}
	return &MailtrapClient{
		url:    url,
		token:  token,
		sender: sender,
		client: &http.Client{Timeout: 15 * time.Second},
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "mailtrap",
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 3
			},
		}),
		limiter: ratelimit.New(10),
	}
}

func (c *MailtrapClient) Send(ctx context.Context, msg Message) error {
	html := msg.HTML
	if html == "" {
		html = msg.Text
	}
	body, err := json.Marshal(sendRequest{
		From:     c.sender,
		To:       []recipient{{Email: msg.To}},
		Subject:  msg.Subject,
		Text:     msg.Text,
		HTML:     html,
		Category: mailCategory,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email: %w", err)
	}

	_, err = c.cb.Execute(func() (interface{}, error) {
		c.limiter.Take()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusMultipleChoices {
			detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
