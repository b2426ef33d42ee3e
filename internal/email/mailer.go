// Package email sends the transactional emails of the service.
package email

import (
	"context"

	"go.uber.org/zap"

	"github.com/AlexZinkM/vendora/internal/logging"
)

// Message is one outgoing email.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the log instead of sending them. It is used
// when no Mailtrap token is configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	logging.Info("email not sent, no mail provider configured",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.Text),
	)
	return nil
}
