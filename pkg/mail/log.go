package mail

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pixelvide/mailjet-go/pkg/config"
	"github.com/rs/zerolog/log"
)

// LogMailer implements Mailer by logging messages instead of delivering
// them. It assigns a generated message ID so callers can exercise the full
// result path in development.
type LogMailer struct {
	cfg config.MailConfig
}

// NewLogMailer creates a new LogMailer
func NewLogMailer(cfg config.MailConfig) *LogMailer {
	return &LogMailer{cfg: cfg}
}

// Send logs the message details
func (m *LogMailer) Send(ctx context.Context, msg *Message, env *Envelope) (*SendResult, error) {
	sender := env.Sender
	if sender.Email == "" && m.cfg.FromAddress != "" {
		sender = Address{Email: m.cfg.FromAddress, Name: m.cfg.FromName}
	}

	to := make([]string, 0, len(env.Recipients))
	for _, rcpt := range env.Recipients {
		to = append(to, rcpt.Email)
	}

	logger := log.Ctx(ctx).With().
		Str("mailer", "log").
		Str("from", formatAddress(sender)).
		Strs("to", to).
		Str("subject", msg.Subject).
		Logger()

	if len(msg.ReplyTo) > 0 {
		replyTo := make([]string, 0, len(msg.ReplyTo))
		for _, addr := range msg.ReplyTo {
			replyTo = append(replyTo, addr.Email)
		}
		logger = logger.With().Strs("reply_to", replyTo).Logger()
	}
	if len(msg.Attachments) > 0 || len(msg.Inline) > 0 {
		logger = logger.With().
			Int("attachments", len(msg.Attachments)).
			Int("inline_attachments", len(msg.Inline)).
			Logger()
	}

	logger.Info().Msg("Sending email")

	// The purpose of the log mailer is to see the email, so the body is
	// logged as well.
	if msg.TextBody != "" {
		logger.Info().Msgf("Body:\n%s", msg.TextBody)
	}
	if msg.HTMLBody != "" {
		logger.Info().Msgf("HTML body:\n%s", msg.HTMLBody)
	}

	return &SendResult{MessageID: uuid.NewString()}, nil
}

// formatAddress renders an address as "Name <email>", or just the email
// when no display name is set.
func formatAddress(addr Address) string {
	if addr.Name == "" {
		return addr.Email
	}
	return fmt.Sprintf("%s <%s>", addr.Name, addr.Email)
}
