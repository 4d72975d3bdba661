package mail

import (
	"fmt"

	"github.com/pixelvide/mailjet-go/pkg/config"
)

// NewMailer creates a new Mailer based on the configuration
func NewMailer(cfg config.MailConfig) (Mailer, error) {
	switch cfg.Mailer {
	case "mailjet", "mailjet+api":
		return NewMailjetMailer(cfg), nil
	case "mailjet+smtp":
		return NewMailjetSMTPMailer(cfg, false), nil
	case "mailjet+smtps":
		return NewMailjetSMTPMailer(cfg, true), nil
	case "log":
		return NewLogMailer(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported mailer: %s", cfg.Mailer)
	}
}
