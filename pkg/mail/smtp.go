package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/pixelvide/mailjet-go/pkg/config"
)

// mailjetSMTPHost is Mailjet's authenticated SMTP relay.
const mailjetSMTPHost = "in-v3.mailjet.com"

// MailjetSMTPMailer implements Mailer by relaying through Mailjet's SMTP
// endpoint instead of the HTTP API, authenticated with the same API key
// pair. Reserved X-MJ-*/X-Mailjet-* headers are transmitted as plain message
// headers and interpreted by the relay. The relay does not report a message
// ID, so SendResult.MessageID is empty for this driver.
type MailjetSMTPMailer struct {
	cfg         config.MailConfig
	implicitTLS bool
}

// NewMailjetSMTPMailer creates a new MailjetSMTPMailer. With implicitTLS the
// connection uses TLS from the start on port 465; otherwise port 587 with
// STARTTLS.
func NewMailjetSMTPMailer(cfg config.MailConfig, implicitTLS bool) *MailjetSMTPMailer {
	return &MailjetSMTPMailer{cfg: cfg, implicitTLS: implicitTLS}
}

// Send sends the given message through the SMTP relay
func (m *MailjetSMTPMailer) Send(ctx context.Context, msg *Message, env *Envelope) (*SendResult, error) {
	if len(msg.Attachments) > 0 || len(msg.Inline) > 0 {
		return nil, &ValidationError{Reason: "the SMTP driver does not support attachments, use the API driver"}
	}

	sender := env.Sender
	if sender.Email == "" && m.cfg.FromAddress != "" {
		sender = Address{Email: m.cfg.FromAddress, Name: m.cfg.FromName}
	}
	if sender.Email == "" {
		return nil, &ValidationError{Reason: "a sender address is required"}
	}

	body, err := buildSMTPBody(msg, env, sender)
	if err != nil {
		return nil, fmt.Errorf("failed to build email body: %w", err)
	}

	recipients := make([]string, 0, len(env.Recipients))
	for _, rcpt := range env.Recipients {
		recipients = append(recipients, rcpt.Email)
	}

	host := m.host()
	addr := fmt.Sprintf("%s:%s", host, m.port())
	auth := smtp.PlainAuth("", m.cfg.MailjetAPIKey, m.cfg.MailjetSecretKey, host)

	if m.implicitTLS {
		err = m.sendWithImplicitTLS(addr, host, auth, sender.Email, recipients, []byte(body))
	} else {
		// smtp.SendMail upgrades to STARTTLS when the server offers it
		err = smtp.SendMail(addr, auth, sender.Email, recipients, []byte(body))
	}
	if err != nil {
		return nil, &TransportError{Message: fmt.Sprintf("Unable to send an email: %v.", err)}
	}

	return &SendResult{}, nil
}

func (m *MailjetSMTPMailer) sendWithImplicitTLS(addr, host string, auth smtp.Auth, from string, to []string, msg []byte) error {
	tlsConfig := &tls.Config{
		ServerName: host,
	}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return fmt.Errorf("failed to dial TLS: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() {
		_ = client.Quit()
	}()

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	if err = client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	for _, t := range to {
		if err = client.Rcpt(t); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", t, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	return nil
}

func (m *MailjetSMTPMailer) host() string {
	if m.cfg.MailjetHost != "" {
		return m.cfg.MailjetHost
	}
	return mailjetSMTPHost
}

func (m *MailjetSMTPMailer) port() string {
	if m.implicitTLS {
		return "465"
	}
	return "587"
}

// String describes the configured transport in DSN form, e.g.
// "mailjet+smtp://in-v3.mailjet.com".
func (m *MailjetSMTPMailer) String() string {
	scheme := "mailjet+smtp"
	if m.implicitTLS {
		scheme = "mailjet+smtps"
	}
	return fmt.Sprintf("%s://%s", scheme, m.host())
}

// buildSMTPBody renders the message as an RFC 5322 text suitable for the
// DATA phase. Only single-part bodies are supported; HTML wins when both
// parts are set.
func buildSMTPBody(msg *Message, env *Envelope, sender Address) (string, error) {
	var headers []string

	// Strip CR/LF from caller-supplied values to prevent header injection
	sanitize := func(s string) string {
		return strings.ReplaceAll(strings.ReplaceAll(s, "\r", ""), "\n", "")
	}

	to := make([]string, 0, len(env.Recipients))
	for _, rcpt := range env.Recipients {
		to = append(to, formatAddress(rcpt))
	}

	headers = append(headers, fmt.Sprintf("From: %s", sanitize(formatAddress(sender))))
	headers = append(headers, fmt.Sprintf("To: %s", sanitize(strings.Join(to, ", "))))
	if len(msg.ReplyTo) > 0 {
		replyTo := make([]string, 0, len(msg.ReplyTo))
		for _, addr := range msg.ReplyTo {
			replyTo = append(replyTo, formatAddress(addr))
		}
		headers = append(headers, fmt.Sprintf("Reply-To: %s", sanitize(strings.Join(replyTo, ", "))))
	}
	headers = append(headers, fmt.Sprintf("Subject: %s", sanitize(msg.Subject)))

	for _, h := range msg.Headers {
		headers = append(headers, fmt.Sprintf("%s: %s", sanitize(h.Name), sanitize(h.Value)))
	}

	contentType := "text/plain"
	body := msg.TextBody
	if msg.HTMLBody != "" {
		contentType = "text/html"
		body = msg.HTMLBody
	}
	headers = append(headers, fmt.Sprintf("Content-Type: %s; charset=UTF-8", contentType))

	return fmt.Sprintf("%s\r\n\r\n%s", strings.Join(headers, "\r\n"), body), nil
}
