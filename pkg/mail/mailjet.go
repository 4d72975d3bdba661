package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pixelvide/mailjet-go/pkg/config"
)

// mailjetDefaultHost is the Send API host used when no override is
// configured.
const mailjetDefaultHost = "api.mailjet.com"

// HTTPClient abstracts HTTP request execution for testing and custom
// transports. The standard *http.Client satisfies this interface.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// MailjetMailer implements Mailer using the Mailjet v3.1 Send API.
// It is stateless; concurrent Send calls are independent.
type MailjetMailer struct {
	apiKey    string
	secretKey string
	host      string
	sandbox   bool
	client    HTTPClient
}

// NewMailjetMailer creates a new MailjetMailer with a default HTTP client.
func NewMailjetMailer(cfg config.MailConfig) *MailjetMailer {
	return NewMailjetMailerWithClient(cfg, nil)
}

// NewMailjetMailerWithClient creates a MailjetMailer with an injected HTTP
// client. Passing nil falls back to a default client with a 30 second
// timeout. Timeout, connection pooling and cancellation are the client's
// responsibility.
func NewMailjetMailerWithClient(cfg config.MailConfig, client HTTPClient) *MailjetMailer {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	host := cfg.MailjetHost
	if host == "" {
		host = mailjetDefaultHost
	}
	return &MailjetMailer{
		apiKey:    cfg.MailjetAPIKey,
		secretKey: cfg.MailjetSecretKey,
		host:      host,
		sandbox:   cfg.MailjetSandbox,
		client:    client,
	}
}

// Send builds the Send API payload for msg, posts it, and interprets the
// response. Exactly one request is issued per call; nothing is retried,
// cached or queued.
func (m *MailjetMailer) Send(ctx context.Context, msg *Message, env *Envelope) (*SendResult, error) {
	payload, err := buildMailjetPayload(msg, env, m.sandbox)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(m.apiKey, m.secretKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, &TransportError{Message: "Could not reach the remote server."}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Message: "Could not reach the remote server."}
	}

	return interpretMailjetResponse(&Response{StatusCode: resp.StatusCode, Body: raw})
}

func (m *MailjetMailer) endpoint() string {
	return fmt.Sprintf("https://%s/v3.1/send", m.host)
}

// String describes the configured transport in DSN form, e.g.
// "mailjet+api://api.mailjet.com?sandbox=true".
func (m *MailjetMailer) String() string {
	if m.sandbox {
		return fmt.Sprintf("mailjet+api://%s?sandbox=true", m.host)
	}
	return fmt.Sprintf("mailjet+api://%s", m.host)
}
