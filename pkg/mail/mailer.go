package mail

import "context"

// Response is a raw provider response retained for diagnostics.
type Response struct {
	StatusCode int
	Body       []byte
}

// SendResult reports a successful delivery.
type SendResult struct {
	// MessageID is the provider-assigned identifier of the sent message.
	MessageID string

	// Response is the raw provider response, nil for drivers that do not
	// talk to a remote API.
	Response *Response
}

// Mailer is the interface for sending emails
type Mailer interface {
	// Send delivers the given message to the envelope's recipients.
	Send(ctx context.Context, msg *Message, env *Envelope) (*SendResult, error)
}
