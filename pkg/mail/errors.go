package mail

// ValidationError reports a message that violates a provider constraint
// (for example more than one Reply-To address). It is raised before any
// network call is made and is never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// TransportError reports a delivery failure: the server was unreachable, the
// response could not be decoded, the API returned a structured error, or the
// status code indicated failure. Response carries the raw provider response
// for diagnostics; it is nil when the server could not be reached at all.
// Retry policy is the caller's responsibility.
type TransportError struct {
	Message  string
	Response *Response
}

func (e *TransportError) Error() string {
	return e.Message
}
