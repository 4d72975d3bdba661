package mail

// Address is an email address with an optional display name.
type Address struct {
	Email string
	Name  string
}

// Header is a single custom message header. Names are matched
// case-insensitively; values are passed through verbatim.
type Header struct {
	Name  string
	Value string
}

// Attachment is a file attached to a message. ContentID is only meaningful
// for inline attachments; when empty, the filename is used as the reference.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
	ContentID   string
}

// Message represents an email message to be delivered.
type Message struct {
	Subject  string
	TextBody string
	HTMLBody string

	// Headers holds custom headers in insertion order.
	Headers []Header

	// ReplyTo holds the reply-to addresses. Note that Mailjet accepts at
	// most one.
	ReplyTo []Address

	Attachments []Attachment

	// Inline holds attachments referenced from the HTML body by content-id.
	Inline []Attachment
}

// AddHeader appends a custom header to the message.
func (m *Message) AddHeader(name, value string) {
	m.Headers = append(m.Headers, Header{Name: name, Value: value})
}

// Envelope is the actual sender and recipient set used for delivery, which
// may differ from the human-visible From/To headers of the message.
type Envelope struct {
	Sender     Address
	Recipients []Address
}
