package mail

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// mailjetAddress is the {Email, Name} pair used throughout the Send API
// payload.
type mailjetAddress struct {
	Email string `json:"Email"`
	Name  string `json:"Name"`
}

// mailjetAttachment is a regular or inlined attachment in the Send API
// payload. ContentID is only set for inlined attachments.
type mailjetAttachment struct {
	ContentType   string `json:"ContentType"`
	Filename      string `json:"Filename"`
	Base64Content string `json:"Base64Content"`
	ContentID     string `json:"ContentID,omitempty"`
}

// mailjetPayload is the top-level Send API request body.
type mailjetPayload struct {
	Messages    []map[string]any `json:"Messages"`
	SandBoxMode bool             `json:"SandBoxMode"`
}

// reservedHeader routes a provider-reserved header to a dedicated payload
// field instead of the generic Headers map.
type reservedHeader struct {
	field   string
	convert func(value string) (any, error)
}

// reservedHeaders maps lower-cased reserved header names to their dedicated
// payload fields. Any header not listed here is copied verbatim into the
// Headers map.
var reservedHeaders = map[string]reservedHeader{
	"x-mj-templatelanguage":         {"TemplateLanguage", convertBool},
	"x-mj-templateid":               {"TemplateID", convertInt},
	"x-mj-templateerrorreporting":   {"TemplateErrorReporting", convertAddress},
	"x-mj-templateerrordeliver":     {"TemplateErrorDeliver", convertBool},
	"x-mj-vars":                     {"Variables", convertVariables},
	"x-mj-customid":                 {"CustomID", convertString},
	"x-mj-eventpayload":             {"EventPayload", convertString},
	"x-mailjet-campaign":            {"CustomCampaign", convertString},
	"x-mailjet-deduplicatecampaign": {"DeduplicateCampaign", convertBool},
	"x-mailjet-prio":                {"Priority", convertInt},
	"x-mailjet-trackclick":          {"TrackClick", convertString},
	"x-mailjet-trackopen":           {"TrackOpen", convertString},
}

func convertString(value string) (any, error) {
	return value, nil
}

func convertBool(value string) (any, error) {
	b, err := strconv.ParseBool(strings.ToLower(value))
	if err != nil {
		return nil, fmt.Errorf("%q is not a boolean", value)
	}
	return b, nil
}

func convertInt(value string) (any, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not an integer", value)
	}
	return n, nil
}

func convertAddress(value string) (any, error) {
	var addr mailjetAddress
	if err := json.Unmarshal([]byte(value), &addr); err != nil {
		return nil, fmt.Errorf("%q is not an {Email, Name} object", value)
	}
	return addr, nil
}

func convertVariables(value string) (any, error) {
	var vars map[string]string
	if err := json.Unmarshal([]byte(value), &vars); err != nil {
		return nil, fmt.Errorf("%q is not a JSON object of strings", value)
	}
	return vars, nil
}

// buildMailjetPayload converts a message and its delivery envelope into a
// Send API request body. It never mutates its inputs.
func buildMailjetPayload(msg *Message, env *Envelope, sandbox bool) (*mailjetPayload, error) {
	// The Send API addresses recipients by email only; display names are
	// intentionally blanked.
	to := make([]mailjetAddress, 0, len(env.Recipients))
	for _, rcpt := range env.Recipients {
		to = append(to, mailjetAddress{Email: rcpt.Email, Name: ""})
	}

	m := map[string]any{
		"From":               mailjetAddress{Email: env.Sender.Email, Name: env.Sender.Name},
		"To":                 to,
		"Attachments":        encodeMailjetAttachments(msg.Attachments, false),
		"InlinedAttachments": encodeMailjetAttachments(msg.Inline, true),
	}

	if msg.Subject != "" {
		m["Subject"] = msg.Subject
	}
	if msg.TextBody != "" {
		m["TextPart"] = msg.TextBody
	}
	if msg.HTMLBody != "" {
		m["HTMLPart"] = msg.HTMLBody
	}

	switch len(msg.ReplyTo) {
	case 0:
	case 1:
		m["ReplyTo"] = mailjetAddress{Email: msg.ReplyTo[0].Email, Name: msg.ReplyTo[0].Name}
	default:
		return nil, &ValidationError{
			Reason: fmt.Sprintf("Mailjet's API only supports one Reply-To address, %d given", len(msg.ReplyTo)),
		}
	}

	headers := map[string]string{}
	for _, h := range msg.Headers {
		if reserved, ok := reservedHeaders[strings.ToLower(h.Name)]; ok {
			value, err := reserved.convert(h.Value)
			if err != nil {
				return nil, &ValidationError{
					Reason: fmt.Sprintf("invalid value for header %s: %v", h.Name, err),
				}
			}
			m[reserved.field] = value
			continue
		}
		headers[h.Name] = h.Value
	}
	if len(headers) > 0 {
		m["Headers"] = headers
	}

	return &mailjetPayload{
		Messages:    []map[string]any{m},
		SandBoxMode: sandbox,
	}, nil
}

func encodeMailjetAttachments(list []Attachment, inline bool) []mailjetAttachment {
	out := make([]mailjetAttachment, 0, len(list))
	for _, att := range list {
		enc := mailjetAttachment{
			ContentType:   att.ContentType,
			Filename:      att.Filename,
			Base64Content: base64.StdEncoding.EncodeToString(att.Content),
		}
		if inline {
			enc.ContentID = att.ContentID
			if enc.ContentID == "" {
				enc.ContentID = att.Filename
			}
		}
		out = append(out, enc)
	}
	return out
}
