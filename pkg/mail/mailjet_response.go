package mail

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// interpretMailjetResponse translates a raw Send API response into a
// SendResult or a TransportError. Every error path keeps the raw response
// attached so the caller can decide on retries or alerting.
func interpretMailjetResponse(resp *Response) (*SendResult, error) {
	dec := json.NewDecoder(bytes.NewReader(resp.Body))
	dec.UseNumber()

	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, rawBodyError(resp)
	}

	first, ok := firstMessage(decoded)
	if !ok {
		reencoded, _ := json.Marshal(decoded)
		return nil, &TransportError{
			Message:  fmt.Sprintf("Unable to send an email: \"%s\" malformed api response.", reencoded),
			Response: resp,
		}
	}

	if errs, ok := first["Errors"].([]any); ok && len(errs) > 0 {
		var errMsg string
		if detail, ok := errs[0].(map[string]any); ok {
			errMsg, _ = detail["ErrorMessage"].(string)
		}
		return nil, &TransportError{
			Message:  fmt.Sprintf("Unable to send an email: \"%s\" (code %d).", errMsg, resp.StatusCode),
			Response: resp,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, rawBodyError(resp)
	}

	return &SendResult{MessageID: firstMessageID(first), Response: resp}, nil
}

func rawBodyError(resp *Response) *TransportError {
	return &TransportError{
		Message:  fmt.Sprintf("Unable to send an email: \"%s\" (code %d).", resp.Body, resp.StatusCode),
		Response: resp,
	}
}

// firstMessage returns the first element of the response's Messages array,
// or false when the response does not carry a non-empty Messages array of
// objects.
func firstMessage(decoded any) (map[string]any, bool) {
	root, ok := decoded.(map[string]any)
	if !ok {
		return nil, false
	}
	messages, ok := root["Messages"].([]any)
	if !ok || len(messages) == 0 {
		return nil, false
	}
	first, ok := messages[0].(map[string]any)
	if !ok {
		return nil, false
	}
	return first, true
}

// firstMessageID extracts Messages[0].To[0].MessageID. The API reports it as
// a string or a number depending on the account; numbers are kept verbatim.
func firstMessageID(first map[string]any) string {
	tos, ok := first["To"].([]any)
	if !ok || len(tos) == 0 {
		return ""
	}
	recipient, ok := tos[0].(map[string]any)
	if !ok {
		return ""
	}
	switch id := recipient["MessageID"].(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	default:
		return ""
	}
}
