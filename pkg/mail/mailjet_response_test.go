package mail

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mailjetSuccessBody = `{"Messages":[{"Status":"success","To":[{"Email":"passenger1@mailjet.com","MessageID":"576460756513665525","MessageHref":"https://api.mailjet.com/v3/message/576460756513665525"}]}]}`

const mailjetErrorBody = `{"Messages":[{"Errors":[{"ErrorIdentifier":"f987008f-251a-4dff-8ffc-40f1583ad7bc","ErrorCode":"mj-0002","StatusCode":400,"ErrorMessage":"The To is mandatory but missing from the input","ErrorRelatedTo":["To"]}],"Status":"error"}]}`

func TestInterpretMailjetResponse_Success(t *testing.T) {
	resp := &Response{StatusCode: 200, Body: []byte(mailjetSuccessBody)}

	result, err := interpretMailjetResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "576460756513665525", result.MessageID)
	assert.Same(t, resp, result.Response)
}

func TestInterpretMailjetResponse_NumericMessageID(t *testing.T) {
	body := `{"Messages":[{"Status":"success","To":[{"Email":"passenger1@mailjet.com","MessageID":576460756513665525}]}]}`

	result, err := interpretMailjetResponse(&Response{StatusCode: 200, Body: []byte(body)})
	require.NoError(t, err)
	// Large numeric IDs must not lose precision
	assert.Equal(t, "576460756513665525", result.MessageID)
}

func TestInterpretMailjetResponse_UndecodableBody(t *testing.T) {
	resp := &Response{StatusCode: 200, Body: []byte("cannot-be-decoded")}

	_, err := interpretMailjetResponse(resp)
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, `Unable to send an email: "cannot-be-decoded" (code 200).`, transportErr.Message)
	assert.Same(t, resp, transportErr.Response)
}

func TestInterpretMailjetResponse_StructuredError(t *testing.T) {
	resp := &Response{StatusCode: 400, Body: []byte(mailjetErrorBody)}

	_, err := interpretMailjetResponse(resp)
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, `Unable to send an email: "The To is mandatory but missing from the input" (code 400).`, transportErr.Message)
	assert.Same(t, resp, transportErr.Response)
}

func TestInterpretMailjetResponse_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"messages key missing", `{"Status":"success"}`},
		{"messages is not an array", `{"Messages":{"Status":"success"}}`},
		{"messages is empty", `{"Messages":[]}`},
		{"messages element is not an object", `{"Messages":["success"]}`},
		{"top level is not an object", `["success"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := interpretMailjetResponse(&Response{StatusCode: 200, Body: []byte(tt.body)})

			var transportErr *TransportError
			require.ErrorAs(t, err, &transportErr)
			assert.Contains(t, transportErr.Message, "malformed api response")
		})
	}
}

func TestInterpretMailjetResponse_HTTPErrorWithoutStructuredError(t *testing.T) {
	body := `{"Messages":[{"Status":"error"}]}`
	resp := &Response{StatusCode: 500, Body: []byte(body)}

	_, err := interpretMailjetResponse(resp)
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, fmt.Sprintf(`Unable to send an email: "%s" (code 500).`, body), transportErr.Message)
}
