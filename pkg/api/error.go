package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// Error is an error response from the resource API, carrying the server's
// human-readable message when one could be extracted from the body.
type Error struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// ServerMessage returns the message the server supplied, or "" when the
// body carried none. The sync core surfaces it verbatim to the user.
func (e *Error) ServerMessage() string { return e.Message }

// StaleToken reports whether the server rejected the call because its
// concurrency token was out of date.
func (e *Error) StaleToken() bool {
	return e.StatusCode == http.StatusConflict || e.StatusCode == http.StatusPreconditionFailed
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// extractor attempts to read a message out of one known error-body shape.
// Extractors are tried in order; the first hit wins.
type extractor func(body []byte) (string, bool)

var extractors = []extractor{
	extractProblemDetails,
	extractMessageField,
	extractTextField,
	extractPlainText,
}

func newError(status int, body []byte) *Error {
	for _, extract := range extractors {
		if msg, ok := extract(body); ok {
			return &Error{StatusCode: status, Message: msg, Body: body}
		}
	}
	return &Error{StatusCode: status, Body: body}
}

// extractProblemDetails reads the RFC 7807 problem shape the backend emits
// for validation failures: title and/or detail.
func extractProblemDetails(body []byte) (string, bool) {
	var pd struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &pd); err != nil {
		return "", false
	}
	title := strings.TrimSpace(pd.Title)
	detail := strings.TrimSpace(pd.Detail)
	switch {
	case title != "" && detail != "":
		return title + ": " + detail, true
	case detail != "":
		return detail, true
	case title != "":
		return title, true
	}
	return "", false
}

func extractMessageField(body []byte) (string, bool) {
	var m struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &m); err != nil {
		return "", false
	}
	if msg := strings.TrimSpace(m.Message); msg != "" {
		return msg, true
	}
	return "", false
}

func extractTextField(body []byte) (string, bool) {
	var m struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &m); err != nil {
		return "", false
	}
	if msg := strings.TrimSpace(m.Text); msg != "" {
		return msg, true
	}
	return "", false
}

// extractPlainText accepts a bare text body, either a JSON string or raw
// plain text, which is what NotFound("...")-style responses produce.
func extractPlainText(body []byte) (string, bool) {
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		if msg := strings.TrimSpace(s); msg != "" {
			return msg, true
		}
		return "", false
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" || !utf8.ValidString(msg) {
		return "", false
	}
	// Anything JSON-shaped that reached this point had no known field.
	if strings.HasPrefix(msg, "{") || strings.HasPrefix(msg, "[") {
		return "", false
	}
	return msg, true
}
