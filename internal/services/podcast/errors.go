package podcast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
	"unicode/utf8"

	"podcastctl/internal/services"
)

const maxBodySnippet = 256

// APIError reports a non-2xx response from the service.
type APIError struct {
	Op         string
	StatusCode int
	// Detail is the service's own explanation, taken from the `detail` field
	// of the error body when present.
	Detail string
	Body   string
}

func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Body
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("podcast %s: http %d: %s", e.Op, e.StatusCode, msg)
}

// UserMessage returns the service-provided detail for display.
func (e *APIError) UserMessage() string {
	return e.Detail
}

// Is lets callers classify API errors with the services sentinel markers.
func (e *APIError) Is(target error) bool {
	switch target {
	case services.ErrRemote:
		return true
	case services.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case services.ErrValidation:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	default:
		return false
	}
}

// TransportError reports a failure where no HTTP response was received, or the
// response body could not be read.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("podcast %s: %s: %v", e.Op, e.Reason(), e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is matches services.ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == services.ErrTransport
}

// Reason classifies the underlying failure for logs and messages.
func (e *TransportError) Reason() string {
	switch {
	case errors.Is(e.Err, syscall.ECONNREFUSED):
		return "connection refused"
	case errors.Is(e.Err, syscall.ECONNRESET):
		return "connection reset"
	case errors.Is(e.Err, syscall.ETIMEDOUT), errors.Is(e.Err, context.DeadlineExceeded):
		return "timeout"
	}
	var netErr net.Error
	if errors.As(e.Err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	return "no response"
}

// decodeDetail extracts the `detail` field of an error body. Validation
// failures carry a list of objects with `msg` fields instead of a string.
func decodeDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err != nil {
		return ""
	}
	msgs := make([]string, 0, len(items))
	for _, item := range items {
		msg := strings.TrimSpace(item.Msg)
		if msg == "" {
			continue
		}
		if field := lastLocation(item.Loc); field != "" {
			msg = field + ": " + msg
		}
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, "; ")
}

func lastLocation(loc []any) string {
	if len(loc) == 0 {
		return ""
	}
	if s, ok := loc[len(loc)-1].(string); ok {
		return s
	}
	return ""
}

func snippet(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > maxBodySnippet {
		cut := maxBodySnippet
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		return text[:cut] + "…"
	}
	return text
}
