// ABOUTME: Error types for backend API responses
// ABOUTME: Surfaces backend detail messages verbatim with status-text fallback

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrNotAuthenticated is returned when the backend rejects the presented
// token. Callers must treat it as "session is stale" and clear the session.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrMalformedToken is returned before any request is sent when the stored
// token does not look like a bearer token the backend could accept.
var ErrMalformedToken = errors.New("malformed token")

// Error is a non-2xx backend response. Detail carries the backend-provided
// message when the body was JSON {"detail": ...}; otherwise it holds the
// HTTP status text.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
}

// Unwrap maps 401 responses onto ErrNotAuthenticated so callers can use
// errors.Is to decide whether to destroy the local session.
func (e *Error) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrNotAuthenticated
	}
	return nil
}

// errorDetail is the backend's error envelope.
type errorDetail struct {
	Detail string `json:"detail"`
}

// errorFromResponse builds an *Error from a non-2xx response. Some backend
// failure paths return plain text rather than JSON; those must not crash
// the caller, so decode failures fall back to the status text.
func errorFromResponse(resp *http.Response) *Error {
	apiErr := &Error{
		StatusCode: resp.StatusCode,
		Detail:     http.StatusText(resp.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return apiErr
	}

	var envelope errorDetail
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Detail != "" {
		apiErr.Detail = envelope.Detail
	}

	return apiErr
}

// IsStatus reports whether err is a backend *Error with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}
