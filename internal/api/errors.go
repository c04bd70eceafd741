package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for common HTTP error classes.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")

	// ErrNotSignedIn is returned before calling an authenticated endpoint without a token
	ErrNotSignedIn = errors.New("not signed in")
	// ErrNoToken is returned when a login succeeds but the body has no token
	ErrNoToken = errors.New("login response has no token")
)

// Error is an error body from the backend. Message is meant for the user.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// errorBody is the error shape the backend returns
type errorBody struct {
	Message string `json:"message"`
}

// errorFromResponse maps a failed response to an error. Bodies carrying a
// message keep it so it can be shown as-is; the status class is still
// matchable with errors.Is.
func errorFromResponse(status int, body []byte) error {
	var eb errorBody
	if json.Unmarshal(body, &eb) != nil || eb.Message == "" {
		switch status {
		case http.StatusUnauthorized:
			return ErrUnauthorized
		case http.StatusForbidden:
			return ErrForbidden
		case http.StatusNotFound:
			return ErrNotFound
		}
		return fmt.Errorf("HTTP %d", status)
	}

	apiErr := &Error{Status: status, Message: eb.Message}
	switch status {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrForbidden, apiErr)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, apiErr)
	}
	return apiErr
}

// UserMessage returns the text to show for err, falling back to fallback
// when the backend did not supply a message.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return fallback
}
