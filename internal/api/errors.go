package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrSessionExpired is returned when the backend rejects the held access
// token with a 401 on any endpoint other than login. By the time a caller
// sees it the expiry policy has already run; treat it as "log in again",
// not as a per-call failure to retry.
var ErrSessionExpired = errors.New("session expired")

// Error is a non-2xx response carrying the backend-supplied detail message
// when one was present in the body.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("API error: %d", e.Status)
}

// newAPIError builds an Error from a response body, preferring the backend's
// structured {"detail": ...} message. FastAPI validation errors carry a
// non-string detail; those are passed through as raw JSON.
func newAPIError(status int, body []byte) *Error {
	apiErr := &Error{Status: status}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return apiErr
	}

	var detail string
	if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
		apiErr.Detail = detail
	} else {
		apiErr.Detail = string(envelope.Detail)
	}

	return apiErr
}
