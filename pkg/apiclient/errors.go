package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnreachable replaces transport failures that never produced a
// response. Callers show it as-is; the underlying error stays wrapped.
var ErrUnreachable = errors.New("apiclient: cannot reach server")

// ErrNotAuthenticated is returned when a request needs a session and the
// token store has none.
var ErrNotAuthenticated = errors.New("apiclient: not authenticated")

// APIError is a non-2xx response with a structured body. Message carries the
// server's own message/detail text verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("apiclient: server returned %d", e.Status)
}

// Unauthorized reports whether the error is a 401 eligible for the one-shot
// refresh retry.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// errorBody is the shape upstream error responses use. Some endpoints send
// message, others detail.
type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Detail
}
