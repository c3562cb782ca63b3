package internal

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/rm-hull/quran-reader-client/internal/models"
)

// ErrAuthExpired marks every AuthExpiredError, so callers can test with errors.Is.
var ErrAuthExpired = errors.New("session expired")

// TransportError is returned when no response reached the client: the
// connection failed, DNS failed or the request timed out.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: no response from server: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPError is returned when the server responded with a non-2xx status.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code: %d %s",
		e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Message returns the server supplied message from the response body, if any.
func (e *HTTPError) Message() string {
	if len(e.Body) == 0 {
		return ""
	}
	var resp models.MessageResponse
	if err := json.Unmarshal(e.Body, &resp); err != nil {
		return ""
	}
	return resp.Message
}

// AuthExpiredError means the session can no longer be used: either no refresh
// token was stored or the refresh call failed.
type AuthExpiredError struct {
	Cause error
}

func (e *AuthExpiredError) Error() string {
	if e.Cause == nil {
		return ErrAuthExpired.Error()
	}
	return fmt.Sprintf("%s: %v", ErrAuthExpired, e.Cause)
}

func (e *AuthExpiredError) Unwrap() error {
	return e.Cause
}

func (e *AuthExpiredError) Is(target error) bool {
	return target == ErrAuthExpired
}

func IsAuthExpired(err error) bool {
	return errors.Is(err, ErrAuthExpired)
}

func IsTransportError(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

// StatusCode extracts the HTTP status from an error chain, or 0 when the
// error did not come from a server response.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
