package session

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/rm-hull/quran-reader-client/internal"
)

const (
	MsgServerUnavailable = "Server is currently unavailable. Please try again in a few minutes."
	MsgServerDown        = "Server is temporarily down. Please try again later."
	MsgInvalidLogin      = "Invalid email or password."
	MsgServerError       = "Server error. Please try again later."
	MsgValidation        = "Please check your input and try again."
	MsgUnauthorized      = "Please login to continue."
	MsgForbidden         = "Admin access required."
)

// Describe turns an error from the API client into text fit to show a user.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	if internal.IsAuthExpired(err) {
		return MsgUnauthorized
	}
	if internal.IsTransportError(err) {
		return MsgServerUnavailable
	}

	var httpErr *internal.HTTPError
	if !errors.As(err, &httpErr) {
		return MsgValidation
	}

	switch status := httpErr.StatusCode; {
	case status == http.StatusBadGateway || status == http.StatusServiceUnavailable:
		return MsgServerDown
	case status == http.StatusUnauthorized:
		if msg := httpErr.Message(); msg != "" {
			return msg
		}
		return MsgInvalidLogin
	case status == http.StatusForbidden:
		if msg := httpErr.Message(); msg != "" {
			return msg
		}
		return MsgForbidden
	case status >= 500:
		return MsgServerError
	default:
		if msg := httpErr.Message(); msg != "" {
			return msg
		}
		return MsgValidation
	}
}
