package apiclient

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthenticationRequired indicates an authenticated call was attempted
	// with no stored credential. The request is refused before any network
	// I/O; callers should redirect to login.
	ErrAuthenticationRequired = errors.New("apiclient.authentication_required")

	// ErrTokenMissing indicates a login response carried no recognizable
	// token field under any of the accepted names.
	ErrTokenMissing = errors.New("apiclient.token_missing")

	// ErrUnreachable indicates the request failed before the server produced
	// a response. It always wraps the underlying transport error.
	ErrUnreachable = errors.New("apiclient.server_unreachable")

	// ErrInvalidBaseURL indicates the configured API base URL cannot be parsed.
	ErrInvalidBaseURL = errors.New("apiclient.invalid_base_url")

	// ErrUnexpectedResponseBody indicates a 2xx response whose body could not
	// be decoded into the endpoint's expected shape. Only typed endpoints
	// return it; the raw Do wrapper hands unparsable success bodies back to
	// the caller as-is.
	ErrUnexpectedResponseBody = errors.New("apiclient.unexpected_response_body")
)

// APIError reports a non-2xx response from the API. Message is extracted
// from a JSON {message} body when present, otherwise it carries the raw
// body text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// RejectionError reports a login attempt the server explicitly refused:
// the request reached the server, but the credentials or the account role
// were not accepted. Message carries the server's own wording.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return "login rejected: " + e.Message
}

// IsUnreachable reports whether err represents a transport-level failure,
// as opposed to a response the server actually produced.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}
