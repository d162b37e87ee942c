package session

import (
	"errors"
	"strings"

	"github.com/SyphaxBN/pointage-admin/pkg/apiclient"
)

// ErrNoAPI indicates the manager was asked to talk to the server before an
// API client was attached.
var ErrNoAPI = errors.New("session.no_api_attached")

// Reason categorizes why the server refused a login, derived from the
// server's message text. The matching is inherently fragile and should move
// to structured error codes if the API ever grows them.
type Reason string

const (
	ReasonUnknownEmail     Reason = "unknown_email"
	ReasonWrongPassword    Reason = "wrong_password"
	ReasonInsufficientRole Reason = "insufficient_role"
	ReasonUnknown          Reason = "unknown"
)

// RejectedError reports a login the server explicitly refused. It is
// distinct from transport failures (see IsUnreachable): the server was
// reached and said no, so the UI renders the reason instead of a
// connectivity message.
type RejectedError struct {
	Message string
	Reason  Reason
}

func (e *RejectedError) Error() string {
	return "login rejected (" + string(e.Reason) + "): " + e.Message
}

// classify maps the server's rejection message onto a Reason. Patterns
// follow the messages the API is known to emit, in both French and English.
func classify(message string) Reason {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "email") && (strings.Contains(msg, "inexistant") ||
		strings.Contains(msg, "not found") || strings.Contains(msg, "introuvable")):
		return ReasonUnknownEmail
	case strings.Contains(msg, "password") || strings.Contains(msg, "mot de passe"):
		return ReasonWrongPassword
	case strings.Contains(msg, "role") || strings.Contains(msg, "permission") ||
		strings.Contains(msg, "autoris"):
		return ReasonInsufficientRole
	default:
		return ReasonUnknown
	}
}

// IsUnreachable reports whether err means the server could not be reached
// at all. Callers show a connectivity message for these, never a
// credentials one.
func IsUnreachable(err error) bool {
	return apiclient.IsUnreachable(err)
}
