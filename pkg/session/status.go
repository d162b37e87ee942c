package session

// Status is the tri-state of the session.
type Status string

const (
	// StatusUnauthenticated means no credential is known.
	StatusUnauthenticated Status = "unauthenticated"

	// StatusLoading means a credential exists but no user record has been
	// confirmed yet.
	StatusLoading Status = "loading"

	// StatusAuthenticated means a user record is published, either
	// optimistically from the store or confirmed by the server.
	StatusAuthenticated Status = "authenticated"
)
