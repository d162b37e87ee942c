package sessionstore

import "context"

// Store persists the session credential pair across application runs.
// Either entry may be absent; absence is reported as empty values, not as an
// error. Implementations must be safe for concurrent use.
type Store interface {
	// Save overwrites both the token and the serialized user record.
	Save(ctx context.Context, token string, user []byte) error

	// Load returns the stored token and user record. Missing entries come
	// back empty with a nil error.
	Load(ctx context.Context) (token string, user []byte, err error)

	// Clear removes both entries. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
