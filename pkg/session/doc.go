// Package session reconciles the local session store and the remote API
// into a single authoritative "current user" value for the admin portal.
//
// The manager is a small state machine with three states — unauthenticated,
// loading, authenticated — and three transitions the rest of the application
// may trigger: Login, Logout and Refresh. Consumers never mutate the state
// directly; they read it with Current or watch it with Subscribe.
//
// # Refresh
//
// Refresh is the startup and re-sync path. It reads the store, and when a
// credential is present it optimistically publishes the stored user record
// before asking the server for fresh data, so a reload shows the account
// immediately instead of flashing a login screen. When the server answers,
// its fields win and the merged record is persisted back; when it does not,
// the optimistic value stays — a transient network failure must never log
// the user out. Refresh is idempotent and safe to call from any number of
// goroutines; the last completing reconciliation wins.
//
// A monotonic generation counter, bumped on every Login and Logout, guards
// reconciliations that complete after the session changed underneath them:
// a Refresh still in flight when Logout runs cannot resurrect the
// authenticated state.
//
// # Wiring
//
// The manager implements apiclient.CredentialSource, which resolves the
// mutual reference between client and manager: build the manager first,
// hand it to the client as the credential source, then attach the client.
//
//	manager := session.New(session.WithStore(store))
//	client, _ := apiclient.New(baseURL, apiclient.WithCredentials(manager))
//	manager.AttachAPI(client)
//	manager.Refresh(ctx)
package session
