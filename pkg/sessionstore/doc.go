// Package sessionstore provides durable, device-local persistence for the
// admin session: one bearer token and one serialized user record.
//
// The package is the Go counterpart of the browser localStorage pair the
// portal keeps under "auth_token" / "auth_user". It is deliberately dumb:
// it stores and returns opaque strings/bytes and never interprets the user
// payload — a malformed record is the session layer's problem, not a storage
// failure.
//
// Two implementations ship out of the box: FileStore, which keeps the pair
// as two files under a per-user directory and survives process restarts, and
// MemoryStore for tests and ephemeral runs.
//
// # Usage
//
//	store, err := sessionstore.NewFileStore("") // default: ~/.config/pointagectl
//	if err != nil { ... }
//
//	_ = store.Save(ctx, token, userJSON)
//	token, userJSON, _ = store.Load(ctx)
//	_ = store.Clear(ctx)
//
// All operations overwrite or remove both entries together; there is no
// partial update.
package sessionstore
