package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/SyphaxBN/pointage-admin/pkg/apiclient"
	"github.com/SyphaxBN/pointage-admin/pkg/sessionstore"
)

// API is the slice of the remote client the manager needs. apiclient.Client
// satisfies it; tests substitute fakes.
type API interface {
	Login(ctx context.Context, email, password string) (*apiclient.LoginResult, error)
	CurrentUser(ctx context.Context) (*apiclient.User, error)
	Origin() string
}

// Manager owns the in-memory session state and the transitions between its
// three states. It is safe for concurrent use.
type Manager struct {
	mu    sync.RWMutex
	api   API
	store sessionstore.Store
	log   *slog.Logger

	// storeMu orders store writes against Logout's Clear.
	storeMu sync.Mutex

	status Status
	user   *apiclient.User
	token  string

	// generation is bumped on every Login and Logout; a reconciliation that
	// captured an older generation discards its result instead of
	// committing it.
	generation uint64

	subs      map[uint64]chan Event
	nextSubID uint64
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore sets the local session store. Defaults to an in-memory store.
func WithStore(store sessionstore.Store) Option {
	return func(m *Manager) {
		if store != nil {
			m.store = store
		}
	}
}

// WithLogger sets the logger used for swallowed refresh failures.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// New creates a Manager in the unauthenticated state. Attach the API client
// with AttachAPI before calling Login or expecting Refresh to reconcile.
func New(opts ...Option) *Manager {
	m := &Manager{
		store:  sessionstore.NewMemoryStore(),
		log:    slog.Default(),
		status: StatusUnauthenticated,
		subs:   make(map[uint64]chan Event),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AttachAPI binds the remote client. The manager is built before the client
// because the client needs it as a credential source.
func (m *Manager) AttachAPI(api API) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.api = api
}

// Current returns the session status and, when authenticated, a copy of the
// current user record.
func (m *Manager) Current() (Status, *apiclient.User) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return m.status, nil
	}
	user := *m.user
	return m.status, &user
}

// Token implements apiclient.CredentialSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Refresh synchronizes the in-memory state with the store and the server.
//
// With no stored credential it settles on unauthenticated without touching
// the network. With one, it publishes the stored record immediately
// (optimistic), then reconciles against the server: on success the server's
// fields win and the merge is persisted; on failure the optimistic value
// stays and the failure is only logged. Safe to call concurrently; a result
// arriving after a Login or Logout is discarded.
func (m *Manager) Refresh(ctx context.Context) {
	token, raw, err := m.store.Load(ctx)
	if err != nil {
		m.log.Warn("session store unreadable", slog.Any("error", err))
		token = ""
	}

	if token == "" {
		m.mu.Lock()
		m.token = ""
		m.publishLocked(StatusUnauthenticated, nil)
		m.mu.Unlock()
		return
	}

	optimistic := m.decodeStoredUser(raw)

	m.mu.Lock()
	gen := m.generation
	m.token = token
	if optimistic != nil {
		m.publishLocked(StatusAuthenticated, optimistic)
	} else if m.status != StatusAuthenticated {
		m.publishLocked(StatusLoading, nil)
	}
	api := m.api
	m.mu.Unlock()

	if api == nil {
		return
	}

	fresh, err := api.CurrentUser(ctx)
	if err != nil {
		// Transient failures must not flicker an optimistically displayed
		// user back to the login screen.
		m.log.Warn("session reconciliation failed, keeping cached state", slog.Any("error", err))
		if optimistic == nil {
			m.mu.Lock()
			if m.generation == gen && m.status != StatusAuthenticated {
				m.publishLocked(StatusUnauthenticated, nil)
			}
			m.mu.Unlock()
		}
		return
	}

	merged := *fresh
	if optimistic != nil {
		merged = mergeUser(*optimistic, *fresh)
	}
	merged = apiclient.NormalizeUser(merged, api.Origin())

	m.mu.Lock()
	if m.generation != gen {
		// The session changed while this reconciliation was in flight.
		m.mu.Unlock()
		return
	}
	m.publishLocked(StatusAuthenticated, &merged)
	m.mu.Unlock()

	m.persistIfCurrent(ctx, gen, token, &merged)
}

// Login authenticates against the server and, on success, persists the
// credential pair and publishes the authenticated state. A rejection
// (*RejectedError) performs no state mutation whatsoever; an existing
// session survives a failed re-login attempt. Transport failures pass
// through and are detectable with IsUnreachable.
//
// When the login response embeds no user payload and the follow-up fetch
// fails too, Login returns (nil, nil): the issued token is kept in the
// loading state and the next Refresh completes the record.
func (m *Manager) Login(ctx context.Context, email, password string) (*apiclient.User, error) {
	m.mu.RLock()
	api := m.api
	m.mu.RUnlock()
	if api == nil {
		return nil, ErrNoAPI
	}

	result, err := api.Login(ctx, email, password)
	if err != nil {
		var rejection *apiclient.RejectionError
		if errors.As(err, &rejection) {
			return nil, &RejectedError{Message: rejection.Message, Reason: classify(rejection.Message)}
		}
		return nil, err
	}

	m.mu.Lock()
	m.generation++
	gen := m.generation
	m.token = result.Token
	if result.User != nil {
		m.publishLocked(StatusAuthenticated, result.User)
	} else {
		m.publishLocked(StatusLoading, nil)
	}
	m.mu.Unlock()

	m.persistIfCurrent(ctx, gen, result.Token, result.User)

	if result.User != nil {
		user := *result.User
		return &user, nil
	}

	// The login response embedded no user payload; fetch it. A failure here
	// leaves the session loading with the issued token retained, and the
	// next Refresh retries.
	fresh, err := api.CurrentUser(ctx)
	if err != nil {
		m.log.Warn("user fetch after login failed", slog.Any("error", err))
		return nil, nil
	}

	m.mu.Lock()
	if m.generation == gen {
		m.publishLocked(StatusAuthenticated, fresh)
	}
	m.mu.Unlock()

	m.persistIfCurrent(ctx, gen, result.Token, fresh)
	user := *fresh
	return &user, nil
}

// Logout clears the store and the in-memory state. It never waits on the
// network and always succeeds; an in-flight Refresh completing afterwards is
// discarded by the generation guard.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.generation++
	m.token = ""
	m.publishLocked(StatusUnauthenticated, nil)
	m.mu.Unlock()

	m.storeMu.Lock()
	err := m.store.Clear(ctx)
	m.storeMu.Unlock()
	if err != nil {
		m.log.Warn("session store clear failed", slog.Any("error", err))
	}
}

// decodeStoredUser parses the persisted record, degrading malformed bytes
// to "no stored user" rather than failing the refresh.
func (m *Manager) decodeStoredUser(raw []byte) *apiclient.User {
	if len(raw) == 0 {
		return nil
	}
	var user apiclient.User
	if err := json.Unmarshal(raw, &user); err != nil || user.ID == "" {
		m.log.Warn("stored user record malformed, ignoring")
		return nil
	}

	origin := ""
	m.mu.RLock()
	if m.api != nil {
		origin = m.api.Origin()
	}
	m.mu.RUnlock()

	normalized := apiclient.NormalizeUser(user, origin)
	return &normalized
}

// persistIfCurrent writes the credential pair back to the store, but only
// while the session generation still matches gen. Holding storeMu across the
// check and the write orders it against Logout's Clear, so a reconciliation
// that straddles a logout can never put the cleared credential back. Write
// failures are logged; the in-memory state is already authoritative for this
// run.
func (m *Manager) persistIfCurrent(ctx context.Context, gen uint64, token string, user *apiclient.User) {
	m.storeMu.Lock()
	defer m.storeMu.Unlock()

	m.mu.RLock()
	current := m.generation
	m.mu.RUnlock()
	if current != gen {
		return
	}

	var raw []byte
	if user != nil {
		data, err := json.Marshal(user)
		if err != nil {
			m.log.Warn("user record not serializable", slog.Any("error", err))
		} else {
			raw = data
		}
	}
	if err := m.store.Save(ctx, token, raw); err != nil {
		m.log.Warn("session store write failed", slog.Any("error", err))
	}
}
