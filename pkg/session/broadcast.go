package session

import (
	"context"

	"github.com/SyphaxBN/pointage-admin/pkg/apiclient"
)

// subscriberBuffer bounds how many unread events a subscriber may lag
// behind before updates are dropped for it.
const subscriberBuffer = 8

// Event is one observed state change. User is non-nil only for
// StatusAuthenticated.
type Event struct {
	Status Status
	User   *apiclient.User
}

// Subscribe returns a channel delivering every state change until ctx is
// done, at which point the channel is closed. Slow consumers lose events
// rather than blocking session transitions; read Current for the
// authoritative value at any moment.
func (m *Manager) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, subscriberBuffer)

	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subs[id] = ch
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		if _, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(ch)
		}
		m.mu.Unlock()
	}()

	return ch
}

// publishLocked records the new state and fans it out to subscribers.
// Callers hold m.mu, which also serializes sends against channel close.
func (m *Manager) publishLocked(status Status, user *apiclient.User) {
	m.status = status
	m.user = user

	event := Event{Status: status}
	if user != nil {
		u := *user
		event.User = &u
	}
	for _, ch := range m.subs {
		select {
		case ch <- event:
		default:
			// Subscriber lagging; drop rather than block a transition.
		}
	}
}
