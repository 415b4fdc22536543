package navigator

import (
	"sync"

	"github.com/sourcegraph/conc"
	"github.com/wayfarer-app/wayfarer/pkg/arrivals"
	"github.com/wayfarer-app/wayfarer/pkg/model"
	"github.com/wayfarer-app/wayfarer/pkg/notify"
	"github.com/wayfarer-app/wayfarer/pkg/tripstore"
)

// Manager hands out one Coordinator per user, lazily. One coordinator per
// user is what enforces the single-active-trip invariant: every command and
// fix for that user is serialised through the same actor.
type Manager struct {
	Store      tripstore.Store
	Arrivals   arrivals.Source
	Dispatcher *notify.Dispatcher
	Events     Events

	mu       sync.Mutex
	sessions map[string]*managedSession
}

type managedSession struct {
	coordinator *Coordinator
	source      *PushLocationSource
}

func NewManager(store tripstore.Store, arrivalsSource arrivals.Source, dispatcher *notify.Dispatcher, events Events) *Manager {
	return &Manager{
		Store:      store,
		Arrivals:   arrivalsSource,
		Dispatcher: dispatcher,
		Events:     events,

		sessions: map[string]*managedSession{},
	}
}

// Coordinator returns the user's session coordinator, creating and starting
// it on first use.
func (m *Manager) Coordinator(userID string) *Coordinator {
	return m.session(userID).coordinator
}

// SubmitFix routes a location fix from the API or the location queue into the
// user's session. Fixes for sessions that aren't tracking are dropped.
func (m *Manager) SubmitFix(userID string, fix model.LocationFix) {
	m.session(userID).source.Offer(fix)
}

func (m *Manager) session(userID string) *managedSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[userID]; ok {
		return session
	}

	source := NewPushLocationSource()
	coordinator := New(
		userID,
		m.Store,
		tripstore.NewProgressSyncer(m.Store),
		NewArrivalMonitor(m.Arrivals, m.Dispatcher),
		source,
		m.Events,
	)
	coordinator.Start()

	session := &managedSession{
		coordinator: coordinator,
		source:      source,
	}
	m.sessions[userID] = session

	return session
}

// Close shuts down every coordinator and waits for their loops to finish.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = map[string]*managedSession{}
	m.mu.Unlock()

	var wg conc.WaitGroup
	for _, session := range sessions {
		session := session
		wg.Go(func() {
			session.coordinator.Close()
		})
	}
	wg.Wait()
}
