package session

import (
	"sync"

	"github.com/okmeme/okmeme-wallet/internal/errs"
	"github.com/okmeme/okmeme-wallet/internal/log"
	"github.com/okmeme/okmeme-wallet/internal/metrics"
	"github.com/okmeme/okmeme-wallet/internal/model"

	"github.com/google/uuid"
)

type entry struct {
	mu      sync.Mutex
	session *Session
}

// Manager owns all open sessions. Callers refer to sessions by ID only.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	metrics  *metrics.Metrics
}

// NewManager creates an empty Manager. m may be nil.
func NewManager(m *metrics.Metrics) *Manager {
	return &Manager{
		sessions: make(map[string]*entry),
		metrics:  m,
	}
}

// Open creates a session, runs init on it and registers it only if init
// succeeds. It returns the new session ID.
func (m *Manager) Open(chain model.Chain, init func(*Session) error) (string, error) {
	s := New(uuid.NewString(), chain)
	if err := init(s); err != nil {
		s.End()
		return "", err
	}

	m.mu.Lock()
	m.sessions[s.ID] = &entry{session: s}
	m.mu.Unlock()

	m.metrics.SessionOpened(string(chain))
	log.Session.Info().
		Str("session", s.ID).
		Str("chain", string(chain)).
		Str("address", s.Address()).
		Str("state", s.State().String()).
		Msg("session opened")
	return s.ID, nil
}

// Do runs fn with exclusive access to the session.
func (m *Manager) Do(id string, fn func(*Session) error) error {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return errs.NotFound("session %q not found", id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session.State() == StateEnded {
		return errs.NotFound("session %q not found", id)
	}
	return fn(e.session)
}

// End removes the session and wipes its key material.
func (m *Manager) End(id string) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return errs.NotFound("session %q not found", id)
	}

	e.mu.Lock()
	chain := e.session.Chain
	e.session.End()
	e.mu.Unlock()

	m.metrics.SessionClosed(string(chain))
	log.Session.Info().Str("session", id).Msg("session ended")
	return nil
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// EndAll ends every open session and returns how many were ended.
func (m *Manager) EndAll() int {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	n := 0
	for _, id := range ids {
		if m.End(id) == nil {
			n++
		}
	}
	return n
}
