package room

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/ugaemi/survivalad-server/internal/game"
)

// Manager manages all active sessions.
type Manager struct {
	settings game.Settings
	log      *slog.Logger
	codes    *rand.Rand // guarded by mu

	sessions map[string]*Session // code -> session
	mu       sync.RWMutex
}

// NewManager creates a session manager. Every session is built from settings;
// a zero settings seed gives each session its own time-based seed.
func NewManager(settings game.Settings, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		settings: settings,
		log:      log,
		codes:    rand.New(rand.NewSource(time.Now().UnixNano())),
		sessions: make(map[string]*Session),
	}
}

// CreateSession creates a new session and returns it. The session is not
// started.
func (m *Manager) CreateSession() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	code, err := GenerateCode(m.codes, func(c string) bool {
		_, ok := m.sessions[c]
		return ok
	})
	if err != nil {
		return nil, err
	}

	seed := m.settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := NewSession(code, m.settings, seed, m.log)
	m.sessions[code] = s
	return s, nil
}

// GetSession returns a session by its code.
func (m *Manager) GetSession(code string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[code]
}

// RemoveSession stops and removes a session by its code.
func (m *Manager) RemoveSession(code string) {
	m.mu.Lock()
	s, ok := m.sessions[code]
	delete(m.sessions, code)
	m.mu.Unlock()

	if !ok {
		return
	}
	s.Stop()
	m.log.Info("session removed", "session", code)
}

// SessionCount returns the number of active sessions.
func (m *Manager) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// FindSessionByClientID finds the session a client is attached to.
func (m *Manager) FindSessionByClientID(clientID string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		if s.HasClient(clientID) {
			return s
		}
	}
	return nil
}

// StopAll stops and removes every session.
func (m *Manager) StopAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Stop()
	}
}
