package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"cribbage/internal/ai"
	"cribbage/internal/engine"
)

// Session holds one single-player game. The per-session mutex serializes
// mutating calls so each game sees at most one in-flight action.
type Session struct {
	mu         sync.Mutex
	ID         string
	Game       *engine.Game
	Difficulty ai.Difficulty
	recorded   bool
}

// Do runs fn with the session's game under its lock.
func (s *Session) Do(fn func(g *engine.Game)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.Game)
}

// Manager is an in-memory session store with TTL expiry. Expired sessions
// disappear on access; Cleanup sweeps the rest.
type Manager struct {
	mu           sync.Mutex
	ttl          time.Duration
	sessions     map[string]*Session
	lastAccessed map[string]time.Time
	now          func() time.Time
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:          ttl,
		sessions:     map[string]*Session{},
		lastAccessed: map[string]time.Time{},
		now:          time.Now,
	}
}

func (m *Manager) Create(game *engine.Game, difficulty ai.Difficulty) *Session {
	s := &Session{
		ID:         uuid.NewString(),
		Game:       game,
		Difficulty: difficulty,
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	m.lastAccessed[s.ID] = m.now()
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	if m.now().Sub(m.lastAccessed[id]) > m.ttl {
		m.deleteLocked(id)
		return nil, false
	}
	m.lastAccessed[id] = m.now()
	return s, true
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteLocked(id)
}

func (m *Manager) deleteLocked(id string) {
	delete(m.sessions, id)
	delete(m.lastAccessed, id)
}

// Cleanup removes every expired session and returns how many went.
func (m *Manager) Cleanup() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	removed := 0
	for id, ts := range m.lastAccessed {
		if now.Sub(ts) > m.ttl {
			m.deleteLocked(id)
			removed++
		}
	}
	return removed
}

func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
