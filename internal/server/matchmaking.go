package server

import (
	"math/rand"
	"strings"
)

const joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Matchmaker pairs players: a FIFO quick-match queue plus private games
// addressed by 6-character join codes. Not safe for concurrent use; the
// lobby serializes access.
type Matchmaker struct {
	queue   []string
	private map[string]string // join code -> creator connection id
	rng     *rand.Rand
}

func NewMatchmaker(rng *rand.Rand) *Matchmaker {
	return &Matchmaker{private: map[string]string{}, rng: rng}
}

// AddToQueue returns the waiting opponent's connection id, or ok=false if
// the caller is now waiting.
func (m *Matchmaker) AddToQueue(connID string) (string, bool) {
	if len(m.queue) > 0 {
		other := m.queue[0]
		if other != connID {
			m.queue = m.queue[1:]
			return other, true
		}
	}
	m.queue = append(m.queue, connID)
	return "", false
}

func (m *Matchmaker) RemoveFromQueue(connID string) {
	for i, id := range m.queue {
		if id == connID {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			return
		}
	}
}

func (m *Matchmaker) CreatePrivate(connID string) string {
	code := m.newJoinCode()
	m.private[code] = connID
	return code
}

// JoinPrivate consumes the code and returns the creator's connection id.
func (m *Matchmaker) JoinPrivate(code string) (string, bool) {
	creator, ok := m.private[strings.ToUpper(code)]
	if ok {
		delete(m.private, strings.ToUpper(code))
	}
	return creator, ok
}

func (m *Matchmaker) CancelPrivate(connID string) {
	for code, id := range m.private {
		if id == connID {
			delete(m.private, code)
		}
	}
}

func (m *Matchmaker) newJoinCode() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = joinCodeAlphabet[m.rng.Intn(len(joinCodeAlphabet))]
	}
	return string(b)
}
