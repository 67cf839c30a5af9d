package server

import (
	"math/rand"
	"strings"
	"testing"
)

func newTestMatchmaker() *Matchmaker {
	return NewMatchmaker(rand.New(rand.NewSource(1)))
}

func TestQuickMatchQueue(t *testing.T) {
	m := newTestMatchmaker()
	if _, ok := m.AddToQueue("a"); ok {
		t.Fatal("first player matched against nobody")
	}
	other, ok := m.AddToQueue("b")
	if !ok || other != "a" {
		t.Fatalf("AddToQueue = %q, %v; want match with a", other, ok)
	}
	// The queue is drained after a match.
	if _, ok := m.AddToQueue("c"); ok {
		t.Fatal("matched against a drained queue")
	}
}

func TestQuickMatchDoesNotSelfMatch(t *testing.T) {
	m := newTestMatchmaker()
	m.AddToQueue("a")
	if _, ok := m.AddToQueue("a"); ok {
		t.Fatal("player matched against themselves")
	}
}

func TestRemoveFromQueue(t *testing.T) {
	m := newTestMatchmaker()
	m.AddToQueue("a")
	m.RemoveFromQueue("a")
	if _, ok := m.AddToQueue("b"); ok {
		t.Fatal("matched against a removed player")
	}
}

func TestPrivateGames(t *testing.T) {
	m := newTestMatchmaker()
	code := m.CreatePrivate("host")
	if len(code) != 6 {
		t.Fatalf("join code %q, want 6 characters", code)
	}

	// Codes are case-insensitive and single-use.
	creator, ok := m.JoinPrivate(strings.ToLower(code))
	if !ok || creator != "host" {
		t.Fatalf("JoinPrivate = %q, %v; want host", creator, ok)
	}
	if _, ok := m.JoinPrivate(code); ok {
		t.Fatal("code joined twice")
	}
	if _, ok := m.JoinPrivate("NOSUCH"); ok {
		t.Fatal("joined a code that was never issued")
	}
}

func TestCancelPrivate(t *testing.T) {
	m := newTestMatchmaker()
	code := m.CreatePrivate("host")
	m.CancelPrivate("host")
	if _, ok := m.JoinPrivate(code); ok {
		t.Fatal("joined a cancelled private game")
	}
}
