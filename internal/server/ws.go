package server

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"cribbage/internal/engine"
	"cribbage/internal/stats"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsClientMessage struct {
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Code        string `json:"code,omitempty"`
	CardIndices []int  `json:"card_indices,omitempty"`
	CardIndex   int    `json:"card_index,omitempty"`
	Message     string `json:"message,omitempty"`
}

type wsServerMessage struct {
	Type    string         `json:"type"`
	State   *GameStateView `json:"state,omitempty"`
	Code    string         `json:"code,omitempty"`
	Message string         `json:"message,omitempty"`
}

type membership struct {
	gameID string
	seat   engine.Seat
}

type twoPlayerSession struct {
	ID       string
	Game     *engine.TwoPlayerGame
	conns    map[engine.Seat]string
	recorded bool
}

// Lobby owns every websocket connection and every two-player game. One
// mutex serializes all message handling, which also makes each game see one
// action at a time and evaluates Go decisions against current state.
type Lobby struct {
	mu         sync.Mutex
	conns      map[string]*websocket.Conn
	names      map[string]string
	members    map[string]membership
	games      map[string]*twoPlayerSession
	matchmaker *Matchmaker
	stats      *stats.Store
	rng        *rand.Rand
}

func NewLobby(statsStore *stats.Store, seed int64) *Lobby {
	rng := rand.New(rand.NewSource(seed))
	return &Lobby{
		conns:      map[string]*websocket.Conn{},
		names:      map[string]string{},
		members:    map[string]membership{},
		games:      map[string]*twoPlayerSession{},
		matchmaker: NewMatchmaker(rng),
		stats:      statsStore,
		rng:        rng,
	}
}

// WSHandler upgrades the connection and pumps messages until it drops.
func (l *Lobby) WSHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	l.mu.Lock()
	l.conns[connID] = conn
	l.mu.Unlock()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var msg wsClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			l.mu.Lock()
			l.sendLocked(connID, wsServerMessage{Type: "error", Message: "invalid json"})
			l.mu.Unlock()
			continue
		}
		l.mu.Lock()
		l.handleMessage(connID, msg)
		l.mu.Unlock()
	}

	l.mu.Lock()
	l.disconnectLocked(connID)
	l.mu.Unlock()
}

func (l *Lobby) sendLocked(connID string, msg wsServerMessage) {
	conn := l.conns[connID]
	if conn == nil {
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("ws send to %s: %v", connID, err)
	}
}

func (l *Lobby) disconnectLocked(connID string) {
	delete(l.conns, connID)
	delete(l.names, connID)
	l.matchmaker.RemoveFromQueue(connID)
	l.matchmaker.CancelPrivate(connID)

	member, ok := l.members[connID]
	if !ok {
		return
	}
	delete(l.members, connID)
	session := l.games[member.gameID]
	if session == nil {
		return
	}
	delete(session.conns, member.seat)
	other := session.conns[member.seat.Other()]
	if other != "" {
		l.sendLocked(other, wsServerMessage{
			Type:    "opponent_disconnected",
			Message: "Your opponent has disconnected.",
		})
	}
	if len(session.conns) == 0 {
		delete(l.games, session.ID)
	}
}

func (l *Lobby) handleMessage(connID string, msg wsClientMessage) {
	switch msg.Type {
	case "quick_match":
		l.names[connID] = playerName(msg.Name)
		if other, ok := l.matchmaker.AddToQueue(connID); ok {
			l.startGame(other, connID)
		} else {
			l.sendLocked(connID, wsServerMessage{Type: "waiting", Message: "Waiting for opponent..."})
		}
	case "create_private":
		l.names[connID] = playerName(msg.Name)
		code := l.matchmaker.CreatePrivate(connID)
		l.sendLocked(connID, wsServerMessage{Type: "private_created", Code: code})
	case "join_private":
		l.names[connID] = playerName(msg.Name)
		if creator, ok := l.matchmaker.JoinPrivate(msg.Code); ok {
			l.startGame(creator, connID)
		} else {
			l.sendLocked(connID, wsServerMessage{Type: "error", Message: "game not found"})
		}
	case "discard":
		l.applyAction(connID, func(g *engine.TwoPlayerGame, seat engine.Seat) error {
			return g.Discard(seat, msg.CardIndices)
		})
	case "play_card":
		l.applyAction(connID, func(g *engine.TwoPlayerGame, seat engine.Seat) error {
			return g.PlayCard(seat, msg.CardIndex)
		})
	case "say_go":
		l.applyAction(connID, func(g *engine.TwoPlayerGame, seat engine.Seat) error {
			return g.SayGo(seat)
		})
	case "acknowledge":
		l.applyAction(connID, func(g *engine.TwoPlayerGame, seat engine.Seat) error {
			return g.Acknowledge(seat)
		})
	case "chat":
		member, ok := l.members[connID]
		if !ok {
			return
		}
		session := l.games[member.gameID]
		if session == nil {
			return
		}
		if other := session.conns[member.seat.Other()]; other != "" {
			l.sendLocked(other, wsServerMessage{Type: "chat", Message: msg.Message})
		}
	default:
		l.sendLocked(connID, wsServerMessage{Type: "error", Message: "unknown message type"})
	}
}

func playerName(name string) string {
	if name == "" {
		return "Player"
	}
	return name
}

func (l *Lobby) startGame(conn1, conn2 string) {
	session := &twoPlayerSession{
		ID:    uuid.NewString(),
		Game:  engine.NewTwoPlayerGame(l.names[conn1], l.names[conn2], l.rng.Int63()),
		conns: map[engine.Seat]string{engine.Seat1: conn1, engine.Seat2: conn2},
	}
	l.games[session.ID] = session
	l.members[conn1] = membership{gameID: session.ID, seat: engine.Seat1}
	l.members[conn2] = membership{gameID: session.ID, seat: engine.Seat2}

	l.sendLocked(conn1, wsServerMessage{Type: "game_start", State: BuildTwoPlayerState(session.Game, engine.Seat1, session.ID)})
	l.sendLocked(conn2, wsServerMessage{Type: "game_start", State: BuildTwoPlayerState(session.Game, engine.Seat2, session.ID)})
}

func (l *Lobby) applyAction(connID string, action func(g *engine.TwoPlayerGame, seat engine.Seat) error) {
	member, ok := l.members[connID]
	if !ok {
		l.sendLocked(connID, wsServerMessage{Type: "error", Message: "not in a game"})
		return
	}
	session := l.games[member.gameID]
	if session == nil {
		l.sendLocked(connID, wsServerMessage{Type: "error", Message: "game not found"})
		return
	}
	if err := action(session.Game, member.seat); err != nil {
		l.sendLocked(connID, wsServerMessage{Type: "error", Message: err.Error()})
		return
	}
	if session.Game.Phase == engine.PhaseGameOver && !session.recorded {
		session.recorded = true
		l.recordResult(session)
	}
	for seat, cid := range session.conns {
		l.sendLocked(cid, wsServerMessage{
			Type:  "game_state",
			State: BuildTwoPlayerState(session.Game, seat, session.ID),
		})
	}
}

func (l *Lobby) recordResult(session *twoPlayerSession) {
	if l.stats == nil {
		return
	}
	g := session.Game
	for seat := engine.Seat1; seat <= engine.Seat2; seat++ {
		me := g.Player(seat)
		opp := g.Player(seat.Other())
		err := l.stats.Record(stats.Result{
			PlayerName:    me.Name,
			OpponentName:  opp.Name,
			PlayerScore:   me.Score,
			OpponentScore: opp.Score,
			Won:           g.Winner == me.Name,
			Mode:          "multiplayer",
		})
		if err != nil {
			log.Printf("record multiplayer result: %v", err)
		}
	}
}
