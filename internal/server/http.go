package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"cribbage/internal/ai"
	"cribbage/internal/engine"
	"cribbage/internal/stats"
)

// Handler serves the single-player REST API and the stats endpoints.
type Handler struct {
	sessions *Manager
	stats    *stats.Store
}

func NewHandler(sessions *Manager, statsStore *stats.Store) *Handler {
	return &Handler{sessions: sessions, stats: statsStore}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/game/new", h.newGame)
	mux.HandleFunc("GET /api/v1/game/{id}", h.getGame)
	mux.HandleFunc("POST /api/v1/game/{id}/discard", h.discard)
	mux.HandleFunc("POST /api/v1/game/{id}/play", h.playCard)
	mux.HandleFunc("POST /api/v1/game/{id}/go", h.sayGo)
	mux.HandleFunc("POST /api/v1/game/{id}/acknowledge", h.acknowledge)
	mux.HandleFunc("GET /api/v1/stats/{player}", h.playerStats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorView{Code: code, Message: message})
}

func (h *Handler) newGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	if req.PlayerName == "" {
		req.PlayerName = "Player"
	}
	difficulty, err := ai.ParseDifficulty(req.AIDifficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_difficulty", err.Error())
		return
	}

	game := engine.NewGame(req.PlayerName, ai.New(difficulty, time.Now().UnixNano()), time.Now().UnixNano())
	session := h.sessions.Create(game, difficulty)
	writeJSON(w, http.StatusOK, BuildGameState(game, session.ID))
}

func (h *Handler) getGame(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "game not found")
		return
	}
	session.Do(func(g *engine.Game) {
		writeJSON(w, http.StatusOK, BuildGameState(g, session.ID))
	})
}

// withGame looks the session up and runs the action under its lock,
// rendering either the fresh state or the validation error. A finished game
// is recorded once.
func (h *Handler) withGame(w http.ResponseWriter, r *http.Request, action func(g *engine.Game) error) {
	session, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "game not found")
		return
	}
	session.Do(func(g *engine.Game) {
		if err := action(g); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_action", err.Error())
			return
		}
		if g.Phase == engine.PhaseGameOver && !session.recorded {
			session.recorded = true
			h.recordResult(session, g)
		}
		writeJSON(w, http.StatusOK, BuildGameState(g, session.ID))
	})
}

func (h *Handler) recordResult(session *Session, g *engine.Game) {
	if h.stats == nil {
		return
	}
	err := h.stats.Record(stats.Result{
		PlayerName:    g.Human.Name,
		OpponentName:  g.Computer.Name,
		PlayerScore:   g.Human.Score,
		OpponentScore: g.Computer.Score,
		Won:           g.Winner == g.Human.Name,
		Difficulty:    session.Difficulty.String(),
		Mode:          "single",
		HandScores:    g.HandScores,
		CribScores:    g.CribScores,
	})
	if err != nil {
		log.Printf("record game result: %v", err)
	}
}

func (h *Handler) discard(w http.ResponseWriter, r *http.Request) {
	var req DiscardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	h.withGame(w, r, func(g *engine.Game) error {
		return g.Discard(req.CardIndices)
	})
}

func (h *Handler) playCard(w http.ResponseWriter, r *http.Request) {
	var req PlayCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	h.withGame(w, r, func(g *engine.Game) error {
		return g.PlayCard(req.CardIndex)
	})
}

func (h *Handler) sayGo(w http.ResponseWriter, r *http.Request) {
	h.withGame(w, r, func(g *engine.Game) error {
		return g.SayGo()
	})
}

func (h *Handler) acknowledge(w http.ResponseWriter, r *http.Request) {
	h.withGame(w, r, func(g *engine.Game) error {
		return g.Acknowledge()
	})
}

func (h *Handler) playerStats(w http.ResponseWriter, r *http.Request) {
	if h.stats == nil {
		writeError(w, http.StatusNotFound, "not_found", "stats disabled")
		return
	}
	out, err := h.stats.PlayerStats(r.PathValue("player"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "stats_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}
