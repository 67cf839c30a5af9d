package engine

type Phase int

const (
	PhaseDiscard Phase = iota
	PhasePlay
	PhaseCountNonDealer
	PhaseCountDealer
	PhaseCountCrib
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseDiscard:
		return "discard"
	case PhasePlay:
		return "play"
	case PhaseCountNonDealer:
		return "count_non_dealer"
	case PhaseCountDealer:
		return "count_dealer"
	case PhaseCountCrib:
		return "count_crib"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// WinningScore ends the game the moment either player reaches it.
const WinningScore = 121

type PlayerState struct {
	Name     string
	Hand     []Card
	Score    int
	IsDealer bool
}

// ScoreEvent is one itemized point award. A breakdown's events always sum
// to its total.
type ScoreEvent struct {
	Player string `json:"player"`
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

// Action records one discrete game event for the caller's benefit: a play,
// a Go, or a score. The log is transient, cleared on every mutating call.
type Action struct {
	Actor   string       `json:"actor"`
	Kind    string       `json:"action"` // "play", "go", "discard", "score"
	Card    *Card        `json:"-"`
	Events  []ScoreEvent `json:"score_events,omitempty"`
	Message string       `json:"message"`
}

// Breakdown is the itemized result of counting one hand or crib.
type Breakdown struct {
	Hand    []Card
	Starter Card
	Items   []ScoreEvent
	Total   int
}

// Strategy picks moves for a computer player. Implementations live in
// internal/ai; the engine only needs the two capabilities.
type Strategy interface {
	// ChooseDiscards returns two distinct indices into a 6-card hand.
	ChooseDiscards(hand []Card, isDealer bool) []int
	// ChoosePlay returns an index into hand whose card keeps the running
	// total at or below 31, or ok=false when no such card exists.
	ChoosePlay(hand, pile []Card, runningTotal int) (index int, ok bool)
}
