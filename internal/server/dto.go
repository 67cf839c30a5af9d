package server

import "cribbage/internal/engine"

type CardDTO struct {
	Suit  string `json:"suit"`
	Rank  string `json:"rank"`
	Value int    `json:"value"`
}

func cardToDTO(c engine.Card) CardDTO {
	return CardDTO{Suit: c.Suit.String(), Rank: c.Rank.String(), Value: c.Value()}
}

func cardsToDTO(cards []engine.Card) []CardDTO {
	out := make([]CardDTO, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardToDTO(c))
	}
	return out
}

type NewGameRequest struct {
	PlayerName   string `json:"player_name"`
	AIDifficulty string `json:"ai_difficulty"`
}

type DiscardRequest struct {
	CardIndices []int `json:"card_indices"`
}

type PlayCardRequest struct {
	CardIndex int `json:"card_index"`
}

type ErrorView struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PlayerView struct {
	Name     string    `json:"name"`
	Hand     []CardDTO `json:"hand"`
	Score    int       `json:"score"`
	IsDealer bool      `json:"is_dealer"`
}

type OpponentView struct {
	Name      string `json:"name"`
	HandCount int    `json:"hand_count"`
	Score     int    `json:"score"`
	IsDealer  bool   `json:"is_dealer"`
}

type BreakdownView struct {
	Hand    []CardDTO           `json:"hand"`
	Starter CardDTO             `json:"starter"`
	Items   []engine.ScoreEvent `json:"items"`
	Total   int                 `json:"total"`
}

type GameStateView struct {
	GameID         string         `json:"game_id"`
	Phase          string         `json:"phase"`
	Player         PlayerView     `json:"player"`
	Opponent       OpponentView   `json:"opponent"`
	Starter        *CardDTO       `json:"starter,omitempty"`
	CribCount      int            `json:"crib_count"`
	PlayPile       []CardDTO      `json:"play_pile"`
	RunningTotal   int            `json:"running_total"`
	LastAction     *ActionView    `json:"last_action,omitempty"`
	ActionLog      []ActionView   `json:"action_log"`
	ScoreBreakdown *BreakdownView `json:"score_breakdown,omitempty"`
	Winner         string         `json:"winner,omitempty"`
	RoundNumber    int            `json:"round_number"`
	YourTurn       bool           `json:"your_turn"`
}
