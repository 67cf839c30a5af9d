package server

import "cribbage/internal/engine"

// ActionView renders one entry of the per-call action log: everything that
// happened inside a single mutating request, in order.
type ActionView struct {
	Actor       string              `json:"actor"`
	Action      string              `json:"action"`
	Card        *CardDTO            `json:"card,omitempty"`
	ScoreEvents []engine.ScoreEvent `json:"score_events,omitempty"`
	Message     string              `json:"message"`
}

func actionToView(a engine.Action) ActionView {
	v := ActionView{
		Actor:       a.Actor,
		Action:      a.Kind,
		ScoreEvents: a.Events,
		Message:     a.Message,
	}
	if a.Card != nil {
		dto := cardToDTO(*a.Card)
		v.Card = &dto
	}
	return v
}

func actionLogToView(log []engine.Action) []ActionView {
	out := make([]ActionView, 0, len(log))
	for _, a := range log {
		out = append(out, actionToView(a))
	}
	return out
}
