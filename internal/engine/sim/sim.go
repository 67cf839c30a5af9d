// Package sim drives whole games of self-play to shake out state machine
// bugs: stuck turns, card duplication or loss, unbounded pegging.
package sim

import (
	"fmt"

	"cribbage/internal/engine"
)

type stepRecord struct {
	Step  int
	Phase engine.Phase
	What  string
}

// RunSelfPlay plays one full single-player game: the scripted human plays
// the first legal card (or says Go), acknowledges every count, and the
// computer side uses the supplied strategy. Invariants are checked after
// every call. Returns an error describing the first violation.
func RunSelfPlay(strat engine.Strategy, seed int64, maxSteps int) error {
	g := engine.NewGame("Sim", strat, seed)

	records := []stepRecord{}
	for step := 0; step < maxSteps; step++ {
		if g.Phase == engine.PhaseGameOver {
			if g.Winner == "" {
				return failure(seed, step, g, records, "game over without winner")
			}
			return nil
		}

		var what string
		var err error
		switch g.Phase {
		case engine.PhaseDiscard:
			what = "discard"
			err = g.Discard([]int{0, 1})
		case engine.PhasePlay:
			if idx, ok := firstLegal(g.HumanPlayHand, g.RunningTotal); ok {
				what = "play"
				err = g.PlayCard(idx)
			} else {
				what = "go"
				err = g.SayGo()
			}
		case engine.PhaseCountNonDealer, engine.PhaseCountDealer, engine.PhaseCountCrib:
			what = "acknowledge"
			err = g.Acknowledge()
		}
		if err != nil {
			return failure(seed, step, g, records, fmt.Sprintf("%s: %v", what, err))
		}
		records = append(records, stepRecord{Step: step, Phase: g.Phase, What: what})
		if err := checkInvariants(g); err != nil {
			return failure(seed, step, g, records, err.Error())
		}
	}
	return failure(seed, maxSteps, g, records, "game did not terminate")
}

func firstLegal(hand []engine.Card, runningTotal int) (int, bool) {
	for i, c := range hand {
		if runningTotal+c.Value() <= 31 {
			return i, true
		}
	}
	return 0, false
}

func checkInvariants(g *engine.Game) error {
	total, dup := countCards(g)
	if total != 52 {
		return fmt.Errorf("card count mismatch: %d", total)
	}
	if dup {
		return fmt.Errorf("duplicate card detected")
	}
	if g.RunningTotal > 31 {
		return fmt.Errorf("running total exceeds 31: %d", g.RunningTotal)
	}
	if g.Phase != engine.PhaseGameOver {
		if g.Human.Score >= engine.WinningScore || g.Computer.Score >= engine.WinningScore {
			return fmt.Errorf("score past threshold but phase %s", g.Phase)
		}
	}
	if g.Phase == engine.PhasePlay && g.Starter == nil {
		return fmt.Errorf("play phase without starter")
	}
	return nil
}

// countCards tallies the full 52-card set: scoring hands, crib, starter and
// deck. Pegging hands are copies of the scoring hands and not counted.
func countCards(g *engine.Game) (int, bool) {
	seen := map[engine.Card]bool{}
	total := 0
	dup := false
	add := func(c engine.Card) {
		total++
		if seen[c] {
			dup = true
		}
		seen[c] = true
	}
	for _, c := range g.Human.Hand {
		add(c)
	}
	for _, c := range g.Computer.Hand {
		add(c)
	}
	for _, c := range g.Crib {
		add(c)
	}
	for _, c := range g.Deck {
		add(c)
	}
	if g.Starter != nil {
		add(*g.Starter)
	}
	return total, dup
}

func failure(seed int64, step int, g *engine.Game, records []stepRecord, reason string) error {
	start := 0
	if len(records) > 20 {
		start = len(records) - 20
	}
	trace := ""
	for _, r := range records[start:] {
		trace += fmt.Sprintf("[s%d %s] %s\n", r.Step, r.Phase, r.What)
	}
	return fmt.Errorf("seed=%d step=%d phase=%s scores=%d/%d reason=%s\nlast steps:\n%s",
		seed, step, g.Phase, g.Human.Score, g.Computer.Score, reason, trace)
}
