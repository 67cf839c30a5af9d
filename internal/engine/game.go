package engine

import (
	"errors"
	"fmt"
	"math/rand"
)

type side int

const (
	sideNone side = iota
	sideHuman
	sideComputer
)

// Game drives one human against one computer player from deal through
// discard, pegging and counting, round after round until someone reaches
// 121. All mutation happens through the four public calls; each clears the
// action log and either completes or fails validation without touching
// state.
type Game struct {
	Phase Phase
	Round int

	Human    PlayerState
	Computer PlayerState

	Deck    []Card
	Starter *Card
	Crib    []Card

	PlayPile         []Card
	RunningTotal     int
	HumanPlayHand    []Card
	ComputerPlayHand []Card

	LastAction     *Action
	ActionLog      []Action
	ScoreBreakdown *Breakdown
	Winner         string

	// Per-round human hand/crib counting history, reported upstream when
	// the game ends.
	HandScores []int
	CribScores []int

	strategy     Strategy
	rng          *rand.Rand
	currentTurn  side
	lastGoBy     side
	lastPlayedBy side
}

// NewGame deals the first round. The human starts as non-dealer; the
// computer discards to the crib immediately.
func NewGame(playerName string, strat Strategy, seed int64) *Game {
	g := &Game{
		Phase:    PhaseDiscard,
		Round:    1,
		Human:    PlayerState{Name: playerName},
		Computer: PlayerState{Name: "Computer", IsDealer: true},
		strategy: strat,
		rng:      rand.New(rand.NewSource(seed)),
	}
	g.dealRound()
	return g
}

func (g *Game) dealer() *PlayerState {
	if g.Human.IsDealer {
		return &g.Human
	}
	return &g.Computer
}

func (g *Game) nonDealer() *PlayerState {
	if g.Human.IsDealer {
		return &g.Computer
	}
	return &g.Human
}

func (g *Game) dealRound() {
	g.Deck = Shuffle(NewDeck(), g.rng.Int63())
	g.Human.Hand, g.Deck = Deal(g.Deck, 6)
	g.Computer.Hand, g.Deck = Deal(g.Deck, 6)
	g.Crib = nil
	g.Starter = nil
	g.PlayPile = nil
	g.RunningTotal = 0
	g.lastGoBy = sideNone
	g.lastPlayedBy = sideNone
	g.ScoreBreakdown = nil
	g.Phase = PhaseDiscard

	indices := g.strategy.ChooseDiscards(append([]Card(nil), g.Computer.Hand...), g.Computer.IsDealer)
	g.Crib = append(g.Crib, removeIndices(&g.Computer.Hand, indices)...)
}

// removeIndices removes the given hand positions (two distinct, in any
// order) and returns the removed cards.
func removeIndices(hand *[]Card, indices []int) []Card {
	sorted := append([]int(nil), indices...)
	if len(sorted) == 2 && sorted[0] < sorted[1] {
		sorted[0], sorted[1] = sorted[1], sorted[0]
	}
	var removed []Card
	for _, i := range sorted {
		removed = append(removed, (*hand)[i])
		*hand = append((*hand)[:i], (*hand)[i+1:]...)
	}
	return removed
}

func (g *Game) logAction(a Action) {
	g.LastAction = &a
	g.ActionLog = append(g.ActionLog, a)
}

func (g *Game) addScore(p *PlayerState, points int) {
	p.Score += points
}

func (g *Game) checkWinner() bool {
	if g.Human.Score >= WinningScore {
		g.Winner = g.Human.Name
		g.Phase = PhaseGameOver
		return true
	}
	if g.Computer.Score >= WinningScore {
		g.Winner = g.Computer.Name
		g.Phase = PhaseGameOver
		return true
	}
	return false
}

// Discard moves two cards from the human's hand to the crib, cuts the
// starter and begins the play phase. The computer auto-plays if it leads.
func (g *Game) Discard(indices []int) error {
	g.ActionLog = nil
	if g.Phase != PhaseDiscard {
		return fmt.Errorf("cannot discard in phase %s", g.Phase)
	}
	if len(indices) != 2 {
		return errors.New("must discard exactly 2 cards")
	}
	if indices[0] == indices[1] {
		return errors.New("must discard 2 different cards")
	}
	for _, i := range indices {
		if i < 0 || i >= len(g.Human.Hand) {
			return fmt.Errorf("invalid card index: %d", i)
		}
	}

	g.Crib = append(g.Crib, removeIndices(&g.Human.Hand, indices)...)

	var cut []Card
	cut, g.Deck = Deal(g.Deck, 1)
	g.Starter = &cut[0]

	// His Heels: a Jack starter is 2 to the dealer.
	if g.Starter.Rank == RankJ {
		d := g.dealer()
		g.addScore(d, 2)
		g.logAction(Action{
			Actor:   d.Name,
			Kind:    "score",
			Events:  []ScoreEvent{{Player: d.Name, Points: 2, Reason: "His Heels (Jack starter)"}},
			Message: fmt.Sprintf("%s scores 2 for His Heels!", d.Name),
		})
		if g.checkWinner() {
			return nil
		}
	}

	g.HumanPlayHand = append([]Card(nil), g.Human.Hand...)
	g.ComputerPlayHand = append([]Card(nil), g.Computer.Hand...)
	g.PlayPile = nil
	g.RunningTotal = 0
	g.Phase = PhasePlay
	if g.Human.IsDealer {
		g.currentTurn = sideComputer
		g.computerPlayTurn()
	} else {
		g.currentTurn = sideHuman
	}
	return nil
}

// PlayCard pegs one card from the human's play hand.
func (g *Game) PlayCard(index int) error {
	g.ActionLog = nil
	if g.Phase != PhasePlay {
		return fmt.Errorf("cannot play in phase %s", g.Phase)
	}
	if g.currentTurn != sideHuman {
		return errors.New("not your turn")
	}
	if index < 0 || index >= len(g.HumanPlayHand) {
		return fmt.Errorf("invalid card index: %d", index)
	}
	card := g.HumanPlayHand[index]
	if card.Value()+g.RunningTotal > 31 {
		return errors.New("that card would exceed 31")
	}

	g.HumanPlayHand = append(g.HumanPlayHand[:index], g.HumanPlayHand[index+1:]...)
	g.pegCard(sideHuman, card)

	if g.Phase != PhasePlay {
		return nil
	}
	if len(g.HumanPlayHand) == 0 && len(g.ComputerPlayHand) == 0 {
		g.endPlayPhase()
		return nil
	}

	g.currentTurn = sideComputer
	g.lastGoBy = sideNone
	g.computerPlayTurn()
	return nil
}

// pegCard applies one played card for either side: pile, total, pegging
// score, 31 reset.
func (g *Game) pegCard(who side, card Card) {
	g.PlayPile = append(g.PlayPile, card)
	g.RunningTotal += card.Value()
	g.lastPlayedBy = who

	p := &g.Human
	if who == sideComputer {
		p = &g.Computer
	}
	events := ScorePlay(g.PlayPile, g.RunningTotal)
	points := 0
	for i := range events {
		events[i].Player = p.Name
		points += events[i].Points
	}
	if points > 0 {
		g.addScore(p, points)
	}
	g.logAction(Action{
		Actor:   p.Name,
		Kind:    "play",
		Card:    &card,
		Events:  events,
		Message: fmt.Sprintf("%s plays %s", p.Name, card),
	})

	if g.RunningTotal == 31 {
		g.PlayPile = nil
		g.RunningTotal = 0
		g.lastGoBy = sideNone
		g.lastPlayedBy = sideNone
	}
	g.checkWinner()
}

// SayGo records that the human cannot play. The claim is re-validated; a
// Go with a legal card available is rejected.
func (g *Game) SayGo() error {
	g.ActionLog = nil
	if g.Phase != PhasePlay {
		return fmt.Errorf("cannot say go in phase %s", g.Phase)
	}
	if g.currentTurn != sideHuman {
		return errors.New("not your turn")
	}
	if CanPlay(g.HumanPlayHand, g.RunningTotal) {
		return errors.New("you have playable cards, you must play one")
	}

	g.logAction(Action{
		Actor:   g.Human.Name,
		Kind:    "go",
		Message: fmt.Sprintf("%s says Go!", g.Human.Name),
	})
	g.handleGo(sideHuman)
	if g.Phase == PhasePlay && g.currentTurn == sideComputer {
		g.computerPlayTurn()
	}
	return nil
}

// handleGo resolves one Go declaration. When the opponent already said Go
// in this exchange, or cannot respond at all, the sequence is done: the
// side that played the last card scores 1, the pile resets, and the first
// Go-sayer leads next. The caller drives any computer turn that follows.
func (g *Game) handleGo(who side) {
	other, otherHand := sideComputer, g.ComputerPlayHand
	if who == sideComputer {
		other, otherHand = sideHuman, g.HumanPlayHand
	}
	switch {
	case g.lastGoBy != sideNone && g.lastGoBy != who:
		g.sequenceDone()
	case CanPlay(otherHand, g.RunningTotal):
		g.lastGoBy = who
		g.currentTurn = other
	default:
		if g.lastGoBy == sideNone {
			g.lastGoBy = who
		}
		g.sequenceDone()
	}
}

// sequenceDone ends an exhausted pegging sequence: last-card point, pile
// reset, and the lead for the next one.
func (g *Game) sequenceDone() {
	firstGo := g.lastGoBy
	if g.lastPlayedBy != sideNone {
		p := &g.Human
		if g.lastPlayedBy == sideComputer {
			p = &g.Computer
		}
		g.addScore(p, 1)
		g.logAction(Action{
			Actor:   p.Name,
			Kind:    "score",
			Events:  []ScoreEvent{{Player: p.Name, Points: 1, Reason: "Go (last card)"}},
			Message: fmt.Sprintf("%s scores 1 for Go", p.Name),
		})
	}
	g.PlayPile = nil
	g.RunningTotal = 0
	g.lastGoBy = sideNone
	g.lastPlayedBy = sideNone
	if g.checkWinner() {
		return
	}
	if len(g.HumanPlayHand) == 0 && len(g.ComputerPlayHand) == 0 {
		g.endPlayPhase()
		return
	}
	g.currentTurn = firstGo
	if g.currentTurn == sideNone ||
		(g.currentTurn == sideHuman && len(g.HumanPlayHand) == 0) ||
		(g.currentTurn == sideComputer && len(g.ComputerPlayHand) == 0) {
		if len(g.HumanPlayHand) > 0 {
			g.currentTurn = sideHuman
		} else {
			g.currentTurn = sideComputer
		}
	}
}

// computerPlayTurn lets the computer act until the turn comes back to the
// human or the play phase ends. Each side holds at most 4 pegging cards, so
// the loop is bounded.
func (g *Game) computerPlayTurn() {
	for steps := 0; steps < 32; steps++ {
		if g.currentTurn != sideComputer || g.Phase != PhasePlay {
			return
		}
		if len(g.ComputerPlayHand) == 0 {
			if len(g.HumanPlayHand) == 0 {
				g.endPlayPhase()
				return
			}
			g.currentTurn = sideHuman
			return
		}

		idx, ok := g.strategy.ChoosePlay(g.ComputerPlayHand, g.PlayPile, g.RunningTotal)
		if !ok {
			g.logAction(Action{
				Actor:   g.Computer.Name,
				Kind:    "go",
				Message: "Computer says Go!",
			})
			g.handleGo(sideComputer)
			if g.Phase == PhasePlay && g.currentTurn == sideComputer {
				continue
			}
			return
		}

		card := g.ComputerPlayHand[idx]
		g.ComputerPlayHand = append(g.ComputerPlayHand[:idx], g.ComputerPlayHand[idx+1:]...)
		g.pegCard(sideComputer, card)

		if g.Phase != PhasePlay {
			return
		}
		if len(g.HumanPlayHand) == 0 && len(g.ComputerPlayHand) == 0 {
			g.endPlayPhase()
			return
		}

		if len(g.HumanPlayHand) > 0 {
			if CanPlay(g.HumanPlayHand, g.RunningTotal) {
				g.currentTurn = sideHuman
				return
			}
			// Human is stuck; their Go is automatic.
			g.logAction(Action{
				Actor:   g.Human.Name,
				Kind:    "go",
				Message: fmt.Sprintf("%s says Go!", g.Human.Name),
			})
			g.handleGo(sideHuman)
			if g.Phase != PhasePlay || g.currentTurn != sideComputer {
				return
			}
			continue
		}
		// Human is out of cards, computer keeps pegging.
	}
	panic("computer play did not terminate")
}

// endPlayPhase awards the last-card point and moves to counting.
func (g *Game) endPlayPhase() {
	if g.RunningTotal > 0 && g.lastPlayedBy != sideNone {
		p := &g.Human
		if g.lastPlayedBy == sideComputer {
			p = &g.Computer
		}
		g.addScore(p, 1)
		g.logAction(Action{
			Actor:   p.Name,
			Kind:    "score",
			Events:  []ScoreEvent{{Player: p.Name, Points: 1, Reason: "Last card for 1"}},
			Message: fmt.Sprintf("%s scores 1 for last card", p.Name),
		})
		if g.checkWinner() {
			return
		}
	}
	g.PlayPile = nil
	g.RunningTotal = 0
	g.Phase = PhaseCountNonDealer
}

// Acknowledge advances through the counting phases: non-dealer hand, dealer
// hand, crib, then dealer swap and redeal.
func (g *Game) Acknowledge() error {
	g.ActionLog = nil
	switch g.Phase {
	case PhaseCountNonDealer:
		g.countHand(g.nonDealer(), g.nonDealer().Hand, false, "hand")
		if g.Phase == PhaseGameOver {
			return nil
		}
		g.Phase = PhaseCountDealer
	case PhaseCountDealer:
		g.countHand(g.dealer(), g.dealer().Hand, false, "hand")
		if g.Phase == PhaseGameOver {
			return nil
		}
		g.Phase = PhaseCountCrib
	case PhaseCountCrib:
		g.countHand(g.dealer(), g.Crib, true, "crib")
		if g.Phase == PhaseGameOver {
			return nil
		}
		g.Human.IsDealer = !g.Human.IsDealer
		g.Computer.IsDealer = !g.Computer.IsDealer
		g.Round++
		g.dealRound()
	default:
		return fmt.Errorf("cannot acknowledge in phase %s", g.Phase)
	}
	return nil
}

func (g *Game) countHand(p *PlayerState, cards []Card, isCrib bool, what string) {
	total, events := ScoreHand(cards, *g.Starter, isCrib)
	for i := range events {
		events[i].Player = p.Name
	}
	g.addScore(p, total)
	g.ScoreBreakdown = &Breakdown{
		Hand:    append([]Card(nil), cards...),
		Starter: *g.Starter,
		Items:   events,
		Total:   total,
	}
	g.logAction(Action{
		Actor:   p.Name,
		Kind:    "score",
		Events:  events,
		Message: fmt.Sprintf("%s scores %d in %s", p.Name, total, what),
	})
	if p == &g.Human {
		if isCrib {
			g.CribScores = append(g.CribScores, total)
		} else {
			g.HandScores = append(g.HandScores, total)
		}
	}
	g.checkWinner()
}

// YourTurn reports whether the human may act right now.
func (g *Game) YourTurn() bool {
	switch g.Phase {
	case PhaseDiscard:
		return true
	case PhasePlay:
		return g.currentTurn == sideHuman
	case PhaseCountNonDealer, PhaseCountDealer, PhaseCountCrib:
		return true
	default:
		return false
	}
}
