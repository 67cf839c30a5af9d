package engine

import (
	"errors"
	"fmt"
	"math/rand"
)

// Seat identifies one of the two symmetric player slots.
type Seat int

const (
	Seat1 Seat = iota
	Seat2
)

const seatNone Seat = -1

func (s Seat) Other() Seat {
	if s == Seat1 {
		return Seat2
	}
	return Seat1
}

// TwoPlayerGame is the symmetric two-human variant. Discards happen
// independently; every mutating call names the acting seat and is validated
// against the current turn. No side ever auto-plays.
type TwoPlayerGame struct {
	Phase Phase
	Round int

	Deck    []Card
	Starter *Card
	Crib    []Card

	PlayPile     []Card
	RunningTotal int

	LastAction     *Action
	ActionLog      []Action
	ScoreBreakdown *Breakdown
	Winner         string

	players   [2]PlayerState
	playHands [2][]Card
	discarded [2]bool

	rng          *rand.Rand
	currentTurn  Seat
	lastGoBy     Seat
	lastPlayedBy Seat
}

func NewTwoPlayerGame(name1, name2 string, seed int64) *TwoPlayerGame {
	g := &TwoPlayerGame{
		Phase: PhaseDiscard,
		Round: 1,
		rng:   rand.New(rand.NewSource(seed)),
	}
	g.players[Seat1] = PlayerState{Name: name1}
	g.players[Seat2] = PlayerState{Name: name2, IsDealer: true}
	g.dealRound()
	return g
}

func (g *TwoPlayerGame) Player(seat Seat) *PlayerState {
	return &g.players[seat]
}

func (g *TwoPlayerGame) PlayHand(seat Seat) []Card {
	return g.playHands[seat]
}

func (g *TwoPlayerGame) HasDiscarded(seat Seat) bool {
	return g.discarded[seat]
}

func (g *TwoPlayerGame) dealerSeat() Seat {
	if g.players[Seat1].IsDealer {
		return Seat1
	}
	return Seat2
}

func (g *TwoPlayerGame) dealRound() {
	g.Deck = Shuffle(NewDeck(), g.rng.Int63())
	g.players[Seat1].Hand, g.Deck = Deal(g.Deck, 6)
	g.players[Seat2].Hand, g.Deck = Deal(g.Deck, 6)
	g.Crib = nil
	g.Starter = nil
	g.PlayPile = nil
	g.RunningTotal = 0
	g.lastGoBy = seatNone
	g.lastPlayedBy = seatNone
	g.ScoreBreakdown = nil
	g.discarded[Seat1] = false
	g.discarded[Seat2] = false
	g.Phase = PhaseDiscard
}

func (g *TwoPlayerGame) checkWinner() bool {
	for s := Seat1; s <= Seat2; s++ {
		if g.players[s].Score >= WinningScore {
			g.Winner = g.players[s].Name
			g.Phase = PhaseGameOver
			return true
		}
	}
	return false
}

func (g *TwoPlayerGame) logAction(a Action) {
	g.LastAction = &a
	g.ActionLog = append(g.ActionLog, a)
}

// Discard puts two of the seat's cards in the crib. The phase stays at
// DISCARD until both seats have discarded; only then is the starter cut and
// play begun with the non-dealer to act.
func (g *TwoPlayerGame) Discard(seat Seat, indices []int) error {
	g.ActionLog = nil
	if g.Phase != PhaseDiscard {
		return fmt.Errorf("cannot discard in phase %s", g.Phase)
	}
	if g.discarded[seat] {
		return errors.New("already discarded")
	}
	if len(indices) != 2 {
		return errors.New("must discard exactly 2 cards")
	}
	if indices[0] == indices[1] {
		return errors.New("must discard 2 different cards")
	}
	p := &g.players[seat]
	for _, i := range indices {
		if i < 0 || i >= len(p.Hand) {
			return fmt.Errorf("invalid card index: %d", i)
		}
	}

	g.Crib = append(g.Crib, removeIndices(&p.Hand, indices)...)
	g.discarded[seat] = true
	g.logAction(Action{
		Actor:   p.Name,
		Kind:    "discard",
		Message: fmt.Sprintf("%s discards to the crib", p.Name),
	})

	if !g.discarded[seat.Other()] {
		return nil
	}

	var cut []Card
	cut, g.Deck = Deal(g.Deck, 1)
	g.Starter = &cut[0]

	if g.Starter.Rank == RankJ {
		d := &g.players[g.dealerSeat()]
		d.Score += 2
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

	g.playHands[Seat1] = append([]Card(nil), g.players[Seat1].Hand...)
	g.playHands[Seat2] = append([]Card(nil), g.players[Seat2].Hand...)
	g.currentTurn = g.dealerSeat().Other()
	g.Phase = PhasePlay
	return nil
}

// PlayCard pegs one card for the acting seat.
func (g *TwoPlayerGame) PlayCard(seat Seat, index int) error {
	g.ActionLog = nil
	if g.Phase != PhasePlay {
		return fmt.Errorf("cannot play in phase %s", g.Phase)
	}
	if g.currentTurn != seat {
		return errors.New("not your turn")
	}
	hand := g.playHands[seat]
	if index < 0 || index >= len(hand) {
		return fmt.Errorf("invalid card index: %d", index)
	}
	card := hand[index]
	if card.Value()+g.RunningTotal > 31 {
		return errors.New("that card would exceed 31")
	}

	g.playHands[seat] = append(hand[:index], hand[index+1:]...)
	g.PlayPile = append(g.PlayPile, card)
	g.RunningTotal += card.Value()
	g.lastPlayedBy = seat

	p := &g.players[seat]
	events := ScorePlay(g.PlayPile, g.RunningTotal)
	points := 0
	for i := range events {
		events[i].Player = p.Name
		points += events[i].Points
	}
	p.Score += points
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
		g.lastGoBy = seatNone
		g.lastPlayedBy = seatNone
	}
	if g.checkWinner() {
		return nil
	}

	if len(g.playHands[Seat1]) == 0 && len(g.playHands[Seat2]) == 0 {
		g.endPlayPhase()
		return nil
	}

	other := seat.Other()
	switch {
	case CanPlay(g.playHands[other], g.RunningTotal):
		g.currentTurn = other
		g.lastGoBy = seatNone
	case CanPlay(g.playHands[seat], g.RunningTotal):
		// Opponent is stuck, the same seat keeps pegging.
	default:
		g.sequenceDone()
	}
	return nil
}

// SayGo records that the seat cannot play; validated against the hand.
func (g *TwoPlayerGame) SayGo(seat Seat) error {
	g.ActionLog = nil
	if g.Phase != PhasePlay {
		return fmt.Errorf("cannot say go in phase %s", g.Phase)
	}
	if g.currentTurn != seat {
		return errors.New("not your turn")
	}
	if CanPlay(g.playHands[seat], g.RunningTotal) {
		return errors.New("you have playable cards, you must play one")
	}

	p := &g.players[seat]
	g.logAction(Action{
		Actor:   p.Name,
		Kind:    "go",
		Message: fmt.Sprintf("%s says Go!", p.Name),
	})

	other := seat.Other()
	switch {
	case g.lastGoBy != seatNone && g.lastGoBy != seat:
		g.sequenceDone()
	case CanPlay(g.playHands[other], g.RunningTotal):
		g.lastGoBy = seat
		g.currentTurn = other
	default:
		g.sequenceDone()
	}
	return nil
}

// sequenceDone ends an exhausted pegging sequence: last-card point, pile
// reset, and the lead for the next sequence.
func (g *TwoPlayerGame) sequenceDone() {
	firstGo := g.lastGoBy
	if g.lastPlayedBy != seatNone {
		p := &g.players[g.lastPlayedBy]
		p.Score++
		g.logAction(Action{
			Actor:   p.Name,
			Kind:    "score",
			Events:  []ScoreEvent{{Player: p.Name, Points: 1, Reason: "Go (last card)"}},
			Message: fmt.Sprintf("%s scores 1 for Go", p.Name),
		})
	}
	g.PlayPile = nil
	g.RunningTotal = 0
	g.lastGoBy = seatNone
	g.lastPlayedBy = seatNone
	if g.checkWinner() {
		return
	}
	if len(g.playHands[Seat1]) == 0 && len(g.playHands[Seat2]) == 0 {
		g.endPlayPhase()
		return
	}
	if firstGo != seatNone && len(g.playHands[firstGo]) > 0 {
		g.currentTurn = firstGo
	} else if len(g.playHands[g.currentTurn]) == 0 {
		g.currentTurn = g.currentTurn.Other()
	}
}

func (g *TwoPlayerGame) endPlayPhase() {
	if g.RunningTotal > 0 && g.lastPlayedBy != seatNone {
		p := &g.players[g.lastPlayedBy]
		p.Score++
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

// Acknowledge advances the counting phases. Either seat may acknowledge;
// counting is not turn-owned.
func (g *TwoPlayerGame) Acknowledge(seat Seat) error {
	g.ActionLog = nil
	dealer := g.dealerSeat()
	switch g.Phase {
	case PhaseCountNonDealer:
		g.countHand(dealer.Other(), g.players[dealer.Other()].Hand, false, "hand")
		if g.Phase == PhaseGameOver {
			return nil
		}
		g.Phase = PhaseCountDealer
	case PhaseCountDealer:
		g.countHand(dealer, g.players[dealer].Hand, false, "hand")
		if g.Phase == PhaseGameOver {
			return nil
		}
		g.Phase = PhaseCountCrib
	case PhaseCountCrib:
		g.countHand(dealer, g.Crib, true, "crib")
		if g.Phase == PhaseGameOver {
			return nil
		}
		g.players[Seat1].IsDealer = !g.players[Seat1].IsDealer
		g.players[Seat2].IsDealer = !g.players[Seat2].IsDealer
		g.Round++
		g.dealRound()
	default:
		return fmt.Errorf("cannot acknowledge in phase %s", g.Phase)
	}
	return nil
}

func (g *TwoPlayerGame) countHand(seat Seat, cards []Card, isCrib bool, what string) {
	p := &g.players[seat]
	total, events := ScoreHand(cards, *g.Starter, isCrib)
	for i := range events {
		events[i].Player = p.Name
	}
	p.Score += total
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
	g.checkWinner()
}

// YourTurn is computed per viewer: during DISCARD a seat that has not yet
// discarded may act; during PLAY only the current turn holder may.
func (g *TwoPlayerGame) YourTurn(seat Seat) bool {
	switch g.Phase {
	case PhaseDiscard:
		return !g.discarded[seat]
	case PhasePlay:
		return g.currentTurn == seat
	case PhaseCountNonDealer, PhaseCountDealer, PhaseCountCrib:
		return true
	default:
		return false
	}
}
