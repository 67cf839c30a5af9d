package server

import "cribbage/internal/engine"

// BuildGameState projects a single-player game for its one human viewer.
// During play the pegging hand is shown; otherwise the scoring hand.
func BuildGameState(g *engine.Game, gameID string) *GameStateView {
	hand := g.Human.Hand
	opponentCount := len(g.Computer.Hand)
	if g.Phase == engine.PhasePlay {
		hand = g.HumanPlayHand
		opponentCount = len(g.ComputerPlayHand)
	}

	view := &GameStateView{
		GameID: gameID,
		Phase:  g.Phase.String(),
		Player: PlayerView{
			Name:     g.Human.Name,
			Hand:     cardsToDTO(hand),
			Score:    g.Human.Score,
			IsDealer: g.Human.IsDealer,
		},
		Opponent: OpponentView{
			Name:      g.Computer.Name,
			HandCount: opponentCount,
			Score:     g.Computer.Score,
			IsDealer:  g.Computer.IsDealer,
		},
		CribCount:    len(g.Crib),
		PlayPile:     cardsToDTO(g.PlayPile),
		RunningTotal: g.RunningTotal,
		ActionLog:    actionLogToView(g.ActionLog),
		Winner:       g.Winner,
		RoundNumber:  g.Round,
		YourTurn:     g.YourTurn(),
	}
	if g.Starter != nil {
		dto := cardToDTO(*g.Starter)
		view.Starter = &dto
	}
	if g.LastAction != nil {
		a := actionToView(*g.LastAction)
		view.LastAction = &a
	}
	if g.ScoreBreakdown != nil {
		view.ScoreBreakdown = breakdownToView(g.ScoreBreakdown)
	}
	return view
}

// BuildTwoPlayerState projects a two-player game for one seat. The viewer
// sees their own hand in full and the opponent's only as a count.
func BuildTwoPlayerState(g *engine.TwoPlayerGame, seat engine.Seat, gameID string) *GameStateView {
	me := g.Player(seat)
	opp := g.Player(seat.Other())

	hand := me.Hand
	opponentCount := len(opp.Hand)
	if g.Phase == engine.PhasePlay {
		hand = g.PlayHand(seat)
		opponentCount = len(g.PlayHand(seat.Other()))
	}

	view := &GameStateView{
		GameID: gameID,
		Phase:  g.Phase.String(),
		Player: PlayerView{
			Name:     me.Name,
			Hand:     cardsToDTO(hand),
			Score:    me.Score,
			IsDealer: me.IsDealer,
		},
		Opponent: OpponentView{
			Name:      opp.Name,
			HandCount: opponentCount,
			Score:     opp.Score,
			IsDealer:  opp.IsDealer,
		},
		CribCount:    len(g.Crib),
		PlayPile:     cardsToDTO(g.PlayPile),
		RunningTotal: g.RunningTotal,
		ActionLog:    actionLogToView(g.ActionLog),
		Winner:       g.Winner,
		RoundNumber:  g.Round,
		YourTurn:     g.YourTurn(seat),
	}
	if g.Starter != nil {
		dto := cardToDTO(*g.Starter)
		view.Starter = &dto
	}
	if g.LastAction != nil {
		a := actionToView(*g.LastAction)
		view.LastAction = &a
	}
	if g.ScoreBreakdown != nil {
		view.ScoreBreakdown = breakdownToView(g.ScoreBreakdown)
	}
	return view
}

func breakdownToView(b *engine.Breakdown) *BreakdownView {
	return &BreakdownView{
		Hand:    cardsToDTO(b.Hand),
		Starter: cardToDTO(b.Starter),
		Items:   b.Items,
		Total:   b.Total,
	}
}
