// Package ai implements the computer opponents. Three difficulty tiers
// share one capability set: choose two discards, choose a pegging play.
package ai

import (
	"fmt"
	"math/rand"

	"cribbage/internal/engine"
)

type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy", "":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return DifficultyEasy, fmt.Errorf("unknown difficulty %q", s)
	}
}

// New builds the strategy for a difficulty tier.
func New(d Difficulty, seed int64) engine.Strategy {
	rng := rand.New(rand.NewSource(seed))
	switch d {
	case DifficultyMedium:
		return &mediumStrategy{rng: rng}
	case DifficultyHard:
		return &hardStrategy{rng: rng}
	default:
		return &easyStrategy{rng: rng}
	}
}

func playableIndices(hand []engine.Card, runningTotal int) []int {
	var out []int
	for i, c := range hand {
		if c.Value()+runningTotal <= 31 {
			out = append(out, i)
		}
	}
	return out
}

// discardPairs enumerates the C(6,2)=15 two-card discard choices.
func discardPairs(n int) [][2]int {
	var out [][2]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, [2]int{i, j})
		}
	}
	return out
}

func keptCards(hand []engine.Card, discard [2]int) []engine.Card {
	kept := make([]engine.Card, 0, len(hand)-2)
	for i, c := range hand {
		if i != discard[0] && i != discard[1] {
			kept = append(kept, c)
		}
	}
	return kept
}

func cardsOutsideHand(hand []engine.Card) []engine.Card {
	inHand := map[engine.Card]bool{}
	for _, c := range hand {
		inHand[c] = true
	}
	var out []engine.Card
	for _, c := range engine.NewDeck() {
		if !inHand[c] {
			out = append(out, c)
		}
	}
	return out
}

// easyStrategy discards at random and plays any legal card.
type easyStrategy struct {
	rng *rand.Rand
}

func (s *easyStrategy) ChooseDiscards(hand []engine.Card, isDealer bool) []int {
	perm := s.rng.Perm(len(hand))
	a, b := perm[0], perm[1]
	if a > b {
		a, b = b, a
	}
	return []int{a, b}
}

func (s *easyStrategy) ChoosePlay(hand, pile []engine.Card, runningTotal int) (int, bool) {
	playable := playableIndices(hand, runningTotal)
	if len(playable) == 0 {
		return 0, false
	}
	return playable[s.rng.Intn(len(playable))], true
}

// mediumStrategy scores each discard choice against a sample of candidate
// starters and pegs with simple preferences.
type mediumStrategy struct {
	rng *rand.Rand
}

const mediumStarterSample = 8

func (s *mediumStrategy) ChooseDiscards(hand []engine.Card, isDealer bool) []int {
	outside := cardsOutsideHand(hand)
	sample := make([]engine.Card, 0, mediumStarterSample)
	for _, i := range s.rng.Perm(len(outside))[:mediumStarterSample] {
		sample = append(sample, outside[i])
	}

	best := [2]int{0, 1}
	bestAvg := -1.0
	for _, pair := range discardPairs(len(hand)) {
		kept := keptCards(hand, pair)
		total := 0
		for _, starter := range sample {
			pts, _ := engine.ScoreHand(kept, starter, false)
			total += pts
		}
		avg := float64(total) / float64(len(sample))
		if avg > bestAvg {
			bestAvg = avg
			best = pair
		}
	}
	return []int{best[0], best[1]}
}

func (s *mediumStrategy) ChoosePlay(hand, pile []engine.Card, runningTotal int) (int, bool) {
	playable := playableIndices(hand, runningTotal)
	if len(playable) == 0 {
		return 0, false
	}
	// Complete 31, then 15.
	for _, i := range playable {
		if runningTotal+hand[i].Value() == 31 {
			return i, true
		}
	}
	for _, i := range playable {
		if runningTotal+hand[i].Value() == 15 {
			return i, true
		}
	}
	// Pair the last card played.
	if len(pile) > 0 {
		last := pile[len(pile)-1].Rank
		for _, i := range playable {
			if hand[i].Rank == last {
				return i, true
			}
		}
	}
	// Avoid leaving 5 or 21: both are one ten-card from 15/31.
	var safe []int
	for _, i := range playable {
		if t := runningTotal + hand[i].Value(); t != 5 && t != 21 {
			safe = append(safe, i)
		}
	}
	if len(safe) > 0 {
		return safe[s.rng.Intn(len(safe))], true
	}
	return playable[s.rng.Intn(len(playable))], true
}

// hardStrategy evaluates discards against every possible starter and folds
// in an estimate of what the discarded pair is worth in the crib; pegging
// plays are simulated and penalized for what they expose.
type hardStrategy struct {
	rng *rand.Rand
}

func cribEstimate(d0, d1 engine.Card) float64 {
	value := 0.0
	if d0.Value() == 5 {
		value += 2.5
	}
	if d1.Value() == 5 {
		value += 2.5
	}
	if d0.Value()+d1.Value() == 15 {
		value += 2.0
	}
	if d0.Rank == d1.Rank {
		value += 2.0
	}
	diff := d0.Order() - d1.Order()
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 1:
		value += 1.0
	case 2:
		value += 0.5
	}
	if d0.Suit == d1.Suit {
		value += 0.5
	}
	return value
}

func (s *hardStrategy) ChooseDiscards(hand []engine.Card, isDealer bool) []int {
	outside := cardsOutsideHand(hand)

	best := [2]int{0, 1}
	bestAvg := -1000.0
	for _, pair := range discardPairs(len(hand)) {
		kept := keptCards(hand, pair)
		total := 0
		for _, starter := range outside {
			pts, _ := engine.ScoreHand(kept, starter, false)
			total += pts
		}
		avg := float64(total) / float64(len(outside))

		// The crib helps the dealer and hurts everyone else.
		est := cribEstimate(hand[pair[0]], hand[pair[1]])
		if isDealer {
			avg += est
		} else {
			avg -= est
		}

		if avg > bestAvg {
			bestAvg = avg
			best = pair
		}
	}
	return []int{best[0], best[1]}
}

func (s *hardStrategy) ChoosePlay(hand, pile []engine.Card, runningTotal int) (int, bool) {
	playable := playableIndices(hand, runningTotal)
	if len(playable) == 0 {
		return 0, false
	}

	var best []int
	bestNet := -1000.0
	for _, i := range playable {
		card := hand[i]
		newTotal := runningTotal + card.Value()
		simPile := append(append([]engine.Card(nil), pile...), card)
		pts := 0
		for _, e := range engine.ScorePlay(simPile, newTotal) {
			pts += e.Points
		}

		penalty := 0.0
		if newTotal == 5 || newTotal == 21 {
			penalty += 2.0
		} else if !(len(pile) > 0 && pile[len(pile)-1].Rank == card.Rank) && newTotal < 31 {
			// Exposes a fresh rank the opponent could pair.
			penalty += 0.3
		}

		net := float64(pts) - penalty
		if net > bestNet {
			bestNet = net
			best = best[:0]
			best = append(best, i)
		} else if net == bestNet {
			best = append(best, i)
		}
	}
	return best[s.rng.Intn(len(best))], true
}
