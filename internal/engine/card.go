package engine

import (
	"fmt"
	"math/rand"
)

type Suit int

type Rank int

const (
	SuitHearts Suit = iota
	SuitDiamonds
	SuitClubs
	SuitSpades
)

// Ranks carry their run-order value directly: A=1 .. K=13.
const (
	RankA Rank = iota + 1
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
)

func (s Suit) String() string {
	switch s {
	case SuitHearts:
		return "Hearts"
	case SuitDiamonds:
		return "Diamonds"
	case SuitClubs:
		return "Clubs"
	case SuitSpades:
		return "Spades"
	default:
		return "?"
	}
}

func (r Rank) String() string {
	switch r {
	case RankA:
		return "A"
	case RankJ:
		return "J"
	case RankQ:
		return "Q"
	case RankK:
		return "K"
	default:
		if r >= Rank2 && r <= Rank10 {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Card is a value type; identity is (Suit, Rank) only.
type Card struct {
	Suit Suit
	Rank Rank
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Value is the scoring value: A=1, faces=10, everything else its rank.
func (c Card) Value() int {
	if c.Rank > Rank10 {
		return 10
	}
	return int(c.Rank)
}

// Order is the position in a run: A=1 .. K=13.
func (c Card) Order() int {
	return int(c.Rank)
}

// NewDeck returns all 52 cards in canonical order.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades} {
		for r := RankA; r <= RankK; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle returns a new uniformly random permutation of deck.
func Shuffle(deck []Card, seed int64) []Card {
	shuffled := make([]Card, len(deck))
	copy(shuffled, deck)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// Deal removes the first n cards from deck. Dealing past exhaustion is a
// programmer error, not a game state.
func Deal(deck []Card, n int) (dealt, rest []Card) {
	if n > len(deck) {
		panic(fmt.Sprintf("deal %d from deck of %d", n, len(deck)))
	}
	return deck[:n], deck[n:]
}
