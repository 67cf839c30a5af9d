package ai

import (
	"testing"

	"cribbage/internal/engine"
)

func mk(r engine.Rank, s engine.Suit) engine.Card {
	return engine.Card{Suit: s, Rank: r}
}

var allDifficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func TestParseDifficulty(t *testing.T) {
	cases := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"easy", DifficultyEasy, false},
		{"", DifficultyEasy, false},
		{"medium", DifficultyMedium, false},
		{"hard", DifficultyHard, false},
		{"impossible", DifficultyEasy, true},
	}
	for _, tc := range cases {
		got, err := ParseDifficulty(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDifficulty(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseDifficulty(%q) = %v, %v", tc.in, got, err)
		}
	}
}

func TestDifficultyString(t *testing.T) {
	for _, d := range allDifficulties {
		if d.String() == "unknown" {
			t.Errorf("difficulty %d has no name", d)
		}
	}
}

func TestChooseDiscardsAreValid(t *testing.T) {
	for _, d := range allDifficulties {
		for seed := int64(1); seed <= 10; seed++ {
			hand := engine.Shuffle(engine.NewDeck(), seed)[:6]
			indices := New(d, seed).ChooseDiscards(hand, seed%2 == 0)
			if len(indices) != 2 {
				t.Fatalf("%s seed %d: %d discards, want 2", d, seed, len(indices))
			}
			if indices[0] == indices[1] {
				t.Fatalf("%s seed %d: duplicate discard index %d", d, seed, indices[0])
			}
			for _, i := range indices {
				if i < 0 || i >= 6 {
					t.Fatalf("%s seed %d: index %d out of range", d, seed, i)
				}
			}
		}
	}
}

func TestChoosePlayIsLegal(t *testing.T) {
	hand := []engine.Card{
		mk(engine.RankK, engine.SuitHearts),
		mk(engine.Rank9, engine.SuitDiamonds),
		mk(engine.Rank5, engine.SuitClubs),
		mk(engine.RankA, engine.SuitSpades),
	}
	for _, d := range allDifficulties {
		strat := New(d, 1)
		for total := 0; total <= 30; total++ {
			idx, ok := strat.ChoosePlay(hand, nil, total)
			if ok != engine.CanPlay(hand, total) {
				t.Fatalf("%s at %d: ok = %v", d, total, ok)
			}
			if ok && total+hand[idx].Value() > 31 {
				t.Fatalf("%s at %d: chose %s past 31", d, total, hand[idx])
			}
		}
	}
}

func TestChoosePlayStuck(t *testing.T) {
	hand := []engine.Card{mk(engine.RankK, engine.SuitHearts), mk(engine.RankQ, engine.SuitDiamonds)}
	for _, d := range allDifficulties {
		if _, ok := New(d, 1).ChoosePlay(hand, nil, 25); ok {
			t.Errorf("%s: claimed a play with nothing legal", d)
		}
	}
}

func TestMediumCompletes31(t *testing.T) {
	hand := []engine.Card{mk(engine.Rank2, engine.SuitDiamonds), mk(engine.RankK, engine.SuitHearts)}
	idx, ok := New(DifficultyMedium, 1).ChoosePlay(hand, nil, 21)
	if !ok || idx != 1 {
		t.Fatalf("ChoosePlay = %d, %v; want the king for 31", idx, ok)
	}
}

func TestMediumTakesFifteen(t *testing.T) {
	hand := []engine.Card{mk(engine.Rank3, engine.SuitDiamonds), mk(engine.RankK, engine.SuitHearts)}
	idx, ok := New(DifficultyMedium, 1).ChoosePlay(hand, nil, 5)
	if !ok || idx != 1 {
		t.Fatalf("ChoosePlay = %d, %v; want the king for 15", idx, ok)
	}
}

func TestMediumPairsLastCard(t *testing.T) {
	pile := []engine.Card{mk(engine.Rank9, engine.SuitHearts)}
	hand := []engine.Card{mk(engine.Rank9, engine.SuitDiamonds), mk(engine.Rank4, engine.SuitClubs)}
	idx, ok := New(DifficultyMedium, 1).ChoosePlay(hand, pile, 18)
	if !ok || idx != 0 {
		t.Fatalf("ChoosePlay = %d, %v; want the pairing 9", idx, ok)
	}
}

func TestHardTakesScoringPlay(t *testing.T) {
	pile := []engine.Card{mk(engine.Rank7, engine.SuitHearts)}
	hand := []engine.Card{mk(engine.Rank8, engine.SuitDiamonds), mk(engine.Rank2, engine.SuitClubs)}
	idx, ok := New(DifficultyHard, 1).ChoosePlay(hand, pile, 7)
	if !ok || idx != 0 {
		t.Fatalf("ChoosePlay = %d, %v; want the 8 for fifteen", idx, ok)
	}
}

func TestHardAvoidsDangerousTotals(t *testing.T) {
	hand := []engine.Card{mk(engine.Rank5, engine.SuitHearts), mk(engine.Rank7, engine.SuitClubs)}
	for seed := int64(1); seed <= 5; seed++ {
		idx, ok := New(DifficultyHard, seed).ChoosePlay(hand, nil, 0)
		if !ok || idx != 1 {
			t.Fatalf("seed %d: ChoosePlay = %d, %v; leading a 5 invites a fifteen", seed, idx, ok)
		}
	}
}

func TestStrongTiersKeepFourFives(t *testing.T) {
	hand := []engine.Card{
		mk(engine.Rank5, engine.SuitHearts),
		mk(engine.Rank5, engine.SuitDiamonds),
		mk(engine.Rank5, engine.SuitClubs),
		mk(engine.Rank5, engine.SuitSpades),
		mk(engine.RankK, engine.SuitHearts),
		mk(engine.Rank9, engine.SuitDiamonds),
	}
	for _, d := range []Difficulty{DifficultyMedium, DifficultyHard} {
		indices := New(d, 1).ChooseDiscards(hand, false)
		if indices[0] != 4 || indices[1] != 5 {
			t.Errorf("%s discarded %v, want the king and the 9", d, indices)
		}
	}
}
