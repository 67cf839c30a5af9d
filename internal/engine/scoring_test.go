package engine

import (
	"strings"
	"testing"
)

func mk(r Rank, s Suit) Card {
	return Card{Suit: s, Rank: r}
}

func sumEvents(events []ScoreEvent) int {
	total := 0
	for _, e := range events {
		total += e.Points
	}
	return total
}

func hasReason(events []ScoreEvent, substr string) bool {
	for _, e := range events {
		if strings.Contains(e.Reason, substr) {
			return true
		}
	}
	return false
}

func TestScoreHandPerfect29(t *testing.T) {
	hand := []Card{mk(Rank5, SuitHearts), mk(Rank5, SuitDiamonds), mk(Rank5, SuitClubs), mk(RankJ, SuitSpades)}
	total, events := ScoreHand(hand, mk(Rank5, SuitSpades), false)
	if total != 29 {
		t.Fatalf("total = %d, want 29", total)
	}
	if sumEvents(events) != total {
		t.Fatalf("events sum to %d, total is %d", sumEvents(events), total)
	}
	if !hasReason(events, "Nobs") {
		t.Error("missing nobs event")
	}
	if !hasReason(events, "Four 5s for 12") {
		t.Error("missing four-of-a-kind event")
	}
}

func TestScoreHandZero(t *testing.T) {
	hand := []Card{mk(Rank2, SuitHearts), mk(Rank4, SuitDiamonds), mk(Rank6, SuitClubs), mk(Rank8, SuitHearts)}
	total, events := ScoreHand(hand, mk(Rank10, SuitSpades), false)
	if total != 0 {
		t.Fatalf("total = %d, want 0", total)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %v", events)
	}
}

func TestScoreHandFifteensAndRun(t *testing.T) {
	// 5+10 and 2+3+10 make fifteens; A-2-3 is a run.
	hand := []Card{mk(Rank5, SuitHearts), mk(Rank10, SuitDiamonds), mk(Rank2, SuitClubs), mk(Rank3, SuitSpades)}
	total, events := ScoreHand(hand, mk(RankA, SuitHearts), false)
	if total != 7 {
		t.Fatalf("total = %d, want 7", total)
	}
	if !hasReason(events, "2 fifteen(s) for 4") {
		t.Errorf("missing fifteens event: %v", events)
	}
	if !hasReason(events, "Run of 3 for 3") {
		t.Errorf("missing run event: %v", events)
	}
}

func TestScoreHandFourOfAKind(t *testing.T) {
	hand := []Card{mk(Rank7, SuitHearts), mk(Rank7, SuitDiamonds), mk(Rank7, SuitClubs), mk(Rank7, SuitSpades)}
	total, _ := ScoreHand(hand, mk(RankK, SuitHearts), false)
	if total != 12 {
		t.Fatalf("total = %d, want 12", total)
	}
}

func TestScoreHandDoubleRun(t *testing.T) {
	// Pair of 3s doubles the 3-4-5 run; K+5 and 3+3+4+5 are fifteens.
	hand := []Card{mk(Rank3, SuitHearts), mk(Rank3, SuitDiamonds), mk(Rank4, SuitClubs), mk(Rank5, SuitHearts)}
	total, events := ScoreHand(hand, mk(RankK, SuitSpades), false)
	if total != 12 {
		t.Fatalf("total = %d, want 12", total)
	}
	if !hasReason(events, "2x run of 3 for 6") {
		t.Errorf("missing double run event: %v", events)
	}
}

func TestScoreHandTripleRun(t *testing.T) {
	hand := []Card{mk(Rank6, SuitHearts), mk(Rank6, SuitDiamonds), mk(Rank6, SuitClubs), mk(Rank7, SuitSpades)}
	total, events := ScoreHand(hand, mk(Rank8, SuitHearts), false)
	if total != 17 {
		t.Fatalf("total = %d, want 17", total)
	}
	if !hasReason(events, "3x run of 3 for 9") {
		t.Errorf("missing triple run event: %v", events)
	}
}

func TestScoreHandRunOfFiveDoesNotDoubleCount(t *testing.T) {
	hand := []Card{mk(RankA, SuitHearts), mk(Rank2, SuitDiamonds), mk(Rank3, SuitClubs), mk(Rank4, SuitSpades)}
	total, events := ScoreHand(hand, mk(Rank5, SuitHearts), false)
	// One fifteen (the whole run) plus a single run of 5.
	if total != 7 {
		t.Fatalf("total = %d, want 7", total)
	}
	runs := 0
	for _, e := range events {
		if strings.Contains(e.Reason, "un of") {
			runs++
		}
	}
	if runs != 1 {
		t.Fatalf("expected exactly one run event, got %v", events)
	}
}

func TestScoreHandFlush(t *testing.T) {
	hand := []Card{mk(Rank2, SuitHearts), mk(Rank4, SuitHearts), mk(Rank6, SuitHearts), mk(Rank8, SuitHearts)}

	total, _ := ScoreHand(hand, mk(RankQ, SuitDiamonds), false)
	if total != 4 {
		t.Errorf("four-card flush = %d, want 4", total)
	}

	total, _ = ScoreHand(hand, mk(RankQ, SuitHearts), false)
	if total != 5 {
		t.Errorf("five-card flush = %d, want 5 (not 9)", total)
	}

	mixed := []Card{mk(Rank2, SuitHearts), mk(Rank4, SuitHearts), mk(Rank6, SuitHearts), mk(Rank8, SuitClubs)}
	total, _ = ScoreHand(mixed, mk(RankQ, SuitHearts), false)
	if total != 0 {
		t.Errorf("broken flush = %d, want 0", total)
	}
}

func TestScoreHandCribFlushRequiresStarter(t *testing.T) {
	crib := []Card{mk(Rank2, SuitHearts), mk(Rank4, SuitHearts), mk(Rank6, SuitHearts), mk(Rank8, SuitHearts)}

	total, _ := ScoreHand(crib, mk(RankQ, SuitDiamonds), true)
	if total != 0 {
		t.Errorf("crib flush without starter = %d, want 0", total)
	}

	total, _ = ScoreHand(crib, mk(RankQ, SuitHearts), true)
	if total != 5 {
		t.Errorf("crib flush with starter = %d, want 5", total)
	}
}

func TestScoreHandNobs(t *testing.T) {
	hand := []Card{mk(RankJ, SuitHearts), mk(Rank2, SuitClubs), mk(Rank4, SuitDiamonds), mk(Rank8, SuitSpades)}

	_, events := ScoreHand(hand, mk(Rank3, SuitHearts), false)
	if !hasReason(events, "Nobs for 1") {
		t.Errorf("expected nobs with matching starter suit: %v", events)
	}

	_, events = ScoreHand(hand, mk(Rank3, SuitSpades), false)
	if hasReason(events, "Nobs") {
		t.Errorf("unexpected nobs with non-matching starter suit: %v", events)
	}
}

func TestScorePlay(t *testing.T) {
	cases := []struct {
		name  string
		pile  []Card
		total int
		want  int
	}{
		{"fifteen", []Card{mk(Rank7, SuitHearts), mk(Rank8, SuitDiamonds)}, 15, 2},
		{"thirty-one", []Card{mk(RankK, SuitHearts), mk(RankQ, SuitDiamonds), mk(RankJ, SuitSpades), mk(RankA, SuitClubs)}, 31, 2},
		{"pair", []Card{mk(Rank5, SuitHearts), mk(Rank5, SuitDiamonds)}, 10, 2},
		{"trips and fifteen", []Card{mk(Rank5, SuitHearts), mk(Rank5, SuitDiamonds), mk(Rank5, SuitClubs)}, 15, 8},
		{"quads", []Card{mk(Rank3, SuitHearts), mk(Rank3, SuitDiamonds), mk(Rank3, SuitClubs), mk(Rank3, SuitSpades)}, 12, 12},
		{"out of order run", []Card{mk(Rank4, SuitHearts), mk(Rank2, SuitDiamonds), mk(Rank3, SuitClubs)}, 9, 3},
		{"run of four", []Card{mk(RankA, SuitHearts), mk(Rank4, SuitDiamonds), mk(Rank2, SuitClubs), mk(Rank3, SuitSpades)}, 10, 4},
		{"duplicate breaks run", []Card{mk(Rank2, SuitHearts), mk(Rank3, SuitDiamonds), mk(Rank4, SuitClubs), mk(Rank4, SuitSpades)}, 13, 2},
		{"nothing", []Card{mk(RankK, SuitHearts)}, 10, 0},
	}
	for _, tc := range cases {
		events := ScorePlay(tc.pile, tc.total)
		if got := sumEvents(events); got != tc.want {
			t.Errorf("%s: points = %d, want %d (events %v)", tc.name, got, tc.want, events)
		}
		if tc.want == 0 && len(events) != 0 {
			t.Errorf("%s: expected no events, got %v", tc.name, events)
		}
	}
}

func TestScorePlayRunNotScoredTwice(t *testing.T) {
	// Only the longest tail window counts: 2-3-4-5 scores 4, not 4+3.
	pile := []Card{mk(Rank2, SuitHearts), mk(Rank3, SuitDiamonds), mk(Rank4, SuitClubs), mk(Rank5, SuitSpades)}
	events := ScorePlay(pile, 14)
	if got := sumEvents(events); got != 4 {
		t.Fatalf("points = %d, want 4 (events %v)", got, events)
	}
}

func TestCanPlay(t *testing.T) {
	hand := []Card{mk(RankK, SuitHearts)}
	if CanPlay(hand, 25) {
		t.Error("K on 25 should not be playable")
	}
	if !CanPlay(hand, 21) {
		t.Error("K on 21 should be playable")
	}
	if CanPlay(nil, 0) {
		t.Error("empty hand can never play")
	}
}
