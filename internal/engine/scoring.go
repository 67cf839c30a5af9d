package engine

import "fmt"

// ScoreHand counts a 4-card hand (or crib) against the starter. Events are
// reported in canonical order: fifteens, pairs, runs, flush, nobs. The
// Player field is left empty for the caller to fill.
//
// Flush rule: four matching hand suits score 4, superseded by 5 when the
// starter matches as well. A crib flush requires all five suits to match.
func ScoreHand(hand []Card, starter Card, isCrib bool) (int, []ScoreEvent) {
	total := 0
	var events []ScoreEvent
	combined := append(append([]Card(nil), hand...), starter)

	if fifteens := countFifteens(combined); fifteens > 0 {
		pts := fifteens * 2
		total += pts
		events = append(events, ScoreEvent{Points: pts, Reason: fmt.Sprintf("%d fifteen(s) for %d", fifteens, pts)})
	}

	counts := map[Rank]int{}
	for _, c := range combined {
		counts[c.Rank]++
	}
	for r := RankA; r <= RankK; r++ {
		switch counts[r] {
		case 2:
			total += 2
			events = append(events, ScoreEvent{Points: 2, Reason: fmt.Sprintf("Pair of %ss for 2", r)})
		case 3:
			total += 6
			events = append(events, ScoreEvent{Points: 6, Reason: fmt.Sprintf("Three %ss for 6", r)})
		case 4:
			total += 12
			events = append(events, ScoreEvent{Points: 12, Reason: fmt.Sprintf("Four %ss for 12", r)})
		}
	}

	for _, run := range findRuns(combined) {
		pts := run.length * run.multiplicity
		total += pts
		if run.multiplicity > 1 {
			events = append(events, ScoreEvent{Points: pts, Reason: fmt.Sprintf("%dx run of %d for %d", run.multiplicity, run.length, pts)})
		} else {
			events = append(events, ScoreEvent{Points: pts, Reason: fmt.Sprintf("Run of %d for %d", run.length, pts)})
		}
	}

	if pts := scoreFlush(hand, starter, isCrib); pts > 0 {
		total += pts
		events = append(events, ScoreEvent{Points: pts, Reason: fmt.Sprintf("Flush for %d", pts)})
	}

	for _, c := range hand {
		if c.Rank == RankJ && c.Suit == starter.Suit {
			total++
			events = append(events, ScoreEvent{Points: 1, Reason: "Nobs for 1"})
			break
		}
	}

	return total, events
}

// countFifteens enumerates every subset of size 2..5 summing to 15.
func countFifteens(cards []Card) int {
	n := len(cards)
	found := 0
	for mask := 1; mask < 1<<n; mask++ {
		sum, size := 0, 0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				sum += cards[i].Value()
				size++
			}
		}
		if size >= 2 && sum == 15 {
			found++
		}
	}
	return found
}

type run struct {
	length       int
	multiplicity int
}

// findRuns locates the longest run(s) of 3..5 consecutive ranks, longest
// first. Once a run is claimed its rank counts are zeroed so it cannot
// double-score as a shorter sub-run. Multiplicity is the product of the
// counts at each rank position (duplicates make parallel runs).
func findRuns(cards []Card) []run {
	freq := map[int]int{}
	for _, c := range cards {
		freq[c.Order()]++
	}
	var orders []int
	for o := 1; o <= 13; o++ {
		if freq[o] > 0 {
			orders = append(orders, o)
		}
	}

	var runs []run
	for _, length := range []int{5, 4, 3} {
		for start := 0; start+length <= len(orders); start++ {
			window := orders[start : start+length]
			consecutive := true
			for i := 0; i < len(window)-1; i++ {
				if window[i+1] != window[i]+1 {
					consecutive = false
					break
				}
			}
			if !consecutive {
				continue
			}
			mult := 1
			for _, o := range window {
				mult *= freq[o]
			}
			if mult == 0 {
				continue
			}
			runs = append(runs, run{length: length, multiplicity: mult})
			for _, o := range window {
				freq[o] = 0
			}
		}
	}
	return runs
}

func scoreFlush(hand []Card, starter Card, isCrib bool) int {
	if len(hand) != 4 {
		return 0
	}
	suit := hand[0].Suit
	for _, c := range hand[1:] {
		if c.Suit != suit {
			return 0
		}
	}
	if starter.Suit == suit {
		return 5
	}
	if isCrib {
		return 0
	}
	return 4
}

// ScorePlay evaluates the effect of the most recently played card on the
// pegging pile. runningTotal already includes that card. A play that scores
// nothing returns no events.
func ScorePlay(pile []Card, runningTotal int) []ScoreEvent {
	var events []ScoreEvent

	if runningTotal == 15 {
		events = append(events, ScoreEvent{Points: 2, Reason: "Fifteen for 2"})
	} else if runningTotal == 31 {
		events = append(events, ScoreEvent{Points: 2, Reason: "Thirty-one for 2"})
	}

	if len(pile) >= 2 {
		last := pile[len(pile)-1].Rank
		matching := 0
		for i := len(pile) - 2; i >= 0; i-- {
			if pile[i].Rank != last {
				break
			}
			matching++
		}
		switch {
		case matching == 1:
			events = append(events, ScoreEvent{Points: 2, Reason: "Pair for 2"})
		case matching == 2:
			events = append(events, ScoreEvent{Points: 6, Reason: "Three of a kind for 6"})
		case matching >= 3:
			events = append(events, ScoreEvent{Points: 12, Reason: "Four of a kind for 12"})
		}
	}

	// Longest tail window that forms a run wins; smaller windows are not
	// also scored. A repeated rank inside the window breaks it.
	for n := len(pile); n >= 3; n-- {
		if isRun(pile[len(pile)-n:]) {
			events = append(events, ScoreEvent{Points: n, Reason: fmt.Sprintf("Run of %d for %d", n, n)})
			break
		}
	}

	return events
}

func isRun(cards []Card) bool {
	seen := map[int]bool{}
	lo, hi := 99, 0
	for _, c := range cards {
		o := c.Order()
		if seen[o] {
			return false
		}
		seen[o] = true
		if o < lo {
			lo = o
		}
		if o > hi {
			hi = o
		}
	}
	return hi-lo+1 == len(cards)
}

// CanPlay reports whether any card in hand fits under 31.
func CanPlay(hand []Card, runningTotal int) bool {
	for _, c := range hand {
		if runningTotal+c.Value() <= 31 {
			return true
		}
	}
	return false
}
