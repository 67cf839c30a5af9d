package sim

import (
	"testing"

	"cribbage/internal/ai"
)

func TestSelfPlayEasy(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		if err := RunSelfPlay(ai.New(ai.DifficultyEasy, seed), seed, 5000); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSelfPlayMedium(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		if err := RunSelfPlay(ai.New(ai.DifficultyMedium, seed), seed, 5000); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSelfPlayHard(t *testing.T) {
	if testing.Short() {
		t.Skip("hard strategy evaluates every starter")
	}
	for seed := int64(1); seed <= 5; seed++ {
		if err := RunSelfPlay(ai.New(ai.DifficultyHard, seed), seed, 5000); err != nil {
			t.Fatal(err)
		}
	}
}
