package main

import (
	"math/rand/v2"

	"github.com/mageise/gtd-any/puzzle"
)

// Bot plays by pressing random keys. It acts on a fraction of frames and
// weights its choices so pieces travel sideways before they are dropped.
type Bot struct {
	rng      *rand.Rand
	activity float64
}

var botWeights = []struct {
	intent puzzle.Intent
	weight int
}{
	{puzzle.MoveLeft, 6},
	{puzzle.MoveRight, 6},
	{puzzle.Rotate, 4},
	{puzzle.SoftDrop, 3},
	{puzzle.HardDrop, 1},
}

func NewBot(seed uint64, activity float64) *Bot {
	return &Bot{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), activity: activity}
}

// Act returns the intent for this frame, if any.
func (b *Bot) Act() (puzzle.Intent, bool) {
	if b.rng.Float64() >= b.activity {
		return 0, false
	}
	total := 0
	for _, w := range botWeights {
		total += w.weight
	}
	n := b.rng.IntN(total)
	for _, w := range botWeights {
		if n < w.weight {
			return w.intent, true
		}
		n -= w.weight
	}
	return 0, false
}
