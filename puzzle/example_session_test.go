package puzzle_test

import (
	"fmt"

	"github.com/mageise/gtd-any/puzzle"
)

// ExampleSession plays two pieces on a tiny board. The I piece spans the
// whole width, so hard-dropping it clears the bottom line at once; the O that
// spawns next is moved left with a player intent.
func ExampleSession() {
	s := puzzle.NewSession(puzzle.Options{
		Width:   4,
		Height:  4,
		Spawner: puzzle.NewSequence(puzzle.KindI, puzzle.KindO),
	})
	s.Start()

	s.Apply(puzzle.HardDrop)
	s.Apply(puzzle.MoveLeft)

	snap := s.Snapshot()
	fmt.Println(snap.Frame)
	fmt.Printf("state=%s score=%d lines=%d level=%d\n", snap.State, snap.Score, snap.Lines, snap.Level)

	// Output:
	// OO..
	// OO..
	// ....
	// ....
	// state=Playing score=100 lines=1 level=1
}

// ExampleDropInterval shows gravity speeding up with the level.
func ExampleDropInterval() {
	for _, level := range []int{1, 2, 5, 10, 15} {
		fmt.Printf("level %d: %s\n", level, puzzle.DropInterval(level))
	}

	// Output:
	// level 1: 1s
	// level 2: 900ms
	// level 5: 600ms
	// level 10: 100ms
	// level 15: 100ms
}
