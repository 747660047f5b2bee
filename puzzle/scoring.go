package puzzle

import "time"

const (
	LinesPerLevel   = 10
	BaseInterval    = 1000 * time.Millisecond
	IntervalStep    = 100 * time.Millisecond
	MinDropInterval = 100 * time.Millisecond
)

// Points returns the score awarded for clearing n lines with one lock:
// 100, 400, 900 and 1600 for one to four lines.
func Points(n int) int {
	return 100 * n * max(n, 1)
}

// LevelFor returns the level reached after clearing lines in total.
// Levels start at 1.
func LevelFor(lines int) int {
	return lines/LinesPerLevel + 1
}

// DropInterval returns the gravity period at level. It shortens by 100ms per
// level and never drops below 100ms.
func DropInterval(level int) time.Duration {
	return max(MinDropInterval, BaseInterval-time.Duration(level-1)*IntervalStep)
}
