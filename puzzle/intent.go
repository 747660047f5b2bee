package puzzle

//go:generate go tool stringer -type=Intent,RunState

// Intent is a discrete player action, independent of the device it came from.
type Intent int

const (
	MoveLeft Intent = iota
	MoveRight
	SoftDrop
	Rotate
	HardDrop
)

// RunState is the lifecycle phase of a session.
type RunState int

const (
	Idle RunState = iota
	Playing
	GameOver
)

// EndReason records why a session left Playing.
type EndReason string

const (
	ToppedOut EndReason = "topped-out"
	GaveUp    EndReason = "gave-up"
	TimeUp    EndReason = "time-up"
)
