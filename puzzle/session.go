package puzzle

import (
	"math/rand/v2"
	"time"
)

// EndCondition is an extra rule that can end a playing session. Topping out
// always ends a session; conditions are checked after every state change.
type EndCondition func(s *Session) (EndReason, bool)

// TimeLimit ends the session once d of play time has elapsed.
func TimeLimit(d time.Duration) EndCondition {
	return func(s *Session) (EndReason, bool) {
		if s.elapsed >= d {
			return TimeUp, true
		}
		return "", false
	}
}

// Options configures a session. The zero value plays an endless game on a
// 10×20 board with pieces chosen uniformly at random.
type Options struct {
	Width, Height int

	// Spawner picks each new piece. Defaults to a UniformSpawner seeded from Seed.
	Spawner Spawner
	Seed    uint64

	// TimeLimit makes the session time-boxed. Zero means endless.
	TimeLimit time.Duration
	End       []EndCondition

	// Initial is cloned as the starting board of every game.
	Initial *Board

	// HighScores persists the best score across sessions.
	HighScores Values
}

// Session owns one board, the active piece and the score of a game, and moves
// them through Idle, Playing and GameOver. It is not safe for concurrent use;
// callers drive it from a single goroutine.
type Session struct {
	opts    Options
	spawner Spawner
	rng     *rand.Rand
	end     []EndCondition

	board *Board
	piece *Piece
	state RunState

	score   int
	lines   int
	elapsed time.Duration
	gravity time.Duration

	reason    EndReason
	accent    Color
	highScore int
	newBest   bool
	stats     *Stats
}

// NewSession creates an idle session.
func NewSession(opts Options) *Session {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Seed == 0 {
		opts.Seed = rand.Uint64()
	}

	s := &Session{
		opts:    opts,
		spawner: opts.Spawner,
		rng:     rand.New(rand.NewPCG(opts.Seed, opts.Seed>>1|1)),
		stats:   newStats(),
	}
	if s.spawner == nil {
		s.spawner = NewUniformSpawner(opts.Seed)
	}
	if opts.TimeLimit > 0 {
		s.end = append(s.end, TimeLimit(opts.TimeLimit))
	}
	s.end = append(s.end, opts.End...)
	s.board = s.freshBoard()
	s.highScore = LoadHighScore(opts.HighScores)
	return s
}

func (s *Session) freshBoard() *Board {
	if s.opts.Initial != nil {
		return s.opts.Initial.Clone()
	}
	return NewBoard(s.opts.Width, s.opts.Height)
}

// Start begins a new game from Idle or GameOver with a fresh board and zero
// score, and spawns the first piece. It does nothing while Playing.
func (s *Session) Start() {
	if s.state == Playing {
		return
	}
	s.board = s.freshBoard()
	s.piece = nil
	s.score = 0
	s.lines = 0
	s.elapsed = 0
	s.gravity = 0
	s.reason = ""
	s.accent = Empty
	s.newBest = false
	s.stats.reset()
	s.state = Playing
	s.spawn()
}

// Tick advances the simulation by one gravity step. With no active piece a
// new one is spawned; otherwise the piece falls one row, or locks when it
// cannot.
func (s *Session) Tick() {
	if s.state != Playing {
		return
	}
	if s.piece == nil {
		s.spawn()
		return
	}

	moved := s.piece.Moved(0, 1)
	if IsValidPosition(s.board, moved) {
		s.piece = &moved
	} else {
		s.lock()
	}
	s.checkEnd()
}

// Apply performs a player intent. A move that would leave the piece in an
// invalid position is ignored, as is any intent while not Playing. It reports
// whether the session changed.
func (s *Session) Apply(intent Intent) bool {
	if s.state != Playing || s.piece == nil {
		return false
	}

	var next Piece
	switch intent {
	case MoveLeft:
		next = s.piece.Moved(-1, 0)
	case MoveRight:
		next = s.piece.Moved(1, 0)
	case SoftDrop:
		next = s.piece.Moved(0, 1)
	case Rotate:
		next = s.piece.Rotated()
	case HardDrop:
		s.hardDrop()
		s.checkEnd()
		return true
	default:
		return false
	}

	if !IsValidPosition(s.board, next) {
		return false
	}
	s.piece = &next
	return true
}

func (s *Session) hardDrop() {
	dropped := s.piece.Moved(0, DropDistance(s.board, *s.piece))
	s.piece = &dropped
	s.lock()
}

// Advance adds dt of play time, ends the session if an end condition holds,
// and runs one Tick for every full drop interval accumulated. It returns the
// number of ticks run.
func (s *Session) Advance(dt time.Duration) int {
	if s.state != Playing {
		return 0
	}
	s.elapsed += dt
	s.checkEnd()

	ticks := 0
	s.gravity += dt
	for s.state == Playing {
		interval := DropInterval(s.Level())
		if s.gravity < interval {
			break
		}
		s.gravity -= interval
		s.Tick()
		ticks++
	}
	return ticks
}

// UntilNextTick returns the play time left before the next gravity tick or
// the time limit, whichever comes first.
func (s *Session) UntilNextTick() time.Duration {
	wait := max(DropInterval(s.Level())-s.gravity, 0)
	if remaining, ok := s.Remaining(); ok {
		wait = min(wait, remaining)
	}
	return wait
}

// GiveUp ends a playing session the same way topping out does.
func (s *Session) GiveUp() {
	if s.state != Playing {
		return
	}
	s.finish(GaveUp)
}

func (s *Session) spawn() {
	kind := s.spawner.Next()
	p := NewPiece(kind, s.board.Width)
	s.stats.recordSpawn(kind)
	if !IsValidPosition(s.board, p) {
		s.finish(ToppedOut)
		return
	}
	s.piece = &p
}

func (s *Session) lock() {
	Merge(s.board, *s.piece)
	s.piece = nil

	cleared := ClearFullLines(s.board)
	if cleared > 0 {
		s.lines += cleared
		s.score += Points(cleared)
	}
	s.stats.recordClear(cleared)
	s.spawn()
}

func (s *Session) checkEnd() {
	if s.state != Playing {
		return
	}
	for _, cond := range s.end {
		if reason, ok := cond(s); ok {
			s.finish(reason)
			return
		}
	}
}

func (s *Session) finish(reason EndReason) {
	s.state = GameOver
	s.piece = nil
	s.reason = reason
	palette := Palette()
	s.accent = palette[s.rng.IntN(len(palette))]
	if s.opts.HighScores != nil {
		s.highScore, s.newBest = RecordHighScore(s.opts.HighScores, s.score)
	} else if s.score > s.highScore {
		s.highScore, s.newBest = s.score, true
	}
}

// State returns the lifecycle phase.
func (s *Session) State() RunState { return s.state }

// Board returns the settled cells. Callers must not modify it.
func (s *Session) Board() *Board { return s.board }

// Piece returns the active piece, if any.
func (s *Session) Piece() (Piece, bool) {
	if s.piece == nil {
		return Piece{}, false
	}
	return *s.piece, true
}

func (s *Session) Score() int { return s.score }

func (s *Session) Lines() int { return s.lines }

func (s *Session) Level() int { return LevelFor(s.lines) }

// Elapsed returns the play time of the current or last game.
func (s *Session) Elapsed() time.Duration { return s.elapsed }

// Remaining returns the time left in a time-boxed session.
func (s *Session) Remaining() (time.Duration, bool) {
	if s.opts.TimeLimit <= 0 {
		return 0, false
	}
	return max(s.opts.TimeLimit-s.elapsed, 0), true
}

// EndReason returns why the last game ended, or "" while none has.
func (s *Session) EndReason() EndReason { return s.reason }

// HighScore returns the best score known to the session.
func (s *Session) HighScore() int { return s.highScore }

// NewBest reports whether the last finished game set a new high score.
func (s *Session) NewBest() bool { return s.newBest }

// Accent returns the color picked when the last game ended.
func (s *Session) Accent() Color { return s.accent }

// Stats returns the counters of the current or last game.
func (s *Session) Stats() *Stats { return s.stats }
