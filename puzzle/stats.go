package puzzle

import "github.com/kamstrup/intmap"

// Stats counts what happened during one session: how often each kind spawned,
// how long a kind went unseen, and how many locks cleared one to four lines.
type Stats struct {
	pieces    int
	spawns    *intmap.Map[Kind, int]
	sinceSeen *intmap.Map[Kind, int]
	clears    *intmap.Map[int, int]
	drought   int
}

func newStats() *Stats {
	return &Stats{
		spawns:    intmap.New[Kind, int](len(Kinds)),
		sinceSeen: intmap.New[Kind, int](len(Kinds)),
		clears:    intmap.New[int, int](4),
	}
}

func (s *Stats) reset() {
	s.pieces = 0
	s.drought = 0
	s.spawns.Clear()
	s.sinceSeen.Clear()
	s.clears.Clear()
}

func (s *Stats) recordSpawn(kind Kind) {
	s.pieces++
	n, _ := s.spawns.Get(kind)
	s.spawns.Put(kind, n+1)

	for _, k := range Kinds {
		if k == kind {
			s.sinceSeen.Put(k, 0)
			continue
		}
		since, _ := s.sinceSeen.Get(k)
		since++
		s.sinceSeen.Put(k, since)
		if since > s.drought {
			s.drought = since
		}
	}
}

func (s *Stats) recordClear(lines int) {
	if lines <= 0 {
		return
	}
	n, _ := s.clears.Get(lines)
	s.clears.Put(lines, n+1)
}

// Pieces returns the number of pieces spawned, including a piece that topped out.
func (s *Stats) Pieces() int {
	return s.pieces
}

// Spawned returns how many pieces of kind were spawned.
func (s *Stats) Spawned(kind Kind) int {
	n, _ := s.spawns.Get(kind)
	return n
}

// Clears returns how many locks cleared exactly lines rows.
func (s *Stats) Clears(lines int) int {
	n, _ := s.clears.Get(lines)
	return n
}

// LongestDrought returns the longest run of consecutive spawns that missed some kind.
func (s *Stats) LongestDrought() int {
	return s.drought
}

// Drought returns how many spawns have passed since kind last appeared.
func (s *Stats) Drought(kind Kind) int {
	n, _ := s.sinceSeen.Get(kind)
	return n
}
