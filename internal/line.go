package internal

import "fmt"

type AccessType uint32

const (
	ACCESS_IFETCH AccessType = iota
	ACCESS_LOAD
	ACCESS_STORE
	ACCESS_PREFETCH
	ACCESS_WRITEBACK
)

func (t AccessType) String() string {
	switch t {
	case ACCESS_IFETCH:
		return "ifetch"
	case ACCESS_LOAD:
		return "load"
	case ACCESS_STORE:
		return "store"
	case ACCESS_PREFETCH:
		return "prefetch"
	case ACCESS_WRITEBACK:
		return "writeback"
	}
	return fmt.Sprintf("access(%d)", uint32(t))
}

// LineState is the cache owned view of a resident line.
// Policies only read it.
type LineState struct {
	Tag   uint64
	Valid bool
	Dirty bool
}

// Access carries the request attributes of a single simulated access.
type Access struct {
	ThreadID uint32
	PC       uint64
	Paddr    uint64
	Type     AccessType
}

// Line is the replacement record of one set/way slot.
// Fields shared by several policies live here once.
type Line struct {
	StackPosition int
	RRPV          uint8
	Signature     uint32
	flag          Flag
}

func (l *Line) Outcome() bool { return l.flag.IsOutcome() }

func (l *Line) Signed() bool { return l.flag.IsSigned() }

// Store is the per-line metadata of the whole cache, allocated once.
type Store struct {
	sets  [][]Line
	assoc int
}

func NewStore(numSets, assoc int) *Store {
	s := &Store{
		sets:  make([][]Line, numSets),
		assoc: assoc,
	}
	// one backing array, sliced per set
	lines := make([]Line, numSets*assoc)
	for i := range s.sets {
		set := lines[i*assoc : (i+1)*assoc : (i+1)*assoc]
		for way := range set {
			set[way].StackPosition = way
			set[way].RRPV = RRIP_MAX
		}
		s.sets[i] = set
	}
	return s
}

func (s *Store) NumSets() int { return len(s.sets) }

func (s *Store) Assoc() int { return s.assoc }

// Set returns the records of one set. Callers inside the package mutate it in place.
func (s *Store) Set(index int) []Line {
	return s.sets[index]
}

// lruWay returns the way at the bottom of the recency stack.
func (s *Store) lruWay(index int) int {
	set := s.sets[index]
	for way := range set {
		if set[way].StackPosition == s.assoc-1 {
			return way
		}
	}
	return 0
}

// touch moves way to the top of the recency stack, shifting every line
// that was above it down by one.
func (s *Store) touch(index int, way int) {
	set := s.sets[index]
	current := set[way].StackPosition
	for i := range set {
		if set[i].StackPosition < current {
			set[i].StackPosition++
		}
	}
	set[way].StackPosition = 0
}
