package replacement

import (
	"errors"
	"fmt"
	"io"

	"github.com/llcsim/replacement/internal"
	"github.com/llcsim/replacement/internal/stats"
)

type Policy = internal.PolicyType

const (
	LRU        = internal.REPL_LRU
	RANDOM     = internal.REPL_RANDOM
	DRRIP      = internal.REPL_DRRIP
	SHIP       = internal.REPL_SHIP
	EAF        = internal.REPL_EAF
	CONTESTANT = internal.REPL_CONTESTANT
)

// ParsePolicy accepts the names printed by Policy.String.
func ParsePolicy(name string) (Policy, error) {
	return internal.ParsePolicy(name)
}

type AccessType = internal.AccessType

const (
	ACCESS_IFETCH    = internal.ACCESS_IFETCH
	ACCESS_LOAD      = internal.ACCESS_LOAD
	ACCESS_STORE     = internal.ACCESS_STORE
	ACCESS_PREFETCH  = internal.ACCESS_PREFETCH
	ACCESS_WRITEBACK = internal.ACCESS_WRITEBACK
)

// LineState is the cache's view of a resident line, passed read only.
type LineState = internal.LineState

// Access holds the attributes of the request being serviced.
type Access = internal.Access

// Contestant is a user supplied policy served under CONTESTANT.
type Contestant = internal.Policy

// SetRole is a set's dueling label under DRRIP or EAF.
type SetRole = internal.SetRole

const (
	FOLLOWER     = internal.FOLLOWER
	LEADER_SRRIP = internal.LEADER_SRRIP
	LEADER_BRRIP = internal.LEADER_BRRIP
	LEADER_LRU   = internal.LEADER_LRU
	LEADER_EAF   = internal.LEADER_EAF
)

// BYPASS is returned by GetVictimInSet when the line should not be cached.
const BYPASS = -1

// LineReplacementState is a copy of one line's replacement record.
type LineReplacementState struct {
	LRUStackPosition int
	RRPV             uint8
	Outcome          bool
	Signature        uint32
	Signed           bool
}

// State is the replacement state of one set-associative cache.
// It is not safe for concurrent use; accesses are expected one at a time.
type State struct {
	store      *internal.Store
	dispatcher *internal.Dispatcher
	stats      *stats.ReplStats
	timer      uint64
}

// New creates a State with default options.
func New(numSets, assoc int, policy Policy) (*State, error) {
	return NewBuilder(numSets, assoc, policy).Build()
}

// GetVictimInSet returns the way to evict from setIndex, or BYPASS. vicSet
// holds the current contents of the set indexed by way.
func (s *State) GetVictimInSet(tid uint32, setIndex int, vicSet []LineState, assoc int, pc, paddr uint64, accessType AccessType) int {
	if assoc != s.store.Assoc() {
		panic(fmt.Sprintf("replacement: victim call with assoc %d on %d-way state", assoc, s.store.Assoc()))
	}
	return s.dispatcher.Victim(setIndex, vicSet, internal.Access{
		ThreadID: tid, PC: pc, Paddr: paddr, Type: accessType,
	})
}

// UpdateReplacementState must be called once per access, hit or miss, after
// the line occupies updateWayID.
func (s *State) UpdateReplacementState(setIndex, updateWayID int, currLine LineState, tid uint32, pc uint64, accessType AccessType, cacheHit bool) {
	s.dispatcher.Update(setIndex, updateWayID, currLine, internal.Access{
		ThreadID: tid, PC: pc, Type: accessType,
	}, cacheHit)
}

// SetReplacementPolicy switches the active policy without touching line
// metadata. Records left by the previous policy are stale, not cleared.
func (s *State) SetReplacementPolicy(policy Policy) {
	s.dispatcher.SetPolicy(policy)
}

func (s *State) ReplacementPolicy() Policy {
	return s.dispatcher.Active()
}

func (s *State) IncrementTimer() {
	s.timer++
}

// Timer returns the number of IncrementTimer calls.
func (s *State) Timer() uint64 {
	return s.timer
}

func (s *State) NumSets() int {
	return s.store.NumSets()
}

func (s *State) Assoc() int {
	return s.store.Assoc()
}

// Line returns a copy of the record at setIndex/way.
func (s *State) Line(setIndex, way int) LineReplacementState {
	l := s.store.Set(setIndex)[way]
	return LineReplacementState{
		LRUStackPosition: l.StackPosition,
		RRPV:             l.RRPV,
		Outcome:          l.Outcome(),
		Signature:        l.Signature,
		Signed:           l.Signed(),
	}
}

// PSEL returns the dueling counter of DRRIP or EAF. It errors for other
// policies and for dueling policies that were never active.
func (s *State) PSEL(policy Policy) (uint32, error) {
	d, err := s.duel(policy)
	if err != nil {
		return 0, err
	}
	return d.PSEL(), nil
}

// SetRole returns the dueling role of setIndex under DRRIP or EAF.
func (s *State) SetRole(policy Policy, setIndex int) (SetRole, error) {
	d, err := s.duel(policy)
	if err != nil {
		return 0, err
	}
	return d.Role(setIndex), nil
}

func (s *State) duel(policy Policy) (*internal.Duel, error) {
	switch p := s.dispatcher.Policy(policy).(type) {
	case *internal.Drrip:
		return p.Duel(), nil
	case *internal.Eaf:
		return p.Duel(), nil
	case nil:
		return nil, fmt.Errorf("policy %s was never active", policy)
	}
	return nil, errors.New("policy does not use set dueling")
}

// Stats returns a snapshot of the replacement counters keyed by name.
func (s *State) Stats() map[string]uint64 {
	return s.stats.Snapshot()
}

// PrintStats writes the statistics banner.
func (s *State) PrintStats(out io.Writer) error {
	_, err := io.WriteString(out,
		"==========================================================\n"+
			"=========== Replacement Policy Statistics ================\n"+
			"==========================================================\n",
	)
	return err
}
