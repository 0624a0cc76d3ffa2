package internal

import (
	"fmt"
	"math/rand"
)

// SetRole labels a set for set dueling.
// The baseline leader increments PSEL on a miss, the challenger leader decrements it.
type SetRole uint8

const (
	LEADER_BASELINE SetRole = iota
	LEADER_CHALLENGER
	FOLLOWER
)

func (r SetRole) String() string {
	switch r {
	case LEADER_BASELINE:
		return "leader-baseline"
	case LEADER_CHALLENGER:
		return "leader-challenger"
	case FOLLOWER:
		return "follower"
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// Duel owns the set classification table and the PSEL saturating counter.
// Roles are fixed at construction.
type Duel struct {
	roles   []SetRole
	psel    uint32
	pselMax uint32
}

// NewDuel marks leaders distinct random sets, alternating challenger and baseline
// starting with the challenger. leaders is clamped to numSets.
func NewDuel(numSets int, leaders int, pselMax uint32, r *rand.Rand) *Duel {
	d := &Duel{
		roles:   make([]SetRole, numSets),
		pselMax: pselMax,
	}
	for i := range d.roles {
		d.roles[i] = FOLLOWER
	}
	if leaders > numSets {
		leaders = numSets
	}
	chosen := make(map[int]struct{}, leaders)
	for iteration := 0; iteration < leaders; iteration++ {
		var setNo int
		for {
			setNo = r.Intn(numSets)
			if _, ok := chosen[setNo]; !ok {
				break
			}
		}
		chosen[setNo] = struct{}{}
		if iteration%2 == 1 {
			d.roles[setNo] = LEADER_BASELINE
		} else {
			d.roles[setNo] = LEADER_CHALLENGER
		}
	}
	return d
}

func (d *Duel) Role(set int) SetRole {
	return d.roles[set]
}

func (d *Duel) PSEL() uint32 {
	return d.psel
}

// Monitor trains PSEL on misses in leader sets, saturating at both ends.
// It reports whether PSEL moved.
func (d *Duel) Monitor(set int, hit bool) bool {
	if hit {
		return false
	}
	switch d.roles[set] {
	case LEADER_BASELINE:
		if d.psel == d.pselMax {
			return false
		}
		d.psel++
		return true
	case LEADER_CHALLENGER:
		if d.psel == 0 {
			return false
		}
		d.psel--
		return true
	}
	return false
}

// FavorsChallenger reports whether followers should imitate the challenger leaders.
// A high PSEL means the baseline leaders miss more.
func (d *Duel) FavorsChallenger() bool {
	return d.psel > d.pselMax/2
}

func (d *Duel) leaders() (baseline, challenger int) {
	for _, role := range d.roles {
		switch role {
		case LEADER_BASELINE:
			baseline++
		case LEADER_CHALLENGER:
			challenger++
		}
	}
	return
}
