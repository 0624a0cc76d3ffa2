package internal

import (
	"fmt"
	"math/rand"

	"github.com/llcsim/replacement/internal/stats"
)

// Dispatcher routes victim selection and state updates to the active policy.
// Policy-local state is built the first time a policy becomes active and is kept
// across reconfiguration; the shared Store is never reset.
type Dispatcher struct {
	store      *Store
	active     PolicyType
	policies   [numPolicies]Policy
	rng        *rand.Rand
	leaders    int
	contestant Policy
	stats      *stats.ReplStats
}

func NewDispatcher(
	store *Store, policy PolicyType, rng *rand.Rand, leaders int, contestant Policy, st *stats.ReplStats,
) *Dispatcher {
	d := &Dispatcher{
		store:      store,
		rng:        rng,
		leaders:    leaders,
		contestant: contestant,
		stats:      st,
	}
	d.SetPolicy(policy)
	return d
}

func (d *Dispatcher) Active() PolicyType {
	return d.active
}

// SetPolicy swaps the active policy. Unknown values panic: continuing would
// leave eviction undefined.
func (d *Dispatcher) SetPolicy(policy PolicyType) {
	if !policy.Valid() {
		panic(fmt.Sprintf("replacement: unknown policy %d", uint32(policy)))
	}
	d.active = policy
	if d.policies[policy] == nil {
		d.policies[policy] = d.build(policy)
	}
}

// Policy returns the state of p, nil if p was never active.
func (d *Dispatcher) Policy(p PolicyType) Policy {
	if !p.Valid() {
		return nil
	}
	return d.policies[p]
}

func (d *Dispatcher) build(policy PolicyType) Policy {
	switch policy {
	case REPL_LRU:
		return NewLru(d.store)
	case REPL_RANDOM:
		return NewRandom(d.store.Assoc(), d.rng)
	case REPL_DRRIP:
		return NewDrrip(d.store, d.leaders, d.rng, d.stats)
	case REPL_SHIP:
		return NewShip(d.store, d.stats)
	case REPL_EAF:
		return NewEaf(d.store, d.leaders, d.rng, d.stats)
	case REPL_CONTESTANT:
		if d.contestant != nil {
			return d.contestant
		}
		return missingContestant{}
	}
	panic("unreachable")
}

func (d *Dispatcher) Victim(set int, lines []LineState, access Access) int {
	way := d.policies[d.active].Victim(set, lines, access)
	d.stats.Add(stats.NumVictims, 1)
	if way < 0 {
		d.stats.Add(stats.NumBypasses, 1)
		return -1
	}
	if way >= d.store.Assoc() {
		panic(fmt.Sprintf("replacement: %s returned way %d for %d-way set", d.active, way, d.store.Assoc()))
	}
	return way
}

func (d *Dispatcher) Update(set int, way int, line LineState, access Access, hit bool) {
	d.stats.Add(stats.NumUpdates, 1)
	if hit {
		d.stats.Add(stats.NumHits, 1)
	} else {
		d.stats.Add(stats.NumMisses, 1)
	}
	d.policies[d.active].Update(set, way, line, access, hit)
}

// missingContestant stands in for policy 5 when no implementation was supplied.
type missingContestant struct{}

func (missingContestant) Victim(_ int, _ []LineState, _ Access) int {
	panic("replacement: contestant policy selected without an implementation")
}

func (missingContestant) Update(_ int, _ int, _ LineState, _ Access, _ bool) {}
