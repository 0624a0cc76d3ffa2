package internal

import (
	"math/rand"

	"github.com/llcsim/replacement/internal/stats"
)

const (
	LEADER_LRU = LEADER_BASELINE
	LEADER_EAF = LEADER_CHALLENGER
)

// Eaf duels plain LRU against evicted-address filter insertion. Victim selection
// is LRU; every victim tag is remembered in the filter.
type Eaf struct {
	store  *Store
	duel   *Duel
	filter *EvictedFilter
	rng    *rand.Rand
	stats  *stats.ReplStats
}

func NewEaf(store *Store, leaders int, rng *rand.Rand, st *stats.ReplStats) *Eaf {
	return &Eaf{
		store:  store,
		duel:   NewDuel(store.NumSets(), leaders, PSEL_MAX_EAF, rng),
		filter: NewEvictedFilter(),
		rng:    rng,
		stats:  st,
	}
}

func (e *Eaf) Duel() *Duel { return e.duel }

func (e *Eaf) Victim(set int, lines []LineState, _ Access) int {
	way := e.store.lruWay(set)
	e.stats.Add(stats.NumFilterInserts, 1)
	if e.filter.Insert(lines[way].Tag) {
		e.stats.Add(stats.NumFilterResets, 1)
	}
	return way
}

func (e *Eaf) Update(set int, way int, line LineState, _ Access, hit bool) {
	if e.duel.Monitor(set, hit) {
		e.stats.Add(stats.NumPselUpdates, 1)
	}
	if hit {
		e.store.touch(set, way)
		return
	}
	switch e.duel.Role(set) {
	case LEADER_EAF:
		e.insert(set, way, line.Tag)
	case LEADER_LRU:
		e.store.touch(set, way)
	default:
		if e.duel.FavorsChallenger() {
			e.insert(set, way, line.Tag)
		} else {
			e.store.touch(set, way)
		}
	}
}

// insert promotes a recently evicted tag to MRU unless the roll lands in the
// filter's false positive share. Otherwise it promotes with the bimodal
// probability and leaves the line at its current stack position.
func (e *Eaf) insert(set int, way int, tag uint64) {
	if e.filter.Contains(tag) {
		e.stats.Add(stats.NumFilterHits, 1)
		if !permille(e.rng, BLOOM_FALSE_POS_PROB) {
			e.store.touch(set, way)
			return
		}
	}
	if permille(e.rng, BIMODAL_PROBABILITY_EAF) {
		e.store.touch(set, way)
	}
}
