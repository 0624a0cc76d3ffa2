package internal

import (
	"math/rand"

	"github.com/llcsim/replacement/internal/stats"
)

const (
	LEADER_SRRIP = LEADER_BASELINE
	LEADER_BRRIP = LEADER_CHALLENGER
)

// rripVictim returns the first way whose RRPV equals rrpvMax. When none does, every
// line in the set ages by one and the scan repeats, at most rrpvMax+1 passes.
func rripVictim(set []Line, rrpvMax uint8, st *stats.ReplStats) int {
	for pass := 0; pass <= int(rrpvMax); pass++ {
		for way := range set {
			if set[way].RRPV >= rrpvMax {
				return way
			}
		}
		for way := range set {
			if set[way].RRPV < rrpvMax {
				set[way].RRPV++
			}
		}
		st.Add(stats.NumAgingSweeps, 1)
	}
	panic("rrip: aging did not produce a victim")
}

// Drrip duels SRRIP against bimodal RRIP.
type Drrip struct {
	store *Store
	duel  *Duel
	rng   *rand.Rand
	stats *stats.ReplStats
}

func NewDrrip(store *Store, leaders int, rng *rand.Rand, st *stats.ReplStats) *Drrip {
	return &Drrip{
		store: store,
		duel:  NewDuel(store.NumSets(), leaders, PSEL_MAX, rng),
		rng:   rng,
		stats: st,
	}
}

func (d *Drrip) Duel() *Duel { return d.duel }

func (d *Drrip) Victim(set int, _ []LineState, _ Access) int {
	return rripVictim(d.store.Set(set), RRIP_MAX, d.stats)
}

func (d *Drrip) Update(set int, way int, _ LineState, _ Access, hit bool) {
	if d.duel.Monitor(set, hit) {
		d.stats.Add(stats.NumPselUpdates, 1)
	}
	line := &d.store.Set(set)[way]
	if hit {
		line.RRPV = 0
		return
	}
	switch d.duel.Role(set) {
	case LEADER_SRRIP:
		line.RRPV = RRIP_MAX - 1
	case LEADER_BRRIP:
		line.RRPV = d.bimodal()
	default:
		if d.duel.FavorsChallenger() {
			line.RRPV = d.bimodal()
		} else {
			line.RRPV = RRIP_MAX - 1
		}
	}
}

// bimodal inserts at distant re-reference except for a small fraction.
func (d *Drrip) bimodal() uint8 {
	if permille(d.rng, BIMODAL_PROBABILITY) {
		return RRIP_MAX - 1
	}
	return RRIP_MAX
}
