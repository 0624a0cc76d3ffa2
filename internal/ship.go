package internal

import "github.com/llcsim/replacement/internal/stats"

// Ship is SHiP-PC: RRIP victim search plus insertion driven by the reuse
// history of the inserting instruction's signature.
type Ship struct {
	store *Store
	shct  *SHCT
	stats *stats.ReplStats
}

func NewShip(store *Store, st *stats.ReplStats) *Ship {
	return &Ship{store: store, shct: NewSHCT(), stats: st}
}

func (s *Ship) Victim(set int, _ []LineState, _ Access) int {
	lines := s.store.Set(set)
	way := rripVictim(lines, RRIP_MAX_SHIP, s.stats)
	victim := &lines[way]
	// dead on eviction, train its signature down
	if victim.Signed() && !victim.Outcome() {
		if s.shct.Dec(victim.Signature) {
			s.stats.Add(stats.NumShctDecrements, 1)
		}
	}
	return way
}

func (s *Ship) Update(set int, way int, _ LineState, access Access, hit bool) {
	line := &s.store.Set(set)[way]
	if hit {
		line.RRPV = 0
		if !line.Signed() {
			return
		}
		line.flag.SetOutcome(true)
		if s.shct.Inc(line.Signature) {
			s.stats.Add(stats.NumShctIncrements, 1)
		}
		return
	}
	line.flag.SetOutcome(false)
	line.flag.SetSigned(true)
	line.Signature = Signature(access.PC)
	if s.shct.Insert(line.Signature) == 0 {
		line.RRPV = RRIP_MAX_SHIP
	} else {
		line.RRPV = RRIP_MAX_SHIP - 1
	}
}
