package internal

import "math/rand"

// Lru is true LRU over the per-set recency stack.
type Lru struct {
	store *Store
}

func NewLru(store *Store) *Lru {
	return &Lru{store: store}
}

func (l *Lru) Victim(set int, _ []LineState, _ Access) int {
	return l.store.lruWay(set)
}

func (l *Lru) Update(set int, way int, _ LineState, _ Access, _ bool) {
	l.store.touch(set, way)
}

// Random evicts a uniformly random way and keeps no state.
type Random struct {
	assoc int
	rng   *rand.Rand
}

func NewRandom(assoc int, rng *rand.Rand) *Random {
	return &Random{assoc: assoc, rng: rng}
}

func (r *Random) Victim(_ int, _ []LineState, _ Access) int {
	return r.rng.Intn(r.assoc)
}

func (r *Random) Update(_ int, _ int, _ LineState, _ Access, _ bool) {}
