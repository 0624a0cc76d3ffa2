package internal

import "github.com/tidwall/hashmap"

// Signature maps an instruction address to its SHiP signature by keeping
// the low NUM_SIG_BITS+1 bits. Aliasing between addresses is accepted.
func Signature(pc uint64) uint32 {
	return uint32(pc & (1<<(NUM_SIG_BITS+1) - 1))
}

// SHCT is the signature history counter table. Entries are created lazily
// by Insert and never removed; reads of an unseen signature return 0.
type SHCT struct {
	table *hashmap.Map[uint32, uint8]
	max   uint8
}

func NewSHCT() *SHCT {
	return &SHCT{
		table: hashmap.New[uint32, uint8](1 << 10),
		max:   SHCT_CTR_MAX,
	}
}

// Get returns the counter of sig and whether an entry exists.
func (t *SHCT) Get(sig uint32) (uint8, bool) {
	return t.table.Get(sig)
}

// Insert makes sure sig has an entry and returns its counter.
func (t *SHCT) Insert(sig uint32) uint8 {
	if v, ok := t.table.Get(sig); ok {
		return v
	}
	t.table.Set(sig, 0)
	return 0
}

// Inc saturates at SHCT_CTR_MAX. It reports whether the counter moved.
func (t *SHCT) Inc(sig uint32) bool {
	v := t.Insert(sig)
	if v == t.max {
		return false
	}
	t.table.Set(sig, v+1)
	return true
}

// Dec floors at 0 and reports whether the counter moved. It panics if sig was
// never inserted: every resident signed line must have an entry.
func (t *SHCT) Dec(sig uint32) bool {
	v, ok := t.table.Get(sig)
	if !ok {
		panic("ship: evicted line signature has no SHCT entry")
	}
	if v == 0 {
		return false
	}
	t.table.Set(sig, v-1)
	return true
}

func (t *SHCT) Len() int {
	return t.table.Len()
}
