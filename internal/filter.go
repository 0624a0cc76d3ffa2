package internal

import "github.com/tidwall/hashmap"

// EvictedFilter approximates a bloom filter over recently evicted tags with an
// exact table that is cleared every BLOOM_MAX_COUNTER insertions.
type EvictedFilter struct {
	table   *hashmap.Map[uint64, uint64]
	counter uint64
	limit   uint64
}

func NewEvictedFilter() *EvictedFilter {
	return newEvictedFilter(BLOOM_MAX_COUNTER)
}

func newEvictedFilter(limit uint64) *EvictedFilter {
	return &EvictedFilter{
		table: hashmap.New[uint64, uint64](1 << 10),
		limit: limit,
	}
}

// Insert records tag under the current insertion sequence number.
// It reports whether the insertion filled the filter and cleared it.
func (f *EvictedFilter) Insert(tag uint64) bool {
	f.table.Set(tag, f.counter)
	f.counter++
	if f.counter == f.limit {
		f.table = hashmap.New[uint64, uint64](1 << 10)
		f.counter = 0
		return true
	}
	return false
}

func (f *EvictedFilter) Contains(tag uint64) bool {
	_, ok := f.table.Get(tag)
	return ok
}

func (f *EvictedFilter) Len() int {
	return f.table.Len()
}

// Counter returns the number of insertions since the last clear.
func (f *EvictedFilter) Counter() uint64 {
	return f.counter
}
