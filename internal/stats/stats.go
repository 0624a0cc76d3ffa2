package stats

type ReplStatsType int

const (
	// dispatch
	NumVictims ReplStatsType = iota
	NumBypasses
	NumUpdates
	NumHits
	NumMisses

	// rrip family
	NumAgingSweeps
	NumPselUpdates

	// ship
	NumShctIncrements
	NumShctDecrements

	// eaf
	NumFilterInserts
	NumFilterHits
	NumFilterResets

	// counter end
	counterStatsEnd
)

var names = [counterStatsEnd]string{
	"victims",
	"bypasses",
	"updates",
	"hits",
	"misses",
	"aging_sweeps",
	"psel_updates",
	"shct_increments",
	"shct_decrements",
	"filter_inserts",
	"filter_hits",
	"filter_resets",
}

func (t ReplStatsType) String() string {
	if t < 0 || t >= counterStatsEnd {
		return "unknown"
	}
	return names[t]
}

// ReplStats holds plain counters. Accesses are sequential so no atomics are used.
// A nil *ReplStats discards everything.
type ReplStats struct {
	counterData []uint64
}

func NewStats() *ReplStats {
	return &ReplStats{counterData: make([]uint64, counterStatsEnd)}
}

func (s *ReplStats) Add(t ReplStatsType, value uint64) {
	if s != nil {
		s.counterData[int(t)] += value
	}
}

func (s *ReplStats) Get(t ReplStatsType) uint64 {
	if s == nil {
		return 0
	}
	return s.counterData[int(t)]
}

// Snapshot copies every counter keyed by its name.
func (s *ReplStats) Snapshot() map[string]uint64 {
	m := make(map[string]uint64, counterStatsEnd)
	for i := ReplStatsType(0); i < counterStatsEnd; i++ {
		m[i.String()] = s.Get(i)
	}
	return m
}
