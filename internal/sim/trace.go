package sim

import (
	"math/rand"

	"github.com/llcsim/replacement"
)

type TraceConfig struct {
	Accesses int
	// Blocks is the footprint of the trace in cache blocks.
	Blocks    uint64
	BlockSize uint64
	// Zipf skew, must be > 1.
	Skew float64
	// Number of distinct instruction addresses issuing requests.
	PCs int
	// Every ScanEvery-th access is part of a streaming scan, 0 disables scans.
	ScanEvery int
	Seed      int64
}

// ZipfTrace generates a reproducible skewed trace with an optional
// interleaved stream that defeats recency based policies.
func ZipfTrace(cfg TraceConfig) []Request {
	r := rand.New(rand.NewSource(cfg.Seed))
	z := rand.NewZipf(r, cfg.Skew, 1, cfg.Blocks-1)
	pcs := cfg.PCs
	if pcs <= 0 {
		pcs = 1
	}
	trace := make([]Request, 0, cfg.Accesses)
	scan := cfg.Blocks
	for i := 0; i < cfg.Accesses; i++ {
		var block uint64
		var pc uint64
		if cfg.ScanEvery > 0 && i%cfg.ScanEvery == 0 {
			block = scan
			scan++
			// scans come from their own instruction
			pc = 0x400000
		} else {
			block = z.Uint64()
			pc = 0x1000 + uint64(block%uint64(pcs))*4
		}
		tp := replacement.ACCESS_LOAD
		if r.Intn(10) == 0 {
			tp = replacement.ACCESS_STORE
		}
		trace = append(trace, Request{
			ThreadID: 0,
			PC:       pc,
			Addr:     block * cfg.BlockSize,
			Type:     tp,
		})
	}
	return trace
}
