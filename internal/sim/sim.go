// Package sim is a small set-associative tag array that drives a
// replacement.State the way a cache simulator would.
package sim

import (
	"encoding/binary"
	"errors"

	"github.com/cespare/xxhash/v2"
	"github.com/llcsim/replacement"
	"github.com/zeebo/xxh3"
)

type Config struct {
	Sets      int
	Ways      int
	BlockSize uint64
	// HashedIndex spreads block addresses over sets with xxh3 instead of
	// taking the low index bits.
	HashedIndex bool
}

func (c Config) validate() error {
	if c.Sets <= 0 || c.Ways <= 0 {
		return errors.New("sets and ways must be positive")
	}
	if c.BlockSize == 0 || c.BlockSize&(c.BlockSize-1) != 0 {
		return errors.New("block size must be a power of two")
	}
	return nil
}

// Request is one trace record.
type Request struct {
	ThreadID uint32
	PC       uint64
	Addr     uint64
	Type     replacement.AccessType
}

type Cache struct {
	config Config
	lines  [][]replacement.LineState
	repl   *replacement.State
	digest *xxhash.Digest
	hits   uint64
	misses uint64
	bypass uint64
}

func NewCache(config Config, repl *replacement.State) (*Cache, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	if repl.NumSets() != config.Sets || repl.Assoc() != config.Ways {
		return nil, errors.New("replacement state geometry does not match cache")
	}
	c := &Cache{
		config: config,
		lines:  make([][]replacement.LineState, config.Sets),
		repl:   repl,
		digest: xxhash.New(),
	}
	for i := range c.lines {
		c.lines[i] = make([]replacement.LineState, config.Ways)
	}
	return c, nil
}

func (c *Cache) index(block uint64) int {
	if c.config.HashedIndex {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], block)
		return int(xxh3.Hash(b[:]) % uint64(c.config.Sets))
	}
	return int(block % uint64(c.config.Sets))
}

// Access looks up req and reports whether it hit. On a miss an invalid way is
// filled first; otherwise the replacement state picks the victim.
func (c *Cache) Access(req Request) bool {
	block := req.Addr / c.config.BlockSize
	setIndex := c.index(block)
	set := c.lines[setIndex]

	for way := range set {
		if set[way].Valid && set[way].Tag == block {
			c.hits++
			if req.Type == replacement.ACCESS_STORE {
				set[way].Dirty = true
			}
			c.record(way)
			c.repl.UpdateReplacementState(setIndex, way, set[way], req.ThreadID, req.PC, req.Type, true)
			return true
		}
	}
	c.misses++

	way := -1
	for i := range set {
		if !set[i].Valid {
			way = i
			break
		}
	}
	if way < 0 {
		way = c.repl.GetVictimInSet(req.ThreadID, setIndex, set, c.config.Ways, req.PC, req.Addr, req.Type)
		if way == replacement.BYPASS {
			c.bypass++
			c.record(way)
			return false
		}
	}
	set[way] = replacement.LineState{
		Tag:   block,
		Valid: true,
		Dirty: req.Type == replacement.ACCESS_STORE,
	}
	c.record(way)
	c.repl.UpdateReplacementState(setIndex, way, set[way], req.ThreadID, req.PC, req.Type, false)
	return false
}

func (c *Cache) record(way int) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(int64(way)))
	_, _ = c.digest.Write(b[:])
}

type Result struct {
	Hits     uint64
	Misses   uint64
	Bypasses uint64
	// Fingerprint hashes the sequence of ways touched, one per access.
	Fingerprint uint64
}

func (r Result) HitRatio() float64 {
	total := r.Hits + r.Misses
	if total == 0 {
		return 0
	}
	return float64(r.Hits) / float64(total)
}

func (c *Cache) Result() Result {
	return Result{
		Hits:        c.hits,
		Misses:      c.misses,
		Bypasses:    c.bypass,
		Fingerprint: c.digest.Sum64(),
	}
}

// Run replays trace and returns the totals.
func (c *Cache) Run(trace []Request) Result {
	for _, req := range trace {
		c.Access(req)
	}
	return c.Result()
}
