package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/llcsim/replacement"
	"github.com/llcsim/replacement/internal/sim"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile = flag.String("memprofile", "", "write memory profile to `file`")

var (
	sets      = flag.Int("sets", 2048, "number of cache sets")
	ways      = flag.Int("ways", 16, "associativity")
	blockSize = flag.Uint64("block", 64, "block size in bytes")
	hashed    = flag.Bool("hashed", false, "hash block addresses into sets")
	accesses  = flag.Int("n", 2000000, "trace length")
	footprint = flag.Uint64("footprint", 0, "trace footprint in blocks, default 4x cache capacity")
	skew      = flag.Float64("skew", 1.05, "zipf skew, must be > 1")
	scanEvery = flag.Int("scan", 4, "every n-th access is a streaming scan, 0 disables")
	pcs       = flag.Int("pcs", 256, "distinct instruction addresses")
	seed      = flag.Int64("seed", 1, "seed for the trace and every policy")
	policies  = flag.String("policies", "lru,random,drrip,ship-pc,eaf", "comma separated policies to run")
	baseline  = flag.Bool("ristretto", true, "also report a ristretto cache of the same capacity")
)

func runPolicy(policy replacement.Policy, trace []sim.Request) (sim.Result, map[string]uint64, error) {
	state, err := replacement.NewBuilder(*sets, *ways, policy).Seed(*seed).Build()
	if err != nil {
		return sim.Result{}, nil, err
	}
	cache, err := sim.NewCache(sim.Config{
		Sets: *sets, Ways: *ways, BlockSize: *blockSize, HashedIndex: *hashed,
	}, state)
	if err != nil {
		return sim.Result{}, nil, err
	}
	return cache.Run(trace), state.Stats(), nil
}

func runRistretto(trace []sim.Request) (float64, error) {
	capacity := int64(*sets * *ways)
	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: capacity * 10,
		MaxCost:     capacity,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return 0, err
	}
	defer client.Close()
	for _, req := range trace {
		block := req.Addr / *blockSize
		if _, ok := client.Get(block); !ok {
			client.Set(block, block, 1)
		}
	}
	client.Wait()
	return client.Metrics.Ratio(), nil
}

func main() {
	flag.Parse()
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	blocks := *footprint
	if blocks == 0 {
		blocks = uint64(*sets**ways) * 4
	}
	trace := sim.ZipfTrace(sim.TraceConfig{
		Accesses:  *accesses,
		Blocks:    blocks,
		BlockSize: *blockSize,
		Skew:      *skew,
		PCs:       *pcs,
		ScanEvery: *scanEvery,
		Seed:      *seed,
	})

	for _, name := range strings.Split(*policies, ",") {
		policy, err := replacement.ParsePolicy(strings.TrimSpace(name))
		if err != nil {
			log.Fatal(err)
		}
		now := time.Now()
		result, counters, err := runPolicy(policy, trace)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%-8s hit ratio %.4f  hits %d misses %d  aging %d  psel %d  filter hits %d  (%s)\n",
			policy, result.HitRatio(), result.Hits, result.Misses,
			counters["aging_sweeps"], counters["psel_updates"], counters["filter_hits"],
			time.Since(now))
	}

	if *baseline {
		ratio, err := runRistretto(trace)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%-8s hit ratio %.4f\n", "ristretto", ratio)
	}

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal("could not create memory profile: ", err)
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
	}
}
