package internal

import "math/rand"

const (
	NUM_LEADER_SETS     = 64
	NUM_LEADER_SETS_EAF = 64

	RRIP_MAX      uint8 = 3
	RRIP_MAX_SHIP uint8 = 3

	PSEL_MAX     = 15
	PSEL_MAX_EAF = 15

	// permille: 10 means 1% of all insertions
	BIMODAL_PROBABILITY     = 10
	BIMODAL_PROBABILITY_EAF = 16
	BLOOM_FALSE_POS_PROB    = 10

	NUM_SIG_BITS = 13
	SHCT_CTR_MAX = 3

	BLOOM_MAX_COUNTER = 64 * 1024
)

// permille reports true with probability p/1000.
func permille(r *rand.Rand, p int) bool {
	return r.Intn(1000) < p
}
