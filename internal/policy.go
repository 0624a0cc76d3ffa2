package internal

import "fmt"

type PolicyType uint32

const (
	REPL_LRU PolicyType = iota
	REPL_RANDOM
	REPL_DRRIP
	REPL_SHIP
	REPL_EAF
	REPL_CONTESTANT

	numPolicies
)

func (p PolicyType) Valid() bool {
	return p < numPolicies
}

func (p PolicyType) String() string {
	switch p {
	case REPL_LRU:
		return "lru"
	case REPL_RANDOM:
		return "random"
	case REPL_DRRIP:
		return "drrip"
	case REPL_SHIP:
		return "ship-pc"
	case REPL_EAF:
		return "eaf"
	case REPL_CONTESTANT:
		return "contestant"
	}
	return fmt.Sprintf("policy(%d)", uint32(p))
}

// ParsePolicy is the inverse of String.
func ParsePolicy(s string) (PolicyType, error) {
	for p := PolicyType(0); p < numPolicies; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown replacement policy %q", s)
}

// Policy is one replacement algorithm. Victim returns a way in [0, assoc) or -1
// to bypass. Update runs once per access after the outcome is known.
type Policy interface {
	Victim(set int, lines []LineState, access Access) int
	Update(set int, way int, line LineState, access Access, hit bool)
}
