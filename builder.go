package replacement

import (
	"errors"
	"math/rand"
	"time"

	"github.com/llcsim/replacement/internal"
	"github.com/llcsim/replacement/internal/stats"
)

type params interface {
	validate() error
}

func validateParams(params ...params) error {
	for _, p := range params {
		if err := p.validate(); err != nil {
			return err
		}
	}
	return nil
}

type geometryParams struct {
	numSets int
	assoc   int
	policy  Policy
}

func (p *geometryParams) validate() error {
	if p.numSets <= 0 {
		return errors.New("number of sets must be positive")
	}
	if p.assoc <= 0 {
		return errors.New("associativity must be positive")
	}
	if !p.policy.Valid() {
		return errors.New("unknown replacement policy")
	}
	return nil
}

type duelParams struct {
	leaders int
}

func (p *duelParams) validate() error {
	if p.leaders < 0 {
		return errors.New("leader sets must not be negative")
	}
	return nil
}

type Builder struct {
	geometryParams
	duelParams
	source     rand.Source
	contestant Contestant
}

func NewBuilder(numSets, assoc int, policy Policy) *Builder {
	b := &Builder{}
	b.numSets = numSets
	b.assoc = assoc
	b.policy = policy
	b.leaders = internal.NUM_LEADER_SETS
	return b
}

// Seed makes every random draw of the state reproducible.
func (b *Builder) Seed(seed int64) *Builder {
	b.source = rand.NewSource(seed)
	return b
}

// RandSource injects the random source owned by the state.
// It overrides Seed.
func (b *Builder) RandSource(source rand.Source) *Builder {
	b.source = source
	return b
}

// LeaderSets sets how many sets act as dueling leaders for DRRIP and EAF.
// The count is capped at the number of sets and rounded down to an even number.
func (b *Builder) LeaderSets(n int) *Builder {
	b.leaders = n
	return b
}

// Contestant adds the implementation served when the CONTESTANT policy is active.
func (b *Builder) Contestant(impl Contestant) *Builder {
	b.contestant = impl
	return b
}

// Build builds the replacement state from builder.
func (b *Builder) Build() (*State, error) {
	if err := validateParams(&b.geometryParams, &b.duelParams); err != nil {
		return nil, err
	}
	source := b.source
	if source == nil {
		source = rand.NewSource(time.Now().UnixNano())
	}
	leaders := b.leaders
	if leaders > b.numSets {
		leaders = b.numSets
	}
	leaders &^= 1

	store := internal.NewStore(b.numSets, b.assoc)
	st := stats.NewStats()
	return &State{
		store:      store,
		stats:      st,
		dispatcher: internal.NewDispatcher(store, b.policy, rand.New(source), leaders, b.contestant, st),
	}, nil
}
