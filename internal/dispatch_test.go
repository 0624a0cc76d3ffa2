package internal

import (
	"math/rand"
	"testing"

	"github.com/llcsim/replacement/internal/stats"
	"github.com/stretchr/testify/require"
)

type stubPolicy struct {
	way     int
	updates int
}

func (s *stubPolicy) Victim(_ int, _ []LineState, _ Access) int { return s.way }

func (s *stubPolicy) Update(_ int, _ int, _ LineState, _ Access, _ bool) { s.updates++ }

func newTestDispatcher(policy PolicyType, contestant Policy) (*Store, *Dispatcher, *stats.ReplStats) {
	store := NewStore(16, 4)
	st := stats.NewStats()
	return store, NewDispatcher(store, policy, rand.New(rand.NewSource(1)), 8, contestant, st), st
}

func TestDispatcher_UnknownPolicy(t *testing.T) {
	require.Panics(t, func() { newTestDispatcher(numPolicies, nil) })
	_, d, _ := newTestDispatcher(REPL_LRU, nil)
	require.Panics(t, func() { d.SetPolicy(PolicyType(42)) })
	require.Equal(t, REPL_LRU, d.Active())
}

func TestDispatcher_LazyPolicies(t *testing.T) {
	store, d, _ := newTestDispatcher(REPL_LRU, nil)
	require.NotNil(t, d.Policy(REPL_LRU))
	require.Nil(t, d.Policy(REPL_DRRIP))
	require.Nil(t, d.Policy(PolicyType(99)))

	d.Update(0, 2, LineState{}, Access{}, true)
	require.Equal(t, []int{1, 2, 0, 3}, stackPositions(store, 0))

	d.SetPolicy(REPL_DRRIP)
	drrip := d.Policy(REPL_DRRIP).(*Drrip)
	// metadata survives the swap
	require.Equal(t, []int{1, 2, 0, 3}, stackPositions(store, 0))
	baseline, challenger := drrip.Duel().leaders()
	require.Equal(t, 4, baseline)
	require.Equal(t, 4, challenger)

	d.SetPolicy(REPL_LRU)
	d.SetPolicy(REPL_DRRIP)
	require.True(t, drrip == d.Policy(REPL_DRRIP))
}

func TestDispatcher_Counters(t *testing.T) {
	_, d, st := newTestDispatcher(REPL_SHIP, nil)
	d.Update(3, 0, LineState{}, Access{PC: 1}, false)
	d.Update(3, 0, LineState{}, Access{PC: 1}, true)
	d.Update(3, 0, LineState{}, Access{PC: 1}, true)
	require.Equal(t, 0, d.Victim(4, nil, Access{}))
	require.Equal(t, uint64(3), st.Get(stats.NumUpdates))
	require.Equal(t, uint64(2), st.Get(stats.NumHits))
	require.Equal(t, uint64(1), st.Get(stats.NumMisses))
	require.Equal(t, uint64(1), st.Get(stats.NumVictims))
	require.Equal(t, uint64(2), st.Get(stats.NumShctIncrements))
}

func TestDispatcher_Contestant(t *testing.T) {
	_, d, _ := newTestDispatcher(REPL_CONTESTANT, nil)
	require.Panics(t, func() { d.Victim(0, nil, Access{}) })
	require.NotPanics(t, func() { d.Update(0, 0, LineState{}, Access{}, false) })

	stub := &stubPolicy{way: 2}
	_, d, st := newTestDispatcher(REPL_CONTESTANT, stub)
	require.Equal(t, 2, d.Victim(0, nil, Access{}))
	d.Update(0, 2, LineState{}, Access{}, false)
	require.Equal(t, 1, stub.updates)

	stub.way = -1
	require.Equal(t, -1, d.Victim(0, nil, Access{}))
	require.Equal(t, uint64(1), st.Get(stats.NumBypasses))

	stub.way = 4
	require.Panics(t, func() { d.Victim(0, nil, Access{}) })
}

func TestPolicyType_Parse(t *testing.T) {
	for p := PolicyType(0); p < numPolicies; p++ {
		parsed, err := ParsePolicy(p.String())
		require.Nil(t, err)
		require.Equal(t, p, parsed)
	}
	_, err := ParsePolicy("plru")
	require.NotNil(t, err)
	require.Equal(t, "policy(9)", PolicyType(9).String())
}
