package canon

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/tubesort/internal/domain"
)

const (
	cA = domain.Color(1)
	cB = domain.Color(2)
	cC = domain.Color(3)
)

func TestKeyInvariantUnderTubePermutation(t *testing.T) {
	s := domain.PuzzleState{Capacity: 4, Tubes: []domain.Tube{
		{cA, cB, cA, cB},
		{cB, cA},
		{cC, cC, cC},
		{},
		{cA},
	}}
	want := Key(s)

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		perm := s.Clone()
		rng.Shuffle(len(perm.Tubes), func(a, b int) {
			perm.Tubes[a], perm.Tubes[b] = perm.Tubes[b], perm.Tubes[a]
		})
		require.Equal(t, want, Key(perm), "permutation %d", i)
		assert.True(t, Equivalent(s, perm))
	}
}

func TestKeyOrderWithinTubeMatters(t *testing.T) {
	a := domain.PuzzleState{Capacity: 4, Tubes: []domain.Tube{{cA, cB}, {}}}
	b := domain.PuzzleState{Capacity: 4, Tubes: []domain.Tube{{cB, cA}, {}}}
	assert.NotEqual(t, Key(a), Key(b))
	assert.False(t, Equivalent(a, b))
}

// Tube boundaries are part of the key: {AB,C} and {A,BC} hold the same units
// but are different nodes.
func TestKeySeparatesTubePartitions(t *testing.T) {
	a := domain.PuzzleState{Capacity: 4, Tubes: []domain.Tube{{cA, cB}, {cC}}}
	b := domain.PuzzleState{Capacity: 4, Tubes: []domain.Tube{{cA}, {cB, cC}}}
	assert.NotEqual(t, Key(a), Key(b))
}

func TestKeyDistinguishesEmptyTubeCount(t *testing.T) {
	a := domain.PuzzleState{Capacity: 4, Tubes: []domain.Tube{{cA}, {}}}
	b := domain.PuzzleState{Capacity: 4, Tubes: []domain.Tube{{cA}, {}, {}}}
	assert.NotEqual(t, Key(a), Key(b))
}
