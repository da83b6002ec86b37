package grainy_test

import (
	"math"
	"testing"

	grainy "github.com/esimov/grainy/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandom_IntModeShrinksBounds(t *testing.T) {
	r := grainy.NewRandom(grainy.NewSource(1), grainy.IntMode)

	lo, hi := r.Bounds(-3.2, 3.7)
	assert.Equal(t, -3.0, lo)
	assert.Equal(t, 3.0, hi)
}

func TestRandom_FloatModeKeepsBounds(t *testing.T) {
	r := grainy.NewRandom(grainy.NewSource(1), grainy.FloatMode)

	lo, hi := r.Bounds(-3.2, 3.7)
	assert.Equal(t, -3.2, lo)
	assert.Equal(t, 3.7, hi)
}

func TestRandom_IntModeIsInclusive(t *testing.T) {
	r := grainy.NewRandom(grainy.NewSource(42), grainy.IntMode)
	seen := make(map[float64]int)

	for i := 0; i < 10000; i++ {
		v := r.Next(-3, 3)
		require.Equal(t, math.Trunc(v), v, "draw %v is not a whole number", v)
		require.GreaterOrEqual(t, v, -3.0)
		require.LessOrEqual(t, v, 3.0)
		seen[v]++
	}
	assert.Len(t, seen, 7)
}

func TestRandom_IntModeFormula(t *testing.T) {
	r := grainy.NewRandom(sequence(0, math.Nextafter(1, 0), 0.5), grainy.IntMode)

	assert.Equal(t, -3.0, r.Next(-3, 3))
	assert.Equal(t, 3.0, r.Next(-3, 3))
	assert.Equal(t, 0.0, r.Next(-3, 3))
}

func TestRandom_FloatModeExcludesMax(t *testing.T) {
	r := grainy.NewRandom(grainy.NewSource(7), grainy.FloatMode)
	for i := 0; i < 10000; i++ {
		v := r.Next(-2, 5)
		require.GreaterOrEqual(t, v, -2.0)
		require.Less(t, v, 5.0)
	}

	top := grainy.NewRandom(sequence(math.Nextafter(1, 0)), grainy.FloatMode)
	assert.Less(t, top.Next(0, 10), 10.0)
}

func TestRandom_FloatIgnoresMode(t *testing.T) {
	r := grainy.NewRandom(sequence(0.5), grainy.IntMode)
	assert.Equal(t, 2.5, r.Float(0, 5))
}

func TestRandom_NilSourceFallsBack(t *testing.T) {
	r := grainy.NewRandom(nil, grainy.FloatMode)
	v := r.Next(0, 1)
	assert.GreaterOrEqual(t, v, 0.0)
	assert.Less(t, v, 1.0)
}

func TestRandom_SeededSourceIsDeterministic(t *testing.T) {
	a, b := grainy.NewSource(99), grainy.NewSource(99)
	for i := 0; i < 100; i++ {
		require.Equal(t, a(), b())
	}
}

func TestParseRandomMode(t *testing.T) {
	m, err := grainy.ParseRandomMode("int")
	require.NoError(t, err)
	assert.Equal(t, grainy.IntMode, m)

	m, err = grainy.ParseRandomMode("float")
	require.NoError(t, err)
	assert.Equal(t, grainy.FloatMode, m)

	_, err = grainy.ParseRandomMode("double")
	assert.ErrorIs(t, err, grainy.ErrInvalidConfiguration)
}
