package grainy

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
)

// RandomMode selects how the random provider shapes its output.
type RandomMode int

const (
	// FloatMode draws over the half-open range [min, max).
	FloatMode RandomMode = iota
	// IntMode draws whole numbers over the closed range [min, max].
	IntMode
)

func (m RandomMode) String() string {
	switch m {
	case IntMode:
		return "int"
	case FloatMode:
		return "float"
	}
	return fmt.Sprintf("RandomMode(%d)", int(m))
}

// ParseRandomMode maps the textual mode names "int" and "float" to a RandomMode.
func ParseRandomMode(s string) (RandomMode, error) {
	switch s {
	case "int":
		return IntMode, nil
	case "float":
		return FloatMode, nil
	}
	return FloatMode, fmt.Errorf("%w: unknown random mode %q", ErrInvalidConfiguration, s)
}

// generator bundles the bound adjustment and the draw formula of one mode.
type generator struct {
	bounds func(min, max float64) (float64, float64)
	next   func(src func() float64, min, max float64) float64
}

var generators = map[RandomMode]generator{
	IntMode: {
		bounds: func(min, max float64) (float64, float64) {
			return math.Ceil(min), math.Floor(max)
		},
		next: func(src func() float64, min, max float64) float64 {
			return math.Floor(src()*(max-min+1) + min)
		},
	},
	FloatMode: {
		bounds: func(min, max float64) (float64, float64) {
			return min, max
		},
		next: func(src func() float64, min, max float64) float64 {
			return src()*(max-min) + min
		},
	},
}

// Random wraps a source of uniform numbers in [0, 1) and turns them into
// bounded draws according to its mode.
type Random struct {
	source func() float64
	mode   RandomMode
	gen    generator
}

// NewRandom returns a provider over source. A nil source falls back to a
// randomly seeded PCG generator.
func NewRandom(source func() float64, mode RandomMode) *Random {
	if source == nil {
		source = NewSource(trueRandom())
	}
	r := &Random{source: source}
	r.setMode(mode)
	return r
}

// NewSource returns a deterministic source of floats in [0, 1) seeded with seed.
func NewSource(seed uint64) func() float64 {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)).Float64
}

// Mode returns the active mode.
func (r *Random) Mode() RandomMode { return r.mode }

// Bounds adjusts a requested interval to the active mode. In IntMode the
// interval shrinks to the whole numbers it contains.
func (r *Random) Bounds(min, max float64) (float64, float64) {
	return r.gen.bounds(min, max)
}

// Next draws a number between min and max. IntMode includes max, FloatMode does not.
func (r *Random) Next(min, max float64) float64 {
	return r.gen.next(r.source, min, max)
}

// Float draws over [min, max) regardless of the mode.
func (r *Random) Float(min, max float64) float64 {
	return generators[FloatMode].next(r.source, min, max)
}

func (r *Random) setSource(source func() float64) {
	if source != nil {
		r.source = source
	}
}

func (r *Random) setMode(mode RandomMode) {
	gen, ok := generators[mode]
	if !ok {
		return
	}
	r.mode, r.gen = mode, gen
}

// trueRandom reads a seed from the system's cryptographic randomness.
func trueRandom() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("cannot read system randomness: %v", err))
	}
	return binary.LittleEndian.Uint64(b[:])
}
