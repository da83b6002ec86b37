package grainy

import (
	"fmt"
	"math"
)

// MonochromaticGrain adds the same random offset in [-amount, amount] to
// the color channels of every pixel, and to alpha when alpha is true.
// Brightness varies while the hue is kept.
func (e *Engine) MonochromaticGrain(amount float64, alpha bool, target Surface) error {
	return e.granulate(amount, target, func(w uint32, lo, hi float64) uint32 {
		r, g, b, a := Unpack(w)
		off := e.random.Next(lo, hi)

		r = offsetChannel(r, off)
		g = offsetChannel(g, off)
		b = offsetChannel(b, off)
		if alpha {
			a = offsetChannel(a, off)
		}
		return Pack(r, g, b, a)
	})
}

// ChromaticGrain draws an independent offset in [-amount, amount] for
// every channel of every pixel, producing color noise.
func (e *Engine) ChromaticGrain(amount float64, alpha bool, target Surface) error {
	return e.granulate(amount, target, func(w uint32, lo, hi float64) uint32 {
		r, g, b, a := Unpack(w)

		r = offsetChannel(r, e.random.Next(lo, hi))
		g = offsetChannel(g, e.random.Next(lo, hi))
		b = offsetChannel(b, e.random.Next(lo, hi))
		if alpha {
			a = offsetChannel(a, e.random.Next(lo, hi))
		}
		return Pack(r, g, b, a)
	})
}

// granulate runs fn over every pixel word of the target and commits once.
func (e *Engine) granulate(amount float64, target Surface, fn func(w uint32, lo, hi float64) uint32) error {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: grain amount %v", ErrInvalidArgument, amount)
	}
	s, buf, err := e.acquire(target)
	if err != nil {
		return err
	}
	lo, hi := e.random.Bounds(-amount, amount)

	for i, n := 0, buf.Len(); i < n; i++ {
		buf.SetWord(i, fn(buf.Word(i), lo, hi))
	}
	e.commit(s)
	return nil
}
