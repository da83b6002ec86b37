package grainy_test

import (
	"image"
	"image/color"

	grainy "github.com/esimov/grainy/core"
)

// memSurface is an in-memory surface counting its load and commit calls.
type memSurface struct {
	width, height, density int

	store   []byte
	pix     []byte
	loads   int
	commits int
}

func newMemSurface(width, height, density int, fill color.NRGBA) *memSurface {
	n := width * height * density * density
	s := &memSurface{width: width, height: height, density: density, store: make([]byte, 4*n)}
	for i := 0; i < n; i++ {
		copy(s.store[4*i:], []byte{fill.R, fill.G, fill.B, fill.A})
	}
	return s
}

func (s *memSurface) LoadPixels() {
	s.loads++
	s.pix = append(s.pix[:0], s.store...)
}

func (s *memSurface) UpdatePixels() {
	s.commits++
	copy(s.store, s.pix)
}

func (s *memSurface) Pixels() []byte    { return s.pix }
func (s *memSurface) Width() int        { return s.width }
func (s *memSurface) Height() int       { return s.height }
func (s *memSurface) PixelDensity() int { return s.density }

func (s *memSurface) at(i int) color.NRGBA {
	p := s.store[4*i : 4*i+4]
	return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

type drawCall struct {
	x, y, w, h float64
	sx, sy     float64
}

// drawSurface records the drawing primitives issued against it.
type drawSurface struct {
	*memSurface

	draws  []drawCall
	modes  []grainy.BlendMode
	pushes int
	pops   int
	resets int

	sx, sy float64
	stack  [][2]float64
}

func newDrawSurface(width, height int) *drawSurface {
	return &drawSurface{
		memSurface: newMemSurface(width, height, 1, color.NRGBA{A: 255}),
		sx:         1,
		sy:         1,
	}
}

func (d *drawSurface) DrawImage(_ image.Image, x, y, w, h float64) {
	d.draws = append(d.draws, drawCall{x: x, y: y, w: w, h: h, sx: d.sx, sy: d.sy})
}

func (d *drawSurface) Scale(sx, sy float64) {
	d.sx *= sx
	d.sy *= sy
}

func (d *drawSurface) Push() {
	d.pushes++
	d.stack = append(d.stack, [2]float64{d.sx, d.sy})
}

func (d *drawSurface) Pop() {
	d.pops++
	top := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
	d.sx, d.sy = top[0], top[1]
}

func (d *drawSurface) SetBlendMode(mode grainy.BlendMode) {
	d.modes = append(d.modes, mode)
}

// offscreenSurface additionally accepts state resets.
type offscreenSurface struct {
	*drawSurface
}

func (o offscreenSurface) ResetState() { o.resets++ }

// sequence returns a source cycling through vals.
func sequence(vals ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := vals[i%len(vals)]
		i++
		return v
	}
}

func solidTexture(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:], []byte{c.R, c.G, c.B, c.A})
	}
	return img
}
