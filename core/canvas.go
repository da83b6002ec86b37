package grainy

import (
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Canvas is an in-memory drawing surface backed by a gg context.
//
// The pixel store filled by LoadPixels holds unpremultiplied RGBA, the
// way browser canvases expose their image data; UpdatePixels converts it
// back into the premultiplied backing image.
type Canvas struct {
	dc      *gg.Context
	width   int
	height  int
	density int
	mode    BlendMode
	pix     []byte
	layer   *image.RGBA
}

// NewCanvas creates a transparent canvas of the given logical size.
func NewCanvas(width, height int) *Canvas {
	return NewCanvasWithDensity(width, height, 1)
}

// NewCanvasWithDensity creates a canvas whose backing image has density²
// physical pixels per logical pixel. Drawing happens in logical units.
func NewCanvasWithDensity(width, height, density int) *Canvas {
	if density < 1 {
		density = 1
	}
	c := &Canvas{
		dc:      gg.NewContext(width*density, height*density),
		width:   width,
		height:  height,
		density: density,
		mode:    BlendNormal,
	}
	c.dc.Scale(float64(density), float64(density))
	return c
}

// NewCanvasFromImage creates a canvas initialised with a copy of img.
func NewCanvasFromImage(img image.Image) *Canvas {
	b := img.Bounds()
	c := NewCanvas(b.Dx(), b.Dy())
	draw.Draw(c.rgba(), c.rgba().Bounds(), img, b.Min, draw.Src)
	return c
}

// Context exposes the underlying gg context for regular drawing.
func (c *Canvas) Context() *gg.Context { return c.dc }

// Image returns the backing image.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

func (c *Canvas) Width() int        { return c.width }
func (c *Canvas) Height() int       { return c.height }
func (c *Canvas) PixelDensity() int { return c.density }
func (c *Canvas) Pixels() []byte    { return c.pix }

func (c *Canvas) rgba() *image.RGBA { return c.dc.Image().(*image.RGBA) }

// LoadPixels copies the backing image into the pixel store.
func (c *Canvas) LoadPixels() {
	src := c.rgba()
	b := src.Bounds()
	if n := 4 * b.Dx() * b.Dy(); len(c.pix) != n {
		c.pix = make([]byte, n)
	}
	for y := 0; y < b.Dy(); y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+4*b.Dx()]
		out := c.pix[4*y*b.Dx():]
		for i := 0; i < len(row); i += 4 {
			a := row[i+3]
			out[i+0] = unpremultiply(row[i+0], a)
			out[i+1] = unpremultiply(row[i+1], a)
			out[i+2] = unpremultiply(row[i+2], a)
			out[i+3] = a
		}
	}
}

// UpdatePixels writes the pixel store back into the backing image.
func (c *Canvas) UpdatePixels() {
	dst := c.rgba()
	b := dst.Bounds()
	if len(c.pix) != 4*b.Dx()*b.Dy() {
		return
	}
	for y := 0; y < b.Dy(); y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+4*b.Dx()]
		in := c.pix[4*y*b.Dx():]
		for i := 0; i < len(row); i += 4 {
			a := in[i+3]
			row[i+0] = premultiply(in[i+0], a)
			row[i+1] = premultiply(in[i+1], a)
			row[i+2] = premultiply(in[i+2], a)
			row[i+3] = a
		}
	}
}

func (c *Canvas) Scale(sx, sy float64) { c.dc.Scale(sx, sy) }
func (c *Canvas) Push()                { c.dc.Push() }
func (c *Canvas) Pop()                 { c.dc.Pop() }

// SetBlendMode selects the blend mode of subsequent DrawImage calls.
func (c *Canvas) SetBlendMode(mode BlendMode) {
	if mode == "" {
		mode = BlendNormal
	}
	c.mode = mode
}

// DrawImage paints img over the w×h rectangle at (x, y) under the current
// transform, using bilinear sampling and the current blend mode.
func (c *Canvas) DrawImage(img image.Image, x, y, w, h float64) {
	b := img.Bounds()
	if b.Empty() || w == 0 || h == 0 {
		return
	}
	if b.Min != (image.Point{}) {
		img = imaging.Clone(img)
		b = img.Bounds()
	}
	sx, sy := w/float64(b.Dx()), h/float64(b.Dy())

	// Device position of the image origin and of its unit axes.
	x0, y0 := c.dc.TransformPoint(x, y)
	x1, y1 := c.dc.TransformPoint(x+sx, y)
	x2, y2 := c.dc.TransformPoint(x, y+sy)
	s2d := f64.Aff3{x1 - x0, x2 - x0, x0, y1 - y0, y2 - y0, y0}

	dst := c.rgba()
	if c.mode == BlendNormal {
		xdraw.BiLinear.Transform(dst, s2d, img, b, xdraw.Over, nil)
		return
	}

	rect := deviceBounds(c.dc, x, y, w, h).Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	if c.layer == nil || c.layer.Bounds() != dst.Bounds() {
		c.layer = image.NewRGBA(dst.Bounds())
	}
	draw.Draw(c.layer, rect, image.Transparent, image.Point{}, draw.Src)
	xdraw.BiLinear.Transform(c.layer, s2d, img, b, xdraw.Src, nil)

	for py := rect.Min.Y; py < rect.Max.Y; py++ {
		for px := rect.Min.X; px < rect.Max.X; px++ {
			i := dst.PixOffset(px, py)
			var s, d [4]uint8
			copy(s[:], c.layer.Pix[i:i+4])
			copy(d[:], dst.Pix[i:i+4])
			out := blendPixel(c.mode, s, d)
			copy(dst.Pix[i:i+4], out[:])
		}
	}
}

// deviceBounds returns the device space rectangle covering the user
// space rectangle at (x, y) of size w×h.
func deviceBounds(dc *gg.Context, x, y, w, h float64) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{x, y}, {x + w, y}, {x, y + h}, {x + w, y + h}} {
		dx, dy := dc.TransformPoint(p[0], p[1])
		minX, maxX = math.Min(minX, dx), math.Max(maxX, dx)
		minY, maxY = math.Min(minY, dy), math.Max(maxY, dy)
	}
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
}

// Offscreen is a canvas used as an intermediate buffer. Its transforms
// are reset after every compositing pass.
type Offscreen struct {
	*Canvas
}

// NewOffscreen creates an offscreen buffer of the given logical size.
func NewOffscreen(width, height, density int) *Offscreen {
	return &Offscreen{Canvas: NewCanvasWithDensity(width, height, density)}
}

// ResetState drops every transform except the density scale.
func (o *Offscreen) ResetState() {
	o.dc.Identity()
	o.dc.ResetClip()
	o.dc.Scale(float64(o.density), float64(o.density))
	o.mode = BlendNormal
}
