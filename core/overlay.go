package grainy

import (
	"fmt"
	"image"
	"math"
)

// OverlayOptions configures a texture overlay.
type OverlayOptions struct {
	// Width and Height set the tile size. Zero uses the texture size.
	Width  float64
	Height float64
	// Mode is the blend mode of the pass. Defaults to BlendMultiply.
	Mode BlendMode
	// Reflect mirrors every other column and row so that tile edges meet.
	Reflect bool
	// Animate enables drift of the tiling origin. Nil disables it.
	Animate *Drift
}

// Overlay tiles texture over the whole target, starting from the current
// drift offset. A nil target uses the engine's default surface, which
// must implement Drawer.
//
// Errors are reported before the drift state changes.
func (c *Compositor) Overlay(texture image.Image, opts *OverlayOptions, target Surface) error {
	if opts == nil {
		opts = &OverlayOptions{}
	}
	s, err := c.engine.resolve(target)
	if err != nil {
		return err
	}
	d, ok := s.(Drawer)
	if !ok {
		return fmt.Errorf("%w: %T cannot draw images", ErrUnsupportedTarget, s)
	}
	if texture == nil || texture.Bounds().Empty() {
		return fmt.Errorf("%w: empty texture", ErrInvalidArgument)
	}

	if err := validateDrift(opts.Animate); err != nil {
		return err
	}

	width, height := float64(s.Width()), float64(s.Height())
	tw, th := opts.Width, opts.Height
	if tw <= 0 {
		tw = float64(texture.Bounds().Dx())
	}
	if th <= 0 {
		th = float64(texture.Bounds().Dy())
	}
	if err := validateTile(tw, th, s.PixelDensity()); err != nil {
		return err
	}
	mode := opts.Mode
	if mode == "" {
		mode = BlendMultiply
	}

	if opts.Animate != nil {
		amount := opts.Animate.Amount
		if amount <= 0 {
			amount = min(width, height)
		}
		frame, x, y, moved := c.driftStep(c.state.OverlayFrame, opts.Animate, amount)
		c.state.OverlayFrame = frame
		if moved {
			c.state.OffsetX, c.state.OffsetY = -x, -y
		}
	}

	d.SetBlendMode(mode)

	// Shifting the origin by whole tiling periods draws the same picture.
	px, py := tw, th
	if opts.Reflect {
		px, py = 2*tw, 2*th
	}
	ox := math.Mod(float64(c.state.OffsetX), px)
	oy := math.Mod(float64(c.state.OffsetY), py)
	for y, row := oy, 0; y < height; y, row = y+th, row+1 {
		for x, col := ox, 0; x < width; x, col = x+tw, col+1 {
			flipX := opts.Reflect && col%2 == 1
			flipY := opts.Reflect && row%2 == 1
			drawTile(d, texture, x, y, tw, th, flipX, flipY)
		}
	}

	d.SetBlendMode(BlendNormal)
	if r, ok := d.(Resetter); ok {
		r.ResetState()
	}
	return nil
}

// validateTile rejects tile sizes that cannot cover the target in a
// bounded number of draws.
func validateTile(w, h float64, density int) error {
	minSide := 1 / float64(max(density, 1))
	for _, v := range [2]float64{w, h} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < minSide {
			return fmt.Errorf("%w: tile size %vx%v", ErrInvalidArgument, w, h)
		}
	}
	return nil
}

// drawTile paints one tile inside its own graphics state. Flipped tiles
// are drawn at mirrored coordinates under a negative scale so that they
// land on the same rectangle.
func drawTile(d Drawer, texture image.Image, x, y, w, h float64, flipX, flipY bool) {
	d.Push()
	defer d.Pop()

	switch {
	case flipX && flipY:
		d.Scale(-1, -1)
		d.DrawImage(texture, -(x + w), -(y + h), w, h)
	case flipX:
		d.Scale(-1, 1)
		d.DrawImage(texture, -(x + w), y, w, h)
	case flipY:
		d.Scale(1, -1)
		d.DrawImage(texture, x, -(y + h), w, h)
	default:
		d.DrawImage(texture, x, y, w, h)
	}
}
