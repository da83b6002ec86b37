package grainy

import (
	"fmt"
	"image"
	"log/slog"
)

// Surface is a host rendering target that exposes its pixels.
//
// LoadPixels must be called before Pixels returns valid data, and
// UpdatePixels flushes changes made to that data back to the target.
// Width and Height are logical sizes; the pixel store holds
// Width*Height*PixelDensity² pixels of four bytes each.
type Surface interface {
	LoadPixels()
	Pixels() []byte
	Width() int
	Height() int
	PixelDensity() int
	UpdatePixels()
}

// Drawer is implemented by surfaces that can paint images.
type Drawer interface {
	// DrawImage paints img stretched over the w×h rectangle at (x, y),
	// in the current coordinate system.
	DrawImage(img image.Image, x, y, w, h float64)
	Scale(sx, sy float64)
	// Push saves the graphics state, Pop restores the last saved one.
	Push()
	Pop()
	SetBlendMode(mode BlendMode)
}

// Resetter is implemented by offscreen targets whose transforms should
// be cleared once a compositing pass is over.
type Resetter interface {
	ResetState()
}

// resolve returns target, or the engine default when target is nil.
func (e *Engine) resolve(target Surface) (Surface, error) {
	if target != nil {
		return target, nil
	}
	if e.surface != nil {
		return e.surface, nil
	}
	return nil, ErrMissingSurface
}

// acquire loads the pixels of the resolved surface and returns a view
// over them. Each successful acquire must be paired with one commit.
func (e *Engine) acquire(target Surface) (Surface, *PixelBuffer, error) {
	s, err := e.resolve(target)
	if err != nil {
		return nil, nil, err
	}
	s.LoadPixels()

	buf := &PixelBuffer{
		Pix:     s.Pixels(),
		Width:   s.Width(),
		Height:  s.Height(),
		Density: s.PixelDensity(),
	}
	if len(buf.Pix) != 4*buf.Len() {
		return nil, nil, fmt.Errorf("%w: %d bytes for %dx%d at density %d",
			ErrBufferSize, len(buf.Pix), buf.Width, buf.Height, buf.Density)
	}
	Logger().Debug("grainy: pixels acquired",
		slog.Int("width", buf.Width),
		slog.Int("height", buf.Height),
		slog.Int("density", buf.Density),
	)
	return s, buf, nil
}

func (e *Engine) commit(s Surface) {
	s.UpdatePixels()
	Logger().Debug("grainy: pixels committed")
}
