package grainy

import (
	"fmt"
	"log/slog"
	"math"
)

// Drift configures the periodic repositioning of a texture.
type Drift struct {
	// AtFrame is the number of calls between two moves. Defaults to 2.
	AtFrame int
	// Amount is the exclusive upper bound of a move, in pixels.
	// Defaults to the smaller side of the target and is capped at
	// maxDriftAmount. Negative and non-finite values are rejected.
	Amount float64
}

const (
	defaultDriftFrames = 2
	maxDriftAmount     = math.MaxInt32
)

// validateDrift reports an ErrInvalidArgument for unusable drift amounts.
// A nil drift is valid.
func validateDrift(d *Drift) error {
	if d == nil {
		return nil
	}
	if d.Amount < 0 || math.IsNaN(d.Amount) || math.IsInf(d.Amount, 0) {
		return fmt.Errorf("%w: drift amount %v", ErrInvalidArgument, d.Amount)
	}
	return nil
}

// TilingState is the drift state a Compositor carries between calls.
type TilingState struct {
	TextureFrame int
	OverlayFrame int
	OffsetX      int
	OffsetY      int
}

// Positioner is implemented by elements with a native background offset.
type Positioner interface {
	SetBackgroundPosition(x, y int)
}

// Styler is implemented by elements positioned through style properties.
type Styler interface {
	SetStyle(property, value string)
}

// Compositor tiles textures over surfaces and keeps the drift state of
// those tilings. Independent targets should use independent compositors.
type Compositor struct {
	engine *Engine
	state  TilingState
}

// NewCompositor returns a compositor with fresh drift state that shares
// the engine's random provider and default surface.
func (e *Engine) NewCompositor() *Compositor {
	return &Compositor{engine: e}
}

// State returns a copy of the current drift state.
func (c *Compositor) State() TilingState { return c.state }

// driftStep advances frame and, once it reaches the configured interval,
// draws a new pair of whole offsets in [0, amount). The returned frame
// is the counter to store back.
func (c *Compositor) driftStep(frame int, d *Drift, amount float64) (next, x, y int, moved bool) {
	at := d.AtFrame
	if at <= 0 {
		at = defaultDriftFrames
	}
	frame++
	if frame < at {
		return frame, 0, 0, false
	}
	amount = min(amount, maxDriftAmount)
	x = int(c.engine.random.Float(0, amount))
	y = int(c.engine.random.Float(0, amount))
	Logger().Debug("grainy: drift", slog.Int("x", x), slog.Int("y", y))
	return 0, x, y, true
}

// Animate moves the background of el every few calls, the way Overlay
// drifts its tiling. el must implement Positioner or Styler.
func (c *Compositor) Animate(el any, d *Drift) error {
	if d == nil {
		d = &Drift{}
	}
	switch el.(type) {
	case Positioner, Styler:
	default:
		return fmt.Errorf("%w: %T has no background position", ErrUnsupportedTarget, el)
	}
	if err := validateDrift(d); err != nil {
		return err
	}
	amount := d.Amount
	if amount <= 0 {
		s, err := c.engine.resolve(nil)
		if err != nil {
			return err
		}
		amount = float64(min(s.Width(), s.Height()))
	}

	frame, x, y, moved := c.driftStep(c.state.TextureFrame, d, amount)
	c.state.TextureFrame = frame
	if !moved {
		return nil
	}
	switch el := el.(type) {
	case Positioner:
		el.SetBackgroundPosition(x, y)
	case Styler:
		el.SetStyle("background-position", fmt.Sprintf("%dpx %dpx", x, y))
	}
	return nil
}
