// Package grainy applies film grain and tiled texture overlays to the
// pixel buffers of rendering surfaces.
//
// An Engine owns the random provider, the default surface and the drift
// state of its default compositor. Engines are not safe for concurrent
// use; give every goroutine its own.
package grainy

import (
	"image"
	"log/slog"
)

// Config holds the setup options of an Engine.
type Config struct {
	// Random replaces the default generator. It must return numbers in [0, 1).
	Random func() float64
	// RandomMode is "int" or "float". Empty keeps the current mode.
	RandomMode string
	// Surface is the target used when an effect is called without one.
	Surface Surface
	// IgnoreWarnings silences the warnings of this engine. Unlike the
	// other fields it is applied on every Configure call, so it must be
	// repeated to stay in effect.
	IgnoreWarnings bool
}

// Engine applies effects to surfaces.
type Engine struct {
	random         *Random
	surface        Surface
	ignoreWarnings bool
	compositor     *Compositor
}

// New creates an engine configured with cfg.
func New(cfg Config) *Engine {
	e := &Engine{random: NewRandom(cfg.Random, FloatMode)}
	e.compositor = e.NewCompositor()
	e.Configure(cfg)
	return e
}

// Configure applies cfg on top of the current setup. Nil and empty
// fields leave the matching setting as it is, except IgnoreWarnings,
// which is always replaced. An unknown random mode is
// reported as a warning and the previous mode stays active.
func (e *Engine) Configure(cfg Config) {
	e.ignoreWarnings = cfg.IgnoreWarnings
	e.random.setSource(cfg.Random)

	if cfg.RandomMode != "" {
		mode, err := ParseRandomMode(cfg.RandomMode)
		if err != nil {
			e.warn("grainy: random mode ignored",
				slog.String("mode", cfg.RandomMode),
				slog.String("keep", e.random.Mode().String()),
				slog.Any("error", err),
			)
		} else {
			e.random.setMode(mode)
		}
	}
	if cfg.Surface != nil {
		e.surface = cfg.Surface
	}
}

// Random returns the engine's random provider.
func (e *Engine) Random() *Random { return e.random }

// Surface returns the default surface, or nil if none is configured.
func (e *Engine) Surface() Surface { return e.surface }

// Compositor returns the compositor used by TextureOverlay and TextureAnimate.
func (e *Engine) Compositor() *Compositor { return e.compositor }

// TextureOverlay tiles texture over target with the default compositor.
func (e *Engine) TextureOverlay(texture image.Image, opts *OverlayOptions, target Surface) error {
	return e.compositor.Overlay(texture, opts, target)
}

// TextureAnimate shifts the background of el with the default compositor.
func (e *Engine) TextureAnimate(el any, opts *Drift) error {
	return e.compositor.Animate(el, opts)
}

func (e *Engine) warn(msg string, args ...any) {
	if e.ignoreWarnings {
		return
	}
	Logger().Warn(msg, args...)
}
