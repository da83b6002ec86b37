package main

import (
	"fmt"
	"image"

	grainy "github.com/esimov/grainy/core"
)

// effect holds the rendering settings shared by every processed image.
type effect struct {
	amount    float64
	chromatic bool
	alpha     bool
	mode      string
	seed      uint64
	frames    int
	texture   image.Image
	overlay   *grainy.OverlayOptions
}

// render applies the effect to src and hands every rendered frame to emit.
// Each call uses its own engine, so separate images never share state.
func (fx *effect) render(src image.Image, seed uint64, emit func(frame int, img image.Image) error) error {
	cfg := grainy.Config{RandomMode: fx.mode}
	if seed != 0 {
		cfg.Random = grainy.NewSource(seed)
	}
	e := grainy.New(cfg)

	frames := max(fx.frames, 1)
	for i := 0; i < frames; i++ {
		canvas := grainy.NewCanvasFromImage(src)
		e.Configure(grainy.Config{Surface: canvas})

		if fx.texture != nil {
			if err := e.TextureOverlay(fx.texture, fx.overlay, nil); err != nil {
				return fmt.Errorf("texture overlay: %w", err)
			}
		}
		if fx.amount > 0 {
			var err error
			if fx.chromatic {
				err = e.ChromaticGrain(fx.amount, fx.alpha, nil)
			} else {
				err = e.MonochromaticGrain(fx.amount, fx.alpha, nil)
			}
			if err != nil {
				return fmt.Errorf("grain: %w", err)
			}
		}
		if err := emit(i, canvas.Image()); err != nil {
			return err
		}
	}
	return nil
}
