//go:build js && wasm

// Package canvas exposes an HTML canvas element as a grainy surface.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"syscall/js"

	"github.com/disintegration/imaging"
	grainy "github.com/esimov/grainy/core"
)

// Canvas struct holds the Javascript objects backing a 2D canvas.
type Canvas struct {
	window js.Value
	doc    js.Value

	canvas    js.Value
	ctx       js.Value
	imageData js.Value

	width   int
	height  int
	density int
	pix     []byte

	// Textures converted to offscreen canvases.
	textures *textureCache[js.Value]
}

// NewCanvas creates a canvas element of the given CSS size, scaled by the
// device pixel ratio, and appends it to the document body.
func NewCanvas(width, height int) *Canvas {
	var c Canvas
	c.window = js.Global()
	c.doc = c.window.Get("document")
	c.width, c.height = width, height
	c.density = max(1, int(c.window.Get("devicePixelRatio").Float()))
	c.textures = newTextureCache[js.Value]()

	c.canvas = c.doc.Call("createElement", "canvas")
	c.canvas.Set("width", width*c.density)
	c.canvas.Set("height", height*c.density)
	c.canvas.Get("style").Set("width", fmt.Sprintf("%dpx", width))
	c.canvas.Get("style").Set("height", fmt.Sprintf("%dpx", height))
	c.doc.Get("body").Call("appendChild", c.canvas)

	c.ctx = c.canvas.Call("getContext", "2d")
	c.ctx.Call("scale", c.density, c.density)
	return &c
}

// Context returns the CanvasRenderingContext2D of the element.
func (c *Canvas) Context() js.Value { return c.ctx }

func (c *Canvas) Width() int        { return c.width }
func (c *Canvas) Height() int       { return c.height }
func (c *Canvas) PixelDensity() int { return c.density }
func (c *Canvas) Pixels() []byte    { return c.pix }

// LoadPixels copies the canvas image data into Go memory.
func (c *Canvas) LoadPixels() {
	w, h := c.width*c.density, c.height*c.density
	c.imageData = c.ctx.Call("getImageData", 0, 0, w, h)

	// js.CopyBytesToGo only accepts an Uint8Array, so view the buffer
	// of the Uint8ClampedArray through one.
	data := js.Global().Get("Uint8Array").New(c.imageData.Get("data").Get("buffer"))
	if len(c.pix) != 4*w*h {
		c.pix = make([]byte, 4*w*h)
	}
	js.CopyBytesToGo(c.pix, data)
}

// UpdatePixels writes the Go pixel store back into the canvas.
func (c *Canvas) UpdatePixels() {
	if c.imageData.IsUndefined() {
		return
	}
	data := js.Global().Get("Uint8Array").New(c.imageData.Get("data").Get("buffer"))
	js.CopyBytesToJS(data, c.pix)
	c.ctx.Call("putImageData", c.imageData, 0, 0)
}

// DrawImage paints img through an offscreen canvas built on first use.
func (c *Canvas) DrawImage(img image.Image, x, y, w, h float64) {
	src := c.textures.get(img, c.upload)
	c.ctx.Call("drawImage", src, x, y, w, h)
}

func (c *Canvas) upload(img image.Image) js.Value {
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()

	el := c.doc.Call("createElement", "canvas")
	el.Set("width", b.Dx())
	el.Set("height", b.Dy())
	ctx := el.Call("getContext", "2d")

	data := ctx.Call("createImageData", b.Dx(), b.Dy())
	view := js.Global().Get("Uint8Array").New(data.Get("data").Get("buffer"))
	js.CopyBytesToJS(view, nrgba.Pix)
	ctx.Call("putImageData", data, 0, 0)
	return el
}

func (c *Canvas) Scale(sx, sy float64) { c.ctx.Call("scale", sx, sy) }
func (c *Canvas) Push()                { c.ctx.Call("save") }
func (c *Canvas) Pop()                 { c.ctx.Call("restore") }

// SetBlendMode maps the mode onto globalCompositeOperation.
func (c *Canvas) SetBlendMode(mode grainy.BlendMode) {
	if mode == "" {
		mode = grainy.BlendNormal
	}
	c.ctx.Set("globalCompositeOperation", string(mode))
}

// Element wraps a DOM element so its background can be jittered.
type Element struct {
	el js.Value
}

// QuerySelector returns the first element matching selector.
func QuerySelector(selector string) (*Element, error) {
	el := js.Global().Get("document").Call("querySelector", selector)
	if el.IsNull() {
		return nil, errors.New("no element matches " + selector)
	}
	return &Element{el: el}, nil
}

// SetStyle sets a CSS property on the element.
func (e *Element) SetStyle(property, value string) {
	e.el.Get("style").Call("setProperty", property, value)
}

// Log calls the `console.log` Javascript function
func Log(args ...interface{}) {
	js.Global().Get("console").Call("log", args...)
}
