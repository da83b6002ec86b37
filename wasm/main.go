//go:build js && wasm

package main

import (
	"bytes"
	"errors"
	"fmt"
	"syscall/js"

	"github.com/disintegration/imaging"
	grainy "github.com/esimov/grainy/core"
	"github.com/esimov/grainy/wasm/canvas"
)

const textureURL = "textures/paper.png"

func main() {
	c := canvas.NewCanvas(
		js.Global().Get("innerWidth").Int(),
		js.Global().Get("innerHeight").Int(),
	)
	e := grainy.New(grainy.Config{Surface: c, RandomMode: "int"})

	data, err := fetch(textureURL)
	if err != nil {
		canvas.Log(err.Error())
		return
	}
	texture, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		canvas.Log(err.Error())
		return
	}
	body, err := canvas.QuerySelector("body")
	if err != nil {
		canvas.Log(err.Error())
		return
	}

	overlay := &grainy.OverlayOptions{Reflect: true, Animate: &grainy.Drift{}}
	var renderer js.Func
	renderer = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		ctx := c.Context()
		ctx.Set("fillStyle", "#d8cfc0")
		ctx.Call("fillRect", 0, 0, c.Width(), c.Height())

		if err := e.TextureOverlay(texture, overlay, nil); err != nil {
			canvas.Log(err.Error())
		}
		if err := e.MonochromaticGrain(24, false, nil); err != nil {
			canvas.Log(err.Error())
		}
		if err := e.TextureAnimate(body, nil); err != nil {
			canvas.Log(err.Error())
		}
		js.Global().Call("requestAnimationFrame", renderer)
		return nil
	})
	js.Global().Call("requestAnimationFrame", renderer)

	select {}
}

// fetch retrieves url through the browser's fetch API.
func fetch(url string) ([]byte, error) {
	respChan := make(chan []byte)
	errChan := make(chan error)

	success := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		response := args[0]
		if !response.Get("ok").Bool() {
			go func() { errChan <- errors.New(response.Get("statusText").String()) }()
			return nil
		}
		response.Call("arrayBuffer").Call("then", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			go func() {
				uint8Array := js.Global().Get("Uint8Array").New(args[0])
				buf := make([]byte, uint8Array.Get("length").Int())
				js.CopyBytesToGo(buf, uint8Array)
				respChan <- buf
			}()
			return nil
		}))
		return nil
	})
	failure := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		go func() { errChan <- fmt.Errorf("unable to fetch %s: %s", url, args[0].String()) }()
		return nil
	})
	js.Global().Call("fetch", url).Call("then", success, failure)

	select {
	case resp := <-respChan:
		return resp, nil
	case err := <-errChan:
		return nil, err
	}
}
