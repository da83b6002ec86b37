package main

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	grainy "github.com/esimov/grainy/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramePath(t *testing.T) {
	assert.Equal(t, "out/film_0007.png", framePath("out/film.png", 7))
	assert.Equal(t, "film_0000", framePath("film", 0))
}

func TestCollectJobs_Directory(t *testing.T) {
	src, dst := t.TempDir(), filepath.Join(t.TempDir(), "out")
	img := imaging.New(4, 4, color.NRGBA{R: 10, A: 255})
	require.NoError(t, imaging.Save(img, filepath.Join(src, "a.png")))
	require.NoError(t, imaging.Save(img, filepath.Join(src, "b.JPG")))
	require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("x"), 0644))

	jobs, err := collectJobs(src, dst, 1)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
	assert.DirExists(t, dst)
	assert.Equal(t, filepath.Join(dst, "a.png"), jobs[0].destination)
}

func TestCollectJobs_UnsupportedOutput(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.png")
	require.NoError(t, imaging.Save(imaging.New(2, 2, color.Black), src))

	_, err := collectJobs(src, "out.gif", 1)
	assert.Error(t, err)
}

func TestEffect_RenderFrames(t *testing.T) {
	src := imaging.New(16, 16, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	fx := &effect{
		amount:  10,
		frames:  3,
		texture: imaging.New(5, 5, color.NRGBA{R: 255, G: 255, B: 255, A: 255}),
		overlay: &grainy.OverlayOptions{Reflect: true, Animate: &grainy.Drift{}},
	}

	var got []int
	err := fx.render(src, 42, func(frame int, img image.Image) error {
		got = append(got, frame)
		assert.Equal(t, src.Bounds(), img.Bounds())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestEffect_RenderIsReproducible(t *testing.T) {
	src := imaging.New(8, 8, color.NRGBA{R: 100, G: 150, B: 200, A: 255})
	fx := &effect{amount: 30, chromatic: true}

	var first, second *image.NRGBA
	require.NoError(t, fx.render(src, 9, func(_ int, img image.Image) error {
		first = imaging.Clone(img)
		return nil
	}))
	require.NoError(t, fx.render(src, 9, func(_ int, img image.Image) error {
		second = imaging.Clone(img)
		return nil
	}))
	assert.Equal(t, first.Pix, second.Pix)
}

func TestRunJobs_BoundsConcurrency(t *testing.T) {
	jobs := make([]job, 12)
	var running, peak, calls atomic.Int32

	err := runJobs(context.Background(), jobs, 3, func(i int, _ job) error {
		calls.Add(1)
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		running.Add(-1)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(12), calls.Load())
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestRunJobs_StopsOnError(t *testing.T) {
	jobs := make([]job, 8)
	failure := errors.New("decode failed")
	var calls atomic.Int32

	err := runJobs(context.Background(), jobs, 1, func(i int, _ job) error {
		calls.Add(1)
		if i == 0 {
			return failure
		}
		return nil
	})
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, int32(1), calls.Load())
}
