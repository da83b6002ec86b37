package grainy_test

import (
	"bytes"
	"image/color"
	"log/slog"
	"testing"

	grainy "github.com/esimov/grainy/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	grainy.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { grainy.SetLogger(nil) })
	return &buf
}

func TestEngine_DefaultsToFloatMode(t *testing.T) {
	e := grainy.New(grainy.Config{})
	assert.Equal(t, grainy.FloatMode, e.Random().Mode())
	assert.Nil(t, e.Surface())
}

func TestEngine_ConfigureSelectsMode(t *testing.T) {
	e := grainy.New(grainy.Config{RandomMode: "int"})
	assert.Equal(t, grainy.IntMode, e.Random().Mode())

	e.Configure(grainy.Config{RandomMode: "float"})
	assert.Equal(t, grainy.FloatMode, e.Random().Mode())
}

func TestEngine_UnknownModeKeepsPrevious(t *testing.T) {
	logs := captureLogs(t)

	e := grainy.New(grainy.Config{RandomMode: "int"})
	e.Configure(grainy.Config{RandomMode: "gaussian"})

	assert.Equal(t, grainy.IntMode, e.Random().Mode())
	assert.Contains(t, logs.String(), "random mode ignored")
	assert.Contains(t, logs.String(), "gaussian")
}

func TestEngine_IgnoreWarnings(t *testing.T) {
	logs := captureLogs(t)

	e := grainy.New(grainy.Config{IgnoreWarnings: true})
	e.Configure(grainy.Config{RandomMode: "gaussian", IgnoreWarnings: true})

	assert.Equal(t, grainy.FloatMode, e.Random().Mode())
	assert.NotContains(t, logs.String(), "random mode ignored")
}

func TestEngine_IgnoreWarningsIsReplacedOnConfigure(t *testing.T) {
	logs := captureLogs(t)

	e := grainy.New(grainy.Config{IgnoreWarnings: true})
	e.Configure(grainy.Config{})
	e.Configure(grainy.Config{RandomMode: "gaussian"})

	assert.Contains(t, logs.String(), "random mode ignored")
}

func TestEngine_ConfigureKeepsUnsetFields(t *testing.T) {
	s := newMemSurface(1, 1, 1, color.NRGBA{A: 255})
	e := grainy.New(grainy.Config{Random: sequence(0.5), Surface: s})
	e.Configure(grainy.Config{})

	assert.Same(t, s, e.Surface())
	assert.Equal(t, 0.5, e.Random().Next(0, 1))
}

func TestEngine_ConfigureReplacesSource(t *testing.T) {
	e := grainy.New(grainy.Config{Random: sequence(0.25)})
	e.Configure(grainy.Config{Random: sequence(0.75)})

	assert.Equal(t, 0.75, e.Random().Next(0, 1))
}

func TestEngine_DebugLogsOnAcquire(t *testing.T) {
	logs := captureLogs(t)

	s := newMemSurface(2, 2, 1, color.NRGBA{A: 255})
	e := grainy.New(grainy.Config{Surface: s})
	require.NoError(t, e.MonochromaticGrain(0, false, nil))

	assert.Contains(t, logs.String(), "pixels acquired")
	assert.Contains(t, logs.String(), "pixels committed")
}
