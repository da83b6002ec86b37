package grainy

import "errors"

var (
	// ErrMissingSurface is returned when neither the call nor the engine
	// provides a surface to read pixels from.
	ErrMissingSurface = errors.New("grainy: no surface to operate on")

	// ErrInvalidConfiguration marks a configuration value that was ignored.
	// It is only ever logged, never returned.
	ErrInvalidConfiguration = errors.New("grainy: invalid configuration")

	// ErrUnsupportedTarget is returned when a target lacks the capability
	// an operation needs, e.g. drawing onto a static image.
	ErrUnsupportedTarget = errors.New("grainy: unsupported target type")

	// ErrInvalidArgument is returned for out of range effect arguments.
	ErrInvalidArgument = errors.New("grainy: invalid argument")

	// ErrBufferSize is returned when the pixel store of a surface does not
	// match its reported dimensions.
	ErrBufferSize = errors.New("grainy: pixel store size mismatch")
)
