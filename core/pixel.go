package grainy

import (
	"encoding/binary"

	"golang.org/x/exp/constraints"
)

// PixelBuffer is a view over a surface's raw pixel store. Pix holds four
// bytes per pixel in R, G, B, A order, so each pixel reads as one
// little-endian 32-bit word with red in the lowest byte.
type PixelBuffer struct {
	Pix     []byte
	Width   int
	Height  int
	Density int
}

// Len returns the number of physical pixels in the buffer.
func (b *PixelBuffer) Len() int {
	return b.Width * b.Height * b.Density * b.Density
}

// Word returns the packed value of the i-th pixel.
func (b *PixelBuffer) Word(i int) uint32 {
	return binary.LittleEndian.Uint32(b.Pix[4*i:])
}

// SetWord stores a packed value as the i-th pixel.
func (b *PixelBuffer) SetWord(i int, w uint32) {
	binary.LittleEndian.PutUint32(b.Pix[4*i:], w)
}

// Unpack splits a packed pixel word into its channels.
func Unpack(w uint32) (r, g, b, a uint8) {
	return uint8(w), uint8(w >> 8), uint8(w >> 16), uint8(w >> 24)
}

// Pack builds a pixel word from its channels.
func Pack(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// clamp limits v to the [lo, hi] range.
func clamp[T constraints.Ordered](v, lo, hi T) T {
	return max(lo, min(hi, v))
}

// offsetChannel adds off to the channel value and brings the result back
// into the byte range. Fractions are truncated.
func offsetChannel(c uint8, off float64) uint8 {
	return uint8(clamp(float64(c)+off, 0, 255))
}
