package grainy

import (
	"image"

	"github.com/disintegration/imaging"
)

// Image is a static picture used as a surface. It exposes its pixels but
// cannot be drawn onto, so overlays reject it.
type Image struct {
	img *image.NRGBA
	pix []byte
}

// NewImage copies src into a new static image surface.
func NewImage(src image.Image) *Image {
	return &Image{img: imaging.Clone(src)}
}

// Image returns the current picture.
func (i *Image) Image() *image.NRGBA { return i.img }

func (i *Image) Width() int        { return i.img.Bounds().Dx() }
func (i *Image) Height() int       { return i.img.Bounds().Dy() }
func (i *Image) PixelDensity() int { return 1 }
func (i *Image) Pixels() []byte    { return i.pix }

// LoadPixels copies the picture into the pixel store.
func (i *Image) LoadPixels() {
	if len(i.pix) != len(i.img.Pix) {
		i.pix = make([]byte, len(i.img.Pix))
	}
	copy(i.pix, i.img.Pix)
}

// UpdatePixels copies the pixel store back into the picture.
func (i *Image) UpdatePixels() {
	copy(i.img.Pix, i.pix)
}
