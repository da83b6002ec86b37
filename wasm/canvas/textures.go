package canvas

import (
	"image"
	"reflect"
)

// textureCache keeps one uploaded value per texture. Textures whose
// dynamic type cannot be a map key are rebuilt on every lookup.
type textureCache[V any] struct {
	entries map[image.Image]V
}

func newTextureCache[V any]() *textureCache[V] {
	return &textureCache[V]{entries: make(map[image.Image]V)}
}

// get returns the cached value of img, building it on first use.
func (tc *textureCache[V]) get(img image.Image, build func(image.Image) V) V {
	if !reflect.TypeOf(img).Comparable() {
		return build(img)
	}
	if v, ok := tc.entries[img]; ok {
		return v
	}
	v := build(img)
	tc.entries[img] = v
	return v
}
