package grainy

import "fmt"

// BlendMode names a compositing operation. Values match the canvas
// globalCompositeOperation keywords.
type BlendMode string

const (
	BlendNormal     BlendMode = "source-over"
	BlendMultiply   BlendMode = "multiply"
	BlendScreen     BlendMode = "screen"
	BlendOverlay    BlendMode = "overlay"
	BlendDarken     BlendMode = "darken"
	BlendLighten    BlendMode = "lighten"
	BlendDifference BlendMode = "difference"
	BlendExclusion  BlendMode = "exclusion"
	BlendAdd        BlendMode = "lighter"
)

// blendFuncs holds the per-channel blend of each separable mode, applied
// to unpremultiplied source and backdrop values.
var blendFuncs = map[BlendMode]func(s, d uint8) uint8{
	BlendMultiply: mulDiv255,
	BlendScreen: func(s, d uint8) uint8 {
		return 255 - mulDiv255(255-s, 255-d)
	},
	BlendOverlay: func(s, d uint8) uint8 {
		if d <= 127 {
			return uint8(min(255, 2*uint16(mulDiv255(s, d))))
		}
		return 255 - uint8(min(255, 2*uint16(mulDiv255(255-s, 255-d))))
	},
	BlendDarken:  func(s, d uint8) uint8 { return min(s, d) },
	BlendLighten: func(s, d uint8) uint8 { return max(s, d) },
	BlendDifference: func(s, d uint8) uint8 {
		if s > d {
			return s - d
		}
		return d - s
	},
	BlendExclusion: func(s, d uint8) uint8 {
		return uint8(clamp(int(s)+int(d)-2*int(mulDiv255(s, d)), 0, 255))
	},
}

// ParseBlendMode validates a blend mode name. "normal" and "add" are
// accepted as aliases.
func ParseBlendMode(s string) (BlendMode, error) {
	switch s {
	case "normal", "blend":
		return BlendNormal, nil
	case "add":
		return BlendAdd, nil
	}
	m := BlendMode(s)
	if m == BlendNormal || m == BlendAdd {
		return m, nil
	}
	if _, ok := blendFuncs[m]; ok {
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown blend mode %q", ErrInvalidArgument, s)
}

// blendPixel composites the premultiplied source pixel s over the
// premultiplied backdrop d.
func blendPixel(mode BlendMode, s, d [4]uint8) [4]uint8 {
	sa, da := s[3], d[3]
	switch mode {
	case BlendAdd:
		var out [4]uint8
		for i := range out {
			out[i] = uint8(min(255, uint16(s[i])+uint16(d[i])))
		}
		return out
	case BlendNormal, "":
		return sourceOver(s, d)
	}
	fn, ok := blendFuncs[mode]
	if !ok || sa == 0 || da == 0 {
		return sourceOver(s, d)
	}

	// (1 - Sa)·D + (1 - Da)·S + Sa·Da·B(Sc, Dc)
	var out [4]uint8
	saDa := mulDiv255(sa, da)
	for i := 0; i < 3; i++ {
		b := fn(unpremultiply(s[i], sa), unpremultiply(d[i], da))
		c := uint16(mulDiv255(d[i], 255-sa)) + uint16(mulDiv255(s[i], 255-da)) + uint16(mulDiv255(saDa, b))
		out[i] = uint8(min(255, c))
	}
	out[3] = uint8(min(255, uint16(sa)+uint16(mulDiv255(da, 255-sa))))
	return out
}

func sourceOver(s, d [4]uint8) [4]uint8 {
	var out [4]uint8
	inv := 255 - s[3]
	for i := range out {
		out[i] = uint8(min(255, uint16(s[i])+uint16(mulDiv255(d[i], inv))))
	}
	return out
}

// mulDiv255 returns a·b/255 rounded to the nearest integer.
func mulDiv255(a, b uint8) uint8 {
	x := uint32(a)*uint32(b) + 128
	return uint8((x + x>>8) >> 8)
}

func unpremultiply(c, a uint8) uint8 {
	if a == 0 {
		return 0
	}
	return uint8(min(255, (uint32(c)*255+uint32(a)/2)/uint32(a)))
}

func premultiply(c, a uint8) uint8 {
	return mulDiv255(c, a)
}
