package tile

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// palette maps the opaque encoding colors of level bitmaps to tile types.
// Green is full-intensity green, which colornames calls Lime.
var palette = map[color.RGBA]Type{
	colornames.White: Clear,
	colornames.Black: Obstacle,
	colornames.Red:   Breakable,
	colornames.Cyan:  Hole,
	colornames.Lime:  Goal,
	colornames.Blue:  Spawn,
}

var typeColors = func() map[Type]color.RGBA {
	m := make(map[Type]color.RGBA, len(palette))
	for c, t := range palette {
		m[t] = c
	}
	return m
}()

// Classify maps a pixel color to its tile type. Any color outside the
// encoding table, including translucent ones, is Clear.
func Classify(c color.Color) Type {
	if c == nil {
		return Clear
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A != 0xff {
		return Clear
	}
	if t, ok := palette[color.RGBA{R: n.R, G: n.G, B: n.B, A: 0xff}]; ok {
		return t
	}
	return Clear
}

// ClassifyARGB classifies a packed 0xAARRGGBB pixel, the layout Android
// bitmaps hand out.
func ClassifyARGB(argb uint32) Type {
	return Classify(color.NRGBA{
		A: uint8(argb >> 24),
		R: uint8(argb >> 16),
		G: uint8(argb >> 8),
		B: uint8(argb),
	})
}

// Color returns the encoding color of t.
func Color(t Type) color.RGBA {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return colornames.White
}
