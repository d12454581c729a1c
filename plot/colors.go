package plot

import "image/color"

type rgb struct {
	r uint8
	g uint8
	b uint8
}

// from https://sashamaps.net/docs/resources/20-colors/
var distinctiveColors = []rgb{
	{230, 25, 75},
	{60, 180, 75},
	{255, 225, 25},
	{0, 130, 200},
	{245, 130, 48},
	{145, 30, 180},
	{70, 240, 240},
	{240, 50, 230},
	{210, 245, 60},
	{250, 190, 212},
	{0, 128, 128},
	{220, 190, 255},
	{170, 110, 40},
	{255, 250, 200},
	{128, 0, 0},
	{170, 255, 195},
	{128, 128, 0},
	{255, 215, 180},
	{0, 0, 128},
	{128, 128, 128},
	{0, 0, 0},
}

// colorAt cycles through the palette, one color per line of a trace
func colorAt(index int) color.RGBA {
	c := distinctiveColors[index%len(distinctiveColors)]
	return color.RGBA{R: c.r, G: c.g, B: c.b, A: 255}
}
