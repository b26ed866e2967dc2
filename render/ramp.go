package render

import (
	"image/color"
	"math"
)

// Ramp maps t in [0, 1] to a color.
type Ramp func(t float64) color.RGBA

// viridisStops approximates the viridis colormap at t = 0, 0.25, 0.5, 0.75, 1.
var viridisStops = [...]color.RGBA{
	{R: 68, G: 1, B: 84, A: 255},
	{R: 59, G: 82, B: 139, A: 255},
	{R: 33, G: 145, B: 140, A: 255},
	{R: 94, G: 201, B: 98, A: 255},
	{R: 253, G: 231, B: 37, A: 255},
}

// Viridis is a perceptually uniform ramp from dark purple to yellow.
func Viridis(t float64) color.RGBA {
	if math.IsNaN(t) || t <= 0 {
		return viridisStops[0]
	}
	if t >= 1 {
		return viridisStops[len(viridisStops)-1]
	}

	pos := t * float64(len(viridisStops)-1)
	i := int(pos)
	f := pos - float64(i)
	a, b := viridisStops[i], viridisStops[i+1]
	return color.RGBA{
		R: lerp(a.R, b.R, f),
		G: lerp(a.G, b.G, f),
		B: lerp(a.B, b.B, f),
		A: 255,
	}
}

// Grayscale runs from black to white.
func Grayscale(t float64) color.RGBA {
	if math.IsNaN(t) {
		t = 0
	}
	v := uint8(math.Round(255 * math.Min(1, math.Max(0, t))))
	return color.RGBA{R: v, G: v, B: v, A: 255}
}

// categorical is a qualitative palette for integer labels.
var categorical = [...]color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
	{R: 227, G: 119, B: 194, A: 255},
	{R: 127, G: 127, B: 127, A: 255},
	{R: 188, G: 189, B: 34, A: 255},
	{R: 23, G: 190, B: 207, A: 255},
}

// Label returns the palette color for an integer label. Labels wrap around
// after ten colors.
func Label(l int) color.RGBA {
	n := len(categorical)
	return categorical[((l%n)+n)%n]
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}
