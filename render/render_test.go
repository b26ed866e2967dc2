package render

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/spatialgo/matrix"
)

func grid(t *testing.T) *matrix.Dense[int32] {
	t.Helper()
	m, err := matrix.FromRows([][]int32{{0, 0}, {1, 0}, {0, 1}, {1, 1}})
	require.NoError(t, err)
	return m
}

func TestImageSVG(t *testing.T) {
	var buf bytes.Buffer
	err := Image(&buf, grid(t), []float64{0, 1, 2, math.NaN()}, Options{})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "<svg")
	assert.Contains(t, buf.String(), "path")
}

func TestImagePNG(t *testing.T) {
	var buf bytes.Buffer
	err := Image(&buf, grid(t), []float64{0, 1, 1, 0}, Options{Format: PNG, Labels: true})
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	b := img.Bounds()
	assert.Positive(t, b.Dx())
	assert.Positive(t, b.Dy())
}

func TestImageErrors(t *testing.T) {
	line, err := matrix.FromRows([][]int32{{0}, {1}})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = Image(&buf, line, []float64{0, 1}, Options{})
	assert.ErrorIs(t, err, matrix.ErrBadShape)

	err = Image(&buf, grid(t), []float64{0}, Options{})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("png")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, SVG, f)

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}

func TestViridis(t *testing.T) {
	assert.Equal(t, viridisStops[0], Viridis(-1))
	assert.Equal(t, viridisStops[0], Viridis(math.NaN()))
	assert.Equal(t, viridisStops[4], Viridis(2))
	assert.Equal(t, viridisStops[2], Viridis(0.5))
}

func TestGrayscale(t *testing.T) {
	assert.Equal(t, color.RGBA{A: 255}, Grayscale(0))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, Grayscale(1))
}

func TestLabelWraps(t *testing.T) {
	assert.Equal(t, Label(0), Label(10))
	assert.Equal(t, Label(9), Label(-1))
}

func TestValueRange(t *testing.T) {
	lo, hi := valueRange([]float64{2, math.NaN(), 5}, Options{})
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 5.0, hi)

	lo, hi = valueRange([]float64{3, 3}, Options{})
	assert.Equal(t, 2.5, lo)
	assert.Equal(t, 3.5, hi)

	lo, hi = valueRange([]float64{3}, Options{Min: -1, Max: 1})
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestImagePNGTitle(t *testing.T) {
	var plain, titled bytes.Buffer
	require.NoError(t, Image(&plain, grid(t), []float64{0, 0, 0, 0}, Options{Format: PNG, Padding: 4}))
	require.NoError(t, Image(&titled, grid(t), []float64{0, 0, 0, 0}, Options{Format: PNG, Padding: 4, Title: "filter"}))

	a, err := png.Decode(&plain)
	require.NoError(t, err)
	b, err := png.Decode(&titled)
	require.NoError(t, err)
	require.Equal(t, a.Bounds(), b.Bounds())

	differ := false
	for y := 0; y < 16 && !differ; y++ {
		for x := 0; x < 64; x++ {
			if a.At(x, y) != b.At(x, y) {
				differ = true
				break
			}
		}
	}
	assert.True(t, differ, "title pixels expected in the top-left corner")
}
