package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/hupe1980/spatialgo/matrix"
)

// ErrLengthMismatch is returned when the number of values differs from the
// number of points.
var ErrLengthMismatch = errors.New("render: values and points differ in length")

// Format selects the output encoding.
type Format int

const (
	SVG Format = iota
	PNG
)

// ParseFormat parses "svg" or "png".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "svg", "":
		return SVG, nil
	case "png":
		return PNG, nil
	default:
		return 0, fmt.Errorf("render: unknown format %q", s)
	}
}

// Options configures Image.
type Options struct {
	Format Format

	// CellSize is the edge length of one point's cell in coordinate units.
	// Default: 1
	CellSize float64

	// Scale is millimeters per coordinate unit. Default: 1
	Scale float64

	// Padding around the point extent, in coordinate units.
	Padding float64

	// Resolution for PNG output. Default: 254 DPI (10 px/mm)
	Resolution canvas.Resolution

	// Min and Max fix the value range mapped onto the ramp. When Min >= Max
	// the range of the finite values is used.
	Min, Max float64

	// Ramp colors continuous values. Default: Viridis
	Ramp Ramp

	// Labels colors each value as an integer label instead of using Ramp.
	Labels bool

	// Title is stamped in the top-left corner of PNG output.
	Title string
}

func (o *Options) defaults() {
	if o.CellSize <= 0 {
		o.CellSize = 1
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Resolution == 0 {
		o.Resolution = canvas.DPI(254)
	}
	if o.Ramp == nil {
		o.Ramp = Viridis
	}
}

type canvasRenderer interface {
	RenderPath(path *canvas.Path, style canvas.Style, m canvas.Matrix)
}

// Image draws values[i] as a cell at point i of coords (n x 2) and writes
// the picture to w. NaN values are left blank.
func Image[C matrix.Real](w io.Writer, coords *matrix.Dense[C], values []float64, opts Options) error {
	opts.defaults()

	bound, err := matrix.Bound(coords)
	if err != nil {
		return err
	}
	if len(values) != coords.Rows() {
		return fmt.Errorf("%w: %d values for %d points", ErrLengthMismatch, len(values), coords.Rows())
	}

	margin := opts.Padding + opts.CellSize/2
	minX, minY := bound.Min.X()-margin, bound.Min.Y()-margin
	width := (bound.Max.X() - bound.Min.X() + 2*margin) * opts.Scale
	height := (bound.Max.Y() - bound.Min.Y() + 2*margin) * opts.Scale

	lo, hi := valueRange(values, opts)
	paint := func(v float64) color.RGBA {
		if opts.Labels {
			return Label(int(v))
		}
		return opts.Ramp((v - lo) / (hi - lo))
	}

	scene := func(r canvasRenderer) {
		bg := canvas.DefaultStyle
		bg.Fill = canvas.Paint{Color: canvas.White}
		r.RenderPath(canvas.Rectangle(width, height), bg, canvas.Identity)

		cell := opts.CellSize * opts.Scale
		style := canvas.DefaultStyle
		style.Stroke = canvas.Paint{Color: canvas.Transparent}
		for i, v := range values {
			if math.IsNaN(v) {
				continue
			}
			x := (float64(coords.At(i, 0))-minX)*opts.Scale - cell/2
			y := (float64(coords.At(i, 1))-minY)*opts.Scale - cell/2
			style.Fill = canvas.Paint{Color: paint(v)}
			r.RenderPath(canvas.Rectangle(cell, cell), style, canvas.Identity.Translate(x, y))
		}
	}

	switch opts.Format {
	case PNG:
		rast := rasterizer.New(width, height, opts.Resolution, canvas.DefaultColorSpace)
		scene(rast)
		if opts.Title != "" {
			drawText(rast, 4, 13, opts.Title, color.RGBA{A: 255})
		}
		return png.Encode(w, rast)
	default:
		sr := svg.New(w, width, height, nil)
		scene(sr)
		return sr.Close()
	}
}

// valueRange returns the range mapped onto the ramp. A constant range is
// widened so every value maps to the middle of the ramp.
func valueRange(values []float64, opts Options) (float64, float64) {
	if opts.Min < opts.Max {
		return opts.Min, opts.Max
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return 0, 1
	}
	if lo == hi {
		return lo - 0.5, hi + 0.5
	}
	return lo, hi
}

func drawText(img draw.Image, x, y int, text string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
