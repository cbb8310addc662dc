package chart

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"PriceBoard/internal/model"
)

// Renderer draws a Spec.
type Renderer interface {
	Render(spec *Spec, w io.Writer) error
}

// PNGRenderer renders a Spec as a PNG line chart.
type PNGRenderer struct {
	Width  int
	Height int
	// Font overrides go-chart's default Roboto, which has no CJK glyphs.
	Font *truetype.Font
}

// LoadFont parses a TrueType font file for use as PNGRenderer.Font.
func LoadFont(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return f, nil
}

// NewPNGRenderer creates a renderer with the given canvas size.
func NewPNGRenderer(width, height int) *PNGRenderer {
	if width <= 0 {
		width = 960
	}
	if height <= 0 {
		height = 480
	}
	return &PNGRenderer{Width: width, Height: height}
}

// seriesColor returns the palette color of slot i with the line opacity applied.
func seriesColor(i int, opacity float64) drawing.Color {
	return gochart.GetDefaultColor(i).WithAlpha(uint8(opacity * 255))
}

// Render draws every series clipped to the Y domain.
func (r *PNGRenderer) Render(spec *Spec, w io.Writer) error {
	ch, err := r.newChart(spec)
	if err != nil {
		return err
	}
	if err := ch.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("%w: %w", model.ErrRenderFailure, err)
	}
	return nil
}

// axisRange is the drawn Y range: exactly [spec.YMin, spec.YMax] whatever
// the data range is. A zero-width window is widened around its value
// since go-chart cannot draw an empty range; lines are still clipped to
// the exact window.
func axisRange(spec *Spec) *gochart.ContinuousRange {
	lo, hi := spec.YMin, spec.YMax
	if lo == hi {
		pad := math.Max(1, math.Abs(lo)*0.01)
		lo, hi = lo-pad, hi+pad
	}
	return &gochart.ContinuousRange{Min: lo, Max: hi}
}

func (r *PNGRenderer) newChart(spec *Spec) (gochart.Chart, error) {
	if len(spec.Series) == 0 {
		return gochart.Chart{}, fmt.Errorf("%w: no series to draw", model.ErrRenderFailure)
	}
	if spec.YMin > spec.YMax {
		return gochart.Chart{}, fmt.Errorf("%w: y domain [%g, %g] is inverted", model.ErrRenderFailure, spec.YMin, spec.YMax)
	}
	xmin, xmax, ok := spec.XDomain()
	if !ok {
		return gochart.Chart{}, fmt.Errorf("%w: no data points", model.ErrRenderFailure)
	}
	if !xmax.After(xmin) {
		xmax = xmin.Add(24 * time.Hour)
	}

	// Invisible anchor keeps the X range on the full date span even when
	// every line is clipped away.
	series := []gochart.Series{gochart.TimeSeries{
		XValues: []time.Time{xmin, xmax},
		YValues: []float64{spec.YMin, spec.YMin},
		Style:   gochart.Style{StrokeColor: drawing.ColorTransparent, StrokeWidth: 1},
	}}
	var legend []gochart.Series

	for _, s := range spec.Series {
		st := gochart.Style{
			StrokeColor: seriesColor(s.Color, spec.Opacity),
			StrokeWidth: 2,
		}
		legend = append(legend, gochart.TimeSeries{Name: s.Name, Style: st})
		for _, run := range ClipSeries(s.Points, spec.YMin, spec.YMax) {
			xs := make([]time.Time, len(run))
			ys := make([]float64, len(run))
			for i, p := range run {
				xs[i] = p.Date
				ys[i] = p.Price
			}
			rs := st
			// go-chart needs two X values to draw a series.
			if len(xs) == 1 {
				xs = append(xs, xs[0].Add(time.Second))
				ys = append(ys, ys[0])
				rs.DotWidth = 3
				rs.DotColor = rs.StrokeColor
			}
			series = append(series, gochart.TimeSeries{Name: s.Name, XValues: xs, YValues: ys, Style: rs})
		}
	}

	ch := gochart.Chart{
		Title:      spec.Title,
		Font:       r.Font,
		Width:      r.Width,
		Height:     r.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:           spec.XField,
			ValueFormatter: gochart.TimeValueFormatterWithFormat("01/02"),
		},
		YAxis: gochart.YAxis{
			Name:  spec.YField,
			Range: axisRange(spec),
		},
		Series: series,
	}
	// Legend only lists companies, not the anchor or clipped runs.
	legendChart := gochart.Chart{Series: legend}
	ch.Elements = []gochart.Renderable{gochart.Legend(&legendChart)}
	return ch, nil
}
