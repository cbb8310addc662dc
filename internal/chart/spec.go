// Package chart turns long price rows into a declarative line-chart
// description and renders it.
package chart

import (
	"fmt"
	"math"
	"sort"
	"time"

	"PriceBoard/internal/model"
)

// Point is one observation on the temporal X axis.
type Point struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// Series is the line of one company.
type Series struct {
	Name   string  `json:"name"`
	Color  int     `json:"color"` // palette index
	Points []Point `json:"points"`
}

// Spec is a line chart: temporal X, quantitative Y with a fixed domain,
// nominal color per series. Points outside [YMin, YMax] stay in Series
// and are clipped when drawn.
type Spec struct {
	Title      string   `json:"title,omitempty"`
	XField     string   `json:"x_field"`
	YField     string   `json:"y_field"`
	ColorField string   `json:"color_field"`
	YMin       float64  `json:"y_min"`
	YMax       float64  `json:"y_max"`
	Opacity    float64  `json:"opacity"`
	Series     []Series `json:"series"`
}

// Options configures Build.
type Options struct {
	Title      string
	XField     string
	YField     string
	ColorField string
	YMin       float64
	YMax       float64
	Opacity    float64
	// ColorIndex assigns a palette slot per company; nil means series order.
	ColorIndex func(name string) int
}

// Build groups long rows into per-company series. Date labels are parsed
// so the X axis is chronological; NaN prices are missing observations and
// produce no point.
func Build(rows []model.LongRow, opts Options) (*Spec, error) {
	if opts.YMin > opts.YMax {
		return nil, fmt.Errorf("%w: y domain [%g, %g] is inverted", model.ErrRenderFailure, opts.YMin, opts.YMax)
	}
	spec := &Spec{
		Title:      opts.Title,
		XField:     orDefault(opts.XField, "Date"),
		YField:     orDefault(opts.YField, "Price"),
		ColorField: orDefault(opts.ColorField, "Name"),
		YMin:       opts.YMin,
		YMax:       opts.YMax,
		Opacity:    opts.Opacity,
	}
	if spec.Opacity <= 0 || spec.Opacity > 1 {
		spec.Opacity = 0.8
	}

	idx := make(map[string]int)
	for _, r := range rows {
		i, ok := idx[r.Name]
		if !ok {
			i = len(spec.Series)
			idx[r.Name] = i
			color := i
			if opts.ColorIndex != nil {
				if c := opts.ColorIndex(r.Name); c >= 0 {
					color = c
				}
			}
			spec.Series = append(spec.Series, Series{Name: r.Name, Color: color})
		}
		d, err := model.ParseDateLabel(r.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date %q: %w", model.ErrRenderFailure, r.Date, err)
		}
		if math.IsNaN(r.Price) {
			continue
		}
		spec.Series[i].Points = append(spec.Series[i].Points, Point{Date: d, Price: r.Price})
	}
	for i := range spec.Series {
		pts := spec.Series[i].Points
		sort.SliceStable(pts, func(a, b int) bool { return pts[a].Date.Before(pts[b].Date) })
	}
	return spec, nil
}

// PointCount is the number of data points across all series.
func (s *Spec) PointCount() int {
	n := 0
	for _, se := range s.Series {
		n += len(se.Points)
	}
	return n
}

// XDomain returns the earliest and latest dates of all series.
func (s *Spec) XDomain() (min, max time.Time, ok bool) {
	for _, se := range s.Series {
		for _, p := range se.Points {
			if !ok || p.Date.Before(min) {
				min = p.Date
			}
			if !ok || p.Date.After(max) {
				max = p.Date
			}
			ok = true
		}
	}
	return min, max, ok
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
