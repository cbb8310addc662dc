// Package controls turns raw user input into a bounded Selection.
package controls

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"PriceBoard/internal/model"
)

// Bounds are the ranges and defaults of the three inputs.
type Bounds struct {
	MonthsMin     int
	MonthsMax     int
	MonthsDefault int
	PriceMin      float64
	PriceMax      float64
	YMinDefault   float64
	YMaxDefault   float64
}

// DefaultBounds returns months in [1,6] defaulting to 3 and a price window
// in [0,5000] defaulting to [1000,4000].
func DefaultBounds() Bounds {
	return Bounds{
		MonthsMin:     1,
		MonthsMax:     6,
		MonthsDefault: 3,
		PriceMin:      0,
		PriceMax:      5000,
		YMinDefault:   1000,
		YMaxDefault:   4000,
	}
}

// Input is the unvalidated form of a Selection. Empty strings mean "not
// given". CompaniesSet distinguishes a submitted empty company list from
// an absent one.
type Input struct {
	Months       string
	YMin         string
	YMax         string
	Companies    []string
	CompaniesSet bool
}

// FromQuery reads months, ymin, ymax and repeated company parameters.
// Each company value is one name, commas included. form=1 marks a
// submitted form, so an absent company list is empty.
func FromQuery(q url.Values) Input {
	in := Input{
		Months: q.Get("months"),
		YMin:   q.Get("ymin"),
		YMax:   q.Get("ymax"),
	}
	if cs, ok := q["company"]; ok {
		in.CompaniesSet = true
		for _, c := range cs {
			if c = strings.TrimSpace(c); c != "" {
				in.Companies = append(in.Companies, c)
			}
		}
	}
	if q.Get("form") == "1" {
		in.CompaniesSet = true
	}
	return in
}

// Controls resolves input against bounds and a registry.
type Controls struct {
	Bounds   Bounds
	Registry model.Registry
}

// New creates Controls.
func New(b Bounds, reg model.Registry) *Controls {
	return &Controls{Bounds: b, Registry: reg}
}

// Default is the selection shown before any interaction.
func (c *Controls) Default() model.Selection {
	return model.Selection{
		Months:    c.Bounds.MonthsDefault,
		YMin:      c.Bounds.YMinDefault,
		YMax:      c.Bounds.YMaxDefault,
		Companies: c.Registry.Names(),
	}
}

// Resolve clamps every input into its bounds. Unparseable numbers fall
// back to defaults, an inverted window is swapped, and unknown or repeated
// company names are dropped. The company list may end up empty; Check
// reports that.
func (c *Controls) Resolve(in Input) model.Selection {
	sel := c.Default()
	b := c.Bounds

	if n, err := strconv.Atoi(strings.TrimSpace(in.Months)); err == nil {
		sel.Months = clampInt(n, b.MonthsMin, b.MonthsMax)
	}
	if v, ok := parseFinite(in.YMin); ok {
		sel.YMin = v
	}
	if v, ok := parseFinite(in.YMax); ok {
		sel.YMax = v
	}
	sel.YMin = clampFloat(sel.YMin, b.PriceMin, b.PriceMax)
	sel.YMax = clampFloat(sel.YMax, b.PriceMin, b.PriceMax)
	if sel.YMin > sel.YMax {
		sel.YMin, sel.YMax = sel.YMax, sel.YMin
	}

	if in.CompaniesSet {
		sel.Companies = nil
		seen := make(map[string]bool)
		for _, name := range in.Companies {
			if seen[name] || c.Registry.Index(name) < 0 {
				continue
			}
			seen[name] = true
			sel.Companies = append(sel.Companies, name)
		}
	}
	return sel
}

// Check returns model.ErrInvalidSelection when no company is selected.
func (c *Controls) Check(sel model.Selection) error {
	if len(sel.Companies) == 0 {
		return model.ErrInvalidSelection
	}
	return nil
}

func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
