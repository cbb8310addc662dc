package model

import (
	"encoding/json"
	"math"
	"sort"
)

// Row is one company's closing prices, aligned with WideTable.Dates.
// A missing observation is NaN.
type Row struct {
	Name   string    `json:"name"`
	Prices []float64 `json:"prices"`
}

// WideTable holds one row per company and one column per date label.
// Dates are chronological. A WideTable is never mutated once built;
// the derived tables returned by its methods are fresh copies.
type WideTable struct {
	Dates []string `json:"dates"`
	Rows  []Row    `json:"rows"`
}

// LongRow is one (date, company, price) triple of the flattened table.
type LongRow struct {
	Date  string  `json:"date" parquet:"date"`
	Name  string  `json:"name" parquet:"name"`
	Price float64 `json:"price" parquet:"price"`
}

// Names returns the row keys in table order.
func (t *WideTable) Names() []string {
	names := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		names[i] = r.Name
	}
	return names
}

// Row returns the row for name.
func (t *WideTable) Row(name string) (Row, bool) {
	for _, r := range t.Rows {
		if r.Name == name {
			return r, true
		}
	}
	return Row{}, false
}

// Filter returns the rows whose name is in names, in the order of names.
// Unknown and duplicate names are ignored.
func (t *WideTable) Filter(names []string) *WideTable {
	out := &WideTable{Dates: append([]string(nil), t.Dates...)}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		if r, ok := t.Row(n); ok {
			out.Rows = append(out.Rows, copyRow(r))
		}
	}
	return out
}

// SortedByName returns a copy with rows ordered by name ascending.
func (t *WideTable) SortedByName() *WideTable {
	out := &WideTable{
		Dates: append([]string(nil), t.Dates...),
		Rows:  make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = copyRow(r)
	}
	sort.SliceStable(out.Rows, func(i, j int) bool { return out.Rows[i].Name < out.Rows[j].Name })
	return out
}

// Equal reports whether two tables hold the same labels, rows and prices.
// NaN cells compare equal to each other.
func (t *WideTable) Equal(o *WideTable) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.Dates) != len(o.Dates) || len(t.Rows) != len(o.Rows) {
		return false
	}
	for i := range t.Dates {
		if t.Dates[i] != o.Dates[i] {
			return false
		}
	}
	for i := range t.Rows {
		a, b := t.Rows[i], o.Rows[i]
		if a.Name != b.Name || len(a.Prices) != len(b.Prices) {
			return false
		}
		for j := range a.Prices {
			if a.Prices[j] != b.Prices[j] && !(math.IsNaN(a.Prices[j]) && math.IsNaN(b.Prices[j])) {
				return false
			}
		}
	}
	return true
}

func copyRow(r Row) Row {
	return Row{Name: r.Name, Prices: append([]float64(nil), r.Prices...)}
}

// MarshalJSON writes missing prices as null.
func (r Row) MarshalJSON() ([]byte, error) {
	prices := make([]*float64, len(r.Prices))
	for i := range r.Prices {
		prices[i] = nullable(r.Prices[i])
	}
	return json.Marshal(struct {
		Name   string     `json:"name"`
		Prices []*float64 `json:"prices"`
	}{r.Name, prices})
}

// MarshalJSON writes a missing price as null.
func (r LongRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date  string   `json:"date"`
		Name  string   `json:"name"`
		Price *float64 `json:"price"`
	}{r.Date, r.Name, nullable(r.Price)})
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
