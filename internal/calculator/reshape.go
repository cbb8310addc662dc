package calculator

import (
	"fmt"
	"math"

	"PriceBoard/internal/model"
)

// Melt flattens a wide table into one (date, company, price) row per
// cell, company-major. The result always has len(Rows)*len(Dates) rows.
func Melt(tbl *model.WideTable) ([]model.LongRow, error) {
	out := make([]model.LongRow, 0, len(tbl.Rows)*len(tbl.Dates))
	for _, r := range tbl.Rows {
		if len(r.Prices) != len(tbl.Dates) {
			return nil, fmt.Errorf("%w: row %q has %d prices for %d dates",
				model.ErrRenderFailure, r.Name, len(r.Prices), len(tbl.Dates))
		}
		for i, d := range tbl.Dates {
			out = append(out, model.LongRow{Date: d, Name: r.Name, Price: r.Prices[i]})
		}
	}
	return out, nil
}

// Pivot rebuilds a wide table from long rows. Companies and dates keep
// their order of first appearance; absent cells become NaN. A repeated
// (date, company) pair is an error.
func Pivot(rows []model.LongRow) (*model.WideTable, error) {
	tbl := &model.WideTable{}
	dateIdx := make(map[string]int)
	nameIdx := make(map[string]int)
	for _, lr := range rows {
		if _, ok := dateIdx[lr.Date]; !ok {
			dateIdx[lr.Date] = len(tbl.Dates)
			tbl.Dates = append(tbl.Dates, lr.Date)
		}
		if _, ok := nameIdx[lr.Name]; !ok {
			nameIdx[lr.Name] = len(tbl.Rows)
			tbl.Rows = append(tbl.Rows, model.Row{Name: lr.Name})
		}
	}
	seen := make([][]bool, len(tbl.Rows))
	for i := range tbl.Rows {
		tbl.Rows[i].Prices = make([]float64, len(tbl.Dates))
		for j := range tbl.Rows[i].Prices {
			tbl.Rows[i].Prices[j] = math.NaN()
		}
		seen[i] = make([]bool, len(tbl.Dates))
	}
	for _, lr := range rows {
		i, j := nameIdx[lr.Name], dateIdx[lr.Date]
		if seen[i][j] {
			return nil, fmt.Errorf("%w: duplicate cell (%s, %s)", model.ErrRenderFailure, lr.Date, lr.Name)
		}
		seen[i][j] = true
		tbl.Rows[i].Prices[j] = lr.Price
	}
	return tbl, nil
}
