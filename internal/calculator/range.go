package calculator

import (
	"math"

	"PriceBoard/internal/model"
)

// Summary describes one company's closes over the displayed period.
type Summary struct {
	Name      string
	First     float64
	Last      float64
	High      float64
	Low       float64
	ChangePct float64
	Count     int // non-missing closes
}

// Summarize computes the period range of every row, skipping NaN cells.
// A row without any close has NaN fields and Count 0.
func Summarize(tbl *model.WideTable) []Summary {
	out := make([]Summary, len(tbl.Rows))
	for i, r := range tbl.Rows {
		out[i] = summarizeRow(r)
	}
	return out
}

func summarizeRow(r model.Row) Summary {
	s := Summary{
		Name:  r.Name,
		First: math.NaN(),
		Last:  math.NaN(),
		High:  math.Inf(-1),
		Low:   math.Inf(1),
	}
	for _, p := range r.Prices {
		if math.IsNaN(p) {
			continue
		}
		if s.Count == 0 {
			s.First = p
		}
		s.Last = p
		s.Count++
		if p > s.High {
			s.High = p
		}
		if p < s.Low {
			s.Low = p
		}
	}
	if s.Count == 0 {
		s.High, s.Low, s.ChangePct = math.NaN(), math.NaN(), math.NaN()
		return s
	}
	if s.First != 0 {
		s.ChangePct = (s.Last - s.First) / s.First * 100
	}
	return s
}
