package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// DateLabelLayout is the human-readable day-month-year format used for
// every date label in a WideTable.
const DateLabelLayout = "02 January 2006"

// FormatDateLabel renders t as a date label in its own location.
func FormatDateLabel(t time.Time) string {
	return t.Format(DateLabelLayout)
}

// ParseDateLabel parses a label produced by FormatDateLabel. The result is
// midnight UTC of that calendar day.
func ParseDateLabel(s string) (time.Time, error) {
	return time.Parse(DateLabelLayout, s)
}

// Closes extracts the closing prices of bars, in order.
func Closes(bars []OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
