package saver

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"

	"PriceBoard/internal/model"
)

// CSVSaver writes rows with a date,name,price header. Missing prices are empty cells.
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Save(rows []model.LongRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)

	if err := w.Write([]string{"date", "name", "price"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Date, r.Name, priceStr(r.Price)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func priceStr(p float64) string {
	if math.IsNaN(p) {
		return ""
	}
	return strconv.FormatFloat(p, 'f', -1, 64)
}
