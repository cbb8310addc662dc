package saver

import (
	"github.com/parquet-go/parquet-go"

	"PriceBoard/internal/model"
)

// ParquetSaver writes rows as a Parquet file with date, name and price columns.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(rows []model.LongRow, path string) error {
	return parquet.WriteFile(path, rows)
}
