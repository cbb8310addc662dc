// Package saver writes long price rows to disk in one of several formats.
package saver

import (
	"strings"

	"PriceBoard/internal/model"
)

// RowSaver writes long rows to path.
type RowSaver interface {
	Save(rows []model.LongRow, path string) error
	Extension() string
}

// NewRowSaver returns the saver for format (csv, json, parquet), or nil
// when the format is not supported.
func NewRowSaver(format string) RowSaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "json":
		return JSONSaver{}
	case "parquet":
		return ParquetSaver{}
	default:
		return nil
	}
}

// Formats lists the supported format names.
func Formats() []string { return []string{"csv", "json", "parquet"} }
