package saver

import (
	"strings"

	"ms2csv/internal/model"
)

// RowWriter receives one symbol's output: the series once, then each
// surviving row in file order. Close flushes and releases the file.
type RowWriter interface {
	Begin(s model.Series) error
	Write(r model.Row) error
	Close() error
}

// RowSaver opens per-symbol output files for one target format.
// High-level (main) injects the implementation; the convert loop only
// depends on this interface.
type RowSaver interface {
	Create(path string) (RowWriter, error)
	Extension() string
}

// NewRowSaver creates the implementation for a format (csv, json,
// parquet, xlsx, sqlite). Returns nil if the format is not supported.
func NewRowSaver(format string) RowSaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "json":
		return JSONSaver{}
	case "parquet":
		return ParquetSaver{}
	case "xlsx":
		return XLSXSaver{}
	case "sqlite":
		return SQLiteSaver{}
	default:
		return nil
	}
}
