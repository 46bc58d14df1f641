package saver

import (
	"github.com/parquet-go/parquet-go"

	"ms2csv/internal/model"
)

// ParquetSaver writes the typed quotes as a Parquet file.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Create(path string) (RowWriter, error) {
	return &parquetWriter{path: path, quotes: make([]model.Quote, 0, 256)}, nil
}

type parquetWriter struct {
	path   string
	quotes []model.Quote
}

func (pw *parquetWriter) Begin(model.Series) error { return nil }

func (pw *parquetWriter) Write(r model.Row) error {
	pw.quotes = append(pw.quotes, r.Quote)
	return nil
}

func (pw *parquetWriter) Close() error {
	return parquet.WriteFile(pw.path, pw.quotes)
}
