package saver

import (
	"os"

	json "github.com/goccy/go-json"

	"ms2csv/internal/model"
)

// JSONSaver writes the typed quotes as a JSON array, indented.
type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) Create(path string) (RowWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &jsonWriter{f: f, quotes: make([]model.Quote, 0, 256)}, nil
}

type jsonWriter struct {
	f      *os.File
	quotes []model.Quote
}

func (jw *jsonWriter) Begin(model.Series) error { return nil }

func (jw *jsonWriter) Write(r model.Row) error {
	jw.quotes = append(jw.quotes, r.Quote)
	return nil
}

func (jw *jsonWriter) Close() error {
	enc := json.NewEncoder(jw.f)
	enc.SetIndent("", "  ")
	err := enc.Encode(jw.quotes)
	if cerr := jw.f.Close(); err == nil {
		err = cerr
	}
	return err
}
