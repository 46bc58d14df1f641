package saver

import (
	"bufio"
	"os"
	"strings"

	"ms2csv/internal/model"
)

// CSVSaver writes the legacy text rendition: a quoted "Name" header with
// the column names, then one line per record with the series name quoted
// and the formatted values bare. The upper case extension matches the
// files the terminal software produced.
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "CSV" }

func (CSVSaver) Create(path string) (RowWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &csvWriter{f: f, w: bufio.NewWriter(f)}, nil
}

type csvWriter struct {
	f    *os.File
	w    *bufio.Writer
	name string
}

func (cw *csvWriter) Begin(s model.Series) error {
	cw.name = s.Name
	cw.w.WriteString(`"Name"`)
	for _, col := range s.Columns {
		cw.w.WriteByte(',')
		cw.w.WriteString(quoteField(col))
	}
	return cw.w.WriteByte('\n')
}

func (cw *csvWriter) Write(r model.Row) error {
	cw.w.WriteString(quoteField(cw.name))
	for _, v := range r.Fields {
		cw.w.WriteByte(',')
		cw.w.WriteString(v)
	}
	return cw.w.WriteByte('\n')
}

func (cw *csvWriter) Close() error {
	err := cw.w.Flush()
	if cerr := cw.f.Close(); err == nil {
		err = cerr
	}
	return err
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
