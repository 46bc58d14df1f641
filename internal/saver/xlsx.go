package saver

import (
	"github.com/xuri/excelize/v2"

	"ms2csv/internal/model"
)

// XLSXSaver writes the same grid as the text rendition into a worksheet,
// through the streaming writer so large symbols stay cheap.
type XLSXSaver struct{}

func (XLSXSaver) Extension() string { return "xlsx" }

func (XLSXSaver) Create(path string) (RowWriter, error) {
	f := excelize.NewFile()
	sw, err := f.NewStreamWriter("Sheet1")
	if err != nil {
		f.Close()
		return nil, err
	}
	return &xlsxWriter{path: path, f: f, sw: sw, row: 1}, nil
}

type xlsxWriter struct {
	path string
	f    *excelize.File
	sw   *excelize.StreamWriter
	row  int
	name string
}

func (xw *xlsxWriter) setRow(values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, xw.row)
	if err != nil {
		return err
	}
	xw.row++
	return xw.sw.SetRow(cell, values)
}

func (xw *xlsxWriter) Begin(s model.Series) error {
	xw.name = s.Name
	header := make([]interface{}, 0, len(s.Columns)+1)
	header = append(header, "Name")
	for _, col := range s.Columns {
		header = append(header, col)
	}
	return xw.setRow(header)
}

func (xw *xlsxWriter) Write(r model.Row) error {
	values := make([]interface{}, 0, len(r.Fields)+1)
	values = append(values, xw.name)
	for _, v := range r.Fields {
		values = append(values, v)
	}
	return xw.setRow(values)
}

func (xw *xlsxWriter) Close() error {
	defer xw.f.Close()
	if err := xw.sw.Flush(); err != nil {
		return err
	}
	return xw.f.SaveAs(xw.path)
}
