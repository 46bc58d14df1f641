package metastock

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ms2csv/internal/model"
)

// RowSink receives a symbol's decoded output: the series metadata once,
// then each surviving row in file order.
type RowSink interface {
	Begin(s model.Series) error
	Write(r model.Row) error
}

// OpenDataFile opens the price data for a file number, trying the DAT
// name first and the MWD fallback next, upper case before lower.
func OpenDataFile(dir string, fileNum int) (*os.File, error) {
	names := []string{
		fmt.Sprintf("F%d.DAT", fileNum),
		fmt.Sprintf("F%d.MWD", fileNum),
		fmt.Sprintf("f%d.dat", fileNum),
		fmt.Sprintf("f%d.mwd", fileNum),
	}
	var firstErr error
	for _, name := range names {
		f, err := os.Open(filepath.Join(dir, name))
		if err == nil {
			return f, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

// OpenColumnFile opens the DOP column-description file for a file number.
func OpenColumnFile(dir string, fileNum int) (*os.File, error) {
	f, err := os.Open(filepath.Join(dir, fmt.Sprintf("F%d.DOP", fileNum)))
	if err == nil {
		return f, nil
	}
	if f2, err2 := os.Open(filepath.Join(dir, fmt.Sprintf("f%d.dop", fileNum))); err2 == nil {
		return f2, nil
	}
	return nil, err
}

// ConvertFile streams one symbol's data file through the schema into the
// sink, filtering by the cutoff date when one is set. Returns the number
// of rows written. A short read or an undecodable date/time aborts this
// symbol with an error; the sink has then already received the series and
// any rows decoded before the fault.
func ConvertFile(r io.Reader, schema *Schema, series model.Series, cutoff int, sink RowSink) (int, error) {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return 0, fmt.Errorf("data header: %w", err)
	}
	// head[0:2] is the allocated slot count; only the used count matters.
	lastRec := int(binary.LittleEndian.Uint16(head[2:4]))
	count := lastRec - 1
	if count < 0 {
		count = 0
	}

	// The first record slot doubles as the header: the 4 count bytes plus
	// one pad word per remaining field.
	pad := make([]byte, (len(schema.Slots)-1)*columnWidth)
	if _, err := io.ReadFull(r, pad); err != nil {
		return 0, fmt.Errorf("data header padding: %w", err)
	}

	if err := sink.Begin(series); err != nil {
		return 0, err
	}

	dateSlot := schema.DateSlot()
	written := 0
	raw := make([]byte, columnWidth)
	fields := make([]string, 0, schema.ActiveCount())
	for i := 0; i < count; i++ {
		fields = fields[:0]
		var quote model.Quote
		keep := true
		for slot, col := range schema.Slots {
			// Inactive slots still consume their bytes; the cursor is the
			// single source of alignment truth.
			if _, err := io.ReadFull(r, raw); err != nil {
				return written, fmt.Errorf("record %d: %w", i, err)
			}
			if !col.Emits() {
				continue
			}
			v, err := col.Read(raw)
			if err != nil {
				return written, fmt.Errorf("record %d column %s: %w", i, col.Name, err)
			}
			if slot == dateSlot && int(v.Num) < cutoff {
				keep = false
			}
			fields = append(fields, v.Text)
			fill(&quote, col, v)
		}
		if !keep {
			continue
		}
		if err := sink.Write(model.Row{Fields: append([]string(nil), fields...), Quote: quote}); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// fill routes a decoded value into the typed quote view.
func fill(q *model.Quote, col Column, v Value) {
	switch col.Kind {
	case KindDate:
		q.Date = int32(v.Num)
	case KindTime:
		q.Time = int32(v.Num)
	case KindFloat:
		switch col.Name {
		case "Open":
			q.Open = v.Num
		case "High":
			q.High = v.Num
		case "Low":
			q.Low = v.Num
		case "Close":
			q.Close = v.Num
		}
	case KindInt:
		switch col.Name {
		case "Volume":
			q.Volume = int64(v.Num)
		case "Oi":
			q.OI = int64(v.Num)
		}
	}
}
