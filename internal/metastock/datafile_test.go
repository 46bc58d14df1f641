package metastock

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms2csv/internal/model"
)

type sinkCapture struct {
	begins   []model.Series
	rows     []model.Row
	writeErr error
}

func (s *sinkCapture) Begin(series model.Series) error {
	s.begins = append(s.begins, series)
	return nil
}

func (s *sinkCapture) Write(r model.Row) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.rows = append(s.rows, r)
	return nil
}

func testSchema(prec int, names ...string) *Schema {
	s := &Schema{}
	for _, name := range names {
		s.Slots = append(s.Slots, columnFor(name, prec))
	}
	return s
}

// dataFile lays out a price file: allocated/used counts, the pad words
// completing the header record, then one encoded word per slot per row.
func dataFile(lastRec, slots int, rows ...[]float32) []byte {
	out := make([]byte, 4, 4+(slots-1+len(rows)*slots)*columnWidth)
	binary.LittleEndian.PutUint16(out[0:2], uint16(lastRec+50)) // allocated, ignored
	binary.LittleEndian.PutUint16(out[2:4], uint16(lastRec))
	out = append(out, make([]byte, (slots-1)*columnWidth)...)
	for _, row := range rows {
		for _, f := range row {
			out = append(out, mbfEncode(f)...)
		}
	}
	return out
}

func TestConvertFile(t *testing.T) {
	schema := testSchema(2, "DATE", "OPEN", "HIGH", "LOW", "CLOSE", "VOL")
	series := model.Series{Symbol: "ACME", Name: "Acme Industries", Columns: schema.Columns()}
	src := dataFile(3, 6,
		[]float32{1200101, 10.5, 11.25, 10.25, 11, 5000},
		[]float32{1200102, 11, 12.5, 10.75, 12, 6500},
	)

	sink := &sinkCapture{}
	n, err := ConvertFile(bytes.NewReader(src), schema, series, 0, sink)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, sink.begins, 1)
	assert.Equal(t, series, sink.begins[0])

	require.Len(t, sink.rows, 2)
	assert.Equal(t, []string{"20200101", "10.50", "11.25", "10.25", "11.00", "5000"}, sink.rows[0].Fields)
	assert.Equal(t, model.Quote{
		Date: 20200101, Open: 10.5, High: 11.25, Low: 10.25, Close: 11, Volume: 5000,
	}, sink.rows[0].Quote)
	assert.Equal(t, "20200102", sink.rows[1].Fields[0])
	assert.Equal(t, int64(6500), sink.rows[1].Quote.Volume)
}

func TestConvertFileCutoff(t *testing.T) {
	schema := testSchema(2, "DATE", "CLOSE")
	src := dataFile(6, 2,
		[]float32{1200101, 1},
		[]float32{1200102, 2},
		[]float32{1200103, 3},
		[]float32{1200104, 4},
		[]float32{1200105, 5},
	)

	sink := &sinkCapture{}
	n, err := ConvertFile(bytes.NewReader(src), schema, model.Series{Symbol: "X"}, 20200103, sink)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, sink.begins, 1)
	require.Len(t, sink.rows, 3)
	assert.Equal(t, "20200103", sink.rows[0].Fields[0])
	assert.Equal(t, "20200105", sink.rows[2].Fields[0])
}

// Without a date column nothing is filtered, whatever the cutoff.
func TestConvertFileCutoffNeedsDateColumn(t *testing.T) {
	schema := testSchema(2, "OPEN", "CLOSE")
	src := dataFile(3, 2,
		[]float32{1, 2},
		[]float32{3, 4},
	)

	sink := &sinkCapture{}
	n, err := ConvertFile(bytes.NewReader(src), schema, model.Series{Symbol: "X"}, 20300101, sink)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

// An unrecognized column still occupies its word, so columns after it
// stay aligned.
func TestConvertFileUnknownColumnAlignment(t *testing.T) {
	schema := testSchema(2, "DATE", "SPREAD", "CLOSE")
	src := dataFile(3, 3,
		[]float32{1200101, 999, 10.5},
		[]float32{1200102, 888, 11.5},
	)

	sink := &sinkCapture{}
	n, err := ConvertFile(bytes.NewReader(src), schema, model.Series{Symbol: "X"}, 0, sink)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, sink.rows, 2)
	assert.Equal(t, []string{"20200101", "10.50"}, sink.rows[0].Fields)
	assert.Equal(t, 10.5, sink.rows[0].Quote.Close)
	assert.Equal(t, 11.5, sink.rows[1].Quote.Close)
}

func TestConvertFileTruncated(t *testing.T) {
	schema := testSchema(2, "DATE", "CLOSE")
	src := dataFile(4, 2,
		[]float32{1200101, 1},
		[]float32{1200102, 2},
		[]float32{1200103, 3},
	)

	sink := &sinkCapture{}
	n, err := ConvertFile(bytes.NewReader(src[:len(src)-5]), schema, model.Series{Symbol: "X"}, 0, sink)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 2")
	assert.Equal(t, 2, n)
	assert.Len(t, sink.rows, 2)
}

func TestConvertFileBadDate(t *testing.T) {
	schema := testSchema(2, "DATE", "CLOSE")
	src := dataFile(3, 2,
		[]float32{1200101, 1},
		[]float32{1200230, 2}, // February 30th
	)

	sink := &sinkCapture{}
	n, err := ConvertFile(bytes.NewReader(src), schema, model.Series{Symbol: "X"}, 0, sink)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 1 column Date")
	assert.Equal(t, 1, n)
}

func TestConvertFileEmpty(t *testing.T) {
	schema := testSchema(2, "DATE", "CLOSE")

	sink := &sinkCapture{}
	n, err := ConvertFile(bytes.NewReader(dataFile(1, 2)), schema, model.Series{Symbol: "X"}, 0, sink)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, sink.begins, 1)
	assert.Empty(t, sink.rows)

	// A zero used-count clamps rather than going negative.
	n, err = ConvertFile(bytes.NewReader(dataFile(0, 2)), schema, model.Series{Symbol: "X"}, 0, sink)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestConvertFileShortHeader(t *testing.T) {
	schema := testSchema(2, "DATE", "OPEN", "CLOSE")
	full := dataFile(1, 3)

	sink := &sinkCapture{}
	_, err := ConvertFile(bytes.NewReader(full[:2]), schema, model.Series{}, 0, sink)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data header")

	_, err = ConvertFile(bytes.NewReader(full[:6]), schema, model.Series{}, 0, sink)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "padding")
	assert.Empty(t, sink.begins)
}

func TestConvertFileSinkError(t *testing.T) {
	schema := testSchema(2, "DATE", "CLOSE")
	src := dataFile(2, 2, []float32{1200101, 1})

	sink := &sinkCapture{writeErr: errors.New("disk full")}
	n, err := ConvertFile(bytes.NewReader(src), schema, model.Series{Symbol: "X"}, 0, sink)
	require.EqualError(t, err, "disk full")
	assert.Zero(t, n)
}

func TestOpenDataFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "F7.DAT"), []byte{1}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "F7.MWD"), []byte{2}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f9.mwd"), []byte{3}, 0o644))

	f, err := OpenDataFile(dir, 7)
	require.NoError(t, err)
	assert.Equal(t, "F7.DAT", filepath.Base(f.Name())) // DAT wins over MWD
	f.Close()

	f, err = OpenDataFile(dir, 9)
	require.NoError(t, err)
	assert.Equal(t, "f9.mwd", filepath.Base(f.Name()))
	f.Close()

	_, err = OpenDataFile(dir, 8)
	assert.Error(t, err)
}

func TestOpenColumnFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f3.dop"), []byte(dopFile("DATE")), 0o644))

	f, err := OpenColumnFile(dir, 3)
	require.NoError(t, err)
	assert.Equal(t, "f3.dop", filepath.Base(f.Name()))
	f.Close()

	_, err = OpenColumnFile(dir, 4)
	assert.Error(t, err)
}
