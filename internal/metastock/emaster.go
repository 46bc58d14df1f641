package metastock

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"math"

	"ms2csv/internal/mbf"
)

const (
	emasterHeaderSize = 192
	emasterRecordSize = 192
)

// ParseEMaster decodes the EMASTER layout: a 192-byte header whose first
// two bytes carry the record count, then 192-byte records. The two record
// dates are stored as plain IEEE floats, not MBF. A record whose first or
// last date does not decode is dropped, not an error.
func ParseEMaster(r io.Reader, codec *TextCodec) ([]*SymbolRecord, error) {
	head := make([]byte, emasterHeaderSize)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, fmt.Errorf("emaster header: %w", err)
	}
	count := int(binary.LittleEndian.Uint16(head[0:2]))

	records := make([]*SymbolRecord, 0, count)
	buf := make([]byte, emasterRecordSize)
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("emaster record %d: %w", i, err)
		}
		rec := &SymbolRecord{
			FileNum:   int(buf[2]),
			NumFields: int(buf[6]),
			BitFields: buf[7],
			Symbol:    codec.Trim(buf[11:25]),
			Name:      codec.Trim(buf[32:48]),
			TimeFrame: buf[60],
		}
		first, okFirst := mbf.DecodeDate(ieeeFloat(buf[64:68]))
		last, okLast := mbf.DecodeDate(ieeeFloat(buf[72:76]))
		if !okFirst || !okLast {
			slog.Debug("dropping record with undecodable dates", "symbol", rec.Symbol, "name", rec.Name)
			continue
		}
		rec.FirstDate = int32(first.Int())
		rec.LastDate = int32(last.Int())
		records = append(records, rec)
	}
	return records, nil
}

func ieeeFloat(raw []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(raw)))
}
