package metastock

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	masterHeaderSize = 53
	masterRecordSize = 53
)

// ParseMaster decodes the original MASTER layout. It stores no field
// count and no bitmask; both stay zero, and the schema loader rejects
// such symbols when conversion is attempted. Every record is kept.
func ParseMaster(r io.Reader, codec *TextCodec) ([]*SymbolRecord, error) {
	head := make([]byte, masterHeaderSize)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, fmt.Errorf("master header: %w", err)
	}
	count := int(binary.LittleEndian.Uint16(head[0:2]))

	records := make([]*SymbolRecord, 0, count)
	buf := make([]byte, masterRecordSize)
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("master record %d: %w", i, err)
		}
		records = append(records, &SymbolRecord{
			FileNum:   int(buf[0]),
			Name:      codec.Trim(buf[7:23]),
			FirstDate: int32(binary.LittleEndian.Uint32(buf[25:29])),
			LastDate:  int32(binary.LittleEndian.Uint32(buf[29:33])),
			Symbol:    codec.Trim(buf[36:50]),
		})
	}
	return records, nil
}
