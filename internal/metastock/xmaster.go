package metastock

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	xmasterHeaderSize = 150
	xmasterRecordSize = 150
)

// ParseXMaster decodes the XMASTER layout used alongside MWD data files.
// Dates here are raw 32-bit values with no documented decode rule and are
// stored as-is. Every record is kept.
func ParseXMaster(r io.Reader, codec *TextCodec) ([]*SymbolRecord, error) {
	head := make([]byte, xmasterHeaderSize)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, fmt.Errorf("xmaster header: %w", err)
	}
	count := int(int16(binary.LittleEndian.Uint16(head[10:12])))

	records := make([]*SymbolRecord, 0, max(count, 0))
	buf := make([]byte, xmasterRecordSize)
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("xmaster record %d: %w", i, err)
		}
		records = append(records, &SymbolRecord{
			Symbol:    codec.Trim(buf[1:16]),
			Name:      codec.Trim(buf[16:62]),
			TimeFrame: buf[62],
			FileNum:   int(int16(binary.LittleEndian.Uint16(buf[65:67]))),
			BitFields: buf[70],
			LastDate:  int32(binary.LittleEndian.Uint32(buf[80:84])),
			FirstDate: int32(binary.LittleEndian.Uint32(buf[104:108])),
		})
	}
	return records, nil
}
