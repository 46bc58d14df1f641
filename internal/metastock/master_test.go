package metastock

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type masterFixture struct {
	fileNum   uint8
	name      string
	firstDate int32
	lastDate  int32
	symbol    string
}

func (fx masterFixture) encode() []byte {
	buf := make([]byte, masterRecordSize)
	buf[0] = fx.fileNum
	copy(buf[7:23], fx.name)
	binary.LittleEndian.PutUint32(buf[25:29], uint32(fx.firstDate))
	binary.LittleEndian.PutUint32(buf[29:33], uint32(fx.lastDate))
	copy(buf[36:50], fx.symbol)
	return buf
}

func masterFile(fixtures ...masterFixture) []byte {
	out := make([]byte, masterHeaderSize)
	binary.LittleEndian.PutUint16(out[0:2], uint16(len(fixtures)))
	for _, fx := range fixtures {
		out = append(out, fx.encode()...)
	}
	return out
}

func TestParseMaster(t *testing.T) {
	fx := masterFixture{
		fileNum:   9,
		name:      "Acme Industries",
		firstDate: 870105,
		lastDate:  991230,
		symbol:    "ACME",
	}
	recs, err := ParseMaster(bytes.NewReader(masterFile(fx)), testCodec(t))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, 9, rec.FileNum)
	assert.Equal(t, "Acme Industries", rec.Name)
	assert.Equal(t, "ACME", rec.Symbol)
	assert.Equal(t, int32(870105), rec.FirstDate)
	assert.Equal(t, int32(991230), rec.LastDate)

	// This layout carries no field count and no bitmask.
	assert.Equal(t, 0, rec.NumFields)
	assert.Equal(t, uint8(0), rec.BitFields)
	assert.Equal(t, byte(0), rec.TimeFrame)
}

func TestParseMasterOffsetFidelity(t *testing.T) {
	orig := masterFixture{
		fileNum:   255,
		name:      "Edge",
		firstDate: -987654,
		lastDate:  1234567890,
		symbol:    "EDGE",
	}
	recs, err := ParseMaster(bytes.NewReader(masterFile(orig)), testCodec(t))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	rec := recs[0]

	reencoded := masterFixture{
		fileNum:   uint8(rec.FileNum),
		name:      rec.Name,
		firstDate: rec.FirstDate,
		lastDate:  rec.LastDate,
		symbol:    rec.Symbol,
	}.encode()
	assert.Equal(t, orig.encode(), reencoded)
}

func TestParseMasterKeepsEverything(t *testing.T) {
	recs, err := ParseMaster(bytes.NewReader(masterFile(
		masterFixture{fileNum: 1, symbol: "A", firstDate: -1},
		masterFixture{fileNum: 2, symbol: "B"},
		masterFixture{fileNum: 3, symbol: "C", lastDate: -55},
	)), testCodec(t))
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "B", recs[1].Symbol)
}

func TestParseMasterShortRead(t *testing.T) {
	full := masterFile(masterFixture{symbol: "AA"}, masterFixture{symbol: "BB"})
	_, err := ParseMaster(bytes.NewReader(full[:len(full)-10]), testCodec(t))
	assert.Error(t, err)

	_, err = ParseMaster(bytes.NewReader(full[:masterHeaderSize-1]), testCodec(t))
	assert.Error(t, err)
}
