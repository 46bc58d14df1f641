package metastock

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// TextCodec decodes the single-byte legacy code page used for symbol and
// name bytes. Not safe for concurrent use; parsing is sequential.
type TextCodec struct {
	dec *encoding.Decoder
}

var charsets = map[string]*charmap.Charmap{
	"cp437":  charmap.CodePage437,
	"cp850":  charmap.CodePage850,
	"cp852":  charmap.CodePage852,
	"cp866":  charmap.CodePage866,
	"cp874":  charmap.Windows874,
	"cp1250": charmap.Windows1250,
	"cp1252": charmap.Windows1252,
	"latin1": charmap.ISO8859_1,
}

// NewTextCodec returns a codec for the named code page.
func NewTextCodec(charset string) (*TextCodec, error) {
	cm, ok := charsets[strings.ToLower(strings.TrimSpace(charset))]
	if !ok {
		return nil, fmt.Errorf("unknown charset %q", charset)
	}
	return &TextCodec{dec: cm.NewDecoder()}, nil
}

// Trim cuts raw at the first NUL and decodes the rest from the code page.
func (c *TextCodec) Trim(raw []byte) string {
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	if len(raw) == 0 {
		return ""
	}
	out, err := c.dec.Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}
