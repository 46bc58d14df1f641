package metastock

import (
	"fmt"
	"strconv"

	"ms2csv/internal/mbf"
)

// ColumnKind tags the closed set of column decoders.
type ColumnKind int

const (
	KindUnknown ColumnKind = iota
	KindDate
	KindTime
	KindFloat
	KindInt
)

// columnWidth is the fixed slot width. Every kind, known or not,
// consumes exactly this many bytes per record; the layout is positional.
const columnWidth = 4

// Column decodes and formats one field slot.
type Column struct {
	Kind ColumnKind
	Name string // display name used in output headers
	Prec int    // decimals, KindFloat only
}

// Emits reports whether the column contributes to output rows.
func (c Column) Emits() bool { return c.Kind != KindUnknown }

// Value is one decoded field: the formatted text written to text sinks
// plus the numeric payload (price, count, or packed date/time digits).
type Value struct {
	Text string
	Num  float64
}

// Read decodes one slot's 4 raw bytes per the column kind. Date and time
// slots fail on values that do not decode; the record stream is then
// unusable for this symbol.
func (c Column) Read(raw []byte) (Value, error) {
	switch c.Kind {
	case KindDate:
		f := mbf.DecodeFloat(raw)
		d, ok := mbf.DecodeDate(f)
		if !ok {
			return Value{}, fmt.Errorf("bad date value %v", f)
		}
		return Value{Text: fmt.Sprintf("%02d%02d%02d", d.Year, d.Month, d.Day), Num: float64(d.Int())}, nil
	case KindTime:
		f := mbf.DecodeFloat(raw)
		tod, ok := mbf.DecodeTime(f)
		if !ok {
			return Value{}, fmt.Errorf("bad time value %v", f)
		}
		return Value{Text: fmt.Sprintf("%02d%02d%02d", tod.Hour, tod.Minute, tod.Second), Num: float64(tod.Int())}, nil
	case KindFloat:
		f := mbf.DecodeFloat(raw)
		return Value{Text: strconv.FormatFloat(f, 'f', c.Prec, 64), Num: f}, nil
	case KindInt:
		n := int64(mbf.DecodeFloat(raw))
		return Value{Text: strconv.FormatInt(n, 10), Num: float64(n)}, nil
	}
	return Value{}, nil
}

// columnFor resolves a declared column name, case-sensitive.
// Unrecognized names come back as KindUnknown: consumed, never emitted.
func columnFor(name string, prec int) Column {
	switch name {
	case "DATE":
		return Column{Kind: KindDate, Name: "Date"}
	case "TIME":
		return Column{Kind: KindTime, Name: "Time"}
	case "OPEN":
		return Column{Kind: KindFloat, Name: "Open", Prec: prec}
	case "HIGH":
		return Column{Kind: KindFloat, Name: "High", Prec: prec}
	case "LOW":
		return Column{Kind: KindFloat, Name: "Low", Prec: prec}
	case "CLOSE":
		return Column{Kind: KindFloat, Name: "Close", Prec: prec}
	case "VOL":
		return Column{Kind: KindInt, Name: "Volume"}
	case "OI":
		return Column{Kind: KindInt, Name: "Oi"}
	}
	return Column{Kind: KindUnknown, Name: name}
}
