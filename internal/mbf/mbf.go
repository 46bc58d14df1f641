// Package mbf decodes the Microsoft Binary Format numerics used by
// MetaStock files: the 4-byte legacy float and the packed date and time
// values derived from it.
package mbf

import (
	"encoding/binary"
	"math"
	"time"
)

// DecodeFloat converts a 4-byte MBF single into a float64. A zero
// mantissa/exponent word means zero. raw must hold at least 4 bytes.
func DecodeFloat(raw []byte) float64 {
	man := int(binary.LittleEndian.Uint16(raw[2:4]))
	if man == 0 {
		return 0
	}
	exp := (man & 0xff00) - 0x0200
	man = man&0x7f | (man<<8)&0x8000
	man |= exp >> 1
	bits := uint32(raw[0]) | uint32(raw[1])<<8 | uint32(man&0xff)<<16 | uint32(man>>8&0xff)<<24
	return float64(math.Float32frombits(bits))
}

// Date is a decoded calendar date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Int packs the date as a YYYYMMDD integer.
func (d Date) Int() int { return d.Year*10000 + d.Month*100 + d.Day }

// DecodeDate interprets a float as a packed calendar date. The stored
// value is (year-1900)*10000 + month*100 + day, so 1200101 is 2020-01-01.
// ok is false for anything that does not name a real calendar day.
func DecodeDate(f float64) (Date, bool) {
	if math.IsNaN(f) || f < 0 || f >= 1e9 {
		return Date{}, false
	}
	d := int(f)
	date := Date{
		Year:  1900 + d/10000,
		Month: d % 10000 / 100,
		Day:   d % 100,
	}
	if date.Month < 1 || date.Month > 12 {
		return Date{}, false
	}
	if date.Day < 1 || date.Day > daysIn(date.Year, date.Month) {
		return Date{}, false
	}
	return date, true
}

// TimeOfDay is a decoded clock time.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// Int packs the time as an HHMMSS integer.
func (t TimeOfDay) Int() int { return t.Hour*10000 + t.Minute*100 + t.Second }

// DecodeTime interprets a float as a packed clock time,
// hour*10000 + minute*100 + second. ok is false out of range.
func DecodeTime(f float64) (TimeOfDay, bool) {
	if math.IsNaN(f) || f < 0 || f >= 1e9 {
		return TimeOfDay{}, false
	}
	t := int(f)
	tod := TimeOfDay{
		Hour:   t / 10000,
		Minute: t % 10000 / 100,
		Second: t % 100,
	}
	if tod.Hour > 23 || tod.Minute > 59 || tod.Second > 59 {
		return TimeOfDay{}, false
	}
	return tod, true
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
