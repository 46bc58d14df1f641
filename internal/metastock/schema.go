package metastock

import (
	"bufio"
	"fmt"
	"io"
	"math/bits"
	"regexp"
	"strings"
)

// Schema is one symbol's resolved column layout: one slot per physical
// field in the data file, in storage order.
type Schema struct {
	Slots []Column
}

// ActiveCount is the number of slots that emit output.
func (s *Schema) ActiveCount() int {
	n := 0
	for _, c := range s.Slots {
		if c.Emits() {
			n++
		}
	}
	return n
}

// Columns returns the display names of emitting slots, in slot order.
func (s *Schema) Columns() []string {
	names := make([]string, 0, len(s.Slots))
	for _, c := range s.Slots {
		if c.Emits() {
			names = append(names, c.Name)
		}
	}
	return names
}

// DateSlot returns the index of the first date column, or -1. The date
// cutoff filter keys off this slot.
func (s *Schema) DateSlot() int {
	for i, c := range s.Slots {
		if c.Kind == KindDate {
			return i
		}
	}
	return -1
}

var dopName = regexp.MustCompile(`"([^"]+)"`)

// LoadSchema reads a DOP column-description resource and resolves the
// record's column layout. Each line names one column as its first quoted
// substring. A non-zero bitmask overrides the declared field count with
// its popcount; the name list is then truncated to that count, and fewer
// names than the count is a data-integrity error.
func LoadSchema(r io.Reader, rec *SymbolRecord, prec int) (*Schema, error) {
	numFields := rec.NumFields
	if rec.BitFields != 0 {
		numFields = bits.OnesCount8(rec.BitFields)
	}
	if numFields <= 0 {
		return nil, fmt.Errorf("symbol declares no data fields")
	}

	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := dopName.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("no quoted column name in %q", line)
		}
		names = append(names, m[1])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read column descriptions: %w", err)
	}
	if len(names) < numFields {
		return nil, fmt.Errorf("%d column names for %d fields", len(names), numFields)
	}
	names = names[:numFields]

	s := &Schema{Slots: make([]Column, 0, numFields)}
	for _, name := range names {
		s.Slots = append(s.Slots, columnFor(name, prec))
	}
	return s, nil
}
