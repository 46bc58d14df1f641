package metastock

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Index layout names, matching the conventional file names.
const (
	FormatEMaster = "EMASTER"
	FormatXMaster = "XMASTER"
	FormatMaster  = "MASTER"
)

// Index is one fully parsed index file.
type Index struct {
	Path    string
	Format  string
	Records []*SymbolRecord
}

// ReadIndex parses the index file at path, picking the layout from the
// file name. Any structural problem (short read, unknown name) is fatal;
// no partial index is returned.
func ReadIndex(path string, codec *TextCodec) (*Index, error) {
	format, err := FormatForFile(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []*SymbolRecord
	switch format {
	case FormatEMaster:
		records, err = ParseEMaster(f, codec)
	case FormatXMaster:
		records, err = ParseXMaster(f, codec)
	case FormatMaster:
		records, err = ParseMaster(f, codec)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &Index{Path: path, Format: format, Records: records}, nil
}

// FormatForFile derives the index layout from the file's base name.
func FormatForFile(path string) (string, error) {
	switch strings.ToUpper(filepath.Base(path)) {
	case FormatEMaster:
		return FormatEMaster, nil
	case FormatXMaster:
		return FormatXMaster, nil
	case FormatMaster:
		return FormatMaster, nil
	}
	return "", fmt.Errorf("cannot tell index format from file name %q", filepath.Base(path))
}
