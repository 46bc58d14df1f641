package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ms2csv/internal/metastock"
)

// indexNames is the probe order: the extended index first, its MWD
// sibling next, the original layout last.
var indexNames = []string{metastock.FormatEMaster, metastock.FormatXMaster, metastock.FormatMaster}

// LocateIndex finds the index file for a data directory. An explicit
// path wins unchanged; otherwise the directory is scanned for the known
// index names, case-insensitive.
func LocateIndex(dir, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, want := range indexNames {
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(e.Name(), want) {
				return filepath.Join(dir, e.Name()), nil
			}
		}
	}
	return "", fmt.Errorf("no index file (EMASTER, XMASTER or MASTER) in %s", dir)
}

// OpenIndex locates and fully parses the index named by the config.
func OpenIndex(cfg *Config) (*metastock.Index, error) {
	codec, err := metastock.NewTextCodec(cfg.Charset)
	if err != nil {
		return nil, err
	}
	path, err := LocateIndex(cfg.Dir, cfg.Index)
	if err != nil {
		return nil, err
	}
	return metastock.ReadIndex(path, codec)
}
