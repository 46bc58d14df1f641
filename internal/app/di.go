package app

import (
	"fmt"

	"ms2csv/internal/saver"
)

// ProvideConfig loads config from environment (for Wire).
func ProvideConfig() (*Config, error) {
	return LoadConfig()
}

// ProvideRowSaver creates the RowSaver from config (for Wire).
// Returns error if Format is not supported.
func ProvideRowSaver(cfg *Config) (saver.RowSaver, error) {
	rs := saver.NewRowSaver(cfg.Format)
	if rs == nil {
		return nil, fmt.Errorf("unsupported MS2CSV_FORMAT %q (use: csv, json, parquet, xlsx, sqlite)", cfg.Format)
	}
	return rs, nil
}
