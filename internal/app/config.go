package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration from env (prefix MS2CSV).
type Config struct {
	Dir       string `envconfig:"DIR" default:"."`
	Index     string `envconfig:"INDEX"`
	Out       string `envconfig:"OUT" default:"."`
	Format    string `envconfig:"FORMAT" default:"csv" validate:"oneof=csv json parquet xlsx sqlite"`
	Precision int    `envconfig:"PRECISION" default:"2" validate:"gte=0"`
	Cutoff    int    `envconfig:"CUTOFF" default:"0" validate:"gte=0"`
	Charset   string `envconfig:"CHARSET" default:"cp437" validate:"oneof=cp437 cp850 cp852 cp866 cp874 cp1250 cp1252 latin1"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
}

// LoadConfig reads MS2CSV_* variables and validates the result.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("MS2CSV", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.Charset = strings.ToLower(strings.TrimSpace(cfg.Charset))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// DataDir returns the directory searched for data files: an explicit
// index path anchors it, otherwise the configured directory.
func (c *Config) DataDir() string {
	if c.Index != "" {
		return filepath.Dir(c.Index)
	}
	return c.Dir
}
