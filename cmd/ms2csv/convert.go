package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"

	"github.com/google/subcommands"

	"ms2csv/internal/app"
	"ms2csv/internal/convert"
)

// convertCmd converts symbol data files to the configured output format.
type convertCmd struct {
	dir       string
	index     string
	all       bool
	symbols   string
	cutoff    int
	precision int
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert symbol data files to the configured format" }
func (*convertCmd) Usage() string {
	return `convert [-dir D] [-index PATH] [-all | -symbols A,B] [-cutoff N] [-precision N]:
  Convert the selected symbols' data files. Flags override MS2CSV_* env.
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", "", "directory holding the index and data files")
	f.StringVar(&c.index, "index", "", "explicit index file path")
	f.BoolVar(&c.all, "all", false, "convert every symbol in the index")
	f.StringVar(&c.symbols, "symbols", "", "comma separated symbols to convert")
	f.IntVar(&c.cutoff, "cutoff", -1, "drop rows dated before this YYYYMMDD")
	f.IntVar(&c.precision, "precision", -1, "decimals for price columns")
}

func (c *convertCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.all && c.symbols == "" {
		slog.Error("nothing selected, pass -all or -symbols")
		return subcommands.ExitUsageError
	}

	a, err := initApp()
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return subcommands.ExitFailure
	}
	cfg := a.Config
	if c.dir != "" {
		cfg.Dir = c.dir
	}
	if c.index != "" {
		cfg.Index = c.index
	}
	if c.cutoff >= 0 {
		cfg.Cutoff = c.cutoff
	}
	if c.precision >= 0 {
		cfg.Precision = c.precision
	}

	idx, err := app.OpenIndex(cfg)
	if err != nil {
		slog.Error("failed to read index", "error", err)
		return subcommands.ExitFailure
	}
	slog.Info("index parsed", "path", idx.Path, "format", idx.Format, "symbols", len(idx.Records))

	if err := os.MkdirAll(cfg.Out, 0755); err != nil {
		slog.Error("failed to create output dir", "dir", cfg.Out, "error", err)
		return subcommands.ExitFailure
	}
	slog.Info("output", "dir", cfg.Out, "format", cfg.Format, "extension", a.Saver.Extension())

	var symbols []string
	if !c.all {
		symbols = strings.Split(c.symbols, ",")
	}

	success, failed := app.RunConvert(convert.Options{
		Index:     idx,
		Dir:       cfg.DataDir(),
		OutDir:    cfg.Out,
		Saver:     a.Saver,
		Precision: cfg.Precision,
		Cutoff:    cfg.Cutoff,
		Symbols:   symbols,
	})
	if success == 0 && failed > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
