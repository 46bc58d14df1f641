package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"github.com/google/subcommands"

	"ms2csv/internal/app"
)

// listCmd prints every symbol in the index, storage order.
type listCmd struct {
	dir   string
	index string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the symbols in an index file" }
func (*listCmd) Usage() string {
	return `list [-dir D] [-index PATH]:
  Parse the index and print symbol, name and file number per record.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", "", "directory holding the index and data files")
	f.StringVar(&c.index, "index", "", "explicit index file path")
}

func (c *listCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	idx, err := app.OpenIndex(cfg)
	if err != nil {
		slog.Error("failed to read index", "error", err)
		return subcommands.ExitFailure
	}
	slog.Info("index parsed", "path", idx.Path, "format", idx.Format, "symbols", len(idx.Records))
	for _, rec := range idx.Records {
		fmt.Printf("symbol: %s, name: %s, file number: %d\n", rec.Symbol, rec.Name, rec.FileNum)
	}
	return subcommands.ExitSuccess
}
