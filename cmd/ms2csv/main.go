package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/subcommands"

	"ms2csv/internal/slogx"
)

func init() {
	slog.SetDefault(slogx.NewDefault("info"))
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&listCmd{}, "")
	subcommands.Register(&convertCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}

// initApp builds the wired App and raises the log level from config.
func initApp() (*App, error) {
	a, err := InitializeApp()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slogx.NewDefault(a.Config.LogLevel))
	return a, nil
}
