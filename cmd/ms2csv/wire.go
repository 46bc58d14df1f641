//go:build wireinject
// +build wireinject

package main

import (
	"ms2csv/internal/app"
	"ms2csv/internal/saver"

	"github.com/google/wire"
)

// App holds application dependencies built by Wire.
type App struct {
	Config *app.Config
	Saver  saver.RowSaver
}

// InitializeApp builds App (Config + RowSaver) via Wire.
func InitializeApp() (*App, error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvideRowSaver,
		wire.Struct(new(App), "Config", "Saver"),
	)
	return nil, nil
}
