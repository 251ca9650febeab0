//go:build wireinject

package main

import (
	"context"
	"io"

	"github.com/google/wire"

	"github.com/cory-johannsen/tilecheck/internal/config"
)

// InitializeApp assembles the checker and its collaborators from cfg.
func InitializeApp(ctx context.Context, cfg config.Config, diag io.Writer) (*App, func(), error) {
	wire.Build(
		provideLogger,
		provideTracerProvider,
		provideReportRepository,
		provideChecker,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
