package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/cory-johannsen/tilecheck/internal/checker"
	"github.com/cory-johannsen/tilecheck/internal/config"
	"github.com/cory-johannsen/tilecheck/internal/observability"
	"github.com/cory-johannsen/tilecheck/internal/storage/postgres"
	"github.com/cory-johannsen/tilecheck/internal/validation"
)

// App holds the assembled dependencies shared by every subcommand.
type App struct {
	Config  config.Config
	Logger  *zap.Logger
	Checker *checker.Checker
	Reports *postgres.ReportRepository
}

func provideLogger(cfg config.Config) (*zap.Logger, func(), error) {
	logger, err := observability.NewLogger(cfg.Logging, cfg.Diagnostics.Color)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func provideTracerProvider(ctx context.Context, cfg config.Config) (trace.TracerProvider, func(), error) {
	tp, shutdown, err := observability.NewTracerProvider(ctx, cfg.Telemetry, version)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing tracing: %w", err)
	}
	return tp, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(ctx)
	}, nil
}

// provideReportRepository returns a nil repository when persistence is disabled.
func provideReportRepository(ctx context.Context, cfg config.Config, logger *zap.Logger) (*postgres.ReportRepository, func(), error) {
	if !cfg.Database.Enabled {
		return nil, func() {}, nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	pool, err := postgres.NewPool(connectCtx, cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to report store: %w", err)
	}
	return postgres.NewReportRepository(pool.DB()), pool.Close, nil
}

func provideChecker(cfg config.Config, logger *zap.Logger, tp trace.TracerProvider, repo *postgres.ReportRepository, diag io.Writer) *checker.Checker {
	validation.ConfigureMessages(cfg.Diagnostics.LocalesDir, cfg.Diagnostics.Locale, cfg.Diagnostics.Domain)

	opts := []checker.Option{
		checker.WithTracer(tp.Tracer("github.com/cory-johannsen/tilecheck/internal/checker")),
		checker.WithDiagnostics(diag),
	}
	if repo != nil {
		opts = append(opts, checker.WithStore(repo))
	}
	return checker.New(cfg.Validation.Extension, logger, opts...)
}
