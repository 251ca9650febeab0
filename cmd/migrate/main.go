// Package main applies the report store schema migrations.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/cory-johannsen/tilecheck/internal/config"
	"github.com/cory-johannsen/tilecheck/internal/observability"
	"github.com/cory-johannsen/tilecheck/internal/storage/postgres"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
	}

	cmd := &cli.Command{
		Name:  "migrate",
		Usage: "apply report store migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML configuration file",
				Value:   "configs/dev.yaml",
				Sources: cli.EnvVars("TILECHECK_CONFIG"),
			},
			&cli.StringFlag{Name: "direction", Usage: "migration direction: up or down", Value: "up"},
			&cli.IntFlag{Name: "steps", Usage: "number of steps (0 = all)"},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	start := time.Now()

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logging, cfg.Diagnostics.Color)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	direction := postgres.Direction(cmd.String("direction"))
	res, err := postgres.Migrate(cfg.Database.DSN(), direction, cmd.Int("steps"))
	if err != nil {
		return err
	}

	if res.NoChange {
		logger.Info("no changes",
			zap.Uint("version", res.Version),
			zap.Bool("dirty", res.Dirty),
			zap.Duration("elapsed", time.Since(start)),
		)
		return nil
	}
	logger.Info("migrated",
		zap.String("direction", string(direction)),
		zap.Uint("version", res.Version),
		zap.Bool("dirty", res.Dirty),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
