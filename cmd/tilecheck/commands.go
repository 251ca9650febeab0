package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/cory-johannsen/tilecheck/internal/checker"
	"github.com/cory-johannsen/tilecheck/internal/config"
	"github.com/cory-johannsen/tilecheck/internal/server"
	"github.com/cory-johannsen/tilecheck/internal/watch"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "report format: text, json or yaml",
		Value:   string(checker.FormatText),
	}
}

func noColorFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "no-color",
		Usage:   "disable colored text output",
		Sources: cli.EnvVars("NO_COLOR"),
	}
}

// loadConfig reads the configuration named by the root flags and applies
// command line overrides.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	if locale := cmd.String("locale"); locale != "" {
		cfg.Diagnostics.Locale = locale
	}
	return cfg, nil
}

func renderer(cmd *cli.Command, cfg config.Config) (checker.Renderer, error) {
	format, err := checker.ParseFormat(cmd.String("format"))
	if err != nil {
		return checker.Renderer{}, err
	}
	return checker.Renderer{
		Format:  format,
		Colored: cfg.Diagnostics.Color && !cmd.Bool("no-color"),
	}, nil
}

// withApp loads configuration, assembles the App and runs fn with it.
func withApp(ctx context.Context, cmd *cli.Command, diag io.Writer, fn func(*App) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	app, cleanup, err := InitializeApp(ctx, cfg, diag)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(app)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func validateCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check map files or directories of maps",
		ArgsUsage: "[PATH...]",
		Flags:     []cli.Flag{formatFlag(), noColorFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withApp(ctx, cmd, stderr, func(app *App) error {
				r, err := renderer(cmd, app.Config)
				if err != nil {
					return err
				}
				paths := cmd.Args().Slice()
				if len(paths) == 0 {
					paths = []string{app.Config.Validation.MapsDir}
				}

				reports, err := app.Checker.CheckPaths(ctx, paths, isDir)
				if err != nil {
					return err
				}
				if err := r.Render(stdout, reports); err != nil {
					return err
				}
				if checker.Summarize(reports).Invalid > 0 {
					return errInvalidMaps
				}
				return nil
			})
		},
	}
}

func watchCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "re-validate maps whenever they change",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Usage: "directory to watch (defaults to validation.maps_dir)",
			},
			formatFlag(),
			noColorFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withApp(ctx, cmd, stderr, func(app *App) error {
				r, err := renderer(cmd, app.Config)
				if err != nil {
					return err
				}
				dir := cmd.String("dir")
				if dir == "" {
					dir = app.Config.Validation.MapsDir
				}

				onReport := func(rep checker.Report) {
					if err := r.RenderOne(stdout, rep); err != nil {
						app.Logger.Error("rendering report", zap.Error(err))
					}
				}
				w := watch.New(dir, app.Checker.Extension(), app.Config.Watch.Debounce, app.Checker, onReport, app.Logger)

				lc := server.NewLifecycle(app.Logger)
				lc.Add("watch", w)
				return lc.Run(ctx)
			})
		},
	}
}

func historyCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "list stored reports (requires database.enabled)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Usage: "only reports for this map path"},
			&cli.IntFlag{Name: "limit", Usage: "maximum number of reports", Value: 20},
			formatFlag(),
			noColorFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withApp(ctx, cmd, stderr, func(app *App) error {
				if app.Reports == nil {
					return fmt.Errorf("history needs the report store: set database.enabled")
				}
				r, err := renderer(cmd, app.Config)
				if err != nil {
					return err
				}
				limit := cmd.Int("limit")
				if limit < 1 {
					return fmt.Errorf("limit must be positive, got %d", limit)
				}

				var reports []checker.Report
				if path := cmd.String("path"); path != "" {
					reports, err = app.Reports.ListByPath(ctx, path, limit)
				} else {
					reports, err = app.Reports.ListRecent(ctx, limit)
				}
				if err != nil {
					return err
				}
				return r.Render(stdout, reports)
			})
		},
	}
}
