// Package main provides the tilecheck command, which validates tile maps
// before they are handed to the game.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// errInvalidMaps signals that checking finished but at least one map is unplayable.
var errInvalidMaps = errors.New("invalid maps found")

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
	}

	cmd := newRootCommand(os.Stdout, os.Stderr)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		if !errors.Is(err, errInvalidMaps) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "tilecheck",
		Usage:     "validate tile maps for shape, entities and reachability",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML configuration file",
				Sources: cli.EnvVars("TILECHECK_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "locale",
				Usage: "diagnostic message locale, e.g. fr_FR",
			},
		},
		Commands: []*cli.Command{
			validateCommand(stdout, stderr),
			watchCommand(stdout, stderr),
			historyCommand(stdout, stderr),
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(_ context.Context, _ *cli.Command) error {
					_, err := fmt.Fprintf(stdout, "tilecheck %s\n", version)
					return err
				},
			},
		},
	}
}
