// Package observability provides logging and tracing utilities.
package observability

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/tilecheck/internal/config"
)

// NewLogger builds the process logger. Logs always go to stderr so reports
// written to stdout stay machine readable. colored enables ANSI level colors
// for the console format and is ignored for json.
//
// Precondition: cfg.Level is one of "debug", "info", "warn", "error";
// cfg.Format is "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig, colored bool) (*zap.Logger, error) {
	return newLogger(cfg, colored, zapcore.Lock(os.Stderr))
}

func newLogger(cfg config.LoggingConfig, colored bool, out zapcore.WriteSyncer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}
	enc, err := newEncoder(cfg.Format, colored)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(enc, out, zap.NewAtomicLevelAt(level))
	opts := []zap.Option{zap.ErrorOutput(out), zap.AddStacktrace(zapcore.ErrorLevel)}
	if level == zapcore.DebugLevel {
		opts = append(opts, zap.AddCaller())
	}
	return zap.New(core, opts...), nil
}

func newEncoder(format string, colored bool) (zapcore.Encoder, error) {
	switch format {
	case "json":
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(encCfg), nil
	case "console":
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		if colored {
			encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		return zapcore.NewConsoleEncoder(encCfg), nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}
