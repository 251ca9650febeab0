// Package checker runs the map validation pipeline against files on disk and
// turns each outcome into a Report.
package checker

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/cory-johannsen/tilecheck/internal/tilemap"
	"github.com/cory-johannsen/tilecheck/internal/validation"
)

// ReportStore persists reports.
type ReportStore interface {
	SaveReport(ctx context.Context, r Report) error
}

// Checker validates map files.
type Checker struct {
	extension string
	logger    *zap.Logger
	tracer    trace.Tracer
	store     ReportStore
	diag      io.Writer
	now       func() time.Time
}

// Option configures a Checker.
type Option func(*Checker)

// WithTracer sets the tracer used for per-check spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Checker) { c.tracer = t }
}

// WithStore saves every report to s.
func WithStore(s ReportStore) Option {
	return func(c *Checker) { c.store = s }
}

// WithDiagnostics sets the stream that receives "Error\n<message>\n" for each
// invalid map.
func WithDiagnostics(w io.Writer) Option {
	return func(c *Checker) { c.diag = w }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Checker) { c.now = now }
}

// New creates a Checker for files ending in extension.
//
// Precondition: extension must start with '.'; logger must be non-nil.
// Postcondition: Returns a Checker with a noop tracer, no store, and no
// diagnostic stream unless options say otherwise.
func New(extension string, logger *zap.Logger, opts ...Option) *Checker {
	c := &Checker{
		extension: extension,
		logger:    logger,
		tracer:    noop.NewTracerProvider().Tracer("tilecheck"),
		diag:      io.Discard,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Extension returns the map file suffix this checker accepts.
func (c *Checker) Extension() string {
	return c.extension
}

// CheckFile gates path on its extension, loads it and validates it.
//
// Postcondition: Map defects are carried in the Report with a nil error.
// A non-nil error means the file could not be read or the report could not be saved.
func (c *Checker) CheckFile(ctx context.Context, path string) (Report, error) {
	ctx, span := c.tracer.Start(ctx, "checker.CheckFile",
		trace.WithAttributes(attribute.String("map.path", path)))
	defer span.End()

	start := c.now()
	report := newReport(path, start)

	if err := validation.CheckFilename(path, c.extension); err != nil {
		report.applyFailure(err)
		return c.finish(ctx, span, report, start)
	}

	g, err := tilemap.LoadGridFromFile(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		c.logger.Error("loading map", zap.String("path", path), zap.Error(err))
		return Report{}, err
	}

	return c.checkGrid(ctx, span, report, g, start)
}

// CheckGrid validates an already loaded grid under the given name.
func (c *Checker) CheckGrid(ctx context.Context, name string, g *tilemap.Grid) (Report, error) {
	ctx, span := c.tracer.Start(ctx, "checker.CheckGrid",
		trace.WithAttributes(attribute.String("map.path", name)))
	defer span.End()

	start := c.now()
	return c.checkGrid(ctx, span, newReport(name, start), g, start)
}

func (c *Checker) checkGrid(ctx context.Context, span trace.Span, report Report, g *tilemap.Grid, start time.Time) (Report, error) {
	hook := func(stage validation.Stage, elapsed time.Duration, err error) {
		attrs := []attribute.KeyValue{
			attribute.String("stage", string(stage)),
			attribute.Int64("elapsed_us", elapsed.Microseconds()),
		}
		if err != nil {
			attrs = append(attrs, attribute.String("kind", validation.KindOf(err).String()))
		}
		span.AddEvent("validation.stage", trace.WithAttributes(attrs...))
		c.logger.Debug("stage complete",
			zap.String("path", report.Path),
			zap.String("stage", string(stage)),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
	}

	res, err := validation.Validate(g, validation.WithStageHook(hook))
	report.applyResult(res)
	if err != nil {
		report.applyFailure(err)
	} else {
		report.Valid = true
	}
	return c.finish(ctx, span, report, start)
}

func (c *Checker) finish(ctx context.Context, span trace.Span, report Report, start time.Time) (Report, error) {
	report.Elapsed = c.now().Sub(start)

	span.SetAttributes(
		attribute.Bool("map.valid", report.Valid),
		attribute.Int("map.width", report.Width),
		attribute.Int("map.height", report.Height),
	)
	if report.Valid {
		c.logger.Info("map valid",
			zap.String("path", report.Path),
			zap.Int("width", report.Width),
			zap.Int("height", report.Height),
			zap.Int("reachable", report.Reachable),
			zap.Duration("elapsed", report.Elapsed),
		)
	} else {
		span.SetStatus(codes.Error, report.Kind)
		span.SetAttributes(attribute.String("map.kind", report.Kind))
		c.logger.Warn("map invalid",
			zap.String("path", report.Path),
			zap.String("kind", report.Kind),
			zap.String("detail", report.Detail),
		)
		if _, err := fmt.Fprintf(c.diag, "Error\n%s\n", report.Message); err != nil {
			c.logger.Error("writing diagnostic", zap.Error(err))
		}
	}

	if c.store != nil {
		if err := c.store.SaveReport(ctx, report); err != nil {
			span.RecordError(err)
			return report, fmt.Errorf("saving report for %s: %w", report.Path, err)
		}
	}
	return report, nil
}

// CheckDir checks every map file directly inside dir, in name order.
//
// Postcondition: Returns one report per map file. Stops at the first IO or
// store error and returns the reports gathered so far.
func (c *Checker) CheckDir(ctx context.Context, dir string) ([]Report, error) {
	ctx, span := c.tracer.Start(ctx, "checker.CheckDir",
		trace.WithAttributes(attribute.String("map.dir", dir)))
	defer span.End()

	paths, err := tilemap.ListMapFiles(dir, c.extension)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	reports := make([]Report, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		r, err := c.CheckFile(ctx, p)
		if err != nil {
			return reports, err
		}
		reports = append(reports, r)
	}

	s := Summarize(reports)
	span.SetAttributes(attribute.Int("maps.total", s.Total), attribute.Int("maps.invalid", s.Invalid))
	c.logger.Info("directory checked",
		zap.String("dir", filepath.Clean(dir)),
		zap.Int("total", s.Total),
		zap.Int("invalid", s.Invalid),
	)
	return reports, nil
}

// CheckPaths checks each path in order. Directories are expanded with CheckDir.
func (c *Checker) CheckPaths(ctx context.Context, paths []string, isDir func(string) bool) ([]Report, error) {
	var reports []Report
	for _, p := range paths {
		if isDir(p) {
			rs, err := c.CheckDir(ctx, p)
			reports = append(reports, rs...)
			if err != nil {
				return reports, err
			}
			continue
		}
		r, err := c.CheckFile(ctx, p)
		if err != nil {
			return reports, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}
