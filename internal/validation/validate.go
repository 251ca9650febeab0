// Package validation checks that a tile map is well formed and fully navigable
// before play begins.
//
// Stages run in a fixed order and stop at the first failure:
// rectangularity, border walls, entity counting and cardinality rules,
// player location, and reachability of every exit and collectable.
package validation

import (
	"time"

	"github.com/cory-johannsen/tilecheck/internal/tilemap"
)

// Stage names one step of the validation pipeline.
type Stage string

// Pipeline stages in execution order.
const (
	StageLineLengths  Stage = "line_lengths"
	StageBorders      Stage = "borders"
	StageEntities     Stage = "entities"
	StageLocatePlayer Stage = "locate_player"
	StageReachability Stage = "reachability"
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageLineLengths, StageBorders, StageEntities, StageLocatePlayer, StageReachability}

// StageHook observes each completed stage. err is nil when the stage passed.
type StageHook func(stage Stage, elapsed time.Duration, err error)

// Option configures Validate.
type Option func(*options)

type options struct {
	hook StageHook
}

// WithStageHook registers fn to be called after every stage that runs.
func WithStageHook(fn StageHook) Option {
	return func(o *options) { o.hook = fn }
}

// Result summarises what a validation run learned about the map.
type Result struct {
	Width     int
	Height    int
	Tally     Tally
	Player    tilemap.Coordinate
	Reachable int
}

// Validate runs the full pipeline on g and returns the first failure.
// g is only read.
//
// Postcondition: Returns a Result populated up to the failing stage, and nil
// error if and only if the map is playable.
func Validate(g *tilemap.Grid, opts ...Option) (Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	res := Result{Width: g.Width, Height: g.Height}
	run := func(stage Stage, fn func() error) error {
		start := time.Now()
		err := fn()
		if o.hook != nil {
			o.hook(stage, time.Since(start), err)
		}
		return err
	}

	if err := run(StageLineLengths, func() error { return CheckLineLengths(g) }); err != nil {
		return res, err
	}
	if err := run(StageBorders, func() error { return CheckBorders(g) }); err != nil {
		return res, err
	}
	if err := run(StageEntities, func() error {
		t, err := CountEntities(g)
		if err != nil {
			return err
		}
		res.Tally = t
		return t.Check()
	}); err != nil {
		return res, err
	}
	if err := run(StageLocatePlayer, func() error {
		pos, ok := FindPlayer(g)
		if !ok {
			return &Error{Kind: KindInvalidPlayerCount, Detail: "found 0"}
		}
		res.Player = pos
		return nil
	}); err != nil {
		return res, err
	}
	err := run(StageReachability, func() error {
		reach, err := CheckReachability(g, res.Player, res.Tally)
		res.Reachable = reach.Len()
		return err
	})
	return res, err
}
