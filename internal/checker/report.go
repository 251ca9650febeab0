package checker

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/tilecheck/internal/tilemap"
	"github.com/cory-johannsen/tilecheck/internal/validation"
)

// Report is the outcome of checking one map file.
type Report struct {
	ID           uuid.UUID            `json:"id" yaml:"id"`
	Path         string               `json:"path" yaml:"path"`
	Valid        bool                 `json:"valid" yaml:"valid"`
	Kind         string               `json:"kind,omitempty" yaml:"kind,omitempty"`
	Message      string               `json:"message,omitempty" yaml:"message,omitempty"`
	Detail       string               `json:"detail,omitempty" yaml:"detail,omitempty"`
	Position     *tilemap.Coordinate  `json:"position,omitempty" yaml:"position,omitempty"`
	Width        int                  `json:"width" yaml:"width"`
	Height       int                  `json:"height" yaml:"height"`
	Players      int                  `json:"players" yaml:"players"`
	Exits        int                  `json:"exits" yaml:"exits"`
	Collectables int                  `json:"collectables" yaml:"collectables"`
	Reachable    int                  `json:"reachable" yaml:"reachable"`
	Unreached    []tilemap.Coordinate `json:"unreached,omitempty" yaml:"unreached,omitempty"`
	CheckedAt    time.Time            `json:"checked_at" yaml:"checked_at"`
	Elapsed      time.Duration        `json:"elapsed_ns" yaml:"elapsed_ns"`
}

// Failure reconstructs the validation error a report describes.
//
// Postcondition: Returns nil for a valid report.
func (r Report) Failure() error {
	if r.Valid {
		return nil
	}
	kind, _ := validation.ParseKind(r.Kind)
	verr := &validation.Error{Kind: kind, Detail: r.Detail, Unreached: r.Unreached}
	if r.Position != nil {
		verr.Pos = *r.Position
		verr.HasPos = true
	}
	return verr
}

func newReport(path string, at time.Time) Report {
	return Report{
		ID:        uuid.New(),
		Path:      path,
		CheckedAt: at.UTC(),
	}
}

func (r *Report) applyResult(res validation.Result) {
	r.Width = res.Width
	r.Height = res.Height
	r.Players = res.Tally.Players
	r.Exits = res.Tally.Exits
	r.Collectables = res.Tally.Collectables
	r.Reachable = res.Reachable
}

func (r *Report) applyFailure(err error) {
	r.Valid = false
	kind := validation.KindOf(err)
	r.Kind = kind.String()
	r.Message = kind.Message()
	var verr *validation.Error
	if !errors.As(err, &verr) {
		r.Detail = err.Error()
		return
	}
	r.Detail = verr.Detail
	r.Unreached = verr.Unreached
	if verr.HasPos {
		pos := verr.Pos
		r.Position = &pos
	}
}

// Summary tallies a batch of reports.
type Summary struct {
	Total   int `json:"total" yaml:"total"`
	Valid   int `json:"valid" yaml:"valid"`
	Invalid int `json:"invalid" yaml:"invalid"`
}

// Summarize counts valid and invalid reports.
func Summarize(reports []Report) Summary {
	s := Summary{Total: len(reports)}
	for _, r := range reports {
		if r.Valid {
			s.Valid++
		} else {
			s.Invalid++
		}
	}
	return s
}
