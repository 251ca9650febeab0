package validation

import (
	"fmt"

	"github.com/cory-johannsen/tilecheck/internal/tilemap"
)

// Tally holds the entity counts of a single full-grid scan, plus where the
// exits and collectables were found.
type Tally struct {
	Players      int `json:"players" yaml:"players"`
	Exits        int `json:"exits" yaml:"exits"`
	Collectables int `json:"collectables" yaml:"collectables"`

	ExitTiles        []tilemap.Coordinate `json:"-" yaml:"-"`
	CollectableTiles []tilemap.Coordinate `json:"-" yaml:"-"`
}

// CountEntities scans every tile once in row-major order and tallies players,
// exits and collectables. The scan stops at the first symbol outside the alphabet.
//
// Precondition: CheckLineLengths(g) == nil.
// Postcondition: Returns the Tally, or a zero Tally and an INVALID_CHARACTER
// error at the first offending tile.
func CountEntities(g *tilemap.Grid) (Tally, error) {
	var t Tally
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			c := tilemap.Coordinate{Row: row, Col: col}
			switch s := g.At(c); s {
			case tilemap.PlayerStart:
				t.Players++
			case tilemap.Exit:
				t.Exits++
				t.ExitTiles = append(t.ExitTiles, c)
			case tilemap.Collectable:
				t.Collectables++
				t.CollectableTiles = append(t.CollectableTiles, c)
			case tilemap.Wall, tilemap.Floor:
			default:
				return Tally{}, &Error{
					Kind:   KindInvalidCharacter,
					Pos:    c,
					HasPos: true,
					Detail: fmt.Sprintf("unexpected %q", s.String()),
				}
			}
		}
	}
	return t, nil
}

// Check applies the cardinality rules in order: exactly one player start, at
// least one exit, at least one collectable.
//
// Postcondition: Returns nil, or the error for the first violated rule.
func (t Tally) Check() error {
	if t.Players != 1 {
		return &Error{Kind: KindInvalidPlayerCount, Detail: fmt.Sprintf("found %d", t.Players)}
	}
	if t.Exits < 1 {
		return &Error{Kind: KindNoExit}
	}
	if t.Collectables < 1 {
		return &Error{Kind: KindNoCollectable}
	}
	return nil
}

// FindPlayer locates the first player start tile in row-major order.
//
// Postcondition: Returns (coordinate, true) if found, or (Coordinate{}, false).
func FindPlayer(g *tilemap.Grid) (tilemap.Coordinate, bool) {
	for row, tiles := range g.Rows {
		for col, s := range tiles {
			if s == tilemap.PlayerStart {
				return tilemap.Coordinate{Row: row, Col: col}, true
			}
		}
	}
	return tilemap.Coordinate{}, false
}
