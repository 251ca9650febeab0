package validation

import (
	"fmt"

	"github.com/cory-johannsen/tilecheck/internal/tilemap"
)

// CheckLineLengths verifies the grid is non-empty, rectangular, and that its
// Width and Height fields describe its rows.
//
// Postcondition: Returns nil if every row is g.Width tiles long and there are
// g.Height rows, otherwise an EMPTY_MAP or INCONSISTENT_LINE_LENGTHS error.
func CheckLineLengths(g *tilemap.Grid) error {
	if len(g.Rows) == 0 || len(g.Rows[0]) == 0 {
		return &Error{Kind: KindEmptyMap}
	}
	if g.Height != len(g.Rows) {
		return &Error{
			Kind:   KindInconsistentLineLengths,
			Detail: fmt.Sprintf("height is %d but there are %d rows", g.Height, len(g.Rows)),
		}
	}
	if g.Width != len(g.Rows[0]) {
		return &Error{
			Kind:   KindInconsistentLineLengths,
			Pos:    tilemap.Coordinate{Row: 0, Col: 0},
			HasPos: true,
			Detail: fmt.Sprintf("width is %d but row 0 has %d tiles", g.Width, len(g.Rows[0])),
		}
	}
	expected := g.Width
	for i, row := range g.Rows {
		if len(row) != expected {
			return &Error{
				Kind:   KindInconsistentLineLengths,
				Pos:    tilemap.Coordinate{Row: i, Col: 0},
				HasPos: true,
				Detail: fmt.Sprintf("expected %d tiles, got %d", expected, len(row)),
			}
		}
	}
	return nil
}

// CheckBorders verifies every perimeter tile is a wall. In a one-row or
// one-column grid the opposite edges coincide and are checked once.
//
// Precondition: CheckLineLengths(g) == nil.
// Postcondition: Returns nil or a MISSING_BORDER_WALL error at the first
// offending tile in row-major order.
func CheckBorders(g *tilemap.Grid) error {
	last := g.Height - 1
	right := g.Width - 1
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if row != 0 && row != last && col != 0 && col != right {
				continue
			}
			c := tilemap.Coordinate{Row: row, Col: col}
			if g.At(c) != tilemap.Wall {
				return &Error{
					Kind:   KindMissingBorderWall,
					Pos:    c,
					HasPos: true,
					Detail: fmt.Sprintf("found %q", g.At(c).String()),
				}
			}
		}
	}
	return nil
}

// CheckShape runs CheckLineLengths then CheckBorders. Rectangularity is always
// established before any tile is indexed.
func CheckShape(g *tilemap.Grid) error {
	if err := CheckLineLengths(g); err != nil {
		return err
	}
	return CheckBorders(g)
}
