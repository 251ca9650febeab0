package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/tilecheck/internal/tilemap"
)

func grid(lines ...string) *tilemap.Grid {
	return tilemap.NewGrid(lines)
}

func TestCheckLineLengths_Rectangular(t *testing.T) {
	assert.NoError(t, CheckLineLengths(grid("111", "101", "111")))
}

func TestCheckLineLengths_Empty(t *testing.T) {
	assert.True(t, errors.Is(CheckLineLengths(grid()), ErrEmptyMap))
	assert.True(t, errors.Is(CheckLineLengths(grid("")), ErrEmptyMap))
}

func TestCheckLineLengths_ShortRow(t *testing.T) {
	err := CheckLineLengths(grid("11111", "1001", "11111"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInconsistentLineLengths))

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, verr.Pos.Row)
	assert.Contains(t, verr.Detail, "expected 5 tiles, got 4")
}

func TestCheckLineLengths_LongRow(t *testing.T) {
	err := CheckLineLengths(grid("111", "111", "1111"))
	assert.True(t, errors.Is(err, ErrInconsistentLineLengths))
}

func TestCheckLineLengths_FieldsDisagreeWithRows(t *testing.T) {
	cases := []struct {
		name   string
		lines  []string
		width  int
		height int
		want   *Error
	}{
		{name: "height too large", lines: []string{"11111", "1PEC1", "11111"}, width: 5, height: 4, want: ErrInconsistentLineLengths},
		{name: "height too small", lines: []string{"11111", "1PEC1", "11111"}, width: 5, height: 2, want: ErrInconsistentLineLengths},
		{name: "width too large", lines: []string{"11111", "1PEC1", "11111"}, width: 6, height: 3, want: ErrInconsistentLineLengths},
		{name: "width too small", lines: []string{"1111111", "1P0E0C1", "1111111"}, width: 3, height: 3, want: ErrInconsistentLineLengths},
		{name: "zero height with rows", lines: []string{"111"}, width: 3, height: 0, want: ErrInconsistentLineLengths},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := grid(tc.lines...)
			g.Width = tc.width
			g.Height = tc.height

			require.NotPanics(t, func() {
				err := CheckLineLengths(g)
				assert.True(t, errors.Is(err, tc.want), "got %v", err)
			})
			require.NotPanics(t, func() {
				_, err := Validate(g)
				assert.True(t, KindOf(err).IsShape(), "got %v", err)
			})
		})
	}
}

func TestCheckBorders_Walled(t *testing.T) {
	assert.NoError(t, CheckBorders(grid("1111", "1PE1", "1C01", "1111")))
}

func TestCheckBorders_GapInEachEdge(t *testing.T) {
	cases := map[string][]string{
		"top":    {"1011", "1001", "1111"},
		"bottom": {"1111", "1001", "1101"},
		"left":   {"1111", "0001", "1111"},
		"right":  {"1111", "1000", "1111"},
	}
	for name, lines := range cases {
		t.Run(name, func(t *testing.T) {
			err := CheckBorders(grid(lines...))
			assert.True(t, errors.Is(err, ErrMissingBorderWall))
		})
	}
}

func TestCheckBorders_ReportsFirstGapRowMajor(t *testing.T) {
	err := CheckBorders(grid("1111", "0001", "1110"))
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, tilemap.Coordinate{Row: 1, Col: 0}, verr.Pos)
}

func TestCheckBorders_DegenerateGrids(t *testing.T) {
	assert.NoError(t, CheckBorders(grid("1111")))
	assert.NoError(t, CheckBorders(grid("1", "1", "1")))
	assert.NoError(t, CheckBorders(grid("1")))
	assert.True(t, errors.Is(CheckBorders(grid("1P1")), ErrMissingBorderWall))
	assert.True(t, errors.Is(CheckBorders(grid("1", "E", "1")), ErrMissingBorderWall))
}

func TestCheckShape_LengthsBeforeBorders(t *testing.T) {
	// Both defects present; the line length defect must win.
	err := CheckShape(grid("10111", "1001", "11111"))
	assert.True(t, errors.Is(err, ErrInconsistentLineLengths))
}

// walledRect draws a rectangular all-wall grid.
func walledRect(t *rapid.T) [][]byte {
	h := rapid.IntRange(1, 12).Draw(t, "height")
	w := rapid.IntRange(1, 12).Draw(t, "width")
	rows := make([][]byte, h)
	for i := range rows {
		rows[i] = make([]byte, w)
		for j := range rows[i] {
			rows[i][j] = '1'
		}
	}
	return rows
}

func toGrid(rows [][]byte) *tilemap.Grid {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = string(r)
	}
	return tilemap.NewGrid(lines)
}

// Property: changing the length of any row other than row 0 is a shape failure.
func TestPropertyJaggedRowsFailShape(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rows := walledRect(t)
		if len(rows) < 2 {
			rows = append(rows, append([]byte(nil), rows[0]...))
		}
		i := rapid.IntRange(1, len(rows)-1).Draw(t, "row")
		if rapid.Bool().Draw(t, "grow") || len(rows[i]) == 1 {
			rows[i] = append(rows[i], '1')
		} else {
			rows[i] = rows[i][:len(rows[i])-1]
		}
		err := CheckShape(toGrid(rows))
		assert.True(t, KindOf(err).IsShape(), "got %v", err)
	})
}

// Property: replacing any border tile with a non-wall fails the border check.
func TestPropertyBrokenBorderFails(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rows := walledRect(t)
		h, w := len(rows), len(rows[0])
		var border []tilemap.Coordinate
		for r := 0; r < h; r++ {
			for c := 0; c < w; c++ {
				if r == 0 || r == h-1 || c == 0 || c == w-1 {
					border = append(border, tilemap.Coordinate{Row: r, Col: c})
				}
			}
		}
		pos := rapid.SampledFrom(border).Draw(t, "pos")
		rows[pos.Row][pos.Col] = rapid.SampledFrom([]byte("0PECX ")).Draw(t, "symbol")

		err := CheckShape(toGrid(rows))
		assert.True(t, errors.Is(err, ErrMissingBorderWall), "got %v", err)
	})
}
