// Package tilemap provides the in-memory tile map model: symbols, coordinates, and grids.
package tilemap

// Symbol is a single tile character in a map file.
type Symbol byte

// The closed tile alphabet.
const (
	Wall        Symbol = '1'
	Floor       Symbol = '0'
	PlayerStart Symbol = 'P'
	Exit        Symbol = 'E'
	Collectable Symbol = 'C'
)

// Alphabet contains every recognised tile symbol.
var Alphabet = []Symbol{Wall, Floor, PlayerStart, Exit, Collectable}

// IsKnown reports whether s belongs to the tile alphabet.
func (s Symbol) IsKnown() bool {
	switch s {
	case Wall, Floor, PlayerStart, Exit, Collectable:
		return true
	}
	return false
}

// IsWalkable reports whether a player may stand on s. Only walls block movement.
func (s Symbol) IsWalkable() bool {
	return s.IsKnown() && s != Wall
}

// String returns the symbol as a one-character string.
func (s Symbol) String() string {
	return string(rune(s))
}

// Coordinate identifies a tile by row and column.
type Coordinate struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// Neighbors returns the four edge-adjacent coordinates in up, down, left, right order.
// Corners are not neighbours.
//
// Postcondition: the result may contain coordinates outside any grid.
func (c Coordinate) Neighbors() [4]Coordinate {
	return [4]Coordinate{
		{Row: c.Row - 1, Col: c.Col},
		{Row: c.Row + 1, Col: c.Col},
		{Row: c.Row, Col: c.Col - 1},
		{Row: c.Row, Col: c.Col + 1},
	}
}

// Less orders coordinates row-major.
func (c Coordinate) Less(o Coordinate) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

// Grid is a map as rows of tile symbols. Rows are expected to share one length
// but nothing here guarantees it; the validation package checks that.
type Grid struct {
	// Rows holds the tiles, top to bottom.
	Rows [][]Symbol
	// Width is the length of the first row.
	Width int
	// Height is the number of rows.
	Height int
}

// NewGrid builds a Grid from text lines.
//
// Postcondition: Height == len(lines); Width == len(lines[0]) or 0 when there are no lines.
func NewGrid(lines []string) *Grid {
	g := &Grid{
		Rows:   make([][]Symbol, len(lines)),
		Height: len(lines),
	}
	for i, line := range lines {
		row := make([]Symbol, len(line))
		for j := 0; j < len(line); j++ {
			row[j] = Symbol(line[j])
		}
		g.Rows[i] = row
	}
	if g.Height > 0 {
		g.Width = len(g.Rows[0])
	}
	return g
}

// InBounds reports whether c addresses a tile of its row.
// Jagged rows are respected, so a coordinate past a short row is out of bounds.
func (g *Grid) InBounds(c Coordinate) bool {
	if c.Row < 0 || c.Row >= g.Height || c.Col < 0 {
		return false
	}
	return c.Col < len(g.Rows[c.Row])
}

// At returns the symbol at c.
//
// Precondition: g.InBounds(c).
func (g *Grid) At(c Coordinate) Symbol {
	return g.Rows[c.Row][c.Col]
}

// Lines returns the rows as strings.
func (g *Grid) Lines() []string {
	lines := make([]string, len(g.Rows))
	for i, row := range g.Rows {
		b := make([]byte, len(row))
		for j, s := range row {
			b[j] = byte(s)
		}
		lines[i] = string(b)
	}
	return lines
}
