package tilemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSymbol_IsKnown(t *testing.T) {
	for _, s := range Alphabet {
		assert.True(t, s.IsKnown(), "expected %q to be known", s)
	}
	assert.False(t, Symbol('X').IsKnown())
	assert.False(t, Symbol(' ').IsKnown())
}

func TestSymbol_IsWalkable(t *testing.T) {
	assert.False(t, Wall.IsWalkable())
	assert.True(t, Floor.IsWalkable())
	assert.True(t, PlayerStart.IsWalkable())
	assert.True(t, Exit.IsWalkable())
	assert.True(t, Collectable.IsWalkable())
	assert.False(t, Symbol('X').IsWalkable())
}

func TestPropertyWalkableIsKnownNonWall(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := Symbol(rapid.Byte().Draw(t, "symbol"))
		assert.Equal(t, s.IsKnown() && s != Wall, s.IsWalkable())
	})
}

func TestCoordinate_Neighbors(t *testing.T) {
	c := Coordinate{Row: 2, Col: 3}
	n := c.Neighbors()
	assert.Equal(t, Coordinate{Row: 1, Col: 3}, n[0])
	assert.Equal(t, Coordinate{Row: 3, Col: 3}, n[1])
	assert.Equal(t, Coordinate{Row: 2, Col: 2}, n[2])
	assert.Equal(t, Coordinate{Row: 2, Col: 4}, n[3])
}

// Property: every neighbour is at Manhattan distance exactly one.
func TestPropertyNeighborsAreEdgeAdjacent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := Coordinate{
			Row: rapid.IntRange(-100, 100).Draw(t, "row"),
			Col: rapid.IntRange(-100, 100).Draw(t, "col"),
		}
		for _, n := range c.Neighbors() {
			dr, dc := n.Row-c.Row, n.Col-c.Col
			if dr < 0 {
				dr = -dr
			}
			if dc < 0 {
				dc = -dc
			}
			if dr+dc != 1 {
				t.Fatalf("%v is not edge-adjacent to %v", n, c)
			}
		}
	})
}

func TestCoordinate_Less(t *testing.T) {
	assert.True(t, Coordinate{Row: 0, Col: 5}.Less(Coordinate{Row: 1, Col: 0}))
	assert.True(t, Coordinate{Row: 1, Col: 0}.Less(Coordinate{Row: 1, Col: 1}))
	assert.False(t, Coordinate{Row: 1, Col: 1}.Less(Coordinate{Row: 1, Col: 1}))
}

func TestNewGrid(t *testing.T) {
	g := NewGrid([]string{"111", "1P1", "111"})
	assert.Equal(t, 3, g.Width)
	assert.Equal(t, 3, g.Height)
	assert.Equal(t, PlayerStart, g.At(Coordinate{Row: 1, Col: 1}))
	assert.Equal(t, []string{"111", "1P1", "111"}, g.Lines())
}

func TestNewGrid_Empty(t *testing.T) {
	g := NewGrid(nil)
	assert.Equal(t, 0, g.Width)
	assert.Equal(t, 0, g.Height)
	assert.Empty(t, g.Rows)
}

func TestNewGrid_WidthFromFirstRow(t *testing.T) {
	g := NewGrid([]string{"1111", "11", "111111"})
	assert.Equal(t, 4, g.Width)
	assert.Equal(t, 3, g.Height)
}

func TestGrid_InBounds(t *testing.T) {
	g := NewGrid([]string{"1111", "11", "1111"})
	assert.True(t, g.InBounds(Coordinate{Row: 0, Col: 0}))
	assert.True(t, g.InBounds(Coordinate{Row: 2, Col: 3}))
	assert.False(t, g.InBounds(Coordinate{Row: -1, Col: 0}))
	assert.False(t, g.InBounds(Coordinate{Row: 0, Col: -1}))
	assert.False(t, g.InBounds(Coordinate{Row: 3, Col: 0}))
	assert.False(t, g.InBounds(Coordinate{Row: 0, Col: 4}))
	assert.False(t, g.InBounds(Coordinate{Row: 1, Col: 2}), "short rows must bound their own columns")
}
