package validation

import (
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"

	"github.com/cory-johannsen/tilecheck/internal/tilemap"
)

// ReachSet is the set of tiles reachable from a start tile.
type ReachSet struct {
	tiles mapset.Set[tilemap.Coordinate]
}

// Has reports whether c was reached.
func (r *ReachSet) Has(c tilemap.Coordinate) bool {
	return r.tiles.Has(c)
}

// Len returns the number of reached tiles.
func (r *ReachSet) Len() int {
	return r.tiles.Size()
}

// Coordinates returns the reached tiles in row-major order.
func (r *ReachSet) Coordinates() []tilemap.Coordinate {
	out := make([]tilemap.Coordinate, 0, r.tiles.Size())
	r.tiles.Each(func(c tilemap.Coordinate) {
		out = append(out, c)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Reachable flood-fills from start through walkable tiles using 4-directional
// moves. An explicit stack is used so large maps cannot exhaust the call stack.
//
// Postcondition: Returns every tile connected to start. A start tile that is
// out of bounds or a wall yields an empty set. Each tile is visited at most once.
func Reachable(g *tilemap.Grid, start tilemap.Coordinate) *ReachSet {
	visited := mapset.New[tilemap.Coordinate]()
	if !g.InBounds(start) || !g.At(start).IsWalkable() {
		return &ReachSet{tiles: visited}
	}

	work := stack.New[tilemap.Coordinate]()
	work.Push(start)
	visited.Put(start)

	for work.Size() > 0 {
		current := work.Pop()
		for _, n := range current.Neighbors() {
			if visited.Has(n) || !g.InBounds(n) || !g.At(n).IsWalkable() {
				continue
			}
			visited.Put(n)
			work.Push(n)
		}
	}

	return &ReachSet{tiles: visited}
}

// CheckReachability verifies that every exit and collectable in the tally can
// be reached from start. Exits are checked before collectables.
//
// Precondition: t was produced by CountEntities on g.
// Postcondition: Returns nil, or an UNREACHABLE_EXIT / UNREACHABLE_COLLECTABLE
// error listing every unreached tile of that kind.
func CheckReachability(g *tilemap.Grid, start tilemap.Coordinate, t Tally) (*ReachSet, error) {
	reach := Reachable(g, start)

	if missed := unreached(reach, t.ExitTiles); len(missed) > 0 {
		return reach, &Error{
			Kind:      KindUnreachableExit,
			Pos:       missed[0],
			HasPos:    true,
			Detail:    fmt.Sprintf("%d/%d exits unreachable", len(missed), len(t.ExitTiles)),
			Unreached: missed,
		}
	}
	if missed := unreached(reach, t.CollectableTiles); len(missed) > 0 {
		return reach, &Error{
			Kind:      KindUnreachableCollectable,
			Pos:       missed[0],
			HasPos:    true,
			Detail:    fmt.Sprintf("%d/%d collectables unreachable", len(missed), len(t.CollectableTiles)),
			Unreached: missed,
		}
	}
	return reach, nil
}

func unreached(reach *ReachSet, targets []tilemap.Coordinate) []tilemap.Coordinate {
	var missed []tilemap.Coordinate
	for _, c := range targets {
		if !reach.Has(c) {
			missed = append(missed, c)
		}
	}
	return missed
}
