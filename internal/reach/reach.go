// Package reach answers connectivity questions about a grid with breadth-first search.
package reach

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/sneakmap/internal/world"
)

// IsReachable reports whether every goal can be reached from start over
// 4-connected passable tiles. The search stops as soon as the last goal is found.
func IsReachable(g *world.Grid, start world.Point, goals []world.Point) bool {
	pending := mapset.New[world.Point]()
	for _, goal := range goals {
		pending.Put(goal)
	}
	if pending.Size() == 0 {
		return true
	}
	if !passable(g, start) {
		return false
	}

	found := mapset.New[world.Point]()
	visited := mapset.New[world.Point]()
	visited.Put(start)
	queue := []world.Point{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if pending.Has(current) {
			found.Put(current)
			if found.Size() == pending.Size() {
				return true
			}
		}

		for _, n := range current.Neighbors4() {
			if visited.Has(n) || !passable(g, n) {
				continue
			}
			visited.Put(n)
			queue = append(queue, n)
		}
	}
	return false
}

// ReachableFrom returns every passable tile connected to start.
func ReachableFrom(g *world.Grid, start world.Point) *mapset.Set[world.Point] {
	reachable := mapset.New[world.Point]()
	if !passable(g, start) {
		return &reachable
	}

	reachable.Put(start)
	queue := []world.Point{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, n := range current.Neighbors4() {
			if !reachable.Has(n) && passable(g, n) {
				reachable.Put(n)
				queue = append(queue, n)
			}
		}
	}
	return &reachable
}

func passable(g *world.Grid, p world.Point) bool {
	tile, err := g.At(p)
	return err == nil && tile.IsPassable()
}
