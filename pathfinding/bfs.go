// Package pathfinding runs breadth-first searches over a maze grid. Corridor
// moves cost the same everywhere and corridors are one cell wide, so BFS is
// exact here and the four cardinal steps are the whole move set.
package pathfinding

import (
	"github.com/rohanjoshi-fynd/maze-game/maze"
)

var steps = [4]maze.Cell{{X: 0, Z: -1}, {X: 0, Z: 1}, {X: -1, Z: 0}, {X: 1, Z: 0}}

// ShortestPath returns the cell sequence of the shortest corridor path from
// one open cell to another, both endpoints included. It returns nil when
// either endpoint is a wall or out of bounds, when no path exists, or when
// the endpoints coincide and there is nothing to walk.
func ShortestPath(g *maze.Grid, from, to maze.Cell) []maze.Cell {
	if !g.IsOpen(from) || !g.IsOpen(to) || from == to {
		return nil
	}

	cameFrom := make(map[maze.Cell]maze.Cell)
	visited := map[maze.Cell]bool{from: true}
	queue := []maze.Cell{from}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == to {
			path := []maze.Cell{curr}
			for curr != from {
				curr = cameFrom[curr]
				path = append(path, curr)
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, s := range steps {
			next := maze.Cell{X: curr.X + s.X, Z: curr.Z + s.Z}
			if !g.IsOpen(next) || visited[next] {
				continue
			}
			visited[next] = true
			cameFrom[next] = curr
			queue = append(queue, next)
		}
	}
	return nil
}

// Distances returns the corridor distance from origin to every reachable
// open cell within maxDist hops; a negative maxDist means unbounded. The
// origin maps to zero. A wall or out-of-bounds origin yields nil.
func Distances(g *maze.Grid, origin maze.Cell, maxDist int) map[maze.Cell]int {
	if !g.IsOpen(origin) {
		return nil
	}

	dist := map[maze.Cell]int{origin: 0}
	queue := []maze.Cell{origin}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		if maxDist >= 0 && dist[curr] == maxDist {
			continue
		}
		for _, s := range steps {
			next := maze.Cell{X: curr.X + s.X, Z: curr.Z + s.Z}
			if !g.IsOpen(next) {
				continue
			}
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[curr] + 1
			queue = append(queue, next)
		}
	}
	return dist
}

// RingCandidates returns every open cell whose corridor distance from origin
// lies in [minDist, maxDist], in breadth-first visit order. The search stops
// expanding once the frontier reaches maxDist, so tight bands stay cheap on
// large grids. An empty band, a wall origin, or maxDist < minDist all yield
// nil; callers decide whether an empty result is an error.
func RingCandidates(g *maze.Grid, origin maze.Cell, minDist, maxDist int) []maze.Cell {
	if !g.IsOpen(origin) || maxDist < 0 || maxDist < minDist {
		return nil
	}

	dist := map[maze.Cell]int{origin: 0}
	queue := []maze.Cell{origin}

	var ring []maze.Cell
	if minDist <= 0 {
		ring = append(ring, origin)
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		d := dist[curr]
		if d == maxDist {
			continue
		}

		for _, s := range steps {
			next := maze.Cell{X: curr.X + s.X, Z: curr.Z + s.Z}
			if !g.IsOpen(next) {
				continue
			}
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = d + 1
			if d+1 >= minDist {
				ring = append(ring, next)
			}
			queue = append(queue, next)
		}
	}
	return ring
}
