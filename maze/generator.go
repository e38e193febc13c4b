package maze

import (
	"math/rand"
	"time"
)

// Config are the inputs to Generate. Zero values resolve to defaults: sizes
// are normalized into the supported odd range, a zero Seed draws one from
// the clock.
type Config struct {
	Width  int
	Height int
	Seed   int64
}

// roomStep is the lattice stride between rooms. Rooms live on odd
// coordinates; the cell between two adjacent rooms is the wall that carving
// removes.
const roomStep = 2

// Generate carves a maze with iterative randomized depth-first backtracking
// over the odd-coordinate room lattice. The walk starts at (1,1), tunnels to
// a uniformly chosen unvisited neighbor two cells away by opening the wall
// between them, and backtracks when boxed in. The result is a spanning tree
// of the rooms: every room is reachable from every other by exactly one
// corridor path, and the outermost ring of cells is always wall.
//
// The same Config yields the same grid on every call.
func Generate(cfg Config) *Grid {
	width := normalizeSize(cfg.Width)
	height := normalizeSize(cfg.Height)
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	cells := make([][]CellState, height)
	for z := range cells {
		cells[z] = make([]CellState, width)
	}

	start := Cell{X: 1, Z: 1}

	// Carved state doubles as the visited set: a room is visited exactly
	// when it has been opened.
	cells[start.Z][start.X] = Open
	stack := []Cell{start}

	dirs := []Cell{{X: 0, Z: -roomStep}, {X: 0, Z: roomStep}, {X: -roomStep, Z: 0}, {X: roomStep, Z: 0}}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]

		var candidates []Cell
		for _, d := range dirs {
			next := Cell{X: curr.X + d.X, Z: curr.Z + d.Z}
			if next.X < 1 || next.X >= width-1 || next.Z < 1 || next.Z >= height-1 {
				continue
			}
			if cells[next.Z][next.X] == Wall {
				candidates = append(candidates, next)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := candidates[rng.Intn(len(candidates))]
		wall := Cell{X: curr.X + (next.X-curr.X)/2, Z: curr.Z + (next.Z-curr.Z)/2}
		cells[wall.Z][wall.X] = Open
		cells[next.Z][next.X] = Open
		stack = append(stack, next)
	}

	// (width-2, height-2) is a room cell for odd sizes, so the walk has
	// already carved it.
	exit := Cell{X: width - 2, Z: height - 2}

	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
		start:  start,
		exit:   exit,
		seed:   seed,
	}
}

// normalizeSize clamps n into [MinSize, MaxSize] and rounds even values down
// to odd. The room lattice only works on odd dimensions.
func normalizeSize(n int) int {
	if n < MinSize {
		n = MinSize
	}
	if n > MaxSize {
		n = MaxSize
	}
	if n%2 == 0 {
		n--
	}
	return n
}
