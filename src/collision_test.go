package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohanjoshi-fynd/maze-game/config"
	"github.com/rohanjoshi-fynd/maze-game/maze"
)

// The border ring of any generated maze is wall and (1,1) is always open, so
// these tests position the agent at the start cell's center and push it into
// the border. With the default cell size of 2.0 that center is (3, 0, 3) and
// the west border's inner face sits at x=2.

func testWorld(t *testing.T) (*maze.Grid, *CollisionWorld, config.Gameplay) {
	t.Helper()
	gp := config.DefaultGameplay()
	g := maze.Generate(maze.Config{Width: 11, Height: 11, Seed: 21})
	return g, NewCollisionWorld(g, gp), gp
}

func TestResolveStopsAtWallFace(t *testing.T) {
	t.Parallel()

	_, w, gp := testWorld(t)
	from := Vec3{X: 3, Y: 0, Z: 3}

	got := w.Resolve(from, Vec3{X: 1, Y: 0, Z: 3})
	assert.InDelta(t, 2+gp.AgentRadius, got.X, 1e-9, "stopped at the west face plus the agent radius")
	assert.InDelta(t, 3, got.Z, 1e-9)
}

func TestResolveDiagonalSlide(t *testing.T) {
	t.Parallel()

	_, w, gp := testWorld(t)
	from := Vec3{X: 3, Y: 0, Z: 3}

	// Press into the west wall while also moving south: X is blocked at the
	// face, Z keeps going.
	got := w.Resolve(from, Vec3{X: 2.0, Y: 0, Z: 3.2})
	assert.InDelta(t, 2+gp.AgentRadius, got.X, 1e-9, "blocked axis stops at the face")
	assert.InDelta(t, 3.2, got.Z, 1e-9, "free axis keeps its full motion")
}

func TestResolveSlidesFlushAcrossWallSeam(t *testing.T) {
	t.Parallel()

	gp := config.DefaultGameplay()
	// Two stacked wall cells form a column with a seam at z=4; everything
	// east of x=2 is open.
	w := &CollisionWorld{
		cellSize:    gp.CellSize,
		wallHeight:  gp.WallHeight,
		radius:      gp.AgentRadius,
		agentHeight: gp.AgentHeight,
		maxX:        3 * gp.CellSize,
		maxZ:        4 * gp.CellSize,
		boxes: []Box{
			{Min: Vec3{X: 0, Y: 0, Z: 2}, Max: Vec3{X: 2, Y: gp.WallHeight, Z: 4}},
			{Min: Vec3{X: 0, Y: 0, Z: 4}, Max: Vec3{X: 2, Y: gp.WallHeight, Z: 6}},
		},
	}
	face := 2 + gp.AgentRadius

	// Holding a diagonal press into the column settles the agent flush
	// against its east face.
	pos := w.Resolve(Vec3{X: 3, Y: 0, Z: 3}, Vec3{X: 2, Y: 0, Z: 3.2})
	require.InDelta(t, face, pos.X, 1e-9)
	require.InDelta(t, 3.2, pos.Z, 1e-9)

	// From the flush position, motion parallel to the column must carry the
	// agent past the seam between its two cells: touching a face is not
	// overlapping it.
	pos = w.Resolve(pos, Vec3{X: face, Y: 0, Z: 4.2})
	assert.InDelta(t, face, pos.X, 1e-9)
	assert.InDelta(t, 4.2, pos.Z, 1e-9, "flush contact must not clamp the open axis at the seam")

	// And it keeps sliding on subsequent ticks.
	pos = w.Resolve(pos, Vec3{X: face, Y: 0, Z: 5.0})
	assert.InDelta(t, 5.0, pos.Z, 1e-9)
}

func TestResolveSlidesFlushAlongWallRow(t *testing.T) {
	t.Parallel()

	gp := config.DefaultGameplay()
	// Mirror of the column case: a two-cell wall row with its seam at x=4,
	// open space to the south.
	w := &CollisionWorld{
		cellSize:    gp.CellSize,
		wallHeight:  gp.WallHeight,
		radius:      gp.AgentRadius,
		agentHeight: gp.AgentHeight,
		maxX:        4 * gp.CellSize,
		maxZ:        3 * gp.CellSize,
		boxes: []Box{
			{Min: Vec3{X: 2, Y: 0, Z: 0}, Max: Vec3{X: 4, Y: gp.WallHeight, Z: 2}},
			{Min: Vec3{X: 4, Y: 0, Z: 0}, Max: Vec3{X: 6, Y: gp.WallHeight, Z: 2}},
		},
	}
	face := 2 + gp.AgentRadius

	pos := w.Resolve(Vec3{X: 3, Y: 0, Z: 3}, Vec3{X: 3.2, Y: 0, Z: 2})
	require.InDelta(t, face, pos.Z, 1e-9)

	pos = w.Resolve(pos, Vec3{X: 4.2, Y: 0, Z: face})
	assert.InDelta(t, 4.2, pos.X, 1e-9, "flush contact must not clamp the open axis at the seam")
	assert.InDelta(t, face, pos.Z, 1e-9)
}

func TestResolveCornerStopsBothAxes(t *testing.T) {
	t.Parallel()

	_, w, gp := testWorld(t)
	from := Vec3{X: 3, Y: 0, Z: 3}

	// Northwest into the corner where the west and north borders meet.
	got := w.Resolve(from, Vec3{X: 1, Y: 0, Z: 1})
	assert.InDelta(t, 2+gp.AgentRadius, got.X, 1e-9)
	assert.InDelta(t, 2+gp.AgentRadius, got.Z, 1e-9)
}

func TestResolveVerticalPassesThrough(t *testing.T) {
	t.Parallel()

	_, w, _ := testWorld(t)
	from := Vec3{X: 3, Y: 0, Z: 3}

	got := w.Resolve(from, Vec3{X: 3, Y: 5, Z: 3})
	assert.Equal(t, 5.0, got.Y, "vertical motion is not the resolver's business")
	assert.Equal(t, 3.0, got.X)
	assert.Equal(t, 3.0, got.Z)
}

func TestResolveAboveWallHeightIgnoresWalls(t *testing.T) {
	t.Parallel()

	_, w, gp := testWorld(t)

	// An agent whose feet are above the wall tops slides over them freely,
	// only the world bounds clamp remain.
	from := Vec3{X: 3, Y: gp.WallHeight + 0.1, Z: 3}
	got := w.Resolve(from, Vec3{X: 1, Y: gp.WallHeight + 0.1, Z: 3})
	assert.InDelta(t, 1.0, got.X, 1e-9)
}

func TestResolveNoMotionNoChange(t *testing.T) {
	t.Parallel()

	_, w, _ := testWorld(t)
	from := Vec3{X: 3, Y: 0, Z: 3}
	assert.Equal(t, from, w.Resolve(from, from))
}

func TestResolveClampsToWorldBounds(t *testing.T) {
	t.Parallel()

	_, w, gp := testWorld(t)
	from := Vec3{X: 3, Y: 0, Z: 3}

	got := w.Resolve(from, Vec3{X: -50, Y: 0, Z: 3})
	assert.GreaterOrEqual(t, got.X, gp.AgentRadius)
}

func TestResolveRandomWalkStaysInCorridors(t *testing.T) {
	t.Parallel()

	g, w, gp := testWorld(t)
	rng := rand.New(rand.NewSource(99))

	pos := Vec3{X: 3, Y: 0, Z: 3}
	step := gp.MoveSpeed * gp.TickInterval.Seconds()
	require.Less(t, step, gp.AgentRadius, "per-tick delta must stay below the agent radius")

	for i := 0; i < 2000; i++ {
		angle := rng.Float64() * 2 * math.Pi
		desired := Vec3{X: pos.X + math.Cos(angle)*step, Y: 0, Z: pos.Z + math.Sin(angle)*step}
		pos = w.Resolve(pos, desired)

		cell := maze.Cell{
			X: int(math.Floor(pos.X / gp.CellSize)),
			Z: int(math.Floor(pos.Z / gp.CellSize)),
		}
		require.True(t, g.IsOpen(cell), "tick %d: agent center %v ended up in wall cell %v", i, pos, cell)
	}
}

func TestRebuildSwapsWalls(t *testing.T) {
	t.Parallel()

	g, w, _ := testWorld(t)
	before := len(w.Boxes())
	assert.Equal(t, len(g.WallCells()), before)

	bigger := maze.Generate(maze.Config{Width: 15, Height: 15, Seed: 5})
	w.Rebuild(bigger)
	assert.Equal(t, len(bigger.WallCells()), len(w.Boxes()))
	assert.InDelta(t, 30.0, w.maxX, 1e-9, "extents follow the new grid")
}

func TestNewCollisionWorldBoxGeometry(t *testing.T) {
	t.Parallel()

	g, w, gp := testWorld(t)
	require.NotEmpty(t, w.Boxes())

	// Every wall cell contributes exactly its footprint, floor to wall top.
	box := w.Boxes()[0]
	assert.Equal(t, 0.0, box.Min.Y)
	assert.Equal(t, gp.WallHeight, box.Max.Y)
	assert.InDelta(t, gp.CellSize, box.Max.X-box.Min.X, 1e-9)
	assert.InDelta(t, gp.CellSize, box.Max.Z-box.Min.Z, 1e-9)
	assert.Equal(t, len(g.WallCells()), len(w.Boxes()))
}
