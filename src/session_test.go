package game

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohanjoshi-fynd/maze-game/config"
	"github.com/rohanjoshi-fynd/maze-game/maze"
	"github.com/rohanjoshi-fynd/maze-game/pathfinding"
)

type recordedCompletion struct {
	runID string
	level int
	grid  *maze.Grid
	dur   time.Duration
}

type recordedEnd struct {
	runID      string
	levelsDone int
}

// fakeRecorder captures recorder calls for assertions. Shared with the
// server tests.
type fakeRecorder struct {
	started     []string
	completions []recordedCompletion
	ended       []recordedEnd
}

func (f *fakeRecorder) RunStarted(runID string, _ time.Time) {
	f.started = append(f.started, runID)
}

func (f *fakeRecorder) LevelCompleted(runID string, level int, g *maze.Grid, d time.Duration) {
	f.completions = append(f.completions, recordedCompletion{runID, level, g, d})
}

func (f *fakeRecorder) RunEnded(runID string, _ time.Time, levelsDone int) {
	f.ended = append(f.ended, recordedEnd{runID, levelsDone})
}

func TestNewSeededRunSpawnsAtStart(t *testing.T) {
	t.Parallel()

	gp := config.DefaultGameplay()
	r := NewSeededRun("run-1", gp, nil, 99)

	assert.Equal(t, 1, r.Level)
	assert.Equal(t, 11, r.Grid().Width())
	assert.Equal(t, 11, r.Grid().Height())
	assert.Equal(t, r.Grid().Start(), r.CurrentCell())
	assert.Equal(t, Vec3{X: 3, Y: 0, Z: 3}, r.Pos(), "centered in the start cell")
	assert.Equal(t, gp.FloorMarkers, r.inv.FloorLeft())
	assert.Equal(t, gp.WallMarkers, r.inv.WallLeft())
}

func TestSeededRunsRepeat(t *testing.T) {
	t.Parallel()

	gp := config.DefaultGameplay()
	a := NewSeededRun("a", gp, nil, 1234)
	b := NewSeededRun("b", gp, nil, 1234)

	assert.Equal(t, a.Grid().Rows(), b.Grid().Rows())

	posA, err := a.TeleportNearExit()
	require.NoError(t, err)
	posB, err := b.TeleportNearExit()
	require.NoError(t, err)
	assert.Equal(t, posA, posB, "same seed draws the same respawn cell")
}

func TestSetIntentClamps(t *testing.T) {
	t.Parallel()

	r := NewSeededRun("run-1", config.DefaultGameplay(), nil, 5)
	r.SetIntent(5, -9)
	assert.Equal(t, 1.0, r.intentX)
	assert.Equal(t, -1.0, r.intentZ)
}

func TestApplyIntentDiagonalIsNotFaster(t *testing.T) {
	t.Parallel()

	gp := config.DefaultGameplay()
	r := NewSeededRun("run-1", gp, nil, 7)
	before := r.Pos()

	r.SetIntent(1, 1)
	r.applyIntent(gp.TickInterval)

	moved := math.Hypot(r.Pos().X-before.X, r.Pos().Z-before.Z)
	step := gp.MoveSpeed * gp.TickInterval.Seconds()
	assert.InDelta(t, step, moved, 1e-9, "the intent vector is normalized")
}

func TestApplyIntentZeroIntentHoldsStill(t *testing.T) {
	t.Parallel()

	r := NewSeededRun("run-1", config.DefaultGameplay(), nil, 7)
	before := r.Pos()
	cleared := r.applyIntent(config.TickInterval)
	assert.False(t, cleared)
	assert.Equal(t, before, r.Pos())
	assert.Equal(t, 0, r.steps)
}

func TestApplyIntentTracksHeadingAndSteps(t *testing.T) {
	t.Parallel()

	gp := config.DefaultGameplay()
	r := NewSeededRun("run-1", gp, nil, 42)
	assert.Zero(t, r.Heading())
	assert.Zero(t, r.Steps())

	// One eastward tick always fits inside the spawn cell.
	r.SetIntent(1, 0)
	r.applyIntent(gp.TickInterval)
	assert.InDelta(t, math.Pi/2, r.Heading(), 1e-9)
	assert.Equal(t, 1, r.Steps())

	r.SetIntent(0, 0)
	r.applyIntent(gp.TickInterval)
	assert.InDelta(t, math.Pi/2, r.Heading(), 1e-9, "heading persists while idle")
	assert.Equal(t, 1, r.Steps())
}

func TestAgentCanWalkTheFirstHintStep(t *testing.T) {
	t.Parallel()

	gp := config.DefaultGameplay()
	r := NewSeededRun("run-1", gp, nil, 321)

	path, err := r.HintPath()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(path), 2)
	target := path[1]

	// Walk toward the neighboring corridor cell; a handful of ticks must be
	// enough to cross one cell boundary.
	for i := 0; i < 100 && r.CurrentCell() != target; i++ {
		center := r.cellCenter(target)
		dx := center.X - r.Pos().X
		dz := center.Z - r.Pos().Z
		r.SetIntent(dx, dz)
		r.applyIntent(gp.TickInterval)
	}
	assert.Equal(t, target, r.CurrentCell())
}

func TestHintPathEndpoints(t *testing.T) {
	t.Parallel()

	r := NewSeededRun("run-1", config.DefaultGameplay(), nil, 11)
	path, err := r.HintPath()
	require.NoError(t, err)

	assert.Equal(t, r.CurrentCell(), path[0])
	assert.Equal(t, r.Grid().Exit(), path[len(path)-1])
	assert.Equal(t, 1, r.hintsUsed)
}

func TestHintPathOnExitCell(t *testing.T) {
	t.Parallel()

	r := NewSeededRun("run-1", config.DefaultGameplay(), nil, 11)
	r.pos = r.cellCenter(r.Grid().Exit())

	_, err := r.HintPath()
	assert.ErrorIs(t, err, ErrPathUnavailable)
	assert.Equal(t, 0, r.hintsUsed, "a failed hint is not counted")
}

func TestReachingExitAdvancesLevel(t *testing.T) {
	t.Parallel()

	gp := config.DefaultGameplay()
	rec := &fakeRecorder{}
	r := NewSeededRun("run-1", gp, rec, 55)
	firstGrid := r.Grid()

	_, err := r.PlaceFloorMarker()
	require.NoError(t, err)

	r.pos = r.cellCenter(firstGrid.Exit())
	cleared := r.applyIntent(gp.TickInterval)

	assert.True(t, cleared)
	assert.Equal(t, 2, r.Level)
	assert.Equal(t, LevelSize(2), r.Grid().Width())
	assert.NotSame(t, firstGrid, r.Grid())
	assert.Equal(t, r.Grid().Start(), r.CurrentCell(), "respawned at the new start")
	assert.Equal(t, gp.FloorMarkers, r.inv.FloorLeft(), "marker pools refill per level")
	assert.Empty(t, r.inv.Placed())

	require.Len(t, rec.completions, 1)
	assert.Equal(t, "run-1", rec.completions[0].runID)
	assert.Equal(t, 1, rec.completions[0].level)
	assert.Same(t, firstGrid, rec.completions[0].grid)
	assert.GreaterOrEqual(t, rec.completions[0].dur, time.Duration(0))
}

func TestTeleportNearExitLandsOnRing(t *testing.T) {
	t.Parallel()

	gp := config.DefaultGameplay()
	r := NewSeededRun("run-1", gp, nil, 77)
	r.SetIntent(1, 0)

	pos, err := r.TeleportNearExit()
	require.NoError(t, err)
	assert.Equal(t, pos, r.Pos())
	assert.Equal(t, 0.0, r.intentX, "teleport clears stale intent")

	dist := pathfinding.Distances(r.Grid(), r.Grid().Exit(), -1)
	d, ok := dist[r.CurrentCell()]
	require.True(t, ok, "landed on a reachable open cell")
	assert.GreaterOrEqual(t, d, gp.TeleportRingMin)
	assert.LessOrEqual(t, d, gp.TeleportRingMax)
}

func TestRunMarkerPlacement(t *testing.T) {
	t.Parallel()

	r := NewSeededRun("run-1", config.DefaultGameplay(), nil, 13)

	m, err := r.PlaceFloorMarker()
	require.NoError(t, err)
	assert.Equal(t, MarkerKindFloor, m.Kind)
	assert.Equal(t, 1, m.Level)
	assert.InDelta(t, r.Pos().X, m.Pos.X, 1e-9)
	assert.InDelta(t, r.Pos().Z, m.Pos.Z, 1e-9)

	_, err = r.PlaceWallMarker(nil)
	assert.ErrorIs(t, err, ErrNoSurfaceHit)

	w, err := r.PlaceWallMarker(&SurfaceHit{
		Point:    Vec3{X: 2, Y: 1, Z: 3},
		Normal:   Vec3{X: 1},
		Distance: 1.0,
	})
	require.NoError(t, err)
	assert.Equal(t, MarkerKindWall, w.Kind)
	assert.Equal(t, 1, w.Level)
}
