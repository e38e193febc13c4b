package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/rohanjoshi-fynd/maze-game/config"
	"github.com/rohanjoshi-fynd/maze-game/maze"
	"github.com/rohanjoshi-fynd/maze-game/pathfinding"
)

// Run is one client's live game: the current maze, its collision world, the
// marker allowance, and the agent position. A Run does not lock itself; the
// GameServer serializes all access through its mutex.
type Run struct {
	ID    string
	Level int

	grid  *maze.Grid
	world *CollisionWorld
	inv   *MarkerInventory

	pos              Vec3
	heading          float64
	intentX, intentZ float64

	gameplay config.Gameplay
	rng      *rand.Rand
	recorder RunRecorder

	startedAt      time.Time
	levelStartedAt time.Time
	steps          int
	hintsUsed      int
}

// NewRun starts a fresh run at level 1. The recorder may be nil.
func NewRun(id string, gp config.Gameplay, rec RunRecorder) *Run {
	return NewSeededRun(id, gp, rec, time.Now().UnixNano())
}

// NewSeededRun starts a run whose maze sequence and teleport choices are
// reproducible. The server seeds from the clock; tests and replay tooling
// pass a fixed seed.
func NewSeededRun(id string, gp config.Gameplay, rec RunRecorder, seed int64) *Run {
	r := &Run{
		ID:        id,
		Level:     1,
		gameplay:  gp,
		rng:       rand.New(rand.NewSource(seed)),
		recorder:  rec,
		startedAt: time.Now(),
	}
	r.buildLevel()
	return r
}

// buildLevel generates the maze for the current level and resets everything
// that is scoped to a level: collision world, marker pools, agent position,
// intent, counters.
func (r *Run) buildLevel() {
	size := LevelSize(r.Level)
	r.grid = maze.Generate(maze.Config{Width: size, Height: size, Seed: r.rng.Int63()})

	if r.world == nil {
		r.world = NewCollisionWorld(r.grid, r.gameplay)
	} else {
		r.world.Rebuild(r.grid)
	}

	floorCap, wallCap := LevelCapacities(r.gameplay, r.Level)
	if r.inv == nil || floorCap != r.inv.floorCap || wallCap != r.inv.wallCap {
		r.inv = NewMarkerInventory(floorCap, wallCap, r.gameplay.WallMarkerRange, r.gameplay.MarkerOffset)
	} else {
		r.inv.Reset()
	}

	r.pos = r.cellCenter(r.grid.Start())
	r.heading = 0
	r.intentX, r.intentZ = 0, 0
	r.steps = 0
	r.hintsUsed = 0
	r.levelStartedAt = time.Now()
}

// SetIntent stores the client's movement intent on the maze plane.
// Components are clamped to [-1,1]; the vector is normalized at integration
// time so diagonal presses don't move faster.
func (r *Run) SetIntent(ix, iz float64) {
	r.intentX = clamp(ix, -1, 1)
	r.intentZ = clamp(iz, -1, 1)
}

// applyIntent advances the agent one tick and reports whether the level was
// cleared. Reaching the exit cell advances the run to the next level.
func (r *Run) applyIntent(dt time.Duration) bool {
	if r.intentX != 0 || r.intentZ != 0 {
		length := math.Hypot(r.intentX, r.intentZ)
		dirX := r.intentX / length
		dirZ := r.intentZ / length
		step := r.gameplay.MoveSpeed * dt.Seconds()
		r.heading = math.Atan2(dirX, dirZ)

		desired := Vec3{X: r.pos.X + dirX*step, Y: r.pos.Y, Z: r.pos.Z + dirZ*step}
		next := r.world.Resolve(r.pos, desired)
		if next != r.pos {
			r.steps++
		}
		r.pos = next
	}

	if r.CurrentCell() == r.grid.Exit() {
		r.advanceLevel()
		return true
	}
	return false
}

// advanceLevel records the completion and rebuilds the run for the next
// level.
func (r *Run) advanceLevel() {
	if r.recorder != nil {
		r.recorder.LevelCompleted(r.ID, r.Level, r.grid, time.Since(r.levelStartedAt))
	}
	r.Level++
	r.buildLevel()
}

// HintPath returns the shortest corridor path from the agent's current cell
// to the exit. ErrPathUnavailable covers standing on the exit as well as the
// never-expected unreachable case.
func (r *Run) HintPath() ([]maze.Cell, error) {
	path := pathfinding.ShortestPath(r.grid, r.CurrentCell(), r.grid.Exit())
	if len(path) < 2 {
		return nil, ErrPathUnavailable
	}
	r.hintsUsed++
	return path, nil
}

// TeleportNearExit respawns the agent on a uniformly chosen cell of the
// distance ring around the exit. This only serves the debug REST surface;
// no client message reaches it.
func (r *Run) TeleportNearExit() (Vec3, error) {
	ring := pathfinding.RingCandidates(r.grid, r.grid.Exit(),
		r.gameplay.TeleportRingMin, r.gameplay.TeleportRingMax)
	if len(ring) == 0 {
		return Vec3{}, ErrNoRespawnCandidates
	}
	cell := ring[r.rng.Intn(len(ring))]
	r.pos = r.cellCenter(cell)
	r.intentX, r.intentZ = 0, 0
	return r.pos, nil
}

// PlaceFloorMarker drops a floor marker at the agent's feet.
func (r *Run) PlaceFloorMarker() (Marker, error) {
	return r.inv.PlaceFloor(r.pos, r.Level)
}

// PlaceWallMarker places a wall marker on the reported surface hit.
func (r *Run) PlaceWallMarker(hit *SurfaceHit) (Marker, error) {
	return r.inv.PlaceWall(hit, r.Level)
}

// Pos returns the agent's world position.
func (r *Run) Pos() Vec3 { return r.pos }

// Heading returns the yaw the agent last moved along, zero until it moves.
// Same convention as marker yaw: 0 faces +Z, pi/2 faces +X.
func (r *Run) Heading() float64 { return r.heading }

// Steps counts ticks on the current level where the agent actually moved.
func (r *Run) Steps() int { return r.steps }

// HintsUsed counts hint requests served on the current level.
func (r *Run) HintsUsed() int { return r.hintsUsed }

// Grid returns the current level's maze.
func (r *Run) Grid() *maze.Grid { return r.grid }

// CurrentCell returns the grid cell under the agent's feet.
func (r *Run) CurrentCell() maze.Cell {
	return maze.Cell{
		X: int(math.Floor(r.pos.X / r.gameplay.CellSize)),
		Z: int(math.Floor(r.pos.Z / r.gameplay.CellSize)),
	}
}

func (r *Run) cellCenter(c maze.Cell) Vec3 {
	half := r.gameplay.CellSize / 2
	return Vec3{
		X: float64(c.X)*r.gameplay.CellSize + half,
		Y: 0,
		Z: float64(c.Z)*r.gameplay.CellSize + half,
	}
}
