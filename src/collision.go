package game

import (
	"github.com/rohanjoshi-fynd/maze-game/config"
	"github.com/rohanjoshi-fynd/maze-game/maze"
)

// CollisionWorld resolves agent movement against the maze's wall volumes.
// Every wall cell contributes one box spanning the cell footprint from the
// floor up to the wall height. The world is rebuilt wholesale when the level
// changes and is never mutated in between.
type CollisionWorld struct {
	boxes []Box

	maxX, maxZ  float64 // world extents; minimum is 0 on both axes
	cellSize    float64
	wallHeight  float64
	radius      float64 // agent half-extent on X/Z
	agentHeight float64
}

// NewCollisionWorld builds the wall volumes for a grid.
func NewCollisionWorld(g *maze.Grid, gp config.Gameplay) *CollisionWorld {
	w := &CollisionWorld{
		cellSize:    gp.CellSize,
		wallHeight:  gp.WallHeight,
		radius:      gp.AgentRadius,
		agentHeight: gp.AgentHeight,
	}
	w.Rebuild(g)
	return w
}

// Rebuild replaces every wall volume with the given grid's walls.
func (w *CollisionWorld) Rebuild(g *maze.Grid) {
	w.maxX = float64(g.Width()) * w.cellSize
	w.maxZ = float64(g.Height()) * w.cellSize

	walls := g.WallCells()
	w.boxes = make([]Box, 0, len(walls))
	for _, c := range walls {
		w.boxes = append(w.boxes, Box{
			Min: Vec3{X: float64(c.X) * w.cellSize, Y: 0, Z: float64(c.Z) * w.cellSize},
			Max: Vec3{X: float64(c.X+1) * w.cellSize, Y: w.wallHeight, Z: float64(c.Z+1) * w.cellSize},
		})
	}
}

// Boxes returns the wall volumes. The caller must not mutate the slice.
func (w *CollisionWorld) Boxes() []Box { return w.boxes }

// Resolve moves the agent from one position toward another, stopping each
// horizontal axis at the first wall face it would cross: X is resolved
// first, then Z from the already-adjusted X. Blocking one axis leaves the
// other free, which is what makes diagonal presses slide along walls. The
// vertical component passes through untouched.
//
// Resolving per axis against face boundaries cannot fail; in the worst case
// the agent stays where it was. Overshooting on a single axis cannot tunnel:
// any crossing of a near face clamps there regardless of delta size. The
// accepted hole is diagonal: the X pass reads the pre-move Z and the Z pass
// the post-move X, so one delta large enough to clear a box on both axes
// cuts its corner. Tick-rate-bounded speeds keep deltas far below that.
func (w *CollisionWorld) Resolve(from, to Vec3) Vec3 {
	deltaX := to.X - from.X
	deltaZ := to.Z - from.Z

	newX := clamp(to.X, w.radius, w.maxX-w.radius)
	if deltaX != 0 {
		newX = w.resolveAxisX(from.X, from.Z, newX, deltaX, from.Y)
	}

	newZ := clamp(to.Z, w.radius, w.maxZ-w.radius)
	if deltaZ != 0 {
		newZ = w.resolveAxisZ(newX, from.Z, newZ, deltaZ, from.Y)
	}

	return Vec3{X: newX, Y: to.Y, Z: newZ}
}

// resolveAxisX stops eastward/westward motion at wall faces whose Z band and
// height the agent overlaps.
func (w *CollisionWorld) resolveAxisX(oldX, oldZ, proposedX, deltaX, y float64) float64 {
	newX := proposedX
	for _, box := range w.boxes {
		if y >= box.Max.Y || y+w.agentHeight <= box.Min.Y {
			continue
		}
		minZ := box.Min.Z - w.radius
		maxZ := box.Max.Z + w.radius
		// Flush contact with a side face is not overlap.
		if oldZ <= minZ || oldZ >= maxZ {
			continue
		}

		if deltaX > 0 {
			boundary := box.Min.X - w.radius
			if oldX <= boundary && newX > boundary {
				newX = boundary
			}
		} else {
			boundary := box.Max.X + w.radius
			if oldX >= boundary && newX < boundary {
				newX = boundary
			}
		}
	}
	return clamp(newX, w.radius, w.maxX-w.radius)
}

// resolveAxisZ stops northward/southward motion, reading the X band from the
// position the X pass already settled on.
func (w *CollisionWorld) resolveAxisZ(currX, oldZ, proposedZ, deltaZ, y float64) float64 {
	newZ := proposedZ
	for _, box := range w.boxes {
		if y >= box.Max.Y || y+w.agentHeight <= box.Min.Y {
			continue
		}
		minX := box.Min.X - w.radius
		maxX := box.Max.X + w.radius
		if currX <= minX || currX >= maxX {
			continue
		}

		if deltaZ > 0 {
			boundary := box.Min.Z - w.radius
			if oldZ <= boundary && newZ > boundary {
				newZ = boundary
			}
		} else {
			boundary := box.Max.Z + w.radius
			if oldZ >= boundary && newZ < boundary {
				newZ = boundary
			}
		}
	}
	return clamp(newZ, w.radius, w.maxZ-w.radius)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
