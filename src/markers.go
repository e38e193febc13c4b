package game

import (
	"math"

	"github.com/google/uuid"
)

// MarkerInventory hands out the per-level marker allowance: one capped pool
// for floor markers, one for wall markers. Pools only refill through Reset,
// which the session calls when a level is cleared.
type MarkerInventory struct {
	floorCap, wallCap   int
	floorLeft, wallLeft int

	maxRange float64 // furthest surface hit a wall marker accepts
	offset   float64 // lift along the surface normal against z-fighting

	placed []Marker
}

// NewMarkerInventory builds a full inventory.
func NewMarkerInventory(floorCap, wallCap int, maxRange, surfaceOffset float64) *MarkerInventory {
	return &MarkerInventory{
		floorCap:  floorCap,
		wallCap:   wallCap,
		floorLeft: floorCap,
		wallLeft:  wallCap,
		maxRange:  maxRange,
		offset:    surfaceOffset,
	}
}

// PlaceFloor drops a marker flat on the floor at the agent's feet. Only the
// pool gates it.
func (inv *MarkerInventory) PlaceFloor(feet Vec3, level int) (Marker, error) {
	if inv.floorLeft == 0 {
		return Marker{}, ErrFloorMarkersExhausted
	}
	m := Marker{
		ID:    uuid.New().String(),
		Kind:  MarkerKindFloor,
		Level: level,
		Pos:   Vec3{X: feet.X, Y: inv.offset, Z: feet.Z},
		Rot:   Vec3{X: -math.Pi / 2},
	}
	inv.floorLeft--
	inv.placed = append(inv.placed, m)
	return m, nil
}

// PlaceWall puts a marker on a surface the client's raycast hit. The hit is
// validated before the pool is touched: a miss or degenerate normal is
// ErrNoSurfaceHit, a hit beyond the configured reach is ErrOutOfRange.
func (inv *MarkerInventory) PlaceWall(hit *SurfaceHit, level int) (Marker, error) {
	if hit == nil || hit.Distance < 0 {
		return Marker{}, ErrNoSurfaceHit
	}
	n, ok := normalize(hit.Normal)
	if !ok {
		return Marker{}, ErrNoSurfaceHit
	}
	if hit.Distance > inv.maxRange {
		return Marker{}, ErrOutOfRange
	}
	if inv.wallLeft == 0 {
		return Marker{}, ErrWallMarkersExhausted
	}
	m := Marker{
		ID:    uuid.New().String(),
		Kind:  MarkerKindWall,
		Level: level,
		Pos: Vec3{
			X: hit.Point.X + n.X*inv.offset,
			Y: hit.Point.Y + n.Y*inv.offset,
			Z: hit.Point.Z + n.Z*inv.offset,
		},
		Rot: markerRotation(n),
	}
	inv.wallLeft--
	inv.placed = append(inv.placed, m)
	return m, nil
}

// markerRotation derives the marker pose from the surface normal: lie flat
// on floor-like and ceiling-like surfaces, stand upright facing away from
// side walls.
func markerRotation(n Vec3) Vec3 {
	if n.Y > 0.5 {
		return Vec3{X: -math.Pi / 2}
	}
	if n.Y < -0.5 {
		return Vec3{X: math.Pi / 2}
	}
	return Vec3{Y: math.Atan2(n.X, n.Z)}
}

// Reset refills both pools and clears the placed list.
func (inv *MarkerInventory) Reset() {
	inv.floorLeft = inv.floorCap
	inv.wallLeft = inv.wallCap
	inv.placed = nil
}

// FloorLeft returns the remaining floor marker allowance.
func (inv *MarkerInventory) FloorLeft() int { return inv.floorLeft }

// WallLeft returns the remaining wall marker allowance.
func (inv *MarkerInventory) WallLeft() int { return inv.wallLeft }

// Placed returns a copy of the markers placed since the last reset.
func (inv *MarkerInventory) Placed() []Marker {
	out := make([]Marker, len(inv.placed))
	copy(out, inv.placed)
	return out
}

func normalize(v Vec3) (Vec3, bool) {
	length := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if length < 1e-9 {
		return Vec3{}, false
	}
	return Vec3{X: v.X / length, Y: v.Y / length, Z: v.Z / length}, true
}
