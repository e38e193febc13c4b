package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohanjoshi-fynd/maze-game/config"
)

func testInventory() *MarkerInventory {
	gp := config.DefaultGameplay()
	return NewMarkerInventory(gp.FloorMarkers, gp.WallMarkers, gp.WallMarkerRange, gp.MarkerOffset)
}

func sideHit(distance float64) *SurfaceHit {
	return &SurfaceHit{
		Point:    Vec3{X: 2.0, Y: 1.0, Z: 3.0},
		Normal:   Vec3{X: 1, Y: 0, Z: 0},
		Distance: distance,
	}
}

func TestPlaceFloorUntilExhausted(t *testing.T) {
	t.Parallel()

	inv := testInventory()
	feet := Vec3{X: 3, Y: 0, Z: 3}

	for i := 0; i < config.FloorMarkerCapacity; i++ {
		m, err := inv.PlaceFloor(feet, 1)
		require.NoError(t, err, "placement %d within the allowance", i+1)
		assert.NotEmpty(t, m.ID)
		assert.Equal(t, config.FloorMarkerCapacity-i-1, inv.FloorLeft())
	}

	_, err := inv.PlaceFloor(feet, 1)
	assert.ErrorIs(t, err, ErrFloorMarkersExhausted)
	assert.Equal(t, 0, inv.FloorLeft())
	assert.Len(t, inv.Placed(), config.FloorMarkerCapacity)
}

func TestPlaceFloorPose(t *testing.T) {
	t.Parallel()

	inv := testInventory()
	m, err := inv.PlaceFloor(Vec3{X: 3, Y: 0, Z: 5}, 2)
	require.NoError(t, err)

	assert.Equal(t, MarkerKindFloor, m.Kind)
	assert.Equal(t, 2, m.Level)
	assert.InDelta(t, 3.0, m.Pos.X, 1e-9)
	assert.InDelta(t, config.MarkerSurfaceOffset, m.Pos.Y, 1e-9, "lifted off the floor")
	assert.InDelta(t, 5.0, m.Pos.Z, 1e-9)
	assert.InDelta(t, -math.Pi/2, m.Rot.X, 1e-9, "lies flat")
}

func TestPlaceWallOutOfRange(t *testing.T) {
	t.Parallel()

	inv := testInventory()
	_, err := inv.PlaceWall(sideHit(2.5), 1)
	assert.ErrorIs(t, err, ErrOutOfRange, "2.5 is past the 2.0 reach")
	assert.Equal(t, config.WallMarkerCapacity, inv.WallLeft(), "failed placement costs nothing")
}

func TestPlaceWallNoSurface(t *testing.T) {
	t.Parallel()

	inv := testInventory()

	_, err := inv.PlaceWall(nil, 1)
	assert.ErrorIs(t, err, ErrNoSurfaceHit)

	_, err = inv.PlaceWall(&SurfaceHit{Normal: Vec3{}, Distance: 1}, 1)
	assert.ErrorIs(t, err, ErrNoSurfaceHit, "degenerate normal")

	_, err = inv.PlaceWall(&SurfaceHit{Normal: Vec3{X: 1}, Distance: -0.5}, 1)
	assert.ErrorIs(t, err, ErrNoSurfaceHit, "negative distance")

	assert.Equal(t, config.WallMarkerCapacity, inv.WallLeft())
}

func TestPlaceWallUntilExhausted(t *testing.T) {
	t.Parallel()

	inv := testInventory()
	for i := 0; i < config.WallMarkerCapacity; i++ {
		_, err := inv.PlaceWall(sideHit(1.5), 1)
		require.NoError(t, err)
	}

	_, err := inv.PlaceWall(sideHit(1.5), 1)
	assert.ErrorIs(t, err, ErrWallMarkersExhausted)
}

func TestPlaceWallPoses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		normal Vec3
		rot    Vec3
	}{
		{"east face", Vec3{X: 1}, Vec3{Y: math.Pi / 2}},
		{"west face", Vec3{X: -1}, Vec3{Y: -math.Pi / 2}},
		{"south face", Vec3{Z: 1}, Vec3{Y: 0}},
		{"north face", Vec3{Z: -1}, Vec3{Y: math.Pi}},
		{"wall top", Vec3{Y: 1}, Vec3{X: -math.Pi / 2}},
		{"overhang", Vec3{Y: -1}, Vec3{X: math.Pi / 2}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			inv := testInventory()
			hit := &SurfaceHit{Point: Vec3{X: 4, Y: 1, Z: 6}, Normal: tt.normal, Distance: 1.0}
			m, err := inv.PlaceWall(hit, 3)
			require.NoError(t, err)

			assert.Equal(t, MarkerKindWall, m.Kind)
			assert.InDelta(t, tt.rot.X, m.Rot.X, 1e-9)
			if tt.name == "north face" {
				// atan2(0,-1) is pi or -pi depending on signed zero; accept magnitude.
				assert.InDelta(t, math.Pi, math.Abs(m.Rot.Y), 1e-9)
			} else {
				assert.InDelta(t, tt.rot.Y, m.Rot.Y, 1e-9)
			}

			assert.InDelta(t, hit.Point.X+tt.normal.X*config.MarkerSurfaceOffset, m.Pos.X, 1e-9)
			assert.InDelta(t, hit.Point.Y+tt.normal.Y*config.MarkerSurfaceOffset, m.Pos.Y, 1e-9)
			assert.InDelta(t, hit.Point.Z+tt.normal.Z*config.MarkerSurfaceOffset, m.Pos.Z, 1e-9)
		})
	}
}

func TestPlaceWallNormalizesNormal(t *testing.T) {
	t.Parallel()

	inv := testInventory()
	hit := &SurfaceHit{Point: Vec3{X: 1, Y: 1, Z: 1}, Normal: Vec3{Z: 4}, Distance: 1.0}
	m, err := inv.PlaceWall(hit, 1)
	require.NoError(t, err)

	assert.InDelta(t, 1.0+config.MarkerSurfaceOffset, m.Pos.Z, 1e-9, "offset uses the unit normal")
	assert.InDelta(t, 0.0, m.Rot.Y, 1e-9)
}

func TestResetRefillsPools(t *testing.T) {
	t.Parallel()

	inv := testInventory()
	feet := Vec3{X: 3, Y: 0, Z: 3}
	_, err := inv.PlaceFloor(feet, 1)
	require.NoError(t, err)
	_, err = inv.PlaceWall(sideHit(1.0), 1)
	require.NoError(t, err)

	inv.Reset()
	assert.Equal(t, config.FloorMarkerCapacity, inv.FloorLeft())
	assert.Equal(t, config.WallMarkerCapacity, inv.WallLeft())
	assert.Empty(t, inv.Placed())
}
