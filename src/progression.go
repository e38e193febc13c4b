package game

import (
	"github.com/rohanjoshi-fynd/maze-game/config"
	"github.com/rohanjoshi-fynd/maze-game/maze"
)

// LevelSize returns the maze side length for a 1-based level. Sizes grow by
// a fixed step per level and saturate at the maximum: 11, 15, 19, ... 51,
// then 51 forever.
func LevelSize(level int) int {
	if level < 1 {
		level = 1
	}
	size := maze.MinSize + (level-1)*config.LevelGrowthStep
	if size > maze.MaxSize {
		size = maze.MaxSize
	}
	return size
}

// LevelCapacities returns the marker allowances for a level. The allowance
// does not scale with level today; routing it through here keeps the whole
// per-level policy in one place.
func LevelCapacities(gp config.Gameplay, level int) (floorMarkers, wallMarkers int) {
	return gp.FloorMarkers, gp.WallMarkers
}
