package config

import "time"

// World Geometry
// The maze plane is XZ and Y points up; one grid cell covers CellSize x CellSize
// world units. Wall cells extrude from the floor up to WallHeight.
const (
	CellSize   = 2.0 // World units per maze cell side
	WallHeight = 2.5 // Vertical extent of wall bounding volumes

	AgentRadius = 0.35 // Half-extent of the agent collision box on X/Z
	AgentHeight = 1.7  // Vertical extent of the agent collision box
)

// Movement
const (
	DefaultMoveSpeed = 3.2                   // World units per second
	TickInterval     = 50 * time.Millisecond // Game state update interval (20 frames per second)
)

// Maze Sizing
// Level sizes grow linearly from maze.MinSize by this step and saturate at
// maze.MaxSize: 11, 15, 19, ... 51, 51, ...
const LevelGrowthStep = 4

// Markers
const (
	FloorMarkerCapacity = 8    // Floor markers handed out per level
	WallMarkerCapacity  = 4    // Wall markers handed out per level
	WallMarkerMaxRange  = 2.0  // Furthest surface hit a wall marker may be placed on
	MarkerSurfaceOffset = 0.01 // Lift along the surface normal so markers don't z-fight
)

// Teleport ring bounds for the debug teleport-near-exit search, in BFS hops
// from the exit cell.
const (
	TeleportRingMin = 3
	TeleportRingMax = 4
)

// Torch decor: at most one torch per this many eligible wall cells.
const TorchSpacing = 6
