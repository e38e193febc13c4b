package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tuning overrides gameplay defaults from a yaml file. Fields left at zero
// keep the compiled defaults, so a tuning file only needs the values it
// actually changes.
type Tuning struct {
	CellSize   float64 `yaml:"cell_size"`
	WallHeight float64 `yaml:"wall_height"`

	AgentRadius float64 `yaml:"agent_radius"`
	AgentHeight float64 `yaml:"agent_height"`

	MoveSpeed float64 `yaml:"move_speed"`
	TickMs    int     `yaml:"tick_ms"`

	FloorMarkers    int     `yaml:"floor_markers"`
	WallMarkers     int     `yaml:"wall_markers"`
	WallMarkerRange float64 `yaml:"wall_marker_range"`

	TeleportRingMin int `yaml:"teleport_ring_min"`
	TeleportRingMax int `yaml:"teleport_ring_max"`
}

// Gameplay is the effective parameter set the game server runs with.
type Gameplay struct {
	CellSize   float64
	WallHeight float64

	AgentRadius float64
	AgentHeight float64

	MoveSpeed    float64
	TickInterval time.Duration

	FloorMarkers    int
	WallMarkers     int
	WallMarkerRange float64
	MarkerOffset    float64

	TeleportRingMin int
	TeleportRingMax int
}

// LoadTuning reads a yaml tuning file. An empty path means "no overrides".
func LoadTuning(path string) (Tuning, error) {
	var t Tuning
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// Resolve produces the effective Gameplay, falling back to the compiled
// defaults for every field the tuning leaves at zero.
func (t Tuning) Resolve() Gameplay {
	g := Gameplay{
		CellSize:        CellSize,
		WallHeight:      WallHeight,
		AgentRadius:     AgentRadius,
		AgentHeight:     AgentHeight,
		MoveSpeed:       DefaultMoveSpeed,
		TickInterval:    TickInterval,
		FloorMarkers:    FloorMarkerCapacity,
		WallMarkers:     WallMarkerCapacity,
		WallMarkerRange: WallMarkerMaxRange,
		MarkerOffset:    MarkerSurfaceOffset,
		TeleportRingMin: TeleportRingMin,
		TeleportRingMax: TeleportRingMax,
	}
	if t.CellSize > 0 {
		g.CellSize = t.CellSize
	}
	if t.WallHeight > 0 {
		g.WallHeight = t.WallHeight
	}
	if t.AgentRadius > 0 {
		g.AgentRadius = t.AgentRadius
	}
	if t.AgentHeight > 0 {
		g.AgentHeight = t.AgentHeight
	}
	if t.MoveSpeed > 0 {
		g.MoveSpeed = t.MoveSpeed
	}
	if t.TickMs > 0 {
		g.TickInterval = time.Duration(t.TickMs) * time.Millisecond
	}
	if t.FloorMarkers > 0 {
		g.FloorMarkers = t.FloorMarkers
	}
	if t.WallMarkers > 0 {
		g.WallMarkers = t.WallMarkers
	}
	if t.WallMarkerRange > 0 {
		g.WallMarkerRange = t.WallMarkerRange
	}
	if t.TeleportRingMin > 0 {
		g.TeleportRingMin = t.TeleportRingMin
	}
	if t.TeleportRingMax > 0 {
		g.TeleportRingMax = t.TeleportRingMax
	}
	return g
}

// DefaultGameplay returns the compiled defaults.
func DefaultGameplay() Gameplay {
	return Tuning{}.Resolve()
}
