package game

import (
	"encoding/json"
	"errors"

	"github.com/rohanjoshi-fynd/maze-game/maze"
)

// Every websocket frame is a {type, payload} envelope in both directions.

// Client -> server message types.
const (
	TypeMove             = "move"
	TypeHint             = "hint"
	TypePlaceFloorMarker = "place_floor_marker"
	TypePlaceWallMarker  = "place_wall_marker"
)

// Server -> client message types.
const (
	TypeInit          = "init"
	TypeState         = "state"
	TypeHintPath      = "hint_path"
	TypeMarkerPlaced  = "marker_placed"
	TypeLevelComplete = "level_complete"
	TypeReject        = "reject"
)

// Reject codes carried on the wire.
const (
	CodeBadRequest            = "E_BAD_REQUEST"
	CodeFloorMarkersExhausted = "E_FLOOR_MARKERS_EXHAUSTED"
	CodeWallMarkersExhausted  = "E_WALL_MARKERS_EXHAUSTED"
	CodeNoSurfaceHit          = "E_NO_SURFACE_HIT"
	CodeOutOfRange            = "E_OUT_OF_RANGE"
	CodePathUnavailable       = "E_PATH_UNAVAILABLE"
	CodeNoRespawnCandidates   = "E_NO_RESPAWN_CANDIDATES"
	CodeInternal              = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	CodeBadRequest:            {},
	CodeFloorMarkersExhausted: {},
	CodeWallMarkersExhausted:  {},
	CodeNoSurfaceHit:          {},
	CodeOutOfRange:            {},
	CodePathUnavailable:       {},
	CodeNoRespawnCandidates:   {},
	CodeInternal:              {},
}

// IsKnownCode reports whether a reject code is part of the protocol. The
// empty code is allowed; it means "no error".
func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}

// RejectCodeFor translates a rule-layer error into its wire code.
func RejectCodeFor(err error) string {
	switch {
	case errors.Is(err, ErrFloorMarkersExhausted):
		return CodeFloorMarkersExhausted
	case errors.Is(err, ErrWallMarkersExhausted):
		return CodeWallMarkersExhausted
	case errors.Is(err, ErrNoSurfaceHit):
		return CodeNoSurfaceHit
	case errors.Is(err, ErrOutOfRange):
		return CodeOutOfRange
	case errors.Is(err, ErrPathUnavailable):
		return CodePathUnavailable
	case errors.Is(err, ErrNoRespawnCandidates):
		return CodeNoRespawnCandidates
	default:
		return CodeInternal
	}
}

// envelope routes an incoming frame by type before the payload is decoded.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload is the client's movement intent on the maze plane.
type MovePayload struct {
	IX float64 `json:"ix"`
	IZ float64 `json:"iz"`
}

// PlaceWallMarkerPayload carries the client raycast result. Hit false means
// the ray left the world without touching anything.
type PlaceWallMarkerPayload struct {
	Hit      bool    `json:"hit"`
	Point    Vec3    `json:"point"`
	Normal   Vec3    `json:"normal"`
	Distance float64 `json:"distance"`
}

// LevelPayload describes one level wholesale. It rides on init and inside
// level_complete; the client rebuilds its scene from it.
type LevelPayload struct {
	RunID string `json:"runId"`
	Level int    `json:"level"`

	GridW int                `json:"gridW"`
	GridH int                `json:"gridH"`
	Cells [][]maze.CellState `json:"cells"`
	Seed  int64              `json:"seed"`

	Start maze.Cell `json:"start"`
	Exit  maze.Cell `json:"exit"`
	Spawn Vec3      `json:"spawn"`

	CellSize    float64 `json:"cellSize"`
	WallHeight  float64 `json:"wallHeight"`
	AgentRadius float64 `json:"agentRadius"`
	MoveSpeed   float64 `json:"moveSpeed"`
	TickMs      int     `json:"tickMs"`

	FloorMarkersLeft int      `json:"floorMarkersLeft"`
	WallMarkersLeft  int      `json:"wallMarkersLeft"`
	WallMarkerRange  float64  `json:"wallMarkerRange"`
	Markers          []Marker `json:"markers"`

	Torches []maze.Cell `json:"torches"`
}

// StatePayload is the per-tick frame.
type StatePayload struct {
	Pos              Vec3      `json:"pos"`
	Heading          float64   `json:"heading"`
	Cell             maze.Cell `json:"cell"`
	Level            int       `json:"level"`
	Steps            int       `json:"steps"`
	FloorMarkersLeft int       `json:"floorMarkersLeft"`
	WallMarkersLeft  int       `json:"wallMarkersLeft"`
}

// HintPathPayload lists the cells of the shortest path to the exit,
// both endpoints included.
type HintPathPayload struct {
	Cells []maze.Cell `json:"cells"`
}

// MarkerPlacedPayload confirms a placement and reports what is left.
type MarkerPlacedPayload struct {
	Marker           Marker `json:"marker"`
	FloorMarkersLeft int    `json:"floorMarkersLeft"`
	WallMarkersLeft  int    `json:"wallMarkersLeft"`
}

// LevelCompletePayload announces a cleared level and carries the next one.
type LevelCompletePayload struct {
	CompletedLevel int          `json:"completedLevel"`
	DurationMs     int64        `json:"durationMs"`
	Next           LevelPayload `json:"next"`
}

// RejectPayload is the error reply to a client message.
type RejectPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// marshalEnvelope wraps a payload in the wire envelope.
func marshalEnvelope(msgType string, payload interface{}) ([]byte, error) {
	return json.Marshal(map[string]interface{}{"type": msgType, "payload": payload})
}
