package game

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rohanjoshi-fynd/maze-game/config"
	"github.com/rohanjoshi-fynd/maze-game/maze"
)

// 1. Data Structures & Interfaces

// Vec3 is a world-space vector. The maze lies on the XZ plane and Y points
// up; vertical motion passes through the game untouched.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Box is an axis-aligned bounding volume.
type Box struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// Marker kinds as they travel on the wire.
const (
	MarkerKindFloor = "floor"
	MarkerKindWall  = "wall"
)

// Marker is one placed breadcrumb. Pos already includes the surface offset
// and Rot is a euler rotation the client applies verbatim.
type Marker struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Level int    `json:"level"`
	Pos   Vec3   `json:"pos"`
	Rot   Vec3   `json:"rot"`
}

// SurfaceHit is the client-reported raycast hit a wall marker is placed on.
// The server never re-traces the ray; it validates range and normal instead.
type SurfaceHit struct {
	Point    Vec3
	Normal   Vec3
	Distance float64
}

// RunRecorder receives run lifecycle events for persistence. Implementations
// must not block the caller; the game loop invokes these while holding the
// server lock.
type RunRecorder interface {
	RunStarted(runID string, startedAt time.Time)
	LevelCompleted(runID string, level int, g *maze.Grid, duration time.Duration)
	RunEnded(runID string, endedAt time.Time, levelsDone int)
}

// SocketMonitor receives websocket lifecycle changes for the metrics
// surface. The server invokes it outside its lock, so implementations may
// take their own.
type SocketMonitor interface {
	SocketClientChange(active int)
	SocketError(message string)
}

// Client is one websocket connection and its outbound queue.
type Client struct {
	conn       *websocket.Conn
	send       chan []byte
	lastAction time.Time
	run        *Run
}

// GameServer owns every live run. All run state is guarded by mu; the tick
// loop, the websocket handlers, and the REST debug surface all serialize
// through it.
type GameServer struct {
	mu         sync.Mutex
	clients    map[string]*Client // keyed by run ID
	register   chan *Client
	unregister chan *Client

	gameplay config.Gameplay
	recorder RunRecorder
	monitor  SocketMonitor
	devMode  bool

	startedAt       time.Time
	levelsCompleted int
}
