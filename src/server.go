package game

import (
	"log"
	"time"

	"github.com/rohanjoshi-fynd/maze-game/config"
)

// NewGameServer creates a game server with the given effective gameplay
// parameters. Wire a recorder and dev mode with the setters before Run.
func NewGameServer(gp config.Gameplay) *GameServer {
	return &GameServer{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		gameplay:   gp,
		startedAt:  time.Now(),
	}
}

// SetRecorder wires the persistence sink. Called from main after the store
// is open; a nil recorder just disables recording.
func (s *GameServer) SetRecorder(rec RunRecorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder = rec
	log.Printf("Run recorder wired: %T", rec)
}

// SetSocketMonitor wires the websocket status sink the metrics surface
// reads from. A nil monitor disables the notifications.
func (s *GameServer) SetSocketMonitor(m SocketMonitor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.monitor = m
}

func (s *GameServer) socketMonitor() SocketMonitor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.monitor
}

// SetDevMode toggles development behavior: schema validation of inbound
// client messages and the debug REST surface.
func (s *GameServer) SetDevMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.devMode = on
	if on {
		log.Println("Dev mode enabled: validating client messages against schemas.")
	}
}

// DevMode reports whether development behavior is on.
func (s *GameServer) DevMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.devMode
}

func (s *GameServer) Run() {
	go s.listenForClients()
	go s.gameLoop()
}

func (s *GameServer) listenForClients() {
	log.Println("Starting client listener...")
	for {
		select {
		case client := <-s.register:
			s.mu.Lock()
			s.clients[client.run.ID] = client
			active := len(s.clients)
			if s.recorder != nil {
				s.recorder.RunStarted(client.run.ID, client.run.startedAt)
			}
			monitor := s.monitor
			s.mu.Unlock()
			if monitor != nil {
				monitor.SocketClientChange(active)
			}
		case client := <-s.unregister:
			s.mu.Lock()
			var monitor SocketMonitor
			active := 0
			if _, ok := s.clients[client.run.ID]; ok {
				delete(s.clients, client.run.ID)
				active = len(s.clients)
				if s.recorder != nil {
					s.recorder.RunEnded(client.run.ID, time.Now(), client.run.Level-1)
				}
				close(client.send)
				monitor = s.monitor
			}
			s.mu.Unlock()
			if monitor != nil {
				monitor.SocketClientChange(active)
			}
		}
	}
}

func (s *GameServer) gameLoop() {
	ticker := time.NewTicker(s.gameplay.TickInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		for _, client := range s.clients {
			run := client.run

			// Phase 1: integrate movement and detect exits.
			prevLevel := run.Level
			prevStarted := run.levelStartedAt
			if run.applyIntent(s.gameplay.TickInterval) {
				s.levelsCompleted++
				s.sendLevelComplete(client, prevLevel, time.Since(prevStarted))
			}

			// Phase 2: push the state frame.
			s.sendState(client)
		}
		s.mu.Unlock()
	}
}

// ---------- State push ----------

func (s *GameServer) sendState(client *Client) {
	run := client.run
	payload := StatePayload{
		Pos:              run.pos,
		Heading:          run.heading,
		Cell:             run.CurrentCell(),
		Level:            run.Level,
		Steps:            run.steps,
		FloorMarkersLeft: run.inv.FloorLeft(),
		WallMarkersLeft:  run.inv.WallLeft(),
	}
	s.enqueue(client, TypeState, payload)
}

func (s *GameServer) sendLevelComplete(client *Client, completedLevel int, duration time.Duration) {
	payload := LevelCompletePayload{
		CompletedLevel: completedLevel,
		DurationMs:     duration.Milliseconds(),
		Next:           s.levelPayload(client.run),
	}
	s.enqueue(client, TypeLevelComplete, payload)
}

// levelPayload snapshots everything the client needs to rebuild its scene.
func (s *GameServer) levelPayload(run *Run) LevelPayload {
	g := run.grid
	return LevelPayload{
		RunID: run.ID,
		Level: run.Level,

		GridW: g.Width(),
		GridH: g.Height(),
		Cells: g.Rows(),
		Seed:  g.Seed(),

		Start: g.Start(),
		Exit:  g.Exit(),
		Spawn: run.pos,

		CellSize:    s.gameplay.CellSize,
		WallHeight:  s.gameplay.WallHeight,
		AgentRadius: s.gameplay.AgentRadius,
		MoveSpeed:   s.gameplay.MoveSpeed,
		TickMs:      int(s.gameplay.TickInterval / time.Millisecond),

		FloorMarkersLeft: run.inv.FloorLeft(),
		WallMarkersLeft:  run.inv.WallLeft(),
		WallMarkerRange:  s.gameplay.WallMarkerRange,
		Markers:          run.inv.Placed(),

		Torches: g.TorchCells(config.TorchSpacing),
	}
}

// enqueue marshals an envelope onto the client's send queue, dropping the
// frame when the queue is full rather than stalling the tick.
func (s *GameServer) enqueue(client *Client, msgType string, payload interface{}) {
	message, err := marshalEnvelope(msgType, payload)
	if err != nil {
		log.Printf("Error marshaling %s: %v", msgType, err)
		return
	}
	select {
	case client.send <- message:
	default:
		log.Printf("Client %s message channel is full.", client.run.ID)
	}
}

// ---------- Debug surface ----------

// DebugTeleportNearExit moves a run's agent onto the respawn ring around its
// exit. Serves the dev-mode REST endpoint only.
func (s *GameServer) DebugTeleportNearExit(runID string) (Vec3, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, ok := s.clients[runID]
	if !ok {
		return Vec3{}, ErrRunNotFound
	}
	pos, err := client.run.TeleportNearExit()
	if err != nil {
		return Vec3{}, err
	}
	log.Printf("Run %s teleported near exit (level %d).", runID, client.run.Level)
	s.sendState(client)
	return pos, nil
}

// ===== Metrics Methods =====

// GetConnectedClientsCount returns the number of currently connected
// WebSocket clients.
func (s *GameServer) GetConnectedClientsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// GetLevelsCompleted returns the number of levels cleared since boot,
// across all runs.
func (s *GameServer) GetLevelsCompleted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.levelsCompleted
}

// GetLevelDistribution returns how many live runs sit at each level.
func (s *GameServer) GetLevelDistribution() map[int]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	dist := make(map[int]int)
	for _, client := range s.clients {
		dist[client.run.Level]++
	}
	return dist
}

// MarkerCount is a helper struct returned by marker counting methods.
type MarkerCount struct {
	Floor int
	Wall  int
	Total int
}

// GetPlacedMarkers returns marker counts across all live runs' current
// levels.
func (s *GameServer) GetPlacedMarkers() MarkerCount {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := MarkerCount{}
	for _, client := range s.clients {
		for _, m := range client.run.inv.Placed() {
			count.Total++
			if m.Kind == MarkerKindFloor {
				count.Floor++
			} else {
				count.Wall++
			}
		}
	}
	return count
}

// GetServerHealth returns basic server health information.
func (s *GameServer) GetServerHealth() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	markers := 0
	hints := 0
	for _, client := range s.clients {
		markers += len(client.run.inv.placed)
		hints += client.run.hintsUsed
	}

	return map[string]interface{}{
		"running":          true,
		"uptime_seconds":   int(time.Since(s.startedAt).Seconds()),
		"active_runs":      len(s.clients),
		"levels_completed": s.levelsCompleted,
		"placed_markers":   markers,
		"hints_this_level": hints,
		"tick_ms":          int(s.gameplay.TickInterval / time.Millisecond),
	}
}
