package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	game "github.com/rohanjoshi-fynd/maze-game/src"
	"github.com/rohanjoshi-fynd/maze-game/store"
)

// HealthStatus represents the overall health of the system
type HealthStatus string

const (
	HealthHealthy     HealthStatus = "healthy"
	HealthOk          HealthStatus = "ok"
	HealthWarning     HealthStatus = "warning"
	HealthDegraded    HealthStatus = "degraded"
	HealthCritical    HealthStatus = "critical"
	HealthDown        HealthStatus = "down"
	HealthMaintenance HealthStatus = "maintenance"
)

// WebSocketStatus represents the state of the WebSocket server
type WebSocketStatus string

const (
	WebSocketRunning  WebSocketStatus = "running"
	WebSocketStopping WebSocketStatus = "stopping"
	WebSocketError    WebSocketStatus = "error"
	WebSocketCrashed  WebSocketStatus = "crashed"
)

// MarkerMetrics counts markers placed on the current levels of live runs.
type MarkerMetrics struct {
	Floor int `json:"floor"`
	Wall  int `json:"wall"`
	Total int `json:"total"`
}

// RunMetrics holds live run metrics pulled from the game server.
type RunMetrics struct {
	ActiveRuns        int           `json:"active_runs"`
	LevelsCompleted   int           `json:"levels_completed_since_boot"`
	LevelDistribution map[int]int   `json:"level_distribution"`
	PlacedMarkers     MarkerMetrics `json:"placed_markers"`
}

// HistoryMetrics holds all-time counters from the run store.
type HistoryMetrics struct {
	TotalRuns     int `json:"total_runs"`
	TotalLevels   int `json:"total_levels"`
	BestLevel     int `json:"best_level"`
	DroppedWrites int `json:"dropped_writes"`
}

// WorkloadMetrics tracks the current system workload
type WorkloadMetrics struct {
	LoadPercentage float64 `json:"load_percentage"`
	MaxActiveRuns  int     `json:"max_active_runs"`
	CurrentLoad    string  `json:"current_load"` // "low", "medium", "high", "critical"
}

// WebSocketServerMetrics holds WebSocket server status
type WebSocketServerMetrics struct {
	Status            WebSocketStatus `json:"status"`
	ActiveConnections int             `json:"active_connections"`
	UptimeSec         int64           `json:"uptime_sec"`
	LastErrorMessage  string          `json:"last_error_message,omitempty"`
	LastErrorTime     *time.Time      `json:"last_error_time,omitempty"`
}

// MetricsResponse is the complete metrics response structure
type MetricsResponse struct {
	Timestamp         time.Time              `json:"timestamp"`
	Health            HealthStatus           `json:"health"`
	HealthDescription string                 `json:"health_description"`
	Runs              RunMetrics             `json:"runs"`
	History           HistoryMetrics         `json:"history"`
	WebSocket         WebSocketServerMetrics `json:"websocket"`
	Workload          WorkloadMetrics        `json:"workload"`
	ServerUptime      int64                  `json:"server_uptime_sec"`
}

// MetricsHandler manages metrics collection and reporting
type MetricsHandler struct {
	cfg              Config
	store            *store.Store
	gameServer       *game.GameServer
	mu               sync.RWMutex
	serverStartTime  time.Time
	webSocketMetrics WebSocketServerMetrics

	maxActiveRuns int
}

// NewMetricsHandler creates a new metrics handler. The store may be nil when
// recording is disabled.
func NewMetricsHandler(cfg Config, st *store.Store, gameServer *game.GameServer) *MetricsHandler {
	return &MetricsHandler{
		cfg:             cfg,
		store:           st,
		gameServer:      gameServer,
		serverStartTime: time.Now(),
		maxActiveRuns:   1000,
		webSocketMetrics: WebSocketServerMetrics{
			Status: WebSocketRunning,
		},
	}
}

// Routes registers metrics routes
func (h *MetricsHandler) Routes(r chi.Router) {
	r.Get("/metrics", h.GetMetrics)
	r.Get("/metrics/health", h.GetHealth)
	r.Get("/metrics/runs", h.GetRuns)
	r.Get("/metrics/websocket", h.GetWebSocket)
	r.Get("/metrics/workload", h.GetWorkload)
}

// GetMetrics returns complete metrics
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.collectMetrics(r.Context()))
}

// GetHealth returns only health status
func (h *MetricsHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	metrics := h.collectMetrics(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"timestamp":   metrics.Timestamp,
		"health":      metrics.Health,
		"description": metrics.HealthDescription,
		"uptime_sec":  metrics.ServerUptime,
	})
}

// GetRuns returns only run metrics
func (h *MetricsHandler) GetRuns(w http.ResponseWriter, r *http.Request) {
	metrics := h.collectMetrics(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs":    metrics.Runs,
		"history": metrics.History,
	})
}

// GetWebSocket returns only WebSocket metrics
func (h *MetricsHandler) GetWebSocket(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	wsMetrics := h.syncWebSocketMetricsFromGameServer()
	h.mu.RUnlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"timestamp": time.Now(),
		"websocket": wsMetrics,
	})
}

// GetWorkload returns only workload metrics
func (h *MetricsHandler) GetWorkload(w http.ResponseWriter, r *http.Request) {
	metrics := h.collectMetrics(r.Context())
	writeJSON(w, http.StatusOK, metrics.Workload)
}

// collectMetrics gathers all metrics from the system
func (h *MetricsHandler) collectMetrics(ctx context.Context) *MetricsResponse {
	h.mu.RLock()
	defer h.mu.RUnlock()

	runMetrics := h.collectRunMetrics()
	historyMetrics := h.collectHistoryMetrics(ctx)
	workloadMetrics := h.calculateWorkloadMetrics(runMetrics)
	wsMetrics := h.syncWebSocketMetricsFromGameServer()

	health, healthDesc := h.determineHealth(historyMetrics, workloadMetrics, wsMetrics)

	return &MetricsResponse{
		Timestamp:         time.Now(),
		Health:            health,
		HealthDescription: healthDesc,
		Runs:              runMetrics,
		History:           historyMetrics,
		WebSocket:         wsMetrics,
		Workload:          workloadMetrics,
		ServerUptime:      int64(time.Since(h.serverStartTime).Seconds()),
	}
}

// syncWebSocketMetricsFromGameServer syncs connection counts from the game
// server into the locally tracked status.
func (h *MetricsHandler) syncWebSocketMetricsFromGameServer() WebSocketServerMetrics {
	wsMetrics := h.webSocketMetrics
	wsMetrics.UptimeSec = int64(time.Since(h.serverStartTime).Seconds())
	if h.gameServer != nil {
		wsMetrics.ActiveConnections = h.gameServer.GetConnectedClientsCount()
	}
	return wsMetrics
}

// collectRunMetrics gathers live run state from the game server.
func (h *MetricsHandler) collectRunMetrics() RunMetrics {
	metrics := RunMetrics{LevelDistribution: map[int]int{}}
	if h.gameServer == nil {
		return metrics
	}

	metrics.ActiveRuns = h.gameServer.GetConnectedClientsCount()
	metrics.LevelsCompleted = h.gameServer.GetLevelsCompleted()
	metrics.LevelDistribution = h.gameServer.GetLevelDistribution()

	placed := h.gameServer.GetPlacedMarkers()
	metrics.PlacedMarkers = MarkerMetrics{
		Floor: placed.Floor,
		Wall:  placed.Wall,
		Total: placed.Total,
	}
	return metrics
}

// collectHistoryMetrics reads all-time totals from the store.
func (h *MetricsHandler) collectHistoryMetrics(ctx context.Context) HistoryMetrics {
	var metrics HistoryMetrics
	if h.store == nil {
		return metrics
	}

	totals, err := h.store.Totals(ctx)
	if err != nil {
		log.Printf("Metrics: store totals failed: %v", err)
		return metrics
	}
	metrics.TotalRuns = totals.Runs
	metrics.TotalLevels = totals.LevelsCompleted
	metrics.BestLevel = totals.BestLevel
	metrics.DroppedWrites = h.store.Dropped()
	return metrics
}

// calculateWorkloadMetrics calculates current workload based on live runs
func (h *MetricsHandler) calculateWorkloadMetrics(runMetrics RunMetrics) WorkloadMetrics {
	workload := WorkloadMetrics{
		MaxActiveRuns:  h.maxActiveRuns,
		LoadPercentage: float64(runMetrics.ActiveRuns) / float64(h.maxActiveRuns) * 100,
	}

	if workload.LoadPercentage < 40 {
		workload.CurrentLoad = "low"
	} else if workload.LoadPercentage < 70 {
		workload.CurrentLoad = "medium"
	} else if workload.LoadPercentage < 90 {
		workload.CurrentLoad = "high"
	} else {
		workload.CurrentLoad = "critical"
	}
	return workload
}

// determineHealth determines overall system health based on metrics
func (h *MetricsHandler) determineHealth(history HistoryMetrics, workload WorkloadMetrics, wsMetrics WebSocketServerMetrics) (HealthStatus, string) {
	// Check WebSocket status first
	if wsMetrics.Status == WebSocketError || wsMetrics.Status == WebSocketCrashed {
		return HealthCritical, "WebSocket server error or crashed - unable to accept connections"
	}
	if wsMetrics.Status == WebSocketStopping {
		return HealthMaintenance, "Server is performing graceful shutdown - no new connections accepted"
	}

	if workload.CurrentLoad == "critical" {
		return HealthDown, "Active run count at critical levels (>90%) - service may become unavailable"
	}
	if workload.CurrentLoad == "high" {
		return HealthWarning, "Active run count is high (70-90%) - monitor performance closely"
	}

	if history.DroppedWrites > 0 {
		return HealthDegraded, fmt.Sprintf("Run store dropped %d writes under backpressure - history is incomplete", history.DroppedWrites)
	}

	if wsMetrics.ActiveConnections > 0 {
		runStr := "run"
		if wsMetrics.ActiveConnections > 1 {
			runStr = "runs"
		}
		return HealthHealthy, fmt.Sprintf("All systems operational - %d active %s", wsMetrics.ActiveConnections, runStr)
	}
	return HealthHealthy, "Server ready and operational - awaiting connections"
}

// UpdateWebSocketMetrics updates WebSocket status and connection counts
func (h *MetricsHandler) UpdateWebSocketMetrics(status WebSocketStatus, activeConnections int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.webSocketMetrics.Status = status
	h.webSocketMetrics.ActiveConnections = activeConnections
	h.webSocketMetrics.UptimeSec = int64(time.Since(h.serverStartTime).Seconds())
}

// RecordWebSocketError records a WebSocket error
func (h *MetricsHandler) RecordWebSocketError(errorMsg string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now()
	h.webSocketMetrics.Status = WebSocketError
	h.webSocketMetrics.LastErrorMessage = errorMsg
	h.webSocketMetrics.LastErrorTime = &now
}

// SocketClientChange implements game.SocketMonitor. Every connect or
// disconnect restores the running status; a recorded error stays visible
// until then.
func (h *MetricsHandler) SocketClientChange(active int) {
	h.UpdateWebSocketMetrics(WebSocketRunning, active)
}

// SocketError implements game.SocketMonitor.
func (h *MetricsHandler) SocketError(message string) {
	h.RecordWebSocketError(message)
}
