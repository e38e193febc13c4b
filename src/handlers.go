package game

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// HandleConnections upgrades a request to a websocket, starts a fresh run
// for it, and hands the connection to the pumps.
func (s *GameServer) HandleConnections(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		if m := s.socketMonitor(); m != nil {
			m.SocketError(err.Error())
		}
		return
	}

	s.mu.Lock()

	runID := uuid.New().String()
	run := NewRun(runID, s.gameplay, s.recorder)
	client := &Client{
		conn:       conn,
		send:       make(chan []byte, 256),
		lastAction: time.Now(),
		run:        run,
	}

	initMsg, err := marshalEnvelope(TypeInit, s.levelPayload(run))
	if err != nil {
		log.Printf("Error marshaling init for run %s: %v", runID, err)
		conn.Close()
		s.mu.Unlock()
		return
	}
	select {
	case client.send <- initMsg:
	default:
		log.Printf("Client %s init channel full.", runID)
	}

	s.mu.Unlock()

	s.register <- client
	go client.writePump()
	go client.readPump(s)
}

// reject replies to a client message with a protocol error code.
func (s *GameServer) reject(client *Client, code, message string) {
	s.enqueue(client, TypeReject, RejectPayload{Code: code, Message: message})
}

// readPump handles incoming messages from the client.
func (c *Client) readPump(server *GameServer) {
	defer func() {
		server.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
				if m := server.socketMonitor(); m != nil {
					m.SocketError(err.Error())
				}
			}
			break
		}
		c.lastAction = time.Now()

		var env envelope
		if err := json.Unmarshal(message, &env); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			server.reject(c, CodeBadRequest, "malformed envelope")
			continue
		}

		if server.DevMode() {
			if err := ValidateClientMessage(env.Type, message); err != nil {
				server.reject(c, CodeBadRequest, err.Error())
				continue
			}
		}

		switch env.Type {
		case TypeMove:
			var p MovePayload
			if err := json.Unmarshal(env.Payload, &p); err != nil {
				server.reject(c, CodeBadRequest, "bad move payload")
				continue
			}
			server.mu.Lock()
			c.run.SetIntent(p.IX, p.IZ)
			server.mu.Unlock()

		case TypeHint:
			server.mu.Lock()
			path, err := c.run.HintPath()
			server.mu.Unlock()
			if err != nil {
				server.reject(c, RejectCodeFor(err), err.Error())
				continue
			}
			server.enqueue(c, TypeHintPath, HintPathPayload{Cells: path})

		case TypePlaceFloorMarker:
			server.mu.Lock()
			marker, err := c.run.PlaceFloorMarker()
			floorLeft := c.run.inv.FloorLeft()
			wallLeft := c.run.inv.WallLeft()
			server.mu.Unlock()
			if err != nil {
				server.reject(c, RejectCodeFor(err), err.Error())
				continue
			}
			server.enqueue(c, TypeMarkerPlaced, MarkerPlacedPayload{
				Marker:           marker,
				FloorMarkersLeft: floorLeft,
				WallMarkersLeft:  wallLeft,
			})

		case TypePlaceWallMarker:
			var p PlaceWallMarkerPayload
			if err := json.Unmarshal(env.Payload, &p); err != nil {
				server.reject(c, CodeBadRequest, "bad place_wall_marker payload")
				continue
			}
			var hit *SurfaceHit
			if p.Hit {
				hit = &SurfaceHit{Point: p.Point, Normal: p.Normal, Distance: p.Distance}
			}
			server.mu.Lock()
			marker, err := c.run.PlaceWallMarker(hit)
			floorLeft := c.run.inv.FloorLeft()
			wallLeft := c.run.inv.WallLeft()
			server.mu.Unlock()
			if err != nil {
				server.reject(c, RejectCodeFor(err), err.Error())
				continue
			}
			server.enqueue(c, TypeMarkerPlaced, MarkerPlacedPayload{
				Marker:           marker,
				FloorMarkersLeft: floorLeft,
				WallMarkersLeft:  wallLeft,
			})

		default:
			server.reject(c, CodeBadRequest, "unknown message type: "+env.Type)
		}
	}
}

// writePump writes messages to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)
			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
