// Package main provides the WebSocket display hub: connected browser surfaces
// receive every payload the rotation engine produces and render it locally.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/retailqa/scanbench/backend/internal/rotation"
	"github.com/retailqa/scanbench/backend/internal/uuid"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Display surfaces connect from the local test bench only
		return true
	},
}

// WSClient represents one connected display surface.
type WSClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	hub  *DisplayHub
}

// DisplayHub maintains display connections and broadcasts frames. It is the
// render boundary: pixel rendering happens in the client.
type DisplayHub struct {
	clients    map[string]*WSClient
	broadcast  chan []byte
	register   chan *WSClient
	unregister chan *WSClient
	mu         sync.RWMutex
}

// WSEnvelope wraps all WebSocket messages.
type WSEnvelope struct {
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data"`
	Timestamp int64                  `json:"timestamp"`
}

// =====================================================
// WebSocket Event Types
// =====================================================

const (
	// EventDisplayUpdate carries the code pair to draw.
	EventDisplayUpdate = "display.update"

	// EventDisplayClear blanks the display surfaces.
	EventDisplayClear = "display.clear"
)

// NewDisplayHub creates a display hub and starts its broadcast loop.
func NewDisplayHub() *DisplayHub {
	hub := &DisplayHub{
		clients:    make(map[string]*WSClient),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *WSClient),
		unregister: make(chan *WSClient),
	}
	go hub.run()
	return hub
}

// run manages client connections and broadcasts.
func (h *DisplayHub) run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			h.mu.Unlock()
			log.Printf("[WS] Display connected: %s (total: %d)", client.id, len(h.clients))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("[WS] Display disconnected: %s (total: %d)", client.id, len(h.clients))

		case message := <-h.broadcast:
			h.mu.Lock()
			for id, client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client send buffer is full, close connection
					close(client.send)
					delete(h.clients, id)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends a message to all connected displays.
func (h *DisplayHub) Broadcast(messageType string, data map[string]interface{}) {
	envelope := WSEnvelope{
		Type:      messageType,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("[WS] Failed to marshal message: %v", err)
		return
	}

	h.broadcast <- bytes
}

// Render implements rotation.RenderSink: push the code pair to every display.
// Fire-and-forget; an empty display list is not an error.
func (h *DisplayHub) Render(primary rotation.Code, secondary *rotation.Code) error {
	data := map[string]interface{}{
		"primary": map[string]interface{}{
			"payload": primary.Payload,
			"format":  string(primary.Format),
		},
	}
	if secondary != nil {
		data["secondary"] = map[string]interface{}{
			"payload": secondary.Payload,
			"format":  string(secondary.Format),
		}
	}
	h.Broadcast(EventDisplayUpdate, data)
	return nil
}

// Clear blanks all display surfaces.
func (h *DisplayHub) Clear() {
	h.Broadcast(EventDisplayClear, nil)
}

// HandleWS upgrades an HTTP request to a display connection.
func (h *DisplayHub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade failed: %v", err)
		return
	}

	client := &WSClient{
		id:   uuid.New(),
		conn: conn,
		send: make(chan []byte, 64),
		hub:  h,
	}
	h.register <- client

	go client.writeLoop()
	go client.readLoop()
}

// writeLoop pumps broadcast frames to the socket.
func (c *WSClient) writeLoop() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// readLoop drains the socket so pings and close frames are processed.
func (c *WSClient) readLoop() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
