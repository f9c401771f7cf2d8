package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/abhinaya/internal/gesture"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// liveMessage is the wire format for events pushed to WebSocket clients.
type liveMessage struct {
	Type      string `json:"type"`
	Gesture   string `json:"gesture,omitempty"`
	Active    bool   `json:"active"`
	Message   string `json:"message,omitempty"`
	Code      int    `json:"code,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// LiveHandler broadcasts detection events to WebSocket clients in real time.
// It implements gesture.Listener so it can be registered directly with the
// detection pipeline.
type LiveHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewLiveHandler creates a LiveHandler with no connected clients.
func NewLiveHandler() *LiveHandler {
	return &LiveHandler{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *LiveHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// publish sends a message to all connected clients. Write failures are left
// to the read loop, which removes the client when its connection drops.
func (h *LiveHandler) publish(msg liveMessage) {
	msg.Timestamp = time.Now().UnixMilli()

	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.clients {
		conn.WriteMessage(websocket.TextMessage, data)
	}
}

// OnFaceDetected implements gesture.Listener.
func (h *LiveHandler) OnFaceDetected(detected bool) {
	h.publish(liveMessage{Type: string(gesture.EventFaceDetected), Active: detected})
}

// OnFaceInPosition implements gesture.Listener.
func (h *LiveHandler) OnFaceInPosition(inPosition bool) {
	h.publish(liveMessage{Type: string(gesture.EventFaceInPosition), Active: inPosition})
}

// OnGestureStateChanged implements gesture.Listener.
func (h *LiveHandler) OnGestureStateChanged(kind gesture.Kind, active bool) {
	h.publish(liveMessage{Type: string(gesture.EventGestureStateChanged), Gesture: kind.String(), Active: active})
}

// OnGestureDetected implements gesture.Listener.
func (h *LiveHandler) OnGestureDetected(kind gesture.Kind) {
	h.publish(liveMessage{Type: string(gesture.EventGestureDetected), Gesture: kind.String(), Active: true})
}

// OnError implements gesture.Listener.
func (h *LiveHandler) OnError(message string, code int) {
	h.publish(liveMessage{Type: string(gesture.EventError), Message: message, Code: code})
}
