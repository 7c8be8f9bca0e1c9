package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// The hints channel pushes the human side's legal moves (with their flip
// counts) so the frontend can highlight playable cells without polling.

type hintCell struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Flips int `json:"flips"`
}

type hintsPayload struct {
	Positions  []hintCell `json:"positions,omitempty"`
	NextPlayer int        `json:"next_player,omitempty"`
	Active     bool       `json:"active"`
}

type HintsClient struct {
	hub  *HintsHub
	conn *websocket.Conn
	send chan []byte
}

type HintsHub struct {
	mu        sync.Mutex
	clients   map[*HintsClient]struct{}
	broadcast chan hintsPayload
}

func NewHintsHub() *HintsHub {
	return &HintsHub{
		clients:   make(map[*HintsClient]struct{}),
		broadcast: make(chan hintsPayload, 32),
	}
}

func (h *HintsHub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcast:
			h.mu.Lock()
			if len(h.clients) == 0 {
				h.mu.Unlock()
				continue
			}
			for client := range h.clients {
				client.sendJSON(wsMessage{Type: "hints", Payload: mustMarshal(payload)})
			}
			h.mu.Unlock()
		}
	}
}

func (h *HintsHub) Register(c *HintsClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *HintsHub) Publish(payload hintsPayload) {
	select {
	case h.broadcast <- payload:
	default:
	}
}

func (h *HintsHub) Unregister(c *HintsClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *HintsHub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *HintsClient) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func serveHintsWS(hub *HintsHub, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &HintsClient{hub: hub, conn: conn, send: make(chan []byte, 16)}
	hub.Register(client)

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.Unregister(client)
			return
		}
	}
}
