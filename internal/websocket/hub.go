package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Event is the envelope pushed to dashboard clients
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub fans inventory events out to all connected dashboard clients.
// The feed is one-way; clients never send commands.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stop       chan struct{}
	done       chan struct{}
	stopped    bool

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Run starts the hub event loop
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// slow consumer; drop the event rather than block the hub
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Stop shuts the hub down and waits for the event loop to exit
func (h *Hub) Stop() {
	close(h.stop)
	<-h.done
}

// Register adds a client to the broadcast set
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Emit implements service.EventEmitter. Marshal failures are logged
// and the event is dropped.
func (h *Hub) Emit(event string, payload interface{}) {
	data, err := json.Marshal(Event{
		Type:      event,
		Payload:   payload,
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Printf("ERROR [websocket.Hub] failed to marshal event %s: %v", event, err)
		return
	}

	select {
	case h.broadcast <- data:
	case <-h.stop:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
