package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub maintains the set of connected monitor clients and fans job
// progress events out to all of them. Scanner terminals and the admin
// UI subscribe here instead of polling the job endpoints.
type Hub struct {
	// Registered clients map: ClientID -> Client
	clients map[string]*Client

	// Register requests
	register chan *Client

	// Unregister requests
	unregister chan *Client

	// Outbound events for all clients
	broadcast chan []byte

	// Mutex for thread-safe access to clients map
	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		clients:    make(map[string]*Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			// A reconnecting client replaces its old connection
			if old, ok := h.clients[client.ClientID]; ok {
				old.closeSend()
				delete(h.clients, client.ClientID)
			}
			h.clients[client.ClientID] = client
			log.Printf("📱 Monitor connected: %s", client.ClientID)
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			// A replaced connection unregisters late; only evict the
			// map entry if it is still this client
			if cur, ok := h.clients[client.ClientID]; ok && cur == client {
				delete(h.clients, client.ClientID)
				client.closeSend()
				log.Printf("📴 Monitor disconnected: %s", client.ClientID)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				client.trySend(message)
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast sends an event to every connected client
func (h *Hub) Broadcast(message interface{}) {
	jsonMsg, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	select {
	case h.broadcast <- jsonMsg:
	default:
		// Hub loop backed up, drop rather than block a job goroutine
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
