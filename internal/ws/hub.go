package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/Vasu1712/posterboard/internal/models"
	"github.com/gorilla/websocket"
)

type Client struct {
	PlayerID string
	TownID   string
	Send     chan []byte
	Conn     *websocket.Conn // nil for clients that never touch the network
}

type Hub struct {
	Clients    map[string]map[*Client]bool // townID -> clients
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan BroadcastMessage
	mu         sync.RWMutex
}

type BroadcastMessage struct {
	TownID string
	Data   []byte
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan BroadcastMessage),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.Clients[client.TownID] == nil {
				h.Clients[client.TownID] = make(map[*Client]bool)
			}
			h.Clients[client.TownID][client] = true
			h.mu.Unlock()
			log.Printf("[WS] Player %s connected to town %s", client.PlayerID, client.TownID)
		case client := <-h.Unregister:
			h.mu.Lock()
			if clients, ok := h.Clients[client.TownID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					log.Printf("[WS] Player %s disconnected from town %s", client.PlayerID, client.TownID)
				}
			}
			h.mu.Unlock()
		case msg := <-h.Broadcast:
			h.mu.Lock()
			for client := range h.Clients[msg.TownID] {
				select {
				case client.Send <- msg.Data:
				default:
					log.Printf("[WS] Dropping slow client %s in town %s", client.PlayerID, client.TownID)
					close(client.Send)
					delete(h.Clients[msg.TownID], client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount returns how many sockets are connected to a town.
func (h *Hub) ClientCount(townID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Clients[townID])
}

// Emitter returns the broadcast sink for one town.
func (h *Hub) Emitter(townID string) *TownEmitter {
	return &TownEmitter{hub: h, townID: townID}
}

// TownEmitter sends every event to all sockets of one town, in call order.
type TownEmitter struct {
	hub    *Hub
	townID string
}

// Emit blocks until the hub has taken the event, so Run must be running.
func (e *TownEmitter) Emit(event string, payload any) {
	data, err := json.Marshal(models.ServerEvent{Event: event, Payload: payload})
	if err != nil {
		log.Printf("[WS] Failed to encode %s event for town %s: %v", event, e.townID, err)
		return
	}
	e.hub.Broadcast <- BroadcastMessage{TownID: e.townID, Data: data}
}
