package live

import (
	"context"
	"log"
	"sync"
)

// Update is a message fanned out to every viewer of a match.
type Update struct {
	MatchID uint
	Payload []byte
}

// Hub fans live scoring snapshots out to WebSocket viewers, one room per
// match. All subscription bookkeeping happens on the Run goroutine; the
// mutex only guards the rooms map for the Broadcast fast path.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan Update
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[uint]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Update, 64),
	}
}

// Run processes subscriptions and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.mu.Lock()
			room, ok := h.rooms[client.matchID]
			if !ok {
				room = make(map[*Client]bool)
				h.rooms[client.matchID] = room
			}
			room[client] = true
			h.mu.Unlock()
			log.Printf("live: client %s joined match %d", client.id, client.matchID)
		case client := <-h.unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.matchID]; ok {
				if _, subscribed := room[client]; subscribed {
					delete(room, client)
					close(client.send)
					if len(room) == 0 {
						delete(h.rooms, client.matchID)
					}
				}
			}
			h.mu.Unlock()
			log.Printf("live: client %s left match %d", client.id, client.matchID)
		case update := <-h.broadcast:
			h.mu.RLock()
			for client := range h.rooms[update.MatchID] {
				select {
				case client.send <- update.Payload:
				default:
					// Slow consumer; drop it rather than stall the room.
					go client.conn.Close()
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast queues a snapshot for every viewer of the match. Non-blocking;
// if the hub's queue is full the update is dropped, the next save will
// carry a fresher snapshot anyway.
func (h *Hub) Broadcast(matchID uint, payload []byte) {
	select {
	case h.broadcast <- Update{MatchID: matchID, Payload: payload}:
	default:
		log.Printf("live: broadcast queue full, dropping update for match %d", matchID)
	}
}

// Viewers reports the number of connected clients for a match.
func (h *Hub) Viewers(matchID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[matchID])
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range h.rooms {
		for client := range room {
			close(client.send)
		}
	}
	h.rooms = make(map[uint]map[*Client]bool)
}
