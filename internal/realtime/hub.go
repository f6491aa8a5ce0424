package realtime

import (
	"context"
	"sync"
	"time"

	"mealgo/internal/kv"

	"go.uber.org/zap"
)

// Message types pushed to clients
const (
	MessageTypeStorage = "storage"
	MessageTypePong    = "pong"
)

const sendBuffer = 64

// Message mirrors a browser storage event: NewValue is null when the key was removed
type Message struct {
	Type     string  `json:"type"`
	Key      string  `json:"key,omitempty"`
	NewValue *string `json:"newValue"`
	Time     int64   `json:"time"`
}

type outbound struct {
	owner   string
	client  *Client // nil for every connection of owner
	message Message
}

// Hub tracks the websocket clients of every user and forwards their kv changes
type Hub struct {
	clients map[string]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan outbound

	broker *kv.Broker
	logger *zap.Logger

	mu      sync.RWMutex
	stopped chan struct{}
}

func NewHub(broker *kv.Broker, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan outbound, sendBuffer),
		broker:     broker,
		logger:     logger,
		stopped:    make(chan struct{}),
	}
}

// Run serves register, unregister and broadcast requests until ctx ends,
// then disconnects every client
func (h *Hub) Run(ctx context.Context) {
	changes, unsubscribe := h.broker.Subscribe("")
	defer unsubscribe()
	defer close(h.stopped)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case out := <-h.broadcast:
			h.deliver(out)

		case change, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			h.deliver(outbound{owner: change.Owner, message: storageMessage(change)})
		}
	}
}

func (h *Hub) enqueue(out outbound) {
	select {
	case h.broadcast <- out:
	case <-h.stopped:
	}
}

// Connections returns the number of open connections of owner
func (h *Hub) Connections(owner string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[owner])
}

func storageMessage(change kv.Change) Message {
	msg := Message{Type: MessageTypeStorage, Key: change.Key}
	if !change.Deleted() {
		v := string(change.Value)
		msg.NewValue = &v
	}
	return msg
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.owner] == nil {
		h.clients[client.owner] = make(map[*Client]struct{})
	}
	h.clients[client.owner][client] = struct{}{}

	h.logger.Debug("websocket client registered",
		zap.String("client", client.id),
		zap.String("owner", client.owner),
		zap.Int("connections", len(h.clients[client.owner])),
	)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

// removeLocked drops client and closes its send channel; h.mu must be held
func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.owner]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.owner)
	}
	h.logger.Debug("websocket client unregistered", zap.String("client", client.id), zap.String("owner", client.owner))
}

func (h *Hub) deliver(out outbound) {
	message := out.message
	message.Time = time.Now().Unix()

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients[out.owner] {
		if out.client != nil && out.client != client {
			continue
		}
		select {
		case client.send <- message:
		default:
			// slow consumer
			h.removeLocked(client)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

/*
This project is the backend API for MealGo, a school meal and timetable companion built on open education data.
API Copyright (C) 2025 MealGo
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
