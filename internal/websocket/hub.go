package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"cim-memo-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

type Hub struct {
	// Registered clients map: WorkspaceID -> List of Clients (multi-tab)
	clients map[string][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.WorkspaceID] = append(h.clients[client.WorkspaceID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"workspace_id": client.WorkspaceID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.WorkspaceID]; ok {
				for i, c := range clients {
					if c == client {
						// Remove from slice
						h.clients[client.WorkspaceID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.WorkspaceID]) == 0 {
					delete(h.clients, client.WorkspaceID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"workspace_id": client.WorkspaceID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Notify pushes a progress update to every client of one workspace. It
// implements the consumer's ProgressNotifier interface.
//
// With Redis configured the message goes through the shared channel only: this
// instance receives it back via its own subscription, so delivering locally
// here as well would hand every client the message twice.
func (h *Hub) Notify(workspaceID string, eventType string, payload map[string]interface{}) {
	data, _ := json.Marshal(map[string]interface{}{
		"type":  "progress",
		"event": eventType,
		"data":  payload,
	})

	if h.rdb != nil {
		envelope := map[string]interface{}{
			"target_workspace_id": workspaceID,
			"message":             json.RawMessage(data),
		}
		jsonPayload, _ := json.Marshal(envelope)
		if err := h.rdb.Publish(context.Background(), "workspace_events", jsonPayload).Err(); err == nil {
			return
		}
		h.logger.Warn("Hub", "Redis publish failed, delivering locally only", map[string]interface{}{"workspace_id": workspaceID})
	}

	h.deliverLocal(workspaceID, data)
}

// deliverLocal fans a serialized message out to this instance's clients for
// one workspace. A client with a full Send buffer is handed to the unregister
// path, which owns closing the channel.
func (h *Hub) deliverLocal(workspaceID string, data []byte) {
	h.mu.RLock()
	clients := append([]*Client(nil), h.clients[workspaceID]...)
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"workspace_id": workspaceID})
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	// All instances subscribe to one channel carrying
	// {target_workspace_id, data}. When a message arrives, deliver only if the
	// workspace has local clients.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "workspace_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetWorkspaceID string          `json:"target_workspace_id"`
			Message           json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		h.deliverLocal(payload.TargetWorkspaceID, payload.Message)
	}
}
