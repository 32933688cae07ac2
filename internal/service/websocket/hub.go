package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"incidentserver/internal/config"
	"incidentserver/internal/dto"
	"incidentserver/internal/logger"
	"incidentserver/internal/metrics"
)

const writeWait = 5 * time.Second

// HubService fans incident events out to connected dashboard viewers.
// One goroutine (Run) owns registration and broadcasting.
type HubService struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

func NewHubService(cfg *config.Config, logger *logger.Logger, metrics *metrics.Metrics) *HubService {
	queueSize := cfg.EventQueueSize
	if queueSize <= 0 {
		queueSize = 64
	}
	return &HubService{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, queueSize),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		logger:     logger,
		metrics:    metrics,
	}
}

// Run serves registrations and broadcasts until ctx is cancelled, then
// closes every client.
func (h *HubService) Run(ctx context.Context) {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mutex.Unlock()
			h.metrics.SetHubClients(count)
			h.logger.Info("viewer connected", zap.Int("clients", count))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			count := len(h.clients)
			h.mutex.Unlock()
			h.metrics.SetHubClients(count)
			h.logger.Info("viewer disconnected", zap.Int("clients", count))

		case message := <-h.broadcast:
			h.send(message)
		}
	}
}

func (h *HubService) send(message []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
			h.logger.Warn("dropping viewer after failed write", zap.Error(err))
			delete(h.clients, client)
			client.Close()
		}
	}
	h.metrics.SetHubClients(len(h.clients))
}

func (h *HubService) shutdown() {
	h.mutex.Lock()
	for client := range h.clients {
		client.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		client.Close()
		delete(h.clients, client)
	}
	h.mutex.Unlock()

	h.metrics.SetHubClients(0)
	close(h.done)
	h.logger.Info("event hub stopped")
}

// Register adds a viewer. It returns false when the hub has stopped.
func (h *HubService) Register(client *websocket.Conn) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *HubService) Unregister(client *websocket.Conn) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish queues an incident event for broadcast. It never blocks: when the
// queue is full the event is dropped.
func (h *HubService) Publish(event dto.IncidentEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to encode incident event", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- message:
	default:
		h.metrics.EventDropped()
		h.logger.Warn("event queue full, dropping incident event",
			zap.String("kind", event.Kind), zap.Int64("incident_id", event.Incident.ID))
	}
}

func (h *HubService) GetClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
