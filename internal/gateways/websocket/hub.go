package websocket

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"

	"backend/internal/utils"

	"go.uber.org/zap"
)

type Client struct {
	hub  *Hub
	conn ClientConn
	send chan []byte
	ID   string
}

// ClientConn is the subset of the gorilla connection the hub needs,
// kept as an interface so tests can drive the hub without sockets.
type ClientConn interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

func generateClientID() string {
	bytes := make([]byte, 6)
	if _, err := rand.Read(bytes); err != nil {
		return "xxxxx"
	}
	return base64.URLEncoding.EncodeToString(bytes)
}

type roomRequest struct {
	client  *Client
	boardID uint64
}

// Hub tracks connected clients and their board rooms, and fans out
// events from the bus to every subscriber of the event's board. There
// is no authorization at this layer: events carry identifiers only,
// never authoritative data, and the REST surface is where access is
// enforced.
type Hub struct {
	clients    map[*Client]bool
	rooms      map[uint64]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	join       chan roomRequest
	leave      chan roomRequest
	bus        *utils.EventBus
	logger     *zap.SugaredLogger
}

func NewHub(logger *zap.Logger, bus *utils.EventBus) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[uint64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan roomRequest),
		leave:      make(chan roomRequest),
		bus:        bus,
		logger:     logger.Sugar(),
	}
}

func (h *Hub) Run() {
	h.logger.Info("WebSocket Hub started")
	events := h.bus.SubscribeCh()

	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Infow("Client connected",
				"client_id", client.ID,
				"clients_count", len(h.clients),
			)

		case client := <-h.unregister:
			h.drop(client)

		case req := <-h.join:
			if !h.clients[req.client] {
				continue
			}
			room := h.rooms[req.boardID]
			if room == nil {
				room = make(map[*Client]bool)
				h.rooms[req.boardID] = room
			}
			room[req.client] = true
			h.logger.Debugw("Client joined room",
				"client_id", req.client.ID,
				"board_id", req.boardID,
			)

		case req := <-h.leave:
			if room, ok := h.rooms[req.boardID]; ok {
				delete(room, req.client)
				if len(room) == 0 {
					delete(h.rooms, req.boardID)
				}
			}

		case event := <-events:
			h.broadcast(event)
		}
	}
}

// broadcast delivers the event to the board's room. Delivery is
// at-most-once: a client whose send buffer is full is dropped and must
// reconcile by re-fetching on reconnect.
func (h *Hub) broadcast(event utils.Event) {
	room, ok := h.rooms[event.BoardID]
	if !ok || len(room) == 0 {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Errorw("Failed to marshal event", "type", event.Type, "error", err)
		return
	}

	for client := range room {
		select {
		case client.send <- payload:
		default:
			h.logger.Warnw("Client send buffer full, dropping connection",
				"client_id", client.ID,
				"board_id", event.BoardID,
			)
			h.drop(client)
		}
	}
}

func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	for boardID, room := range h.rooms {
		delete(room, client)
		if len(room) == 0 {
			delete(h.rooms, boardID)
		}
	}
	close(client.send)
	h.logger.Infow("Client disconnected",
		"client_id", client.ID,
		"clients_count", len(h.clients),
	)
}
