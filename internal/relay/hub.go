// Package relay pushes live match events to browser clients over
// WebSocket. Clients subscribe per tournament; the hub implements
// events.Broadcaster so services stay unaware of the transport.
package relay

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/AshokJ-Official/yultimate-app-sub000/internal/events"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeTimeout   = 10 * time.Second
	pingInterval   = 30 * time.Second
	pongTimeout    = 60 * time.Second
	maxMessageSize = 512
	sendBuffer     = 16
)

type Hub struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[*client]bool

	upgrader websocket.Upgrader
}

type client struct {
	tournamentID uuid.UUID
	conn         *websocket.Conn
	send         chan []byte
}

func NewHub(checkOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		subscribers: make(map[uuid.UUID]map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Broadcast sends the event to every client subscribed to its
// tournament. Clients whose send buffer is full are dropped rather than
// allowed to stall the rest.
func (h *Hub) Broadcast(event events.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("type", event.Type).Msg("marshal event")
		return
	}

	h.mu.RLock()
	clients := h.subscribers[event.TournamentID]
	stale := make([]*client, 0)
	for c := range clients {
		select {
		case c.send <- data:
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		h.unsubscribe(c)
	}
}

// ServeHTTP upgrades the request and subscribes the client to the
// tournament named by the "tournament_id" query parameter.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := uuid.Parse(r.URL.Query().Get("tournament_id"))
	if err != nil {
		http.Error(w, "invalid tournament_id", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade")
		return
	}

	c := &client{
		tournamentID: tournamentID,
		conn:         conn,
		send:         make(chan []byte, sendBuffer),
	}

	h.mu.Lock()
	if h.subscribers[tournamentID] == nil {
		h.subscribers[tournamentID] = make(map[*client]bool)
	}
	h.subscribers[tournamentID][c] = true
	h.mu.Unlock()

	log.Debug().Str("tournament_id", tournamentID.String()).Msg("websocket client subscribed")

	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound messages; the relay is one way. It exists to
// process pongs and detect closed connections.
func (h *Hub) readPump(c *client) {
	defer h.unsubscribe(c)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) unsubscribe(c *client) {
	h.mu.Lock()
	clients := h.subscribers[c.tournamentID]
	if clients != nil && clients[c] {
		delete(clients, c)
		close(c.send)
		if len(clients) == 0 {
			delete(h.subscribers, c.tournamentID)
		}
	}
	h.mu.Unlock()

	c.conn.Close()
}
