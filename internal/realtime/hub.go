// Package realtime pushes board snapshots to display clients over
// websocket.
package realtime

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"backend-turnero/internal/models"
	"backend-turnero/internal/queue"
)

const (
	pingInterval  = 20 * time.Second
	readTimeout   = 60 * time.Second
	staleAfter    = 90 * time.Second
	cleanupEvery  = 30 * time.Second
	writeTimeout  = 3 * time.Second
	maxFanout     = 20
	debounceDelay = 50 * time.Millisecond
)

// BoardMessage - Payload of every push. Boarding and Next are derived from
// Data so displays do not recompute them.
type BoardMessage struct {
	Type      string          `json:"type"`
	Data      []models.Vessel `json:"data"`
	Boarding  *models.Vessel  `json:"boarding"`
	Next      *models.Vessel  `json:"next"`
	Timestamp string          `json:"timestamp"`
}

const MessageBoardUpdate = "board_update"

func BuildMessage(snapshot []models.Vessel, now time.Time) BoardMessage {
	m := queue.Load(snapshot)
	msg := BoardMessage{
		Type:      MessageBoardUpdate,
		Data:      m.Snapshot(),
		Timestamp: now.Format(time.RFC3339),
	}
	if v, ok := m.BoardingVessel(); ok {
		msg.Boarding = &v
	}
	if v, ok := m.NextWaiting(); ok {
		msg.Next = &v
	}
	return msg
}

/*
|--------------------------------------------------------------------------
| Client Registry
|--------------------------------------------------------------------------
*/

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type client struct {
	conn     Conn
	writeMux sync.Mutex
	closed   bool
	done     chan struct{}
	lastPong time.Time
	id       string
}

func (c *client) shut() {
	if !c.closed {
		c.closed = true
		close(c.done)
	}
}

type Hub struct {
	mu             sync.RWMutex
	clients        map[string]*client
	cleanupRunning bool

	lastMu  sync.RWMutex
	lastMsg []byte
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*client)}
}

func (h *Hub) register(conn Conn) *client {
	c := &client{
		conn:     conn,
		done:     make(chan struct{}),
		lastPong: time.Now(),
		id:       "display-" + uuid.NewString()[:8],
	}

	h.mu.Lock()
	h.clients[c.id] = c
	total := len(h.clients)
	startCleanup := !h.cleanupRunning
	h.cleanupRunning = true
	h.mu.Unlock()

	log.Printf("[ws] %s registered, total: %d", c.id, total)
	if startCleanup {
		go h.periodicCleanup()
	}

	// New displays get the last board right away.
	h.lastMu.RLock()
	cached := h.lastMsg
	h.lastMu.RUnlock()
	if len(cached) > 0 {
		h.write(c, cached)
	}
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c.id)
	total := len(h.clients)
	h.mu.Unlock()

	c.writeMux.Lock()
	c.shut()
	c.writeMux.Unlock()

	_ = c.conn.Close()
	log.Printf("[ws] %s unregistered, total: %d", c.id, total)
}

func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// periodicCleanup drops clients that stopped answering pings. Exits when
// the registry is empty; the next register restarts it.
func (h *Hub) periodicCleanup() {
	ticker := time.NewTicker(cleanupEvery)
	defer ticker.Stop()

	for range ticker.C {
		h.mu.Lock()
		if len(h.clients) == 0 {
			h.cleanupRunning = false
			h.mu.Unlock()
			return
		}
		var stale []*client
		now := time.Now()
		for _, c := range h.clients {
			c.writeMux.Lock()
			if now.Sub(c.lastPong) > staleAfter {
				stale = append(stale, c)
			}
			c.writeMux.Unlock()
		}
		h.mu.Unlock()

		for _, c := range stale {
			log.Printf("[ws] %s dead (no pong)", c.id)
			h.unregister(c)
		}
	}
}

/*
|--------------------------------------------------------------------------
| Broadcast
|--------------------------------------------------------------------------
*/

// Run - Forward board snapshots to every display until ctx ends or the
// channel closes. Bursts inside the debounce window send only the last one.
func (h *Hub) Run(ctx context.Context, updates <-chan []models.Vessel) {
	var (
		pending []models.Vessel
		timer   *time.Timer
		fire    <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			pending = snap
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
			} else {
				timer.Reset(debounceDelay)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			h.Publish(BuildMessage(pending, time.Now()))
		}
	}
}

// Publish - Cache msg for new clients and fan it out with bounded workers.
func (h *Hub) Publish(msg BoardMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[ws] marshal board: %v", err)
		return
	}

	h.lastMu.Lock()
	h.lastMsg = payload
	h.lastMu.Unlock()

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	sem := make(chan struct{}, maxFanout)
	var wg sync.WaitGroup
	for _, c := range clients {
		wg.Add(1)
		sem <- struct{}{}
		go func(c *client) {
			defer wg.Done()
			defer func() { <-sem }()
			h.write(c, payload)
		}(c)
	}
	wg.Wait()
}

func (h *Hub) write(c *client, payload []byte) {
	c.writeMux.Lock()
	if c.closed {
		c.writeMux.Unlock()
		return
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	err := c.conn.WriteMessage(websocket.TextMessage, payload)
	c.writeMux.Unlock()

	if err != nil {
		log.Printf("[ws] %s write error: %v", c.id, err)
		go h.unregister(c)
	}
}

/*
|--------------------------------------------------------------------------
| WebSocket Handler
|--------------------------------------------------------------------------
*/

// Serve - Handler body for a display connection. Displays never send
// commands; reads only keep the pong deadline alive.
func (h *Hub) Serve(conn *websocket.Conn) {
	c := h.register(conn)
	defer h.unregister(c)

	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		c.writeMux.Lock()
		c.lastPong = time.Now()
		c.writeMux.Unlock()
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.writeMux.Lock()
				if c.closed {
					c.writeMux.Unlock()
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				err := conn.WriteMessage(websocket.PingMessage, nil)
				c.writeMux.Unlock()
				if err != nil {
					log.Printf("[ws] %s ping error: %v", c.id, err)
					return
				}
			case <-c.done:
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure,
			) {
				log.Printf("[ws] %s unexpected close: %v", c.id, err)
			}
			return
		}
	}
}
