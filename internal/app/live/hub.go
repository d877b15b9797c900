/*
Package live pushes newly persisted chat and stream messages to connected browsers.

The Hub owns one Room per followed resource ("chat:12", "stream:3"). Rooms are
created when the first viewer connects, run a single event loop goroutine, and
shut themselves down after a period without viewers. Messages are written through
the HTTP API and only fanned out here; the socket is read-only for viewers.
*/
package live

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"carrot/internal/pkg/logx"
)

// RoomInactivityTimeout is how long a room without viewers is kept alive.
const RoomInactivityTimeout = 5 * time.Minute

// Observer is told about viewers joining and leaving. *metrics.Metrics satisfies it.
type Observer interface {
	ViewerJoined()
	ViewerLeft()
}

type nopObserver struct{}

func (nopObserver) ViewerJoined() {}
func (nopObserver) ViewerLeft()   {}

// Hub coordinates all live rooms.
type Hub struct {
	rooms map[string]*Room
	mu    sync.Mutex

	// cleanup receives rooms whose loop has ended.
	cleanup chan *Room
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup

	observer          Observer
	inactivityTimeout time.Duration

	logger zerolog.Logger
}

// NewHub starts a Hub. obs may be nil.
func NewHub(obs Observer) *Hub {
	if obs == nil {
		obs = nopObserver{}
	}

	h := &Hub{
		rooms:             make(map[string]*Room),
		cleanup:           make(chan *Room, 16),
		done:              make(chan struct{}),
		observer:          obs,
		inactivityTimeout: RoomInactivityTimeout,
		logger:            logx.Logger().With().Str("component", "LiveHub").Logger(),
	}

	h.wg.Add(1)
	go h.runCleanupLoop()

	return h
}

func (h *Hub) runCleanupLoop() {
	defer h.wg.Done()

	for {
		select {
		case room := <-h.cleanup:
			h.deleteRoom(room)
		case <-h.done:
			return
		}
	}
}

// deleteRoom removes room unless the key already points at a newer room.
func (h *Hub) deleteRoom(room *Room) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.rooms[room.Key]; ok && current == room {
		delete(h.rooms, room.Key)
		h.logger.Info().Str("room", room.Key).Msg("Room removed.")
	}
}

// room returns the running room for key, starting one if needed.
func (h *Hub) room(key string) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()

	if r, ok := h.rooms[key]; ok && !r.finished() {
		return r
	}

	r := newRoom(key, h)
	h.rooms[key] = r
	go r.Run()

	h.logger.Info().Str("room", key).Msg("Room started.")
	return r
}

// Publish fans ev out to the viewers of key. Without viewers it does nothing.
func (h *Hub) Publish(key string, ev Event) {
	h.mu.Lock()
	r, ok := h.rooms[key]
	h.mu.Unlock()

	if !ok {
		return
	}
	r.publish(ev)
}

// ViewerCount reports how many viewers are connected to key.
func (h *Hub) ViewerCount(key string) int {
	h.mu.Lock()
	r, ok := h.rooms[key]
	h.mu.Unlock()

	if !ok {
		return 0
	}
	return r.viewerCount()
}

// Attach runs the lifecycle of one upgraded connection in room key. It blocks until the viewer disconnects.
func (h *Hub) Attach(conn *websocket.Conn, key string, viewer Viewer) {
	for attempt := 0; attempt < 2; attempt++ {
		r := h.room(key)
		c := newClient(r, conn, viewer)

		if !r.registerClient(c) {
			// The room stopped between lookup and registration; a fresh one is started on retry.
			continue
		}

		go c.WritePump()
		c.ReadPump()
		return
	}

	h.logger.Warn().Str("room", key).Msg("Could not register viewer.")
	conn.Close()
}

// Shutdown stops every room and the cleanup loop.
func (h *Hub) Shutdown() {
	h.once.Do(func() {
		h.logger.Info().Msg("Shutting down live hub...")

		h.mu.Lock()
		for _, r := range h.rooms {
			r.Stop()
		}
		h.rooms = make(map[string]*Room)
		h.mu.Unlock()

		close(h.done)
		h.wg.Wait()

		h.logger.Info().Msg("Live hub shutdown complete.")
	})
}
