package live

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"carrot/internal/pkg/logx"
)

const broadcastChannelBuffer = 256

// WsCloseCodeSessionReplaced tells a browser tab that the same viewer connected elsewhere.
const WsCloseCodeSessionReplaced = 4001

// Room is the hub of one followed resource. All client bookkeeping happens on
// the Run goroutine; other goroutines talk to it through channels.
type Room struct {
	Key string

	hub     *Hub
	clients map[string]*Client

	broadcast  chan Event
	register   chan *Client
	unregister chan *Client

	stop     chan struct{}
	stopOnce sync.Once

	// done is closed once Run has returned.
	done chan struct{}

	shutdownTimer *time.Timer

	// mu guards clients for viewerCount readers.
	mu sync.RWMutex

	logger zerolog.Logger
}

func newRoom(key string, h *Hub) *Room {
	return &Room{
		Key:           key,
		hub:           h,
		clients:       make(map[string]*Client),
		broadcast:     make(chan Event, broadcastChannelBuffer),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
		shutdownTimer: time.NewTimer(h.inactivityTimeout),
		logger:        logx.Logger().With().Str("room", key).Logger(),
	}
}

// Stop ends the Run loop and disconnects every viewer.
func (r *Room) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
}

func (r *Room) finished() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

func (r *Room) registerClient(c *Client) bool {
	select {
	case r.register <- c:
		return true
	case <-r.done:
		return false
	}
}

func (r *Room) unregisterClient(c *Client) {
	select {
	case r.unregister <- c:
	case <-r.done:
	}
}

func (r *Room) publish(ev Event) {
	select {
	case r.broadcast <- ev:
	case <-r.done:
	default:
		r.logger.Warn().Str("event_id", ev.ID).Msg("Broadcast channel full, dropping event.")
	}
}

func (r *Room) viewerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Run is the room's event loop. It returns on Stop or after the inactivity timeout.
func (r *Room) Run() {
	defer func() {
		r.shutdownTimer.Stop()

		r.mu.Lock()
		for id, c := range r.clients {
			c.closeSend(nil)
			delete(r.clients, id)
			r.hub.observer.ViewerLeft()
		}
		r.mu.Unlock()

		close(r.done)

		select {
		case r.hub.cleanup <- r:
		case <-r.hub.done:
		}

		r.logger.Info().Msg("Room loop finished.")
	}()

	for {
		select {
		case c := <-r.register:
			r.addClient(c)

		case c := <-r.unregister:
			r.removeClient(c)

		case ev := <-r.broadcast:
			r.fanOut(ev, nil)

		case <-r.shutdownTimer.C:
			r.logger.Info().Msgf("Room inactivity timeout (%s) reached.", r.hub.inactivityTimeout)
			return

		case <-r.stop:
			return
		}
	}
}

func (r *Room) addClient(c *Client) {
	r.mu.Lock()

	if existing, ok := r.clients[c.viewer.ID]; ok {
		r.logger.Warn().Str("viewer_id", c.viewer.ID).Msg("Viewer already connected. Replacing old connection.")
		existing.closeSend(websocket.FormatCloseMessage(WsCloseCodeSessionReplaced, "Session replaced by new connection."))
		delete(r.clients, c.viewer.ID)
		r.hub.observer.ViewerLeft()
	}

	if r.shutdownTimer.Stop() {
		select {
		case <-r.shutdownTimer.C:
		default:
		}
	}

	r.clients[c.viewer.ID] = c
	count := len(r.clients)
	r.mu.Unlock()

	r.hub.observer.ViewerJoined()
	r.logger.Info().Str("viewer_id", c.viewer.ID).Int("viewers", count).Msg("Viewer joined.")

	c.enqueue(NewEvent(TypeInit, r.Key, InitPayload{Viewer: c.viewer, ViewerCount: count}))
	r.fanOut(NewEvent(TypeViewerJoined, r.Key, ViewerPayload{Viewer: c.viewer, ViewerCount: count}), c)
}

func (r *Room) removeClient(c *Client) {
	r.mu.Lock()

	current, ok := r.clients[c.viewer.ID]
	left := ok && current == c
	if left {
		delete(r.clients, c.viewer.ID)
		c.closeSend(nil)
		r.hub.observer.ViewerLeft()
	}

	count := len(r.clients)
	if count == 0 {
		if r.shutdownTimer.Stop() {
			select {
			case <-r.shutdownTimer.C:
			default:
			}
		}
		r.shutdownTimer.Reset(r.hub.inactivityTimeout)
	}

	r.mu.Unlock()

	if left {
		r.logger.Info().Str("viewer_id", c.viewer.ID).Int("viewers", count).Msg("Viewer left.")
		r.fanOut(NewEvent(TypeViewerLeft, r.Key, ViewerPayload{Viewer: c.viewer, ViewerCount: count}), nil)
	}
}

// fanOut queues ev for every viewer except skip. Viewers whose queue is full are dropped.
func (r *Room) fanOut(ev Event, skip *Client) {
	data, err := json.Marshal(ev)
	if err != nil {
		r.logger.Error().Err(err).Str("event_id", ev.ID).Msg("Error marshaling event for broadcast.")
		return
	}

	var slow []*Client

	r.mu.RLock()
	for _, c := range r.clients {
		if c == skip {
			continue
		}
		if !c.trySend(data) {
			slow = append(slow, c)
		}
	}
	r.mu.RUnlock()

	for _, c := range slow {
		r.logger.Warn().Str("viewer_id", c.viewer.ID).Msg("Viewer send queue full, disconnecting.")
		r.removeClient(c)
	}
}
