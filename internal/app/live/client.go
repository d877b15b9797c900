package live

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"carrot/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// viewers only send control frames; anything larger is a protocol violation.
	maxMessageSize = 512

	sendQueueSize = 64
)

// Client is one viewer's WebSocket connection.
type Client struct {
	room   *Room
	conn   *websocket.Conn
	viewer Viewer

	// send is written and closed only from the room's Run goroutine.
	send      chan []byte
	closeOnce sync.Once

	// closeFrame, when set before send is closed, is written as the close message.
	closeFrame []byte

	logger zerolog.Logger
}

func newClient(room *Room, conn *websocket.Conn, viewer Viewer) *Client {
	return &Client{
		room:   room,
		conn:   conn,
		viewer: viewer,
		send:   make(chan []byte, sendQueueSize),
		logger: logx.Logger().With().
			Str("viewer_id", viewer.ID).
			Str("room", room.Key).
			Logger(),
	}
}

func (c *Client) trySend(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) enqueue(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		c.logger.Error().Err(err).Msg("Error marshaling event for viewer")
		return
	}
	if !c.trySend(data) {
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Viewer send queue full, dropping event")
	}
}

func (c *Client) closeSend(frame []byte) {
	c.closeOnce.Do(func() {
		c.closeFrame = frame
		close(c.send)
	})
}

// ReadPump keeps the read side alive for pongs and close frames, and unregisters the viewer when it ends.
func (c *Client) ReadPump() {
	defer func() {
		c.room.unregisterClient(c)
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error")
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (Client close/going away)")
			}
			return
		}
	}
}

// WritePump writes queued events and periodic pings until send is closed.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}

			if !ok {
				frame := c.closeFrame
				if frame == nil {
					frame = []byte{}
				}
				if err := c.conn.WriteMessage(websocket.CloseMessage, frame); err != nil {
					c.logger.Debug().Err(err).Msg("Error writing close message")
				}
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Error().Err(err).Msg("Error writing message")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug().Err(err).Msg("Error writing ping")
				return
			}
		}
	}
}
