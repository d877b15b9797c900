package live

import (
	"fmt"
	"time"

	"carrot/internal/pkg/randx"
)

// EventType names what an Event carries.
type EventType string

const (
	TypeInit         EventType = "INIT"
	TypeMessage      EventType = "MESSAGE"
	TypeViewerJoined EventType = "VIEWER_JOINED"
	TypeViewerLeft   EventType = "VIEWER_LEFT"
)

// Kind is the resource a live room follows.
type Kind string

const (
	KindChat   Kind = "chat"
	KindStream Kind = "stream"
)

// ParseKind accepts "chat" or "stream".
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindChat, KindStream:
		return Kind(s), true
	}
	return "", false
}

// RoomKey is the hub key of the room following resource id of kind.
func RoomKey(kind Kind, id int64) string {
	return fmt.Sprintf("%s:%d", kind, id)
}

// Viewer is one connected participant. Anonymous stream viewers carry a guest id and no UserID.
type Viewer struct {
	ID     string `json:"id"`
	UserID int64  `json:"userId,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// UserViewer builds the Viewer of an authenticated user.
func UserViewer(userID int64, avatar string) Viewer {
	return Viewer{ID: fmt.Sprintf("user:%d", userID), UserID: userID, Avatar: avatar}
}

// Event is the envelope pushed to every viewer.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Room      string    `json:"room"`
	Timestamp int64     `json:"timestamp"`
	Payload   any       `json:"payload"`
}

func NewEvent(t EventType, room string, payload any) Event {
	return Event{
		ID:        randx.EventID(),
		Type:      t,
		Room:      room,
		Timestamp: time.Now().UnixMilli(),
		Payload:   payload,
	}
}

// MessageAuthor is the {id, avatar} projection of a message's author.
type MessageAuthor struct {
	ID     int64  `json:"id"`
	Avatar string `json:"avatar,omitempty"`
}

// MessagePayload is a persisted chat or stream message.
type MessagePayload struct {
	ID      int64         `json:"id"`
	Message string        `json:"message"`
	User    MessageAuthor `json:"user"`
}

type InitPayload struct {
	Viewer      Viewer `json:"viewer"`
	ViewerCount int    `json:"viewerCount"`
}

type ViewerPayload struct {
	Viewer      Viewer `json:"viewer"`
	ViewerCount int    `json:"viewerCount"`
}
