package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"carrot/internal/app/db"
	"carrot/internal/app/live"
	"carrot/internal/pkg/auth/jwt"
	"carrot/internal/pkg/errs"
	"carrot/internal/pkg/guard"
	"carrot/internal/pkg/logx"
	"carrot/internal/pkg/randx"
	"carrot/internal/pkg/req"
	"carrot/internal/pkg/resp"
	"carrot/internal/pkg/session"
)

type TicketInput struct {
	Kind string `json:"kind" validate:"required,oneof=chat stream"`
	ID   int64  `json:"id" validate:"required,gt=0"`
}

// HandleIssueTicket gives the session user a short-lived ticket for one live room,
// for browsers that open the socket without the session cookie.
func HandleIssueTicket(deps *AppDeps) guard.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		userID, err := sessionUser(r)
		if err != nil {
			return err
		}

		var input TicketInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			return customErr
		}

		kind, _ := live.ParseKind(input.Kind)
		if err := checkRoomAccess(r, deps, kind, input.ID, userID); err != nil {
			return err
		}

		room := live.RoomKey(kind, input.ID)
		ticket, err := jwt.GenerateTicket(&jwt.Ticket{UserID: userID, Room: room}, deps.Config.JWTSecret, jwt.TicketExpiration)
		if err != nil {
			return fmt.Errorf("generate ticket: %w", err)
		}

		resp.RespondSuccess(w, r, resp.Fields{"ticket": ticket})
		return nil
	}
}

// checkRoomAccess verifies that the room exists and that userID may follow it.
// Chat rooms are limited to their participants; streams are public.
func checkRoomAccess(r *http.Request, deps *AppDeps, kind live.Kind, id, userID int64) error {
	switch kind {
	case live.KindChat:
		if userID <= 0 {
			return errs.NewError(errs.ErrUnauthorized)
		}
		_, err := participantRoom(r, deps, id, userID)
		return err

	case live.KindStream:
		if _, err := deps.DB.GetStream(r.Context(), id); err != nil {
			if db.IsNotFound(err) {
				return errs.NewError(errs.ErrStreamNotFound)
			}
			return fmt.Errorf("get stream: %w", err)
		}
		return nil
	}

	return errs.NewError(errs.ErrInvalidParams)
}

func newUpgrader(deps *AppDeps) *websocket.Upgrader {
	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.IsDevelopment() {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}
}

// HandleLiveSocket upgrades /ws/{kind}/{id} and attaches the viewer to the room.
// The viewer is the session user, else the ticket holder, else (streams only) a guest.
func HandleLiveSocket(deps *AppDeps, upgrader *websocket.Upgrader) guard.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		kind, ok := live.ParseKind(chi.URLParam(r, "kind"))
		if !ok {
			return errs.NewError(errs.ErrInvalidParams)
		}

		notFound := errs.ErrChatRoomNotFound
		if kind == live.KindStream {
			notFound = errs.ErrStreamNotFound
		}
		id, err := pathID(r, notFound)
		if err != nil {
			return err
		}

		key := live.RoomKey(kind, id)

		userID, ok := session.FromContext(r.Context()).UserID()
		if !ok {
			if ticket := jwt.VerifyTicket(r, deps.Config.JWTSecret, key); ticket != nil {
				userID = ticket.UserID
			} else if jwt.TicketFromRequest(r) != "" {
				return errs.NewError(errs.ErrTicketInvalid)
			}
		}

		if err := checkRoomAccess(r, deps, kind, id, userID); err != nil {
			return err
		}

		var viewer live.Viewer
		if userID > 0 {
			author, err := authorOf(r, deps, userID)
			if err != nil {
				return err
			}
			viewer = live.UserViewer(userID, author.Avatar)
		} else {
			guestID, err := randx.GuestID()
			if err != nil {
				return fmt.Errorf("generate guest id: %w", err)
			}
			viewer = live.Viewer{ID: guestID}
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// The upgrader has already answered the request.
			logx.Error(err, "Failed to upgrade connection to WebSocket", "room", key)
			return nil
		}

		logx.Info("WebSocket connection established", "room", key, "viewer_id", viewer.ID)
		deps.Hub.Attach(conn, key, viewer)
		return nil
	}
}
