package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"carrot/internal/app/db"
	dbc "carrot/internal/app/db/sqlc"
	"carrot/internal/app/live"
	"carrot/internal/pkg/errs"
	"carrot/internal/pkg/guard"
	"carrot/internal/pkg/logx"
	"carrot/internal/pkg/req"
	"carrot/internal/pkg/resp"
)

type chatRoomView struct {
	ID           int64              `json:"id"`
	ProductID    int64              `json:"productId"`
	BuyerID      int64              `json:"buyerId"`
	SellerID     int64              `json:"sellerId"`
	UpdatedAt    pgtype.Timestamptz `json:"updatedAt"`
	ProductName  string             `json:"productName,omitempty"`
	ProductImage string             `json:"productImage,omitempty"`
	ProductPrice *int64             `json:"productPrice,omitempty"`
	LastMessage  *string            `json:"lastMessage,omitempty"`
}

type chatMessageView struct {
	ID        int64              `json:"id"`
	Message   string             `json:"message"`
	CreatedAt pgtype.Timestamptz `json:"createdAt"`
	User      live.MessageAuthor `json:"user"`
}

// HandleChatRooms serves GET (the session user's rooms) and POST (get-or-create a
// room on a product) on /api/chats.
func HandleChatRooms(deps *AppDeps) guard.HandlerFunc {
	open := handleOpenChatRoom(deps)

	return func(w http.ResponseWriter, r *http.Request) error {
		if r.Method == http.MethodPost {
			return open(w, r)
		}

		userID, err := sessionUser(r)
		if err != nil {
			return err
		}

		rows, err := deps.DB.ListChatRoomsForUser(r.Context(), userID)
		if err != nil {
			return fmt.Errorf("list chat rooms: %w", err)
		}

		rooms := make([]chatRoomView, 0, len(rows))
		for _, row := range rows {
			last := row.LastMessage
			rooms = append(rooms, chatRoomView{
				ID:           row.ID,
				ProductID:    row.ProductID,
				BuyerID:      row.BuyerID,
				SellerID:     row.SellerID,
				UpdatedAt:    row.UpdatedAt,
				ProductName:  row.ProductName,
				ProductImage: deps.Storage.PublicURL(row.ProductImage),
				LastMessage:  &last,
			})
		}

		resp.RespondSuccess(w, r, resp.Fields{"chatRooms": rooms})
		return nil
	}
}

type OpenChatRoomInput struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
}

func handleOpenChatRoom(deps *AppDeps) guard.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		userID, err := sessionUser(r)
		if err != nil {
			return err
		}

		var input OpenChatRoomInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			return customErr
		}

		p, err := deps.DB.GetProduct(r.Context(), input.ProductID)
		if err != nil {
			if db.IsNotFound(err) {
				return errs.NewError(errs.ErrProductNotFound)
			}
			return fmt.Errorf("get product: %w", err)
		}
		if p.UserID == userID {
			return errs.NewError(errs.ErrSelfChat)
		}

		room, err := deps.DB.UpsertChatRoom(r.Context(), dbc.UpsertChatRoomParams{
			ProductID: p.ID,
			BuyerID:   userID,
			SellerID:  p.UserID,
		})
		if err != nil {
			return fmt.Errorf("upsert chat room: %w", err)
		}

		resp.RespondSuccess(w, r, resp.Fields{"chatRoom": chatRoomView{
			ID:        room.ID,
			ProductID: room.ProductID,
			BuyerID:   room.BuyerID,
			SellerID:  room.SellerID,
			UpdatedAt: room.UpdatedAt,
		}})
		return nil
	}
}

// participantRoom loads chat room id and checks that userID is its buyer or seller.
func participantRoom(r *http.Request, deps *AppDeps, id, userID int64) (dbc.GetChatRoomRow, error) {
	room, err := deps.DB.GetChatRoom(r.Context(), id)
	if err != nil {
		if db.IsNotFound(err) {
			return room, errs.NewError(errs.ErrChatRoomNotFound)
		}
		return room, fmt.Errorf("get chat room: %w", err)
	}
	if room.BuyerID != userID && room.SellerID != userID {
		return room, errs.NewError(errs.ErrForbidden)
	}
	return room, nil
}

// HandleGetChatRoom serves a room and its messages to one of its participants.
func HandleGetChatRoom(deps *AppDeps) guard.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		userID, err := sessionUser(r)
		if err != nil {
			return err
		}

		id, err := pathID(r, errs.ErrChatRoomNotFound)
		if err != nil {
			return err
		}

		room, err := participantRoom(r, deps, id, userID)
		if err != nil {
			return err
		}

		rows, err := deps.DB.ListChatMessages(r.Context(), id)
		if err != nil {
			return fmt.Errorf("list chat messages: %w", err)
		}

		messages := make([]chatMessageView, 0, len(rows))
		for _, row := range rows {
			messages = append(messages, chatMessageView{
				ID:        row.ID,
				Message:   row.Message,
				CreatedAt: row.CreatedAt,
				User:      deps.messageAuthor(row.UserID, row.UserAvatar),
			})
		}

		price := room.ProductPrice
		resp.RespondSuccess(w, r, resp.Fields{
			"chatRoom": chatRoomView{
				ID:           room.ID,
				ProductID:    room.ProductID,
				BuyerID:      room.BuyerID,
				SellerID:     room.SellerID,
				UpdatedAt:    room.UpdatedAt,
				ProductName:  room.ProductName,
				ProductImage: deps.Storage.PublicURL(room.ProductImage),
				ProductPrice: &price,
			},
			"messages": messages,
		})
		return nil
	}
}

type MessageInput struct {
	Message string `json:"message" validate:"required,max=1000"`
}

func (in *MessageInput) normalize() *errs.CustomError {
	in.Message = strings.TrimSpace(in.Message)
	if in.Message == "" {
		return errs.NewError(errs.ErrMissingField, "message")
	}
	return nil
}

// HandlePostChatMessage stores a message in a chat room and pushes it to the room's live viewers.
func HandlePostChatMessage(deps *AppDeps) guard.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		userID, err := sessionUser(r)
		if err != nil {
			return err
		}

		id, err := pathID(r, errs.ErrChatRoomNotFound)
		if err != nil {
			return err
		}

		var input MessageInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			return customErr
		}
		if customErr := input.normalize(); customErr != nil {
			return customErr
		}

		if _, err := participantRoom(r, deps, id, userID); err != nil {
			return err
		}

		author, err := authorOf(r, deps, userID)
		if err != nil {
			return err
		}

		// The message is the only write that can fail the request.
		msg, err := deps.DB.CreateChatMessage(r.Context(), dbc.CreateChatMessageParams{
			ChatRoomID: id,
			UserID:     userID,
			Message:    input.Message,
		})
		if err != nil {
			return fmt.Errorf("create chat message: %w", err)
		}

		if err := deps.DB.TouchChatRoom(r.Context(), id); err != nil {
			logx.Ctx(r.Context()).Warn().Err(err).Int64("chat_room_id", id).Msg("Failed to touch chat room")
		}

		key := live.RoomKey(live.KindChat, id)
		deps.Hub.Publish(key, live.NewEvent(live.TypeMessage, key, live.MessagePayload{
			ID:      msg.ID,
			Message: msg.Message,
			User:    author,
		}))
		deps.Metrics.MessagePosted(string(live.KindChat))

		resp.RespondOK(w, r)
		return nil
	}
}

func authorOf(r *http.Request, deps *AppDeps, userID int64) (live.MessageAuthor, error) {
	user, err := deps.DB.GetUser(r.Context(), userID)
	if err != nil {
		if db.IsNotFound(err) {
			return live.MessageAuthor{}, errs.NewError(errs.ErrUserNotFound)
		}
		return live.MessageAuthor{}, fmt.Errorf("get user: %w", err)
	}
	return deps.messageAuthor(user.ID, user.Avatar), nil
}
