package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"carrot/internal/app/db"
	dbc "carrot/internal/app/db/sqlc"
	"carrot/internal/app/live"
	"carrot/internal/app/product"
	"carrot/internal/pkg/errs"
	"carrot/internal/pkg/guard"
	"carrot/internal/pkg/page"
	"carrot/internal/pkg/req"
	"carrot/internal/pkg/resp"
	"carrot/internal/pkg/session"
)

type streamMessageView struct {
	ID      int64              `json:"id"`
	Message string             `json:"message"`
	User    live.MessageAuthor `json:"user"`
}

type streamView struct {
	ID               int64              `json:"id"`
	UserID           int64              `json:"userId"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	Price            int64              `json:"price"`
	VideoProviderID  string             `json:"videoProviderId,omitempty"`
	VideoProviderURL string             `json:"videoProviderUrl,omitempty"`
	VideoProviderKey string             `json:"videoProviderKey,omitempty"`
	CreatedAt        pgtype.Timestamptz `json:"createdAt"`
}

type streamDetailView struct {
	streamView
	Messages []streamMessageView `json:"messages"`
}

// streamFromModel projects s. The provider key is only shown to the owner.
func streamFromModel(s dbc.Stream, viewerID int64) streamView {
	v := streamView{
		ID:               s.ID,
		UserID:           s.UserID,
		Name:             s.Name,
		Description:      s.Description,
		Price:            s.Price,
		VideoProviderID:  s.VideoProviderID,
		VideoProviderURL: s.VideoProviderUrl.String,
		CreatedAt:        s.CreatedAt,
	}
	if viewerID == s.UserID {
		v.VideoProviderKey = s.VideoProviderKey.String
	}
	return v
}

// HandleStreams serves GET (paged list) and POST (create) on /api/streams.
func HandleStreams(deps *AppDeps) guard.HandlerFunc {
	create := handleCreateStream(deps)

	return func(w http.ResponseWriter, r *http.Request) error {
		if r.Method == http.MethodPost {
			return create(w, r)
		}

		p := page.FromRequest(r)
		rows, err := deps.DB.ListStreams(r.Context(), dbc.ListStreamsParams{
			Limit:  p.Limit(),
			Offset: p.Offset(),
		})
		if err != nil {
			return fmt.Errorf("list streams: %w", err)
		}

		streams := make([]streamView, 0, len(rows))
		for _, row := range rows {
			streams = append(streams, streamView{
				ID:          row.ID,
				UserID:      row.UserID,
				Name:        row.Name,
				Description: row.Description,
				Price:       row.Price,
				CreatedAt:   row.CreatedAt,
			})
		}

		resp.RespondSuccess(w, r, resp.Fields{"streams": streams})
		return nil
	}
}

type CreateStreamInput struct {
	Name             string         `json:"name" validate:"required,max=80"`
	Price            *product.Price `json:"price" validate:"required"`
	Description      string         `json:"description" validate:"required,max=2000"`
	VideoProviderID  string         `json:"videoProviderId" validate:"required,max=128"`
	VideoProviderURL string         `json:"videoProviderUrl,omitempty" validate:"omitempty,url"`
	VideoProviderKey string         `json:"videoProviderKey,omitempty" validate:"omitempty,max=256"`
}

func handleCreateStream(deps *AppDeps) guard.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		userID, err := sessionUser(r)
		if err != nil {
			return err
		}

		var input CreateStreamInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			return customErr
		}

		input.Name = strings.TrimSpace(input.Name)
		if input.Name == "" {
			return errs.NewError(errs.ErrMissingField, "name")
		}

		stream, err := deps.DB.CreateStream(r.Context(), dbc.CreateStreamParams{
			UserID:           userID,
			Name:             input.Name,
			Description:      strings.TrimSpace(input.Description),
			Price:            input.Price.Int64(),
			VideoProviderID:  input.VideoProviderID,
			VideoProviderUrl: text(input.VideoProviderURL),
			VideoProviderKey: text(input.VideoProviderKey),
		})
		if err != nil {
			return fmt.Errorf("create stream: %w", err)
		}

		resp.RespondSuccess(w, r, resp.Fields{"stream": streamFromModel(stream, userID)})
		return nil
	}
}

// HandleGetStream serves a stream with its messages.
func HandleGetStream(deps *AppDeps) guard.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		id, err := pathID(r, errs.ErrStreamNotFound)
		if err != nil {
			return err
		}

		stream, err := deps.DB.GetStream(r.Context(), id)
		if err != nil {
			if db.IsNotFound(err) {
				return errs.NewError(errs.ErrStreamNotFound)
			}
			return fmt.Errorf("get stream: %w", err)
		}

		rows, err := deps.DB.ListStreamMessages(r.Context(), id)
		if err != nil {
			return fmt.Errorf("list stream messages: %w", err)
		}

		viewerID, _ := session.FromContext(r.Context()).UserID()
		view := streamDetailView{
			streamView: streamFromModel(stream, viewerID),
			Messages:   make([]streamMessageView, 0, len(rows)),
		}
		for _, row := range rows {
			view.Messages = append(view.Messages, streamMessageView{
				ID:      row.ID,
				Message: row.Message,
				User:    deps.messageAuthor(row.UserID, row.UserAvatar),
			})
		}

		resp.RespondSuccess(w, r, resp.Fields{"stream": view})
		return nil
	}
}

// HandlePostStreamMessage stores a stream chat message and pushes it to the stream's viewers.
func HandlePostStreamMessage(deps *AppDeps) guard.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		userID, err := sessionUser(r)
		if err != nil {
			return err
		}

		id, err := pathID(r, errs.ErrStreamNotFound)
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

		if _, err := deps.DB.GetStream(r.Context(), id); err != nil {
			if db.IsNotFound(err) {
				return errs.NewError(errs.ErrStreamNotFound)
			}
			return fmt.Errorf("get stream: %w", err)
		}

		author, err := authorOf(r, deps, userID)
		if err != nil {
			return err
		}

		msg, err := deps.DB.CreateStreamMessage(r.Context(), dbc.CreateStreamMessageParams{
			StreamID: id,
			UserID:   userID,
			Message:  input.Message,
		})
		if err != nil {
			return fmt.Errorf("create stream message: %w", err)
		}

		key := live.RoomKey(live.KindStream, id)
		deps.Hub.Publish(key, live.NewEvent(live.TypeMessage, key, live.MessagePayload{
			ID:      msg.ID,
			Message: msg.Message,
			User:    author,
		}))
		deps.Metrics.MessagePosted(string(live.KindStream))

		resp.RespondSuccess(w, r, resp.Fields{"message": streamMessageView{
			ID:      msg.ID,
			Message: msg.Message,
			User:    author,
		}})
		return nil
	}
}
