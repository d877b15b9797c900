package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"carrot/internal/app/db"
	dbc "carrot/internal/app/db/sqlc"
	"carrot/internal/app/records"
	"carrot/internal/app/storage"
	"carrot/internal/pkg/errs"
	"carrot/internal/pkg/guard"
	"carrot/internal/pkg/logx"
	"carrot/internal/pkg/req"
	"carrot/internal/pkg/resp"
)

// HandleMe serves GET (profile) and POST (profile edit) on /api/users/me.
func HandleMe(deps *AppDeps) guard.HandlerFunc {
	update := handleUpdateProfile(deps)

	return func(w http.ResponseWriter, r *http.Request) error {
		if r.Method == http.MethodPost {
			return update(w, r)
		}

		userID, err := sessionUser(r)
		if err != nil {
			return err
		}

		user, err := deps.DB.GetUser(r.Context(), userID)
		if err != nil {
			if db.IsNotFound(err) {
				return errs.NewError(errs.ErrUserNotFound)
			}
			return fmt.Errorf("get user: %w", err)
		}

		resp.RespondSuccess(w, r, resp.Fields{"profile": deps.ownProfile(user)})
		return nil
	}
}

type UpdateProfileInput struct {
	Name     string `json:"name,omitempty" validate:"omitempty,max=40"`
	Email    string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,numeric,min=8,max=15"`
	AvatarID string `json:"avatarId,omitempty"`
}

func handleUpdateProfile(deps *AppDeps) guard.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		userID, err := sessionUser(r)
		if err != nil {
			return err
		}

		var input UpdateProfileInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			return customErr
		}

		input.Name = strings.TrimSpace(input.Name)
		input.Email = strings.ToLower(strings.TrimSpace(input.Email))
		if input.AvatarID != "" && !strings.HasPrefix(input.AvatarID, storage.FolderAvatars+"/") {
			return errs.NewError(errs.ErrInvalidParams)
		}

		oldUser, err := deps.DB.GetUser(r.Context(), userID)
		if err != nil {
			if db.IsNotFound(err) {
				return errs.NewError(errs.ErrUserNotFound)
			}
			return fmt.Errorf("get user: %w", err)
		}

		_, err = deps.DB.UpdateUserProfile(r.Context(), dbc.UpdateUserProfileParams{
			ID:     userID,
			Name:   text(input.Name),
			Email:  text(input.Email),
			Phone:  text(input.Phone),
			Avatar: text(input.AvatarID),
		})
		if err != nil {
			switch {
			case db.IsUniqueViolationOn(err, db.UsersEmailKey):
				return errs.NewError(errs.ErrEmailTaken)
			case db.IsUniqueViolationOn(err, db.UsersPhoneKey):
				return errs.NewError(errs.ErrPhoneTaken)
			}
			return fmt.Errorf("update user profile: %w", err)
		}

		oldKey := oldUser.Avatar.String
		if input.AvatarID != "" && oldKey != "" && oldKey != input.AvatarID {
			go func(k string) {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := deps.Storage.Delete(ctx, k); err != nil {
					logx.Warn("update_profile: failed to delete replaced avatar", "key", k, "error", err.Error())
				}
			}(oldKey)
		}

		resp.RespondOK(w, r)
		return nil
	}
}

// HandleListRecords serves /api/users/me/{kind}. With ?otherProfileId= it lists
// another user's records and needs no session.
func HandleListRecords(deps *AppDeps) guard.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		kind, ok := records.ParseKind(chi.URLParam(r, "kind"))
		if !ok {
			return errs.NewError(errs.ErrListKindNotFound)
		}

		var userID int64
		if other := r.URL.Query().Get("otherProfileId"); other != "" {
			if userID, ok = req.ParseID(other); !ok {
				return errs.NewError(errs.ErrUserNotFound)
			}
		} else {
			var err error
			if userID, err = sessionUser(r); err != nil {
				return err
			}
		}

		list, err := records.List(r.Context(), deps.DB, kind, userID)
		if err != nil {
			return err
		}
		for i := range list {
			list[i].Product.Image = deps.Storage.PublicURL(list[i].Product.Image)
		}

		resp.RespondSuccess(w, r, resp.Fields{kind.String(): list})
		return nil
	}
}

// HandleGetProfile serves a public profile with the reviews the user received.
func HandleGetProfile(deps *AppDeps) guard.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		id, err := pathID(r, errs.ErrUserNotFound)
		if err != nil {
			return err
		}

		user, err := deps.DB.GetUser(r.Context(), id)
		if err != nil {
			if db.IsNotFound(err) {
				return errs.NewError(errs.ErrUserNotFound)
			}
			return fmt.Errorf("get user: %w", err)
		}

		reviews, err := deps.DB.ListReviewsForUser(r.Context(), id)
		if err != nil {
			return fmt.Errorf("list reviews: %w", err)
		}

		profile := publicProfileView{
			profileView:     deps.publicProfile(user),
			ReceivedReviews: deps.reviewsFromRows(reviews),
		}

		resp.RespondSuccess(w, r, resp.Fields{"profile": profile})
		return nil
	}
}

// HandleListReviews lists the reviews the session user received.
func HandleListReviews(deps *AppDeps) guard.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		userID, err := sessionUser(r)
		if err != nil {
			return err
		}

		rows, err := deps.DB.ListReviewsForUser(r.Context(), userID)
		if err != nil {
			return fmt.Errorf("list reviews: %w", err)
		}

		resp.RespondSuccess(w, r, resp.Fields{"reviews": deps.reviewsFromRows(rows)})
		return nil
	}
}
