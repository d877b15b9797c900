/*
Package handler provides the HTTP handlers of the marketplace API.

This file holds passwordless login: a visitor enters an e-mail address or phone
number, receives a six-digit code, and confirms it to bind the session to a user.
*/
package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"carrot/internal/app/db"
	dbc "carrot/internal/app/db/sqlc"
	"carrot/internal/pkg/errs"
	"carrot/internal/pkg/guard"
	"carrot/internal/pkg/logx"
	"carrot/internal/pkg/randx"
	"carrot/internal/pkg/req"
	"carrot/internal/pkg/resp"
	"carrot/internal/pkg/session"
)

const (
	// createTokenAttempts bounds retries when a freshly drawn code collides with a live one.
	createTokenAttempts = 3

	// LoginCodeTTL is how long a mailed code can be confirmed.
	LoginCodeTTL = 10 * time.Minute
)

type EnterInput struct {
	Email string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Phone string `json:"phone,omitempty" validate:"omitempty,numeric,min=8,max=15"`
}

// HandleEnter upserts the user behind an e-mail address or phone number and sends a login code.
func HandleEnter(deps *AppDeps) guard.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		var input EnterInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			return customErr
		}

		input.Email = strings.ToLower(strings.TrimSpace(input.Email))
		if input.Email == "" && input.Phone == "" {
			return errs.NewError(errs.ErrMissingField, "email")
		}
		if input.Email != "" && input.Phone != "" {
			return errs.NewError(errs.ErrInvalidParams)
		}

		var (
			user dbc.User
			err  error
		)
		if input.Email != "" {
			user, err = deps.DB.UpsertUserByEmail(r.Context(), text(input.Email))
		} else {
			user, err = deps.DB.UpsertUserByPhone(r.Context(), text(input.Phone))
		}
		if err != nil {
			return fmt.Errorf("upsert user: %w", err)
		}

		code, err := createLoginToken(r, deps, user.ID)
		if err != nil {
			return err
		}

		if input.Email != "" {
			if err := deps.Mailer.SendLoginCode(r.Context(), input.Email, code); err != nil {
				logx.Error(err, "enter: login mail delivery failed", "user_id", user.ID)
				return errs.NewError(errs.ErrMailDeliveryFailed)
			}
			deps.Metrics.LoginCodeIssued("email")
		} else {
			// No SMS provider is configured; the code is only visible in development logs.
			if deps.Config.IsDevelopment() {
				logx.Info("Login code issued for phone", "user_id", user.ID, "code", code)
			} else {
				logx.Info("Login code issued for phone", "user_id", user.ID)
			}
			deps.Metrics.LoginCodeIssued("phone")
		}

		resp.RespondOK(w, r)
		return nil
	}
}

func createLoginToken(r *http.Request, deps *AppDeps, userID int64) (string, error) {
	for attempt := 0; attempt < createTokenAttempts; attempt++ {
		code, err := randx.LoginCode()
		if err != nil {
			return "", err
		}

		_, err = deps.DB.CreateToken(r.Context(), dbc.CreateTokenParams{Payload: code, UserID: userID})
		if err == nil {
			return code, nil
		}
		if !db.IsUniqueViolation(err) {
			return "", fmt.Errorf("create login token: %w", err)
		}

		logx.Warn("login code collision, retrying", "attempt", attempt+1)
	}

	return "", fmt.Errorf("create login token: no free code after %d attempts", createTokenAttempts)
}

type ConfirmInput struct {
	Token string `json:"token" validate:"required"`
}

// HandleConfirm exchanges a login code for an authenticated session.
func HandleConfirm(deps *AppDeps) guard.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		var input ConfirmInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			return customErr
		}

		if !randx.IsValidLoginCode(input.Token) {
			return errs.NewError(errs.ErrInvalidParams)
		}

		token, err := deps.DB.GetToken(r.Context(), dbc.GetTokenParams{
			Payload:      input.Token,
			CreatedAfter: pgtype.Timestamptz{Time: time.Now().Add(-LoginCodeTTL), Valid: true},
		})
		if err != nil {
			if db.IsNotFound(err) {
				return errs.NewError(errs.ErrTokenNotFound)
			}
			return fmt.Errorf("get token: %w", err)
		}

		if err := deps.DB.DeleteUserTokens(r.Context(), token.UserID); err != nil {
			return fmt.Errorf("delete user tokens: %w", err)
		}

		sess := session.FromContext(r.Context())
		sess.Renew()
		sess.SetUserID(token.UserID)
		logx.Info("User signed in", "user_id", token.UserID)

		resp.RespondOK(w, r)
		return nil
	}
}
