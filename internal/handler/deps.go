package handler

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/jackc/pgx/v5/pgtype"

	"carrot/internal/app/cache"
	db "carrot/internal/app/db/sqlc"
	"carrot/internal/app/live"
	"carrot/internal/app/mail"
	"carrot/internal/app/revalidate"
	"carrot/internal/app/storage"
	"carrot/internal/configs"
	"carrot/internal/pkg/errs"
	"carrot/internal/pkg/metrics"
	"carrot/internal/pkg/req"
	"carrot/internal/pkg/session"
)

// AppDeps carries every process-wide handle. main builds it once.
type AppDeps struct {
	Config      *configs.AppConfig
	DB          db.Querier
	Storage     storage.StorageService
	Mailer      mail.Mailer
	Cache       cache.Cache
	Revalidator *revalidate.Revalidator
	Hub         *live.Hub
	Metrics     *metrics.Metrics
	Sessions    sessions.Store
}

// sessionUser returns the authenticated session user or ErrUnauthorized.
func sessionUser(r *http.Request) (int64, error) {
	id, ok := session.FromContext(r.Context()).UserID()
	if !ok {
		return 0, errs.NewError(errs.ErrUnauthorized)
	}
	return id, nil
}

// pathID reads the {id} segment. Ids that are not positive integers are reported
// as the resource's not-found error.
func pathID(r *http.Request, notFound int) (int64, error) {
	id, ok := req.PathID(r, "id")
	if !ok {
		return 0, errs.NewError(notFound)
	}
	return id, nil
}

func text(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

// assetURL turns a stored object key into its public URL.
func (deps *AppDeps) assetURL(key pgtype.Text) string {
	if !key.Valid {
		return ""
	}
	return deps.Storage.PublicURL(key.String)
}
