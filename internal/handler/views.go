package handler

import (
	"github.com/jackc/pgx/v5/pgtype"

	db "carrot/internal/app/db/sqlc"
	"carrot/internal/app/live"
	"carrot/internal/app/records"
)

// Response projections. Image and avatar fields always carry public URLs, never storage keys.

type userSummary struct {
	ID     int64  `json:"id"`
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

type productView struct {
	ID          int64              `json:"id"`
	UserID      int64              `json:"userId"`
	Name        string             `json:"name"`
	Price       int64              `json:"price"`
	Description string             `json:"description"`
	Image       string             `json:"image"`
	Completed   bool               `json:"completed"`
	CreatedAt   pgtype.Timestamptz `json:"createdAt"`
	UpdatedAt   pgtype.Timestamptz `json:"updatedAt"`
	Count       *records.FavCount  `json:"_count,omitempty"`
	User        *userSummary       `json:"user,omitempty"`
}

func (deps *AppDeps) productFromModel(p db.Product) productView {
	return productView{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Image:       deps.Storage.PublicURL(p.Image),
		Completed:   p.Completed,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type reviewView struct {
	ID        int64              `json:"id"`
	CreatedBy userSummary        `json:"createdBy"`
	Score     int32              `json:"score"`
	Review    string             `json:"review"`
	CreatedAt pgtype.Timestamptz `json:"createdAt"`
}

func (deps *AppDeps) reviewsFromRows(rows []db.ListReviewsForUserRow) []reviewView {
	out := make([]reviewView, 0, len(rows))
	for _, row := range rows {
		out = append(out, reviewView{
			ID: row.ID,
			CreatedBy: userSummary{
				ID:     row.CreatedByID,
				Name:   row.CreatedByName,
				Avatar: deps.assetURL(row.CreatedByAvatar),
			},
			Score:     row.Score,
			Review:    row.Review,
			CreatedAt: row.CreatedAt,
		})
	}
	return out
}

type profileView struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email,omitempty"`
	Phone     string             `json:"phone,omitempty"`
	Avatar    string             `json:"avatar,omitempty"`
	CreatedAt pgtype.Timestamptz `json:"createdAt"`
}

type publicProfileView struct {
	profileView
	ReceivedReviews []reviewView `json:"receivedReviews"`
}

// ownProfile includes contact details; public profiles leave them out.
func (deps *AppDeps) ownProfile(u db.User) profileView {
	v := deps.publicProfile(u)
	v.Email = u.Email.String
	v.Phone = u.Phone.String
	return v
}

func (deps *AppDeps) publicProfile(u db.User) profileView {
	return profileView{
		ID:        u.ID,
		Name:      u.Name,
		Avatar:    deps.assetURL(u.Avatar),
		CreatedAt: u.CreatedAt,
	}
}

func (deps *AppDeps) messageAuthor(userID int64, avatar pgtype.Text) live.MessageAuthor {
	return live.MessageAuthor{ID: userID, Avatar: deps.assetURL(avatar)}
}
