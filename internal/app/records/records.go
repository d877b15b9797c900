/*
Package records lists the product records attached to a user: what they sold,
what they bought and what they marked as a favorite.

The three lists share one shape, so callers pick a Kind and call List; the
switch over kinds lives here and nowhere else.
*/
package records

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	db "carrot/internal/app/db/sqlc"
)

// Kind selects one of a user's record lists.
type Kind int

const (
	Sales Kind = iota + 1
	Purchases
	Favs
)

var kindNames = map[Kind]string{
	Sales:     "sales",
	Purchases: "purchases",
	Favs:      "favs",
}

// ParseKind maps a path segment ("sales", "purchases", "favs") to a Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// FavCount mirrors the {"favs": n} count object product lists carry.
type FavCount struct {
	Favs int64 `json:"favs"`
}

type ProductSummary struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Price int64    `json:"price"`
	Image string   `json:"image"`
	Count FavCount `json:"_count"`
}

// Record is one entry of any list.
type Record struct {
	ID        int64              `json:"id"`
	UserID    int64              `json:"userId"`
	ProductID int64              `json:"productId"`
	CreatedAt pgtype.Timestamptz `json:"createdAt"`
	Product   ProductSummary     `json:"product"`
}

// Lister is the subset of db.Querier List reads from.
type Lister interface {
	ListFavsByUser(ctx context.Context, userID int64) ([]db.ListFavsByUserRow, error)
	ListSalesByUser(ctx context.Context, userID int64) ([]db.ListSalesByUserRow, error)
	ListPurchasesByUser(ctx context.Context, userID int64) ([]db.ListPurchasesByUserRow, error)
}

// List returns userID's records of the given kind, newest first.
func List(ctx context.Context, q Lister, kind Kind, userID int64) ([]Record, error) {
	switch kind {
	case Sales:
		rows, err := q.ListSalesByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("list sales: %w", err)
		}
		return convert(rows, func(r db.ListSalesByUserRow) Record {
			return newRecord(r.ID, r.UserID, r.ProductID, r.CreatedAt, r.ProductName, r.ProductPrice, r.ProductImage, r.ProductFavCount)
		}), nil

	case Purchases:
		rows, err := q.ListPurchasesByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("list purchases: %w", err)
		}
		return convert(rows, func(r db.ListPurchasesByUserRow) Record {
			return newRecord(r.ID, r.UserID, r.ProductID, r.CreatedAt, r.ProductName, r.ProductPrice, r.ProductImage, r.ProductFavCount)
		}), nil

	case Favs:
		rows, err := q.ListFavsByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("list favs: %w", err)
		}
		return convert(rows, func(r db.ListFavsByUserRow) Record {
			return newRecord(r.ID, r.UserID, r.ProductID, r.CreatedAt, r.ProductName, r.ProductPrice, r.ProductImage, r.ProductFavCount)
		}), nil
	}

	return nil, fmt.Errorf("unknown record kind %s", kind)
}

func convert[T any](rows []T, fn func(T) Record) []Record {
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return out
}

func newRecord(id, userID, productID int64, createdAt pgtype.Timestamptz, name string, price int64, image string, favs int64) Record {
	return Record{
		ID:        id,
		UserID:    userID,
		ProductID: productID,
		CreatedAt: createdAt,
		Product: ProductSummary{
			ID:    productID,
			Name:  name,
			Price: price,
			Image: image,
			Count: FavCount{Favs: favs},
		},
	}
}
