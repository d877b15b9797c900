package handler

import (
	"fmt"
	"net/http"
	"strings"

	"carrot/internal/app/cache"
	"carrot/internal/app/db"
	dbc "carrot/internal/app/db/sqlc"
	"carrot/internal/app/product"
	"carrot/internal/app/records"
	"carrot/internal/app/storage"
	"carrot/internal/pkg/errs"
	"carrot/internal/pkg/guard"
	"carrot/internal/pkg/logx"
	"carrot/internal/pkg/page"
	"carrot/internal/pkg/req"
	"carrot/internal/pkg/resp"
	"carrot/internal/pkg/session"
)

// ProductInput is the body of product create and update. Price accepts "1,200" as well as 1200.
type ProductInput struct {
	Name        string         `json:"name" validate:"required,max=80"`
	Price       *product.Price `json:"price" validate:"required"`
	Description string         `json:"description" validate:"required,max=2000"`
	PhotoID     string         `json:"photoId,omitempty"`
}

func (in *ProductInput) normalize() *errs.CustomError {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.Name == "" {
		return errs.NewError(errs.ErrMissingField, "name")
	}
	if in.PhotoID != "" && !strings.HasPrefix(in.PhotoID, storage.FolderProducts+"/") {
		return errs.NewError(errs.ErrInvalidParams)
	}
	return nil
}

// HandleProducts serves GET (paged list) and POST (create) on /api/products.
func HandleProducts(deps *AppDeps) guard.HandlerFunc {
	create := handleCreateProduct(deps)

	return func(w http.ResponseWriter, r *http.Request) error {
		if r.Method == http.MethodPost {
			return create(w, r)
		}

		p := page.FromRequest(r)
		rows, err := deps.DB.ListProducts(r.Context(), dbc.ListProductsParams{
			Limit:  p.Limit(),
			Offset: p.Offset(),
		})
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}

		products := make([]productView, 0, len(rows))
		for _, row := range rows {
			v := deps.productFromModel(dbc.Product{
				ID:          row.ID,
				UserID:      row.UserID,
				Name:        row.Name,
				Price:       row.Price,
				Description: row.Description,
				Image:       row.Image,
				Completed:   row.Completed,
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			})
			v.Count = &records.FavCount{Favs: row.FavCount}
			products = append(products, v)
		}

		resp.RespondSuccess(w, r, resp.Fields{"products": products})
		return nil
	}
}

func handleCreateProduct(deps *AppDeps) guard.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		userID, err := sessionUser(r)
		if err != nil {
			return err
		}

		var input ProductInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			return customErr
		}
		if customErr := input.normalize(); customErr != nil {
			return customErr
		}
		if input.PhotoID == "" {
			return errs.NewError(errs.ErrMissingField, "photoId")
		}

		created, err := deps.DB.CreateProduct(r.Context(), dbc.CreateProductParams{
			UserID:      userID,
			Name:        input.Name,
			Price:       input.Price.Int64(),
			Description: input.Description,
			Image:       input.PhotoID,
		})
		if err != nil {
			return fmt.Errorf("create product: %w", err)
		}

		deps.Metrics.ProductCreated()
		logx.Info("Product created", "product_id", created.ID, "user_id", userID)

		resp.RespondSuccess(w, r, resp.Fields{"product": deps.productFromModel(created)})
		return nil
	}
}

// productPage is the cacheable, viewer-independent part of a product detail.
type productPage struct {
	Product         productView   `json:"product"`
	RelatedProducts []productView `json:"relatedProducts"`
}

func productPath(id int64) string {
	return fmt.Sprintf("/products/%d", id)
}

// HandleGetProduct serves a product with its seller, related products and the viewer's fav state.
func HandleGetProduct(deps *AppDeps) guard.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		id, err := pathID(r, errs.ErrProductNotFound)
		if err != nil {
			return err
		}

		pg, err := loadProductPage(r, deps, id)
		if err != nil {
			return err
		}

		isLiked := false
		if userID, ok := session.FromContext(r.Context()).UserID(); ok {
			isLiked, err = deps.DB.FavExists(r.Context(), dbc.FavExistsParams{UserID: userID, ProductID: id})
			if err != nil {
				return fmt.Errorf("fav exists: %w", err)
			}
		}

		resp.RespondSuccess(w, r, resp.Fields{
			"product":         pg.Product,
			"relatedProducts": pg.RelatedProducts,
			"isLiked":         isLiked,
		})
		return nil
	}
}

func loadProductPage(r *http.Request, deps *AppDeps, id int64) (productPage, error) {
	ctx := r.Context()
	key := cache.PageKey(productPath(id))

	var pg productPage
	hit, err := deps.Cache.GetJSON(ctx, key, &pg)
	if err != nil {
		logx.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Page cache read failed")
	}
	if hit {
		return pg, nil
	}

	row, err := deps.DB.GetProduct(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return pg, errs.NewError(errs.ErrProductNotFound)
		}
		return pg, fmt.Errorf("get product: %w", err)
	}

	related, err := deps.DB.ListRelatedProducts(ctx, dbc.ListRelatedProductsParams{
		ID:       id,
		Patterns: product.RelatedPatterns(row.Name),
	})
	if err != nil {
		return pg, fmt.Errorf("list related products: %w", err)
	}

	pg.Product = deps.productFromModel(dbc.Product{
		ID:          row.ID,
		UserID:      row.UserID,
		Name:        row.Name,
		Price:       row.Price,
		Description: row.Description,
		Image:       row.Image,
		Completed:   row.Completed,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	})
	pg.Product.User = &userSummary{ID: row.UserID, Name: row.UserName, Avatar: deps.assetURL(row.UserAvatar)}

	pg.RelatedProducts = make([]productView, 0, len(related))
	for _, p := range related {
		pg.RelatedProducts = append(pg.RelatedProducts, deps.productFromModel(p))
	}

	if err := deps.Cache.SetJSON(ctx, key, pg, cache.PageTTL); err != nil {
		logx.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Page cache write failed")
		return pg, nil
	}

	// An update that committed after the read above has already revalidated,
	// possibly before our write landed. Re-check and drop the entry if it is stale.
	current, err := deps.DB.GetProduct(ctx, id)
	if err != nil || !current.UpdatedAt.Time.Equal(row.UpdatedAt.Time) {
		if err := deps.Cache.Delete(ctx, key); err != nil {
			logx.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Failed to drop stale page")
		}
	}

	return pg, nil
}

// HandleUpdateProduct lets the owner edit a product and revalidates its public page.
func HandleUpdateProduct(deps *AppDeps) guard.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		userID, err := sessionUser(r)
		if err != nil {
			return err
		}

		id, err := pathID(r, errs.ErrProductNotFound)
		if err != nil {
			return err
		}

		var input ProductInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			return customErr
		}
		if customErr := input.normalize(); customErr != nil {
			return customErr
		}

		current, err := deps.DB.GetProduct(r.Context(), id)
		if err != nil {
			if db.IsNotFound(err) {
				return errs.NewError(errs.ErrProductNotFound)
			}
			return fmt.Errorf("get product: %w", err)
		}
		if current.UserID != userID {
			return errs.NewError(errs.ErrForbidden)
		}

		image := current.Image
		if input.PhotoID != "" {
			image = input.PhotoID
		}

		updated, err := deps.DB.UpdateProduct(r.Context(), dbc.UpdateProductParams{
			ID:          id,
			Name:        input.Name,
			Price:       input.Price.Int64(),
			Description: input.Description,
			Image:       image,
		})
		if err != nil {
			return fmt.Errorf("update product: %w", err)
		}

		if err := deps.Revalidator.Revalidate(r.Context(), productPath(id)); err != nil {
			logx.Error(err, "update_product: revalidation failed", "product_id", id)
		}

		resp.RespondSuccess(w, r, resp.Fields{"updateData": deps.productFromModel(updated)})
		return nil
	}
}

// HandleToggleFav flips the session user's fav on a product.
func HandleToggleFav(deps *AppDeps) guard.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		userID, err := sessionUser(r)
		if err != nil {
			return err
		}

		id, err := pathID(r, errs.ErrProductNotFound)
		if err != nil {
			return err
		}

		if _, err := deps.DB.GetProduct(r.Context(), id); err != nil {
			if db.IsNotFound(err) {
				return errs.NewError(errs.ErrProductNotFound)
			}
			return fmt.Errorf("get product: %w", err)
		}

		removed, err := deps.DB.DeleteFav(r.Context(), dbc.DeleteFavParams{UserID: userID, ProductID: id})
		if err != nil {
			return fmt.Errorf("delete fav: %w", err)
		}

		isLiked := removed == 0
		if isLiked {
			if err := deps.DB.CreateFav(r.Context(), dbc.CreateFavParams{UserID: userID, ProductID: id}); err != nil {
				return fmt.Errorf("create fav: %w", err)
			}
		}

		deps.Metrics.FavToggled(isLiked)

		resp.RespondSuccess(w, r, resp.Fields{"isLiked": isLiked})
		return nil
	}
}
