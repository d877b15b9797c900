/*
Package handler provides the HTTP handlers and routing setup for the Carrot marketplace API.

This file defines the main Router. Global middleware (CORS, request id, logging, metrics,
recovery, sessions) runs first; every API route is then mounted through guard.Handle,
which checks the method, runs the route's stages and translates returned errors.
*/
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"carrot/internal/pkg/guard"
	"carrot/internal/pkg/limiter"
	"carrot/internal/pkg/logx"
	"carrot/internal/pkg/resp"
	"carrot/internal/pkg/session"
)

const (
	// EnterRate allows one login code every 20 seconds per IP after the burst.
	EnterRate  = 0.05
	EnterBurst = 3
	// ConfirmRate allows one code guess every 10 seconds per IP after the burst.
	ConfirmRate  = 0.1
	ConfirmBurst = 5

	JoinRate  = 0.2
	JoinBurst = 5
)

var (
	get     = []string{http.MethodGet}
	post    = []string{http.MethodPost}
	put     = []string{http.MethodPut}
	getPost = []string{http.MethodGet, http.MethodPost}
)

// Router sets up the main HTTP routing table. ctx bounds the limiter cleanup goroutines.
func Router(ctx context.Context, deps *AppDeps) http.Handler {
	enterLimiter := limiter.NewIPRateLimiter(ctx, rate.Limit(EnterRate), EnterBurst)
	confirmLimiter := limiter.NewIPRateLimiter(ctx, rate.Limit(ConfirmRate), ConfirmBurst)
	joinLimiter := limiter.NewIPRateLimiter(ctx, rate.Limit(JoinRate), JoinBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(deps.Metrics.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, resp.Fields{
			"status":  "ok",
			"service": "Carrot Market API",
		})
	})
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(session.Middleware(deps.Sessions))

		authed := guard.RequireUser()

		r.Route("/api", func(api chi.Router) {
			api.Route("/users", func(users chi.Router) {
				users.Handle("/enter", enterLimiter.Middleware(guard.Handle(post, HandleEnter(deps))))
				users.Handle("/confirm", confirmLimiter.Middleware(guard.Handle(post, HandleConfirm(deps))))
				users.Handle("/me", guard.Handle(getPost, HandleMe(deps), authed))
				users.Handle("/me/{kind}", guard.Handle(get, HandleListRecords(deps)))
				users.Handle("/{id}", guard.Handle(get, HandleGetProfile(deps)))
			})

			api.Route("/products", func(products chi.Router) {
				products.Handle("/", guard.Handle(getPost, HandleProducts(deps)))
				products.Handle("/{id}", guard.Handle(get, HandleGetProduct(deps)))
				products.Handle("/{id}/update", guard.Handle(put, HandleUpdateProduct(deps), authed))
				products.Handle("/{id}/fav", guard.Handle(post, HandleToggleFav(deps), authed))
			})

			api.Route("/chats", func(chats chi.Router) {
				chats.Handle("/", guard.Handle(getPost, HandleChatRooms(deps), authed))
				chats.Handle("/{id}", guard.Handle(get, HandleGetChatRoom(deps), authed))
				chats.Handle("/{id}/messages", guard.Handle(post, HandlePostChatMessage(deps), authed))
			})

			api.Route("/streams", func(streams chi.Router) {
				streams.Handle("/", guard.Handle(getPost, HandleStreams(deps)))
				streams.Handle("/{id}", guard.Handle(get, HandleGetStream(deps)))
				streams.Handle("/{id}/messages", guard.Handle(post, HandlePostStreamMessage(deps), authed))
			})

			api.Handle("/reviews", guard.Handle(get, HandleListReviews(deps), authed))

			api.Handle("/files", guard.Handle(post, HandlePresignUpload(deps), authed))
			api.Handle("/files/upload", guard.Handle(post, HandleUpload(deps), authed))

			api.Handle("/live/tickets", guard.Handle(post, HandleIssueTicket(deps), authed))
		})

		r.Handle("/ws/{kind}/{id}", joinLimiter.Middleware(guard.Handle(get, HandleLiveSocket(deps, newUpgrader(deps)))))
	})

	return r
}
