package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/metcal/asset-api/internal/api/handlers"
	"github.com/metcal/asset-api/internal/auth"
	"github.com/metcal/asset-api/internal/config"
	"github.com/metcal/asset-api/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(cfg *config.Config, tokens *auth.TokenService, userService services.UserServiceProvider, assetService services.AssetServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, tokens, cfg.ExpiresIn())
	assetHandler := handlers.NewAssetHandler(assetService)

	r.Get("/", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/token", authHandler.IssueToken)

		// Everything below requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware())

			r.Get("/assets", assetHandler.List)
			r.Route("/asset", func(r chi.Router) {
				r.Post("/", assetHandler.Create)
				r.Get("/{id}", assetHandler.Get)
				r.Put("/{id}", assetHandler.Update)
			})
		})
	})

	return r
}
