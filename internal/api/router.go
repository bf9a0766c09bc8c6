package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mtran/inventory-web/internal/api/handlers"
	"github.com/mtran/inventory-web/internal/api/middleware"
	"github.com/mtran/inventory-web/internal/config"
	"github.com/mtran/inventory-web/internal/domain"
	"github.com/mtran/inventory-web/internal/service"
	"github.com/mtran/inventory-web/internal/websocket"
	"github.com/redis/go-redis/v9"
)

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	categoryHandler := handlers.NewCategoryHandler(services.Category)
	productHandler := handlers.NewProductHandler(services.Product)
	supplierHandler := handlers.NewSupplierHandler(services.Supplier)
	dashboardHandler := handlers.NewDashboardHandler(services.Product, services.Category, services.Supplier)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	// Auth routes
	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.LoginRateLimit(redisClient, cfg.LoginRateLimit, cfg.LoginRateWindow)).
			Post("/login", authHandler.Login)
		r.Get("/signin", authHandler.SignIn)

		// Protected auth routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth, false))
			r.Get("/session", authHandler.Session)
			r.Post("/logout", authHandler.Logout)
		})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth, false))

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", categoryHandler.List)
				r.Post("/", categoryHandler.Create)
				r.Get("/tree", categoryHandler.Tree)
				r.Get("/{id}", categoryHandler.Get)
				r.Put("/{id}", categoryHandler.Update)
				r.Delete("/{id}", categoryHandler.Delete)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", productHandler.List)
				r.Post("/", productHandler.Create)
				r.Get("/{id}", productHandler.Get)
				r.Put("/{id}", productHandler.Update)
				r.Delete("/{id}", productHandler.Delete)
			})

			r.Route("/suppliers", func(r chi.Router) {
				r.Get("/", supplierHandler.List)
				r.Post("/", supplierHandler.Create)
				r.Get("/{id}", supplierHandler.Get)
				r.Put("/{id}", supplierHandler.Update)
				r.Delete("/{id}", supplierHandler.Delete)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequirePermission(domain.PermissionAdminAccess))
				r.Get("/users", authHandler.Users)
			})
		})

		// WebSocket endpoint (token checked at upgrade)
		r.Get("/ws", wsHandler.Handle)
	})

	// Browser routes: unauthenticated requests are redirected to the
	// sign-in page instead of getting a bare 401
	r.Route("/dashboard", func(r chi.Router) {
		r.Use(middleware.Auth(services.Auth, true))
		r.Get("/", dashboardHandler.Overview)
	})

	return r
}
