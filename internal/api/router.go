package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/duarteurbanismo/sgci-recibos/internal/api/handlers"
	"github.com/duarteurbanismo/sgci-recibos/internal/api/middleware"
	"github.com/duarteurbanismo/sgci-recibos/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	reciboService *service.ReciboService,
	rateLimitService *service.RateLimitService,
	apiKey string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logging)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS)

	// Health checks (no auth required)
	r.Get("/health", handlers.Health)
	r.Get("/ready", handlers.Ready)

	reciboHandler := handlers.NewReciboHandler(reciboService)
	authMiddleware := middleware.NewAPIKeyAuth(apiKey)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(rateLimitService)

	r.Route("/api/recibos", func(r chi.Router) {
		// Public verification endpoints, rate limited per client
		r.Group(func(r chi.Router) {
			r.Use(rateLimitMiddleware.RateLimit)
			r.Get("/share/{shareId}", reciboHandler.Compartilhado)
			r.Get("/{numero}", reciboHandler.Verificar)
		})

		// Issuance endpoints, API key required
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/", reciboHandler.Emitir)
			r.Put("/", reciboHandler.Salvar)
		})
	})

	return r
}
