package router

import (
	"net/http"

	"github.com/KhashayarRezaei/bookverse/internal/handler"
	"github.com/KhashayarRezaei/bookverse/internal/metrics"
	"github.com/KhashayarRezaei/bookverse/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Health *handler.HealthHandler
	Books  *handler.BookHandler
	Orders *handler.OrderHandler
	Admin  *handler.AdminHandler
}

// New creates a new HTTP router with all routes and middleware configured.
// A nil m disables request metrics and the /metrics endpoint.
func New(
	h Handlers,
	tokens middleware.TokenParser,
	m *metrics.Metrics,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Apply middleware in order: RequestID -> Recovery -> Logging -> Metrics -> CORS
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	if m != nil {
		r.Use(middleware.Metrics(m))
	}
	r.Use(middleware.CORS)

	r.NotFound(middleware.NotFound)
	r.MethodNotAllowed(middleware.MethodNotAllowed)

	// Health check and metrics (no authentication required)
	r.Get("/health", h.Health.Check)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/books", h.Books.GetAll)
		r.Get("/books/{id}", h.Books.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(tokens, logger))

			r.Post("/orders", h.Orders.Checkout)
			r.Get("/orders", h.Orders.List)
			r.Get("/orders/{id}", h.Orders.GetByID)

			r.Route("/admin/orders", func(r chi.Router) {
				r.Use(middleware.RequireAdmin(logger))

				r.Get("/", h.Admin.ListOrders)
				r.Get("/stats/summary", h.Admin.Stats)
				r.Get("/{id}", h.Admin.GetOrder)
				r.Patch("/{id}", h.Admin.UpdateStatus)
			})
		})
	})

	return r
}
