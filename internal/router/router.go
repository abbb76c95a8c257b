package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Henrywch0714/restaurant-ordering/internal/handlers"
	"github.com/Henrywch0714/restaurant-ordering/internal/middleware"
)

// requestTimeout bounds a whole request; the upstream call has its own, shorter bound.
const requestTimeout = 60 * time.Second

// NewMenu builds the menu service router: dish CRUD, the generation proxy and health.
func NewMenu(
	logger *slog.Logger,
	dishHandler *handlers.DishHandler,
	proxyHandler *handlers.ProxyHandler,
	healthHandler *handlers.HealthHandler,
) http.Handler {
	r := newBase(logger, middleware.MenuCORSOptions, healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Menu endpoints
		r.With(middleware.NoCache).Get("/menu", dishHandler.ListDishes)
		r.Post("/menu", dishHandler.CreateDish)
		r.Options("/menu", handlers.Preflight)

		r.Get("/menu/{dishId}", dishHandler.GetDish)
		r.Put("/menu/{dishId}", dishHandler.UpdateDish)
		r.Delete("/menu/{dishId}", dishHandler.DeleteDish)
		r.Options("/menu/{dishId}", handlers.Preflight)

		// Generation proxy
		r.Post("/qwen", proxyHandler.Forward)
		r.Options("/qwen", handlers.Preflight)
	})

	return r
}

// NewProxy builds the standalone proxy service router.
func NewProxy(
	logger *slog.Logger,
	proxyHandler *handlers.ProxyHandler,
	healthHandler *handlers.HealthHandler,
) http.Handler {
	r := newBase(logger, middleware.ProxyCORSOptions, healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/qwen", proxyHandler.Forward)
		r.Options("/qwen", handlers.Preflight)
	})

	return r
}

// newBase applies the middleware shared by both services and registers
// health, metrics and the JSON fallbacks.
func newBase(logger *slog.Logger, cors middleware.CORSOptions, healthHandler *handlers.HealthHandler) chi.Router {
	r := chi.NewRouter()

	// CORS runs first so every response, including panics and fallbacks, carries the headers
	r.Use(middleware.CORS(cors))
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.NotFound(handlers.NotFound(logger))
	r.MethodNotAllowed(handlers.MethodNotAllowed(logger))

	r.Get("/health", healthHandler.ServeHTTP)
	r.Options("/health", handlers.Preflight)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
