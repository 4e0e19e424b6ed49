package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chronomart/chronomart-backend/api/controllers"
	"github.com/chronomart/chronomart-backend/api/middleware"
	"github.com/chronomart/chronomart-backend/internal/assistant"
	"github.com/chronomart/chronomart-backend/internal/auth"
	"github.com/chronomart/chronomart-backend/internal/cart"
	"github.com/chronomart/chronomart-backend/internal/catalog"
	"github.com/chronomart/chronomart-backend/internal/orders"
	"github.com/chronomart/chronomart-backend/internal/wishlist"
	"github.com/chronomart/chronomart-backend/pkg/auth/session"
	"github.com/chronomart/chronomart-backend/pkg/config"
	"github.com/chronomart/chronomart-backend/pkg/db"
	"github.com/chronomart/chronomart-backend/pkg/logger"
	"github.com/chronomart/chronomart-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config           *config.Config
	Logger           *logger.Logger
	DB               db.Pinger
	Redis            *redis.Client
	SessionChecker   session.AccessSessionChecker
	AuthService      auth.Service
	CatalogService   catalog.Service
	CartService      cart.Service
	WishlistService  wishlist.Service
	OrderService     orders.Service
	AssistantService assistant.Service
	MetricsRegistry  *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, map[string]controllers.Pinger{
			"database": deps.DB,
			"redis":    deps.Redis,
		}))
	})

	if deps.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
	})

	r.Route("/api/v1/watches", func(r chi.Router) {
		r.Get("/", controllers.WatchesList(deps.CatalogService, logg))
		r.Get("/{watchId}", controllers.WatchesGet(deps.CatalogService, logg))
		r.Post("/search", controllers.WatchesSearch(deps.CatalogService, logg))
		r.Post("/search-structured", controllers.WatchesSearchStructured(deps.CatalogService, logg))
	})
	r.Get("/api/v1/brands", controllers.BrandsList(deps.CatalogService, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.CartService, logg))
			r.Post("/items", controllers.CartAddItem(deps.CartService, logg))
			r.Put("/items/{watchId}", controllers.CartUpdateItem(deps.CartService, logg))
			r.Delete("/items/{watchId}", controllers.CartRemoveItem(deps.CartService, logg))
			r.Delete("/", controllers.CartClear(deps.CartService, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistGet(deps.WishlistService, logg))
			r.Post("/items", controllers.WishlistAddItem(deps.WishlistService, logg))
			r.Delete("/items/{watchId}", controllers.WishlistRemoveItem(deps.WishlistService, logg))
			r.Delete("/", controllers.WishlistClear(deps.WishlistService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(deps.OrderService, logg))
			r.Get("/{orderId}", controllers.OrdersGet(deps.OrderService, logg))
			r.Post("/", controllers.OrdersCreate(deps.OrderService, logg))
			r.Post("/from-wishlist", controllers.OrdersCreateFromWishlist(deps.OrderService, logg))
		})

		r.Post("/assistant/actions", controllers.AssistantAction(deps.AssistantService, logg))
	})

	return r
}
