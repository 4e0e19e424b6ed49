package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/chronomart/chronomart-backend/api/routes"
	"github.com/chronomart/chronomart-backend/internal/assistant"
	"github.com/chronomart/chronomart-backend/internal/auth"
	"github.com/chronomart/chronomart-backend/internal/cart"
	"github.com/chronomart/chronomart-backend/internal/catalog"
	"github.com/chronomart/chronomart-backend/internal/orders"
	"github.com/chronomart/chronomart-backend/internal/users"
	"github.com/chronomart/chronomart-backend/internal/wishlist"
	"github.com/chronomart/chronomart-backend/pkg/auth/session"
	"github.com/chronomart/chronomart-backend/pkg/config"
	"github.com/chronomart/chronomart-backend/pkg/db"
	"github.com/chronomart/chronomart-backend/pkg/groq"
	"github.com/chronomart/chronomart-backend/pkg/logger"
	"github.com/chronomart/chronomart-backend/pkg/metrics"
	"github.com/chronomart/chronomart-backend/pkg/migrate"
	"github.com/chronomart/chronomart-backend/pkg/outbox"
	"github.com/chronomart/chronomart-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	catalogRepo := catalog.NewRepository(gormDB)
	cartRepo := cart.NewRepository(gormDB)
	wishlistRepo := wishlist.NewRepository(gormDB)
	orderRepo := orders.NewRepository(gormDB)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(gormDB),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	exitOn(logg, "failed to create auth service", err)

	groqClient, err := groq.NewClient(cfg.Groq)
	exitOn(logg, "failed to create groq client", err)

	planner, err := catalog.NewGroqPlanner(groqClient, cfg.Assistant)
	exitOn(logg, "failed to create search planner", err)

	catalogService, err := catalog.NewService(catalog.ServiceParams{Repo: catalogRepo, Planner: planner})
	exitOn(logg, "failed to create catalog service", err)

	cartService, err := cart.NewService(cart.ServiceParams{
		DB:           dbClient,
		CartRepo:     cartRepo,
		CatalogRepo:  catalogRepo,
		WishlistRepo: wishlistRepo,
	})
	exitOn(logg, "failed to create cart service", err)

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		WishlistRepo: wishlistRepo,
		CatalogRepo:  catalogRepo,
	})
	exitOn(logg, "failed to create wishlist service", err)

	orderService, err := orders.NewService(orders.ServiceParams{
		DB:           dbClient,
		OrderRepo:    orderRepo,
		CartRepo:     cartRepo,
		WishlistRepo: wishlistRepo,
		Outbox:       outbox.NewService(outbox.NewRepository(gormDB), logg),
	})
	exitOn(logg, "failed to create order service", err)

	extractor, err := assistant.NewGroqExtractor(groqClient, cfg.Assistant)
	exitOn(logg, "failed to create extractor", err)

	resolver, err := assistant.NewResolver(catalogRepo)
	exitOn(logg, "failed to create resolver", err)

	dispatcher, err := assistant.NewDispatcher(assistant.DispatcherParams{
		CartService:     cartService,
		WishlistService: wishlistService,
		OrderService:    orderService,
	})
	exitOn(logg, "failed to create dispatcher", err)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	assistantService, err := assistant.NewService(assistant.ServiceParams{
		Extractor:  extractor,
		Resolver:   resolver,
		Dispatcher: dispatcher,
		Metrics:    metrics.NewAssistantMetrics(registry),
		Logger:     logg,
	})
	exitOn(logg, "failed to create assistant service", err)

	handler := routes.NewRouter(routes.Deps{
		Config:           cfg,
		Logger:           logg,
		DB:               dbClient,
		Redis:            redisClient,
		SessionChecker:   sessionManager,
		AuthService:      authService,
		CatalogService:   catalogService,
		CartService:      cartService,
		WishlistService:  wishlistService,
		OrderService:     orderService,
		AssistantService: assistantService,
		MetricsRegistry:  registry,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}

	logg.Info(ctx, "api server stopped")
}

func exitOn(logg *logger.Logger, msg string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), msg, err)
	os.Exit(1)
}
