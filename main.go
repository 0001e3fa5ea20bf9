package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"goal-planner/config"
	httpLayer "goal-planner/http"
	"goal-planner/natsrpc"
	"goal-planner/repository"
	"goal-planner/service"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog, err := buildCatalog(ctx, cfg, logger)
	if err != nil {
		return err
	}

	var cache repository.CacheRepository = repository.NewMockCache()
	if cfg.RedisAddr != "" {
		redisCache := repository.NewRedisCache(cfg.RedisAddr, logger)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, cache misses will be computed", "addr", cfg.RedisAddr, "err", err)
		}
		cache = redisCache
	}

	loanService := service.NewLoanService()
	termService := service.NewTermRecommendationService(loanService, logger)
	aiService := service.NewAIService(cfg.OpenAIAPIKey, logger)
	goalService := service.NewGoalService(catalog, cache, termService, aiService, cfg.CacheTTL, logger)
	planService := service.NewPlanService(repository.NewPlanRepositoryMemory(), logger)

	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL, nats.Name("goal-planner"))
		if err != nil {
			return fmt.Errorf("nats connect: %w", err)
		}
		defer nc.Drain()

		if _, err := natsrpc.Serve(nc, cfg.NATSSubject, goalService, cfg.SubmitTimeout, logger); err != nil {
			return fmt.Errorf("nats subscribe %s: %w", cfg.NATSSubject, err)
		}
		logger.Info("nats binding ready", "subject", cfg.NATSSubject)
	}

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer rateLimiter.Stop()

	handler := httpLayer.NewRouter(httpLayer.Handlers{
		Goal: httpLayer.NewGoalHandler(goalService, logger),
		Plan: httpLayer.NewPlanHandler(planService, logger),
		Loan: httpLayer.NewLoanHandler(loanService, logger),
		Term: httpLayer.NewTermRecommendationHandler(termService, logger),
	}, httpLayer.RouterOptions{
		CORSOrigin:  cfg.CORSOrigin,
		ServiceName: "goal-planner",
		Limiter:     rateLimiter,
	}, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("starting server: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server exited")
	return nil
}

// buildCatalog loads CATALOG_FILE when set and keeps it in sync with the file.
func buildCatalog(ctx context.Context, cfg config.Config, logger *slog.Logger) (*repository.CatalogMemory, error) {
	if cfg.CatalogFile == "" {
		return repository.NewCatalogMemory(repository.DefaultVehicles), nil
	}

	vehicles, err := repository.LoadCatalogFile(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	catalog := repository.NewCatalogMemory(vehicles)

	watcher, err := repository.NewCatalogWatcher(cfg.CatalogFile, catalog, logger)
	if err != nil {
		return nil, err
	}
	go watcher.Run(ctx)

	logger.Info("catalog loaded", "path", cfg.CatalogFile, "vehicles", catalog.Len())
	return catalog, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
