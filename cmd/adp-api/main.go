package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/draftdelta/adp-api/internal/cache"
	"github.com/draftdelta/adp-api/internal/config"
	"github.com/draftdelta/adp-api/internal/handlers"
	"github.com/draftdelta/adp-api/internal/logic"
	"github.com/draftdelta/adp-api/internal/sleeper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Response cache: Redis when configured, otherwise in-process.
	var (
		responseCache cache.Cache
		redisClient   *redis.Client
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			sugar.Fatalw("invalid REDIS_URL", "error", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			sugar.Warnw("redis not reachable at startup", "error", err)
		}
		responseCache = cache.NewRedis(redisClient, cfg.CacheTTL, "adp:", time.Now, logger)
	} else {
		mem := cache.NewMemory(cfg.CacheTTL, time.Now)
		go pruneLoop(ctx, mem, cfg.CacheTTL, sugar)
		responseCache = mem
	}

	client := sleeper.New(sleeper.Config{
		BaseURL: cfg.SleeperBaseURL,
		Timeout: cfg.UpstreamTimeout,
		Cache:   responseCache,
		Logger:  logger,
	})
	reconciler := logic.NewReconciler(logic.ReconcilerConfig{
		Source:       client,
		Concurrency:  cfg.FetchConcurrency,
		DefaultTeams: cfg.DefaultTeams,
		Logger:       logger,
	})

	hcfg := handlers.Config{
		Logger:        logger,
		ADP:           logic.NewADPService(client, reconciler, logger),
		DefaultSeason: cfg.DefaultSeason,
	}
	if redisClient != nil {
		hcfg.Redis = redisClient
	}
	h := handlers.New(hcfg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h.Routes(cfg.AllowedOrigins, 2*cfg.UpstreamTimeout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sugar.Infow("listening", "addr", srv.Addr, "env", cfg.Env, "sleeper", cfg.SleeperBaseURL, "redis", redisClient != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("graceful shutdown failed", "error", err)
	}
}

func pruneLoop(ctx context.Context, mem *cache.Memory, every time.Duration, logger *zap.SugaredLogger) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := mem.Prune(); n > 0 {
				logger.Debugw("pruned cache entries", "removed", n, "remaining", mem.Len())
			}
		}
	}
}
