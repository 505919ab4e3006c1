// package main provides the entry point for the vulnview-backend
// microservice: it loads the vulnerability dataset into the session
// store and serves the dashboard REST and GraphQL APIs.
package main

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ortelius/vulnview-backend/config"
	"github.com/ortelius/vulnview-backend/dataset"
	"github.com/ortelius/vulnview-backend/internal/api"
	"github.com/ortelius/vulnview-backend/util"
)

var logger = util.InitLogger() // setup the logger

func main() {
	defer logger.Sync() //nolint:errcheck

	cfgPath := util.GetEnvDefault("VULNVIEW_CONFIG", "vulnview.yaml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Sugar().Fatalf("Configuration error: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	store := dataset.NewStore(logger, cfg.DebounceInterval)
	defer store.Close()

	loader := &dataset.Loader{
		Source:   cfg.DatasetSource,
		Timeout:  cfg.FetchTimeout,
		Redis:    redisClient,
		RedisTTL: cfg.RedisTTL,
		Log:      logger,
	}

	// The load is one-shot per session; an unresolvable dataset shape is
	// fatal and no partial dataset is served.
	if err := store.LoadFrom(context.Background(), loader); err != nil {
		logger.Sugar().Fatalf("Dataset load failed: %v", err)
	}

	app := api.NewFiberApp(cfg, store)

	addr := cfg.Host + ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.String("session", store.SessionID()))
	if err := app.Listen(addr); err != nil {
		logger.Sugar().Fatalf("Server error: %v", err)
	}
}
