package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/and161185/paygate/internal/config"
	"github.com/and161185/paygate/internal/deps"
	"github.com/and161185/paygate/internal/outbox"
	"github.com/and161185/paygate/internal/server"
	"github.com/and161185/paygate/internal/storage"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := config.NewConfig()
	store, err := storage.NewPostgreStorage(ctx, config.DatabaseURI)
	if err != nil {
		config.Logger.Fatal(err)
	}

	var settings server.SettingsSource = store
	if config.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		settings = storage.NewSettingsCache(store, rdb, time.Minute)
	}

	deps := deps.NewDependencies(config.Key)
	ob := outbox.New(deps.Logger, 100)

	srv := server.NewServer(store, settings, ob, config, deps)
	if err := srv.Run(ctx); err != nil {
		config.Logger.Fatal(err)
	}
}
