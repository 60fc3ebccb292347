package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	httpapi "github.com/Cruelhelp/GoatMouth-sub000/internal/feed-service/http"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/feed-service/repo"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/feed-service/ws"

	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/cache"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/config"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/db"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/logger"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	log.Info("postgres connected")

	redisClient, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("redis connected")

	api := &httpapi.API{
		Log:  log,
		Repo: repo.NewSourceRepo(pg),
	}

	hub := ws.NewHub(func(r *http.Request) bool { return true })
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ws.StartRedisSubscriber(ctx, redisClient, cfg.ActivityChannel, hub, log)

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return redisClient.Ping(ctx).Err()
	})

	r := chi.NewRouter()
	r.Mount("/", api.Router())
	r.Get("/ws", hub.HandleWS)

	addr := ":" + cfg.HTTPPort
	log.Info("feed-service listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil && err != http.ErrServerClosed {
		log.Fatal("http server failed", zap.Error(err))
	}
}
