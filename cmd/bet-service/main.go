package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	bhttp "github.com/Cruelhelp/GoatMouth-sub000/internal/bet-service/http"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/bet-service/price"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/bet-service/producer"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/bet-service/repo"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/bet-service/wallet"

	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/cache"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/config"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/db"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/kafka"
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

	placedWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetPlaced)
	defer placedWriter.Close()

	srv := bhttp.NewServer(
		log,
		repo.NewPostgres(pg),
		price.NewChecker(redisClient),
		wallet.New(cfg.WalletURL),
		producer.NewKafkaPublisher(placedWriter, cfg.TopicBetPlaced),
	)

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return redisClient.Ping(ctx).Err()
	})

	addr := ":" + cfg.HTTPPort
	log.Info("bet-service listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, srv.Router()); err != nil && err != http.ErrServerClosed {
		log.Fatal("http server failed", zap.Error(err))
	}
}
