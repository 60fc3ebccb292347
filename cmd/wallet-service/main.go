package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	whttp "github.com/Cruelhelp/GoatMouth-sub000/internal/wallet-service/http"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/wallet-service/producer"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/wallet-service/repo"

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

	txWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicWalletTx)
	defer txWriter.Close()

	srv := whttp.NewServer(log, repo.NewPostgres(pg), producer.NewKafkaPublisher(txWriter))

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return pg.PingContext(ctx)
	})

	addr := ":" + cfg.HTTPPort
	log.Info("wallet-service listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, srv.Router()); err != nil && err != http.ErrServerClosed {
		log.Fatal("http server failed", zap.Error(err))
	}
}
