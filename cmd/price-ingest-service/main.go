package main

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Cruelhelp/GoatMouth-sub000/internal/price-ingest/publisher"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/price-ingest/service"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/config"
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

	pub := publisher.NewKafkaPublisher(
		strings.Split(cfg.KafkaBrokers, ","),
		cfg.TopicPriceUpdates,
		cfg.Env,
		log,
	)
	defer pub.Close()

	metrics.StartMetricsServer(cfg.MetricsPort, nil)

	client := &service.WSClient{
		URL:       cfg.PriceFeedWSURL,
		Log:       log,
		Publisher: pub,
	}

	log.Info("price ingest started",
		zap.String("feed", cfg.PriceFeedWSURL),
		zap.String("topic", cfg.TopicPriceUpdates),
	)
	client.Start(context.Background())
}
