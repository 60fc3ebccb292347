package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	pcache "github.com/Cruelhelp/GoatMouth-sub000/internal/price-processor/cache"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/price-processor/consumer"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/price-processor/pubsub"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/price-processor/repository"

	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/cache"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/config"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/db"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/kafka"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/logger"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/metrics"
	"github.com/Cruelhelp/GoatMouth-sub000/pkg/contracts/events"
)

var (
	consumed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "price_processor_consumed_total",
		Help: "Price updates consumed from Kafka",
	})
	cached = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "price_processor_cached_total",
		Help: "Price updates written to the redis cache",
	})
	persisted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "price_processor_persisted_total",
		Help: "Price updates persisted to postgres",
	})
	stageErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "price_processor_errors_total",
		Help: "Processing errors per stage",
	}, []string{"stage"})
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	prometheus.MustRegister(consumed, cached, persisted, stageErrors)

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

	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicPriceUpdates, "price-processor")
	defer reader.Close()

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return redisClient.Ping(ctx).Err()
	})

	broadcaster := pubsub.NewRedisBroadcaster(redisClient)

	proc := &consumer.Processor{
		Log:    log,
		Reader: reader,
		Repo:   repository.NewPostgresRepo(pg),
		Cache:  pcache.NewRedisCache(redisClient, 30*time.Second),

		OnConsumed: consumed.Inc,
		OnCached:   cached.Inc,
		OnPersist:  persisted.Inc,
		OnError:    func(stage string) { stageErrors.WithLabelValues(stage).Inc() },

		OnAfterPersist: func(ev events.PriceUpdate) {
			payload, _ := json.Marshal(pubsub.WSUpdate{MarketID: ev.MarketID, Payload: ev})
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := broadcaster.Publish(ctx, cfg.PriceChannel, payload); err != nil {
				log.Warn("price broadcast failed", zap.Error(err))
			}
		},
	}

	log.Info("price processor started", zap.String("topic", cfg.TopicPriceUpdates))
	if err := proc.Run(context.Background()); err != nil {
		log.Fatal("processor stopped", zap.Error(err))
	}
}
