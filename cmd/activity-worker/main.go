package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Cruelhelp/GoatMouth-sub000/internal/activity-worker/pubsub"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/activity-worker/repo"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/activity-worker/worker"

	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/cache"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/config"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/db"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/kafka"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/logger"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/metrics"
	"github.com/Cruelhelp/GoatMouth-sub000/pkg/activity"
)

var (
	projected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "activity_projected_total",
		Help: "Feed entries projected per kind",
	}, []string{"kind"})
	projectionErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "activity_errors_total",
		Help: "Projection errors per kind",
	}, []string{"kind"})
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	prometheus.MustRegister(projected, projectionErrors)

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

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return redisClient.Ping(ctx).Err()
	})

	w := &worker.Worker{
		Log:         log,
		Repo:        repo.NewPostgresRepo(pg),
		Broadcaster: pubsub.NewRedisBroadcaster(redisClient),

		OnProjected: func(kind string) { projected.WithLabelValues(kind).Inc() },
		OnError:     func(kind string) { projectionErrors.WithLabelValues(kind).Inc() },
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	const group = "activity-worker"

	// One consumer per source topic. Kinds with their own decoder filter or
	// fan out as needed (e.g. wallet_tx splits into deposit/withdrawal/payout).
	streams := []struct {
		topic string
		kind  activity.Kind
		dec   worker.Decoder
	}{
		{cfg.TopicBetConfirmed, activity.KindBet, worker.DecodeBetConfirmed},
		{cfg.TopicWalletTx, activity.KindDeposit, worker.DecodeWalletTx},
		{cfg.TopicMarketCreated, activity.KindMarketCreated, worker.DecodeMarketCreated},
		{cfg.TopicCommentPosted, activity.KindComment, worker.DecodeCommentPosted},
		{cfg.TopicUserJoined, activity.KindUserJoined, worker.DecodeUserJoined},
		{cfg.TopicProposalCreated, activity.KindProposal, worker.DecodeProposalCreated},
	}

	readers := make([]*kafkago.Reader, 0, len(streams))
	for _, s := range streams {
		reader := kafka.NewReader(cfg.KafkaBrokers, s.topic, group)
		readers = append(readers, reader)
		log.Info("consuming", zap.String("topic", s.topic))
		go w.Consume(ctx, reader, s.kind, s.dec)
	}

	<-ctx.Done()
	log.Info("shutting down")
	for _, r := range readers {
		_ = r.Close()
	}
}
