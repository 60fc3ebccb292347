package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Cruelhelp/GoatMouth-sub000/internal/bet-confirmation/confirmer"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/bet-confirmation/producer"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/bet-confirmation/repo"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/bet-confirmation/wallet"

	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/config"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/db"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/kafka"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/logger"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/metrics"
	"github.com/Cruelhelp/GoatMouth-sub000/pkg/contracts/events"
)

const processRetries = 3

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

	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicBetPlaced, "bet-confirmation")
	defer reader.Close()

	confirmedWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetConfirmed)
	defer confirmedWriter.Close()

	var dlqWriter *kafkago.Writer
	if cfg.TopicBetPlacedDLQ != "" {
		dlqWriter = kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetPlacedDLQ)
		defer dlqWriter.Close()
	}

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return pg.PingContext(ctx)
	})

	c := &confirmer.Confirmer{
		Log:       log,
		Repo:      repo.NewPostgresRepo(pg),
		Wallet:    wallet.New(cfg.WalletURL),
		Publisher: producer.NewKafkaProducer(confirmedWriter),
	}

	log.Info("bet-confirmation-worker started",
		zap.String("consume", cfg.TopicBetPlaced),
		zap.String("publish", cfg.TopicBetConfirmed),
	)

	ctx := context.Background()
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			log.Warn("kafka read", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		var placed events.BetPlaced
		if jerr := json.Unmarshal(msg.Value, &placed); jerr != nil {
			log.Error("unmarshal bet_placed", zap.Error(jerr))
			continue
		}

		if err := processWithRetry(ctx, c, placed); err != nil {
			log.Error("process bet failed, sending to DLQ",
				zap.String("bet_id", placed.BetID), zap.Error(err))
			if dlqWriter != nil {
				_ = kafka.WriteJSON(ctx, dlqWriter, placed.BetID, msg.Value)
			}
		}
	}
}

// processWithRetry settles one bet, retrying transient failures with a linear
// backoff before giving up to the DLQ.
func processWithRetry(ctx context.Context, c *confirmer.Confirmer, placed events.BetPlaced) error {
	var err error
	for i := 0; i < processRetries; i++ {
		if err = c.Process(ctx, placed); err == nil {
			return nil
		}
		time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
	}
	return err
}
