package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Cruelhelp/GoatMouth-sub000/internal/price-processor/cache"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/price-processor/repository"
	"github.com/Cruelhelp/GoatMouth-sub000/pkg/contracts/events"
)

// Processor consumes price updates from Kafka, refreshes the cache and
// persists current + history rows. Metric callbacks hook each stage.
type Processor struct {
	Log    *zap.Logger
	Reader *kafka.Reader
	Repo   *repository.PostgresRepo
	Cache  *cache.RedisCache

	OnConsumed func()       // metrics (counter++)
	OnCached   func()       // metrics
	OnPersist  func()       // metrics
	OnError    func(string) // metrics per stage

	// OnAfterPersist fires once both writes succeed; the worker uses it to
	// broadcast the update to websocket clients via redis pub/sub.
	OnAfterPersist func(events.PriceUpdate)
}

// Run is the main consume loop.
func (p *Processor) Run(ctx context.Context) error {
	for {
		m, err := p.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			if p.OnError != nil {
				p.OnError("read")
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if p.OnConsumed != nil {
			p.OnConsumed()
		}

		var ev events.PriceUpdate
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			p.Log.Warn("invalid message", zap.Error(err))
			if p.OnError != nil {
				p.OnError("decode")
			}
			continue
		}

		// Refresh the current-price cache; a cache failure must not block
		// persistence.
		if err := p.Cache.SetCurrent(ctx, ev); err != nil {
			p.Log.Warn("redis set failed", zap.Error(err))
			if p.OnError != nil {
				p.OnError("cache")
			}
		} else if p.OnCached != nil {
			p.OnCached()
		}

		if err := p.Repo.UpsertCurrent(ctx, ev); err != nil {
			p.Log.Warn("db upsert failed", zap.Error(err))
			if p.OnError != nil {
				p.OnError("db_upsert")
			}
			continue
		}
		if err := p.Repo.InsertHistory(ctx, ev); err != nil {
			p.Log.Warn("db insert history failed", zap.Error(err))
			if p.OnError != nil {
				p.OnError("db_history")
			}
			continue
		}
		if p.OnPersist != nil {
			p.OnPersist()
		}
		if p.OnAfterPersist != nil {
			p.OnAfterPersist(ev)
		}
	}
}
