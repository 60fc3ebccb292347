package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Cruelhelp/GoatMouth-sub000/pkg/contracts/events"
)

// RedisCache holds the current price per market. The bet-service reads these
// keys to reject bets quoted against stale probabilities.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(c *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: c, TTL: ttl}
}

// key must match the bet-service price checker.
func key(marketID string) string { return "price:current:" + marketID }

// SetCurrent stores the latest price update for a market with the cache TTL.
func (r *RedisCache) SetCurrent(ctx context.Context, e events.PriceUpdate) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, key(e.MarketID), b, r.TTL).Err()
}
