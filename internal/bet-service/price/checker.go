package price

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/Cruelhelp/GoatMouth-sub000/pkg/contracts/events"
)

// CurrentKey is the redis key the price-processor-worker maintains per market.
func CurrentKey(marketID string) string { return "price:current:" + marketID }

// Checker reads the live market price cached by the price-processor-worker
// so bets quoted against stale prices can be rejected before any money moves.
type Checker struct {
	Rdb *redis.Client
}

func NewChecker(r *redis.Client) *Checker { return &Checker{Rdb: r} }

// CurrentPrice returns the current probability for one outcome of a market.
func (c *Checker) CurrentPrice(ctx context.Context, marketID, outcome string) (float64, error) {
	b, err := c.Rdb.Get(ctx, CurrentKey(marketID)).Bytes()
	if err != nil {
		return 0, err
	}
	var upd events.PriceUpdate
	if err := json.Unmarshal(b, &upd); err != nil {
		return 0, err
	}
	if outcome == "no" {
		return upd.NoPrice, nil
	}
	return upd.YesPrice, nil
}
