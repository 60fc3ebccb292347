package ws

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StartRedisSubscriber relays entries published by the activity-worker onto
// the websocket hub. Payloads are already rendered feed entries; they pass
// through untouched.
func StartRedisSubscriber(ctx context.Context, r *redis.Client, channel string, hub *Hub, log *zap.Logger) {
	sub := r.Subscribe(ctx, channel)
	ch := sub.Channel()
	go func() {
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case msg := <-ch:
				if msg == nil {
					continue
				}
				hub.Broadcast([]byte(msg.Payload))
			}
		}
	}()
	log.Info("activity subscriber started", zap.String("channel", channel))
}
