package pubsub

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/Cruelhelp/GoatMouth-sub000/pkg/activity"
)

const ChannelActivityBroadcast = "activity_broadcast"

// RedisBroadcaster fans projected activity events out to the feed-service
// websocket hubs.
type RedisBroadcaster struct {
	r *redis.Client
}

func NewRedisBroadcaster(r *redis.Client) *RedisBroadcaster {
	return &RedisBroadcaster{r: r}
}

func (b *RedisBroadcaster) PublishEvent(ctx context.Context, e activity.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return b.r.Publish(ctx, ChannelActivityBroadcast, payload).Err()
}
