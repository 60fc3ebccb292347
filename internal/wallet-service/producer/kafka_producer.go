package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Cruelhelp/GoatMouth-sub000/pkg/contracts/events"
)

// KafkaPublisher emits wallet_tx events so deposits, withdrawals and payouts
// show up in the activity feed.
type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(w *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: w}
}

func (p *KafkaPublisher) PublishWalletTx(ctx context.Context, e events.WalletTx) error {
	e.Ts = time.Now()
	b, _ := json.Marshal(e)
	return p.Writer.WriteMessages(ctx, kafka.Message{Key: []byte(e.WalletID), Value: b})
}
