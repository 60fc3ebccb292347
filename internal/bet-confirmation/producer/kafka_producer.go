package producer

import (
	"context"
	"encoding/json"

	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/kafka"
	"github.com/Cruelhelp/GoatMouth-sub000/pkg/contracts/events"
)

// KafkaProducer publishes settlement results keyed by bet id.
type KafkaProducer struct {
	Writer *kafka.Writer
}

func NewKafkaProducer(w *kafka.Writer) *KafkaProducer {
	return &KafkaProducer{Writer: w}
}

func (p *KafkaProducer) PublishBetConfirmed(ctx context.Context, e events.BetConfirmed) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return kafka.WriteJSON(ctx, p.Writer, e.BetID, payload)
}
