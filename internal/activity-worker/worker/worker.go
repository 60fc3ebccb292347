package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Cruelhelp/GoatMouth-sub000/internal/activity-worker/pubsub"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/activity-worker/repo"
	"github.com/Cruelhelp/GoatMouth-sub000/pkg/activity"
	"github.com/Cruelhelp/GoatMouth-sub000/pkg/contracts/events"
)

// Worker tails the platform event topics, projects each message into a feed
// entry, persists it and broadcasts it for live subscribers. One goroutine
// runs per topic; a decode failure skips the message, a sink failure is
// logged and the message is still committed (the feed is best-effort).
type Worker struct {
	Log         *zap.Logger
	Repo        *repo.PostgresRepo
	Broadcaster *pubsub.RedisBroadcaster

	OnProjected func(kind string) // metrics
	OnError     func(kind string) // metrics
}

// Decoder turns one raw Kafka message into zero or one feed entries. Returning
// ok=false drops the message (e.g. rejected bet confirmations).
type Decoder func(value []byte) (activity.Event, bool, error)

// Consume runs the decode-project-sink loop for a single topic reader until
// the context is canceled.
func (w *Worker) Consume(ctx context.Context, r *kafka.Reader, kind activity.Kind, dec Decoder) {
	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.Log.Warn("kafka read failed",
				zap.String("topic", r.Config().Topic), zap.Error(err))
			if w.OnError != nil {
				w.OnError(string(kind))
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		ev, ok, err := dec(m.Value)
		if err != nil {
			w.Log.Warn("invalid message",
				zap.String("topic", r.Config().Topic), zap.Error(err))
			if w.OnError != nil {
				w.OnError(string(kind))
			}
			continue
		}
		if !ok {
			continue
		}

		if err := w.Repo.InsertEvent(ctx, ev); err != nil {
			w.Log.Warn("insert activity event failed", zap.Error(err))
			if w.OnError != nil {
				w.OnError(string(kind))
			}
		}
		if err := w.Broadcaster.PublishEvent(ctx, ev); err != nil {
			w.Log.Warn("broadcast activity event failed", zap.Error(err))
			if w.OnError != nil {
				w.OnError(string(kind))
			}
		}
		if w.OnProjected != nil {
			w.OnProjected(string(kind))
		}
	}
}

// DecodeBetConfirmed keeps only confirmed bets; rejected ones never reach the
// public feed.
func DecodeBetConfirmed(value []byte) (activity.Event, bool, error) {
	var e events.BetConfirmed
	if err := json.Unmarshal(value, &e); err != nil {
		return activity.Event{}, false, err
	}
	if e.Status != "CONFIRMED" {
		return activity.Event{}, false, nil
	}
	return activity.Project(activity.KindBet, activity.Row{
		OccurredAt:  e.Ts,
		Actor:       e.Username,
		MarketTitle: e.MarketTitle,
		Outcome:     e.Outcome,
		AmountCents: e.StakeCents,
	}), true, nil
}

// DecodeWalletTx maps deposits, withdrawals and payouts onto their feed kinds.
func DecodeWalletTx(value []byte) (activity.Event, bool, error) {
	var e events.WalletTx
	if err := json.Unmarshal(value, &e); err != nil {
		return activity.Event{}, false, err
	}
	var kind activity.Kind
	switch e.Type {
	case events.WalletTxDeposit:
		kind = activity.KindDeposit
	case events.WalletTxWithdrawal:
		kind = activity.KindWithdrawal
	case events.WalletTxPayout:
		kind = activity.KindPayout
	default:
		return activity.Event{}, false, nil
	}
	return activity.Project(kind, activity.Row{
		OccurredAt:  e.Ts,
		Actor:       e.Username,
		AmountCents: e.AmountCents,
	}), true, nil
}

func DecodeMarketCreated(value []byte) (activity.Event, bool, error) {
	var e events.MarketCreated
	if err := json.Unmarshal(value, &e); err != nil {
		return activity.Event{}, false, err
	}
	return activity.Project(activity.KindMarketCreated, activity.Row{
		OccurredAt:  e.Ts,
		Actor:       e.Creator,
		MarketTitle: e.Title,
	}), true, nil
}

func DecodeCommentPosted(value []byte) (activity.Event, bool, error) {
	var e events.CommentPosted
	if err := json.Unmarshal(value, &e); err != nil {
		return activity.Event{}, false, err
	}
	return activity.Project(activity.KindComment, activity.Row{
		OccurredAt:  e.Ts,
		Actor:       e.Author,
		MarketTitle: e.MarketTitle,
	}), true, nil
}

func DecodeUserJoined(value []byte) (activity.Event, bool, error) {
	var e events.UserJoined
	if err := json.Unmarshal(value, &e); err != nil {
		return activity.Event{}, false, err
	}
	return activity.Project(activity.KindUserJoined, activity.Row{
		OccurredAt: e.Ts,
		Actor:      e.Username,
		Username:   e.Username,
	}), true, nil
}

func DecodeProposalCreated(value []byte) (activity.Event, bool, error) {
	var e events.ProposalCreated
	if err := json.Unmarshal(value, &e); err != nil {
		return activity.Event{}, false, err
	}
	return activity.Project(activity.KindProposal, activity.Row{
		OccurredAt:    e.Ts,
		Actor:         e.Author,
		ProposalTitle: e.Title,
	}), true, nil
}
