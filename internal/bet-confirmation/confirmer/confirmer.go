package confirmer

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/Cruelhelp/GoatMouth-sub000/internal/bet-confirmation/repo"
	"github.com/Cruelhelp/GoatMouth-sub000/pkg/contracts/events"
)

// priceDriftTolerance mirrors the bet-service placement check. A bet is
// rejected when the market moved more than this between placement and
// confirmation.
const priceDriftTolerance = 0.005

const (
	StatusConfirmed = "CONFIRMED"
	StatusRejected  = "REJECTED"
)

// Repo is the persistence slice the confirmer needs.
type Repo interface {
	GetMarketSnapshot(ctx context.Context, marketID string) (repo.MarketSnapshot, error)
	UpdateBetStatus(ctx context.Context, betID, status string) error
	InsertBetTransaction(ctx context.Context, betID, oldStatus, newStatus, reason string) error
}

// WalletRefunder releases the stake reservation of a rejected bet.
type WalletRefunder interface {
	Refund(ctx context.Context, userID, externalRef string) error
}

// Publisher emits the settlement event.
type Publisher interface {
	PublishBetConfirmed(ctx context.Context, e events.BetConfirmed) error
}

// Confirmer settles pending bets: it re-checks the market against the
// database of record and either confirms the bet or rejects it and refunds
// the reservation.
type Confirmer struct {
	Log       *zap.Logger
	Repo      Repo
	Wallet    WalletRefunder
	Publisher Publisher

	// Now is swappable for tests.
	Now func() time.Time
}

func (c *Confirmer) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Decide checks a placed bet against the current market state and returns the
// settlement status plus a reason on rejection. The snapshot comes back too so
// callers can enrich the settlement event with the market's record (title).
func (c *Confirmer) Decide(ctx context.Context, placed events.BetPlaced) (status, reason string, m repo.MarketSnapshot, err error) {
	m, err = c.Repo.GetMarketSnapshot(ctx, placed.MarketID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StatusRejected, "market_not_found", repo.MarketSnapshot{}, nil
		}
		return "", "", repo.MarketSnapshot{}, err
	}

	if m.Status != "active" {
		return StatusRejected, "market_not_active", m, nil
	}
	if !c.now().Before(m.EndDate) {
		return StatusRejected, "market_ended", m, nil
	}

	current := m.YesPrice
	if placed.Outcome == "no" {
		current = m.NoPrice
	}
	if math.Abs(current-placed.Price) > priceDriftTolerance {
		return StatusRejected, "price_moved", m, nil
	}
	return StatusConfirmed, "", m, nil
}

// Process settles one bet end to end. A failed refund is logged, not
// returned: the settlement record and event still go out.
func (c *Confirmer) Process(ctx context.Context, placed events.BetPlaced) error {
	status, reason, m, err := c.Decide(ctx, placed)
	if err != nil {
		return err
	}

	if err := c.Repo.UpdateBetStatus(ctx, placed.BetID, status); err != nil {
		return err
	}
	if err := c.Repo.InsertBetTransaction(ctx, placed.BetID, "PENDING_CONFIRMATION", status, reason); err != nil {
		c.Log.Warn("bet transaction insert failed", zap.Error(err))
	}

	if status == StatusRejected {
		if err := c.Wallet.Refund(ctx, placed.UserID, placed.ReservedRef); err != nil {
			c.Log.Error("wallet refund failed",
				zap.String("bet_id", placed.BetID), zap.Error(err))
		}
	}

	// The placement event travels without a title; the market record fills it
	// so feed entries render the real market name.
	title := m.Title
	if title == "" {
		title = placed.MarketTitle
	}

	return c.Publisher.PublishBetConfirmed(ctx, events.BetConfirmed{
		BetID:       placed.BetID,
		UserID:      placed.UserID,
		Username:    placed.Username,
		MarketID:    placed.MarketID,
		MarketTitle: title,
		Outcome:     placed.Outcome,
		StakeCents:  placed.StakeCents,
		Status:      status,
		Reason:      reason,
		Ts:          c.now(),
	})
}
