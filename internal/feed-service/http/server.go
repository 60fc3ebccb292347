package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Cruelhelp/GoatMouth-sub000/internal/feed-service/dto"
	"github.com/Cruelhelp/GoatMouth-sub000/pkg/activity"
	"github.com/Cruelhelp/GoatMouth-sub000/pkg/contracts/events"
)

// SourceRepo is what the feed handler needs from the backing store.
type SourceRepo interface {
	RecentBets(ctx context.Context, limit int) ([]activity.Row, error)
	RecentMarkets(ctx context.Context, limit int) ([]activity.Row, error)
	RecentComments(ctx context.Context, limit int) ([]activity.Row, error)
	RecentSignups(ctx context.Context, limit int) ([]activity.Row, error)
	RecentProposals(ctx context.Context, limit int) ([]activity.Row, error)
	RecentWalletTx(ctx context.Context, opType string, limit int) ([]activity.Row, error)
}

// API serves the aggregated activity feed. Every source is best-effort: a
// failing query logs a warning and contributes zero rows, it never fails the
// request.
type API struct {
	Log  *zap.Logger
	Repo SourceRepo

	// Now is swappable for tests.
	Now func() time.Time
}

func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/activity", a.getActivity)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// collect wraps one source fetch; on failure the source degrades to empty.
func (a *API) collect(kind activity.Kind, rows []activity.Row, err error) activity.Source {
	if err != nil {
		a.Log.Warn("feed source failed",
			zap.String("kind", string(kind)), zap.Error(err))
		return activity.Source{Kind: kind}
	}
	return activity.Source{Kind: kind, Rows: rows}
}

// getActivity answers GET /v1/activity?limit=25.
func (a *API) getActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := activity.DefaultFeedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be an integer"})
			return
		}
		limit = n
	}

	// Each source is fetched with the requested limit so the merged feed can
	// fill entirely from any single stream.
	fetch := limit
	if fetch <= 0 {
		fetch = activity.DefaultFeedLimit
	}

	bets, errBets := a.Repo.RecentBets(ctx, fetch)
	markets, errMarkets := a.Repo.RecentMarkets(ctx, fetch)
	comments, errComments := a.Repo.RecentComments(ctx, fetch)
	signups, errSignups := a.Repo.RecentSignups(ctx, fetch)
	proposals, errProposals := a.Repo.RecentProposals(ctx, fetch)
	deposits, errDeposits := a.Repo.RecentWalletTx(ctx, events.WalletTxDeposit, fetch)
	withdrawals, errWithdrawals := a.Repo.RecentWalletTx(ctx, events.WalletTxWithdrawal, fetch)
	payouts, errPayouts := a.Repo.RecentWalletTx(ctx, events.WalletTxPayout, fetch)

	sources := []activity.Source{
		a.collect(activity.KindBet, bets, errBets),
		a.collect(activity.KindMarketCreated, markets, errMarkets),
		a.collect(activity.KindComment, comments, errComments),
		a.collect(activity.KindUserJoined, signups, errSignups),
		a.collect(activity.KindProposal, proposals, errProposals),
		a.collect(activity.KindDeposit, deposits, errDeposits),
		a.collect(activity.KindWithdrawal, withdrawals, errWithdrawals),
		a.collect(activity.KindPayout, payouts, errPayouts),
	}

	merged := activity.Aggregate(sources, limit)

	now := time.Now()
	if a.Now != nil {
		now = a.Now()
	}

	items := make([]dto.FeedItem, 0, len(merged))
	for _, e := range merged {
		items = append(items, dto.FeedItem{
			Kind:        string(e.Kind),
			OccurredAt:  e.OccurredAt,
			TimeAgo:     activity.TimeAgo(e.OccurredAt, now),
			Actor:       e.Actor,
			Icon:        e.Icon,
			Color:       e.Color,
			Label:       e.Label,
			Description: e.Description,
		})
	}

	writeJSON(w, http.StatusOK, dto.FeedResponse{Items: items, Count: len(items)})
}
