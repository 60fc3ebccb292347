package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Cruelhelp/GoatMouth-sub000/internal/market-service/cache"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/market-service/dto"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/market-service/repo"
	"github.com/Cruelhelp/GoatMouth-sub000/pkg/pricing"
)

// API exposes the market read endpoints and the bet-modal quote endpoint.
// Reads go through a redis cache in front of the Postgres read repo.
type API struct {
	Log      *zap.Logger
	ReadRepo *repo.ReadRepo
	Cache    *cache.Cache
}

func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/markets", a.listMarkets)
	r.Get("/v1/markets/{id}", a.getMarket)
	r.Get("/v1/markets/{id}/quote", a.getQuote)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *API) listMarkets(w http.ResponseWriter, r *http.Request) {
	mk, err := a.ReadRepo.ListMarkets(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, mk)
}

func (a *API) getMarket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var fromCache dto.Market
	if ok, _ := a.Cache.GetMarket(r.Context(), id, &fromCache); ok {
		writeJSON(w, http.StatusOK, fromCache)
		return
	}

	m, err := a.ReadRepo.GetMarket(r.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	_ = a.Cache.SetMarket(r.Context(), id, m, 10*time.Second)
	writeJSON(w, http.StatusOK, m)
}

// getQuote answers GET /v1/markets/{id}/quote?outcome=yes&stake_cents=2000.
// The market's current probability is read fresh on every call so the modal
// can re-quote as the user types; the engine itself holds no state.
func (a *API) getQuote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	outcome := r.URL.Query().Get("outcome")
	if outcome != "yes" && outcome != "no" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "outcome must be yes or no"})
		return
	}
	stakeCents, err := strconv.ParseInt(r.URL.Query().Get("stake_cents"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, dto.QuoteError{Error: "invalid_stake", OddsFormatted: "-"})
		return
	}
	if stakeCents < pricing.MinStakeCents {
		writeJSON(w, http.StatusUnprocessableEntity, dto.QuoteError{Error: "invalid_stake", OddsFormatted: "-"})
		return
	}

	var m dto.Market
	if ok, _ := a.Cache.GetMarket(r.Context(), id, &m); !ok {
		m, err = a.ReadRepo.GetMarket(r.Context(), id)
		if err != nil {
			if err == sql.ErrNoRows {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		_ = a.Cache.SetMarket(r.Context(), id, m, 10*time.Second)
	}

	prob := m.YesPrice
	if outcome == "no" {
		prob = m.NoPrice
	}

	q, err := pricing.Quote(prob, stakeCents)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrInvalidProbability):
			// closed/resolved markets quote at 0 or 1; the UI shows "-"
			writeJSON(w, http.StatusUnprocessableEntity, dto.QuoteError{Error: "invalid_probability", OddsFormatted: "-"})
		case errors.Is(err, pricing.ErrInvalidStake):
			writeJSON(w, http.StatusUnprocessableEntity, dto.QuoteError{Error: "invalid_stake", OddsFormatted: "-"})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.QuoteResponse{
		MarketID:             id,
		Outcome:              outcome,
		Probability:          prob,
		StakeCents:           stakeCents,
		DecimalOdds:          q.DecimalOdds,
		OddsFormatted:        q.OddsFormatted,
		PotentialPayoutCents: q.PotentialPayoutCents,
		PotentialProfitCents: q.PotentialProfitCents,
	})
}
