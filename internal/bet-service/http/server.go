package http

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"go.uber.org/zap"

	"github.com/Cruelhelp/GoatMouth-sub000/internal/bet-service/dto"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/bet-service/repo"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/bet-service/wallet"
	"github.com/Cruelhelp/GoatMouth-sub000/pkg/contracts/events"
	"github.com/Cruelhelp/GoatMouth-sub000/pkg/pricing"
)

// priceDriftTolerance is how far the live probability may move from the
// quoted one before the bet is bounced back to the client with a 409.
const priceDriftTolerance = 0.005

// PriceSource reads the live probability for one outcome of a market.
type PriceSource interface {
	CurrentPrice(ctx context.Context, marketID, outcome string) (float64, error)
}

// Publisher emits the bet_placed event consumed by the confirmation worker.
type Publisher interface {
	PublishBetPlaced(ctx context.Context, e events.BetPlaced) error
}

type Server struct {
	log   *zap.Logger
	repo  *repo.Postgres
	price PriceSource
	wcli  *wallet.Client
	publ  Publisher
}

func NewServer(log *zap.Logger, r *repo.Postgres, p PriceSource, w *wallet.Client, pub Publisher) *Server {
	return &Server{log: log, repo: r, price: p, wcli: w, publ: pub}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/bets", s.placeBet)      // POST
	mux.HandleFunc("/bets/", s.getBetStatus) // GET /bets/{id}
	return mux
}

func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.MarketID == "" || (req.Outcome != "yes" && req.Outcome != "no") {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.StakeCents < pricing.MinStakeCents {
		http.Error(w, "stake below minimum", http.StatusBadRequest)
		return
	}

	// 1) Reject bets quoted against a stale probability. A cache miss is not
	// fatal; the confirmation worker re-checks against the database.
	if cur, err := s.price.CurrentPrice(r.Context(), req.MarketID, req.Outcome); err == nil {
		if math.Abs(cur-req.Price) > priceDriftTolerance {
			http.Error(w, "price changed", http.StatusConflict)
			return
		}
	}

	// 2) Quote with the one shared engine; this also guards 0/1 probabilities
	// on markets that closed between the modal opening and submission.
	q, err := pricing.Quote(req.Price, req.StakeCents)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrInvalidProbability):
			http.Error(w, "market not quotable", http.StatusUnprocessableEntity)
		case errors.Is(err, pricing.ErrInvalidStake):
			http.Error(w, "invalid stake", http.StatusUnprocessableEntity)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	// 3) Create the local PENDING bet
	betID, err := s.repo.CreatePending(r.Context(), &repo.Bet{
		UserID:               req.UserID,
		MarketID:             req.MarketID,
		Outcome:              req.Outcome,
		StakeCents:           req.StakeCents,
		Price:                req.Price,
		PotentialPayoutCents: q.PotentialPayoutCents,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// 4) Reserve balance at the wallet (external_ref = betID)
	if _, err := s.wcli.Reserve(r.Context(), req.UserID, req.StakeCents, betID); err != nil {
		http.Error(w, "wallet reserve failed", http.StatusConflict)
		return
	}

	// 5) Publish bet_placed
	if err := s.publ.PublishBetPlaced(r.Context(), events.BetPlaced{
		BetID:       betID,
		UserID:      req.UserID,
		Username:    req.Username,
		MarketID:    req.MarketID,
		Outcome:     req.Outcome,
		StakeCents:  req.StakeCents,
		Price:       req.Price,
		ReservedRef: betID,
	}); err != nil {
		s.log.Error("publish bet_placed", zap.String("bet_id", betID), zap.Error(err))
	}

	writeJSON(w, dto.PlaceBetResponse{
		BetID:                betID,
		Status:               "PENDING_CONFIRMATION",
		OddsFormatted:        q.OddsFormatted,
		PotentialPayoutCents: q.PotentialPayoutCents,
		PotentialProfitCents: q.PotentialProfitCents,
	})
}

func (s *Server) getBetStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	// path: /bets/{id}
	id := r.URL.Path[len("/bets/"):]
	if id == "" {
		http.Error(w, "bet_id required", http.StatusBadRequest)
		return
	}

	st, err := s.repo.GetStatus(r.Context(), id)
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	writeJSON(w, dto.BetStatusResponse{BetID: id, Status: st})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
