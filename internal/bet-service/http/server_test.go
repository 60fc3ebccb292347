package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Cruelhelp/GoatMouth-sub000/internal/bet-service/dto"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/bet-service/repo"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/bet-service/wallet"
	"github.com/Cruelhelp/GoatMouth-sub000/pkg/contracts/events"
)

type fakePrice struct {
	price float64
	err   error
}

func (f fakePrice) CurrentPrice(context.Context, string, string) (float64, error) {
	return f.price, f.err
}

type fakePublisher struct {
	published []events.BetPlaced
}

func (f *fakePublisher) PublishBetPlaced(_ context.Context, e events.BetPlaced) error {
	f.published = append(f.published, e)
	return nil
}

func newTestServer(t *testing.T, price fakePrice) (*Server, sqlmock.Sqlmock, *fakePublisher) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	walletSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"reservation_id": "res-1", "status": "PENDING"})
	}))
	t.Cleanup(walletSrv.Close)

	pub := &fakePublisher{}
	srv := NewServer(zap.NewNop(), repo.NewPostgres(db), price, wallet.New(walletSrv.URL), pub)
	return srv, mock, pub
}

func placeReq(t *testing.T, body dto.PlaceBetRequest) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, "/bets", bytes.NewReader(b))
}

func TestPlaceBet(t *testing.T) {
	srv, mock, pub := newTestServer(t, fakePrice{price: 0.25})
	mock.ExpectExec(`INSERT INTO bets`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, placeReq(t, dto.PlaceBetRequest{
		UserID:     "u-1",
		Username:   "keisha",
		MarketID:   "m-1",
		Outcome:    "yes",
		StakeCents: 2000,
		Price:      0.25,
	}))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.PlaceBetResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "PENDING_CONFIRMATION", resp.Status)
	assert.Equal(t, "4.00x", resp.OddsFormatted)
	assert.Equal(t, int64(8000), resp.PotentialPayoutCents)
	assert.Equal(t, int64(6000), resp.PotentialProfitCents)

	require.Len(t, pub.published, 1)
	assert.Equal(t, "m-1", pub.published[0].MarketID)
	assert.Equal(t, resp.BetID, pub.published[0].ReservedRef)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceBetPriceDrift(t *testing.T) {
	srv, _, pub := newTestServer(t, fakePrice{price: 0.40})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, placeReq(t, dto.PlaceBetRequest{
		UserID:     "u-1",
		MarketID:   "m-1",
		Outcome:    "yes",
		StakeCents: 2000,
		Price:      0.25, // quoted long ago; market moved to 0.40
	}))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, pub.published)
}

func TestPlaceBetPriceCacheMissStillPlaces(t *testing.T) {
	srv, mock, _ := newTestServer(t, fakePrice{err: errors.New("redis down")})
	mock.ExpectExec(`INSERT INTO bets`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, placeReq(t, dto.PlaceBetRequest{
		UserID:     "u-1",
		MarketID:   "m-1",
		Outcome:    "no",
		StakeCents: 500,
		Price:      0.5,
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceBetValidation(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.PlaceBetRequest
		wantCode int
	}{
		{
			name:     "stake below minimum",
			req:      dto.PlaceBetRequest{UserID: "u-1", MarketID: "m-1", Outcome: "yes", StakeCents: 50, Price: 0.5},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad outcome",
			req:      dto.PlaceBetRequest{UserID: "u-1", MarketID: "m-1", Outcome: "maybe", StakeCents: 2000, Price: 0.5},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing user",
			req:      dto.PlaceBetRequest{MarketID: "m-1", Outcome: "yes", StakeCents: 2000, Price: 0.5},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "resolved market probability",
			req:      dto.PlaceBetRequest{UserID: "u-1", MarketID: "m-1", Outcome: "yes", StakeCents: 2000, Price: 1},
			wantCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, _ := newTestServer(t, fakePrice{price: tt.req.Price})
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, placeReq(t, tt.req))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestGetBetStatus(t *testing.T) {
	srv, mock, _ := newTestServer(t, fakePrice{})
	mock.ExpectQuery(`SELECT status FROM bets`).
		WithArgs("bet-1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("CONFIRMED"))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bets/bet-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.BetStatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "CONFIRMED", resp.Status)
}
