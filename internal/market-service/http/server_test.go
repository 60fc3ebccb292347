package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Cruelhelp/GoatMouth-sub000/internal/market-service/dto"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/market-service/repo"
)

func newTestAPI(t *testing.T) (*API, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return &API{
		Log:      zap.NewNop(),
		ReadRepo: &repo.ReadRepo{DB: db},
	}, mock
}

func marketRows(yes, no float64, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "yes_price", "no_price", "status",
		"total_volume_cents", "end_date", "updated_at",
	}).AddRow("m1", "Reggae Boyz qualify?", yes, no, status,
		1500000, "2026-06-01T00:00:00Z", "2025-03-01T12:00:00Z")
}

func TestGetMarketComputesPercents(t *testing.T) {
	api, mock := newTestAPI(t)
	mock.ExpectQuery(`SELECT id, title, yes_price`).
		WithArgs("m1").
		WillReturnRows(marketRows(0.25, 0.75, "active"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/markets/m1", nil)
	api.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var m dto.Market
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, 25, m.YesPercent)
	assert.Equal(t, 75, m.NoPercent)
}

func TestGetMarketNotFound(t *testing.T) {
	api, mock := newTestAPI(t)
	mock.ExpectQuery(`SELECT id, title, yes_price`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "yes_price", "no_price", "status",
			"total_volume_cents", "end_date", "updated_at",
		}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/markets/nope", nil)
	api.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetQuote(t *testing.T) {
	api, mock := newTestAPI(t)
	mock.ExpectQuery(`SELECT id, title, yes_price`).
		WithArgs("m1").
		WillReturnRows(marketRows(0.25, 0.75, "active"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/markets/m1/quote?outcome=yes&stake_cents=2000", nil)
	api.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var q dto.QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &q))
	assert.Equal(t, "4.00x", q.OddsFormatted)
	assert.Equal(t, int64(8000), q.PotentialPayoutCents)
	assert.Equal(t, int64(6000), q.PotentialProfitCents)
}

func TestGetQuoteInvalidInputs(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantStatus int
		wantError  string
	}{
		{"bad outcome", "/v1/markets/m1/quote?outcome=maybe&stake_cents=2000", http.StatusBadRequest, ""},
		{"non numeric stake", "/v1/markets/m1/quote?outcome=yes&stake_cents=abc", http.StatusUnprocessableEntity, "invalid_stake"},
		{"below minimum stake", "/v1/markets/m1/quote?outcome=yes&stake_cents=50", http.StatusUnprocessableEntity, "invalid_stake"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, _ := newTestAPI(t)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			api.Router().ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				var e dto.QuoteError
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
				assert.Equal(t, tt.wantError, e.Error)
				assert.Equal(t, "-", e.OddsFormatted)
			}
		})
	}
}

func TestGetQuoteResolvedMarket(t *testing.T) {
	api, mock := newTestAPI(t)
	mock.ExpectQuery(`SELECT id, title, yes_price`).
		WithArgs("m1").
		WillReturnRows(marketRows(1, 0, "resolved"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/markets/m1/quote?outcome=yes&stake_cents=2000", nil)
	api.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var e dto.QuoteError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Equal(t, "invalid_probability", e.Error)
	assert.Equal(t, "-", e.OddsFormatted)
}
