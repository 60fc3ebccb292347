package worker

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cruelhelp/GoatMouth-sub000/pkg/activity"
	"github.com/Cruelhelp/GoatMouth-sub000/pkg/contracts/events"
)

func TestDecodeBetConfirmed(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	confirmed, _ := json.Marshal(events.BetConfirmed{
		BetID: "b1", Username: "marcus", MarketID: "m1",
		MarketTitle: "Reggae Boyz qualify?", Outcome: "yes",
		StakeCents: 2000, Status: "CONFIRMED", Ts: ts,
	})
	ev, ok, err := DecodeBetConfirmed(confirmed)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, activity.KindBet, ev.Kind)
	assert.Equal(t, "marcus", ev.Actor)
	assert.Equal(t, `YES on "Reggae Boyz qualify?" - J$20.00`, ev.Description)
	assert.Equal(t, ts, ev.OccurredAt)

	rejected, _ := json.Marshal(events.BetConfirmed{
		BetID: "b2", Status: "REJECTED", Reason: "price_moved", Ts: ts,
	})
	_, ok, err = DecodeBetConfirmed(rejected)
	require.NoError(t, err)
	assert.False(t, ok, "rejected bets must not reach the feed")

	_, _, err = DecodeBetConfirmed([]byte("{not json"))
	assert.Error(t, err)
}

func TestDecodeWalletTx(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		txType   string
		amount   int64
		wantKind activity.Kind
		wantDesc string
		wantOK   bool
	}{
		{events.WalletTxDeposit, 5000, activity.KindDeposit, "+J$50.00", true},
		{events.WalletTxWithdrawal, 2500, activity.KindWithdrawal, "-J$25.00", true},
		{events.WalletTxPayout, 8000, activity.KindPayout, "Won J$80.00", true},
		{"RESERVE", 100, "", "", false},
	}
	for _, tt := range tests {
		raw, _ := json.Marshal(events.WalletTx{
			Username: "keisha", Type: tt.txType, AmountCents: tt.amount, Ts: ts,
		})
		ev, ok, err := DecodeWalletTx(raw)
		require.NoError(t, err)
		assert.Equal(t, tt.wantOK, ok, tt.txType)
		if ok {
			assert.Equal(t, tt.wantKind, ev.Kind)
			assert.Equal(t, tt.wantDesc, ev.Description)
			assert.Equal(t, "keisha", ev.Actor)
		}
	}
}

func TestDecodeCommunityEvents(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	raw, _ := json.Marshal(events.MarketCreated{Title: "Hurricane before Oct?", Creator: "dre", Ts: ts})
	ev, ok, err := DecodeMarketCreated(raw)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Hurricane before Oct?", ev.Description)

	raw, _ = json.Marshal(events.CommentPosted{MarketTitle: "Hurricane before Oct?", Author: "", Ts: ts})
	ev, ok, err = DecodeCommentPosted(raw)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, activity.UnknownActor, ev.Actor)
	assert.Equal(t, `On "Hurricane before Oct?"`, ev.Description)

	raw, _ = json.Marshal(events.UserJoined{Username: "shelly", Ts: ts})
	ev, ok, err = DecodeUserJoined(raw)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "@shelly joined", ev.Description)

	raw, _ = json.Marshal(events.ProposalCreated{Title: "Add dancehall charts market", Author: "tami", Ts: ts})
	ev, ok, err = DecodeProposalCreated(raw)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Add dancehall charts market", ev.Description)
}
