package activity

import (
	"testing"
	"time"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAggregateOrdersNewestFirst(t *testing.T) {
	sources := []Source{
		{Kind: KindBet, Rows: []Row{
			{OccurredAt: ts("2026-08-30T10:00:00Z"), Actor: "keisha", MarketTitle: "Reggae Boyz qualify?", Outcome: "yes", AmountCents: 2000},
		}},
		{Kind: KindComment, Rows: []Row{
			{OccurredAt: ts("2026-08-30T10:05:00Z"), Actor: "devon", MarketTitle: "Reggae Boyz qualify?"},
		}},
		{Kind: KindDeposit, Rows: []Row{
			{OccurredAt: ts("2026-08-30T09:59:00Z"), Actor: "keisha", AmountCents: 5000},
		}},
	}

	got := Aggregate(sources, 0)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantKinds := []Kind{KindComment, KindBet, KindDeposit}
	for i, k := range wantKinds {
		if got[i].Kind != k {
			t.Errorf("got[%d].Kind = %s, want %s", i, got[i].Kind, k)
		}
	}
}

func TestAggregateStableOnEqualTimestamps(t *testing.T) {
	at := ts("2026-08-30T12:00:00Z")
	sources := []Source{
		{Kind: KindBet, Rows: []Row{
			{OccurredAt: at, Actor: "first"},
			{OccurredAt: at, Actor: "second"},
		}},
		{Kind: KindComment, Rows: []Row{
			{OccurredAt: at, Actor: "third"},
		}},
	}
	got := Aggregate(sources, 0)
	want := []string{"first", "second", "third"}
	for i, actor := range want {
		if got[i].Actor != actor {
			t.Errorf("got[%d].Actor = %q, want %q", i, got[i].Actor, actor)
		}
	}
}

func TestAggregateLimit(t *testing.T) {
	rows := make([]Row, 40)
	base := ts("2026-08-30T00:00:00Z")
	for i := range rows {
		rows[i] = Row{OccurredAt: base.Add(time.Duration(i) * time.Minute)}
	}
	got := Aggregate([]Source{{Kind: KindBet, Rows: rows}}, DefaultFeedLimit)
	if len(got) != DefaultFeedLimit {
		t.Fatalf("len = %d, want %d", len(got), DefaultFeedLimit)
	}
	// limited feed must be the newest prefix of the full merge
	full := Aggregate([]Source{{Kind: KindBet, Rows: rows}}, 0)
	for i := range got {
		if !got[i].OccurredAt.Equal(full[i].OccurredAt) {
			t.Errorf("got[%d] = %v, want %v", i, got[i].OccurredAt, full[i].OccurredAt)
		}
	}
}

func TestAggregateEmptyAndNilSources(t *testing.T) {
	if got := Aggregate(nil, 10); len(got) != 0 {
		t.Errorf("Aggregate(nil) = %d events, want 0", len(got))
	}
	got := Aggregate([]Source{
		{Kind: KindBet, Rows: nil}, // failed fetch degraded to empty
		{Kind: KindComment, Rows: []Row{{OccurredAt: ts("2026-08-30T10:00:00Z"), Actor: "devon"}}},
	}, 10)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
}

func TestProject(t *testing.T) {
	at := ts("2026-08-30T10:00:00Z")
	tests := []struct {
		name     string
		kind     Kind
		row      Row
		wantDesc string
		wantIcon string
		wantLbl  string
	}{
		{
			name:     "bet",
			kind:     KindBet,
			row:      Row{OccurredAt: at, Actor: "keisha", Outcome: "yes", MarketTitle: "Rain in Kingston Sunday?", AmountCents: 2000},
			wantDesc: `YES on "Rain in Kingston Sunday?" - J$20.00`,
			wantIcon: "chart-line",
			wantLbl:  "Bet Placed",
		},
		{
			name:     "market created",
			kind:     KindMarketCreated,
			row:      Row{OccurredAt: at, Actor: "devon", MarketTitle: "Rain in Kingston Sunday?"},
			wantDesc: "Rain in Kingston Sunday?",
			wantIcon: "plus-circle",
			wantLbl:  "Market Created",
		},
		{
			name:     "comment",
			kind:     KindComment,
			row:      Row{OccurredAt: at, Actor: "devon", MarketTitle: "Rain in Kingston Sunday?"},
			wantDesc: `On "Rain in Kingston Sunday?"`,
			wantIcon: "comment",
			wantLbl:  "Comment Posted",
		},
		{
			name:     "user joined",
			kind:     KindUserJoined,
			row:      Row{OccurredAt: at, Actor: "marcia", Username: "marcia"},
			wantDesc: "@marcia joined",
			wantIcon: "user-plus",
			wantLbl:  "New Member",
		},
		{
			name:     "proposal",
			kind:     KindProposal,
			row:      Row{OccurredAt: at, Actor: "devon", ProposalTitle: "Add a carnival market"},
			wantDesc: "Add a carnival market",
			wantIcon: "lightbulb",
			wantLbl:  "Proposal Created",
		},
		{
			name:     "payout",
			kind:     KindPayout,
			row:      Row{OccurredAt: at, Actor: "keisha", AmountCents: 8000},
			wantDesc: "Won J$80.00",
			wantIcon: "trophy",
			wantLbl:  "Payout",
		},
		{
			name:     "deposit",
			kind:     KindDeposit,
			row:      Row{OccurredAt: at, Actor: "keisha", AmountCents: 5000},
			wantDesc: "+J$50.00",
			wantIcon: "arrow-down",
			wantLbl:  "Deposit",
		},
		{
			name:     "withdrawal uses absolute amount",
			kind:     KindWithdrawal,
			row:      Row{OccurredAt: at, Actor: "keisha", AmountCents: -2500},
			wantDesc: "-J$25.00",
			wantIcon: "arrow-up",
			wantLbl:  "Withdrawal",
		},
		{
			name:     "unknown kind falls back to raw kind and description",
			kind:     Kind("moderation"),
			row:      Row{OccurredAt: at, Actor: "admin", Description: "market locked"},
			wantDesc: "market locked",
			wantIcon: "circle-info",
			wantLbl:  "moderation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(tt.kind, tt.row)
			if got.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", got.Description, tt.wantDesc)
			}
			if got.Icon != tt.wantIcon {
				t.Errorf("Icon = %q, want %q", got.Icon, tt.wantIcon)
			}
			if got.Label != tt.wantLbl {
				t.Errorf("Label = %q, want %q", got.Label, tt.wantLbl)
			}
		})
	}
}

func TestProjectDefaultsActorToUnknown(t *testing.T) {
	got := Project(KindBet, Row{OccurredAt: ts("2026-08-30T10:00:00Z")})
	if got.Actor != UnknownActor {
		t.Errorf("Actor = %q, want %q", got.Actor, UnknownActor)
	}
}

func TestTimeAgo(t *testing.T) {
	now := ts("2026-08-30T12:00:00Z")
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{90 * time.Second, "1m ago"},
		{90 * time.Minute, "1h ago"}, // largest whole unit, not "90m ago"
		{26 * time.Hour, "1d ago"},
		{8 * 24 * time.Hour, "1w ago"},
		{45 * 24 * time.Hour, "1mo ago"},
		{400 * 24 * time.Hour, "1y ago"},
		{-5 * time.Second, "just now"},
	}
	for _, tt := range tests {
		if got := TimeAgo(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("TimeAgo(now-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}
