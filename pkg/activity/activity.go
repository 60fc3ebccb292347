// Package activity merges the platform's heterogeneous event streams (bets,
// market creations, comments, signups, proposals, wallet movements) into one
// uniform, time-ordered feed. It owns the per-kind presentation contract; the
// services that render or persist feed entries never re-derive it.
package activity

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Cruelhelp/GoatMouth-sub000/pkg/pricing"
)

// Kind identifies which event stream a feed entry came from.
type Kind string

const (
	KindBet           Kind = "bet"
	KindMarketCreated Kind = "market_created"
	KindComment       Kind = "comment"
	KindUserJoined    Kind = "user_joined"
	KindProposal      Kind = "proposal"
	KindPayout        Kind = "payout"
	KindDeposit       Kind = "deposit"
	KindWithdrawal    Kind = "withdrawal"
)

// DefaultFeedLimit caps the compact dashboard feed.
const DefaultFeedLimit = 25

// UnknownActor is the fallback display name when the backend failed to
// resolve the user relation for a row.
const UnknownActor = "Unknown"

// Row is one raw record fetched from a backend source. Relation fields may be
// empty when the upstream join failed; projection substitutes defaults instead
// of rejecting the row.
type Row struct {
	OccurredAt    time.Time
	Actor         string
	Username      string
	MarketTitle   string
	ProposalTitle string
	Outcome       string
	AmountCents   int64
	Description   string
}

// Source pairs a kind with the raw rows fetched for it. A nil Rows slice is a
// valid source: a fetch that failed upstream degrades to an empty collection
// rather than failing the whole feed.
type Source struct {
	Kind Kind
	Rows []Row
}

// Event is one normalized feed entry, ready to render. Events are built
// transiently per aggregation call and never persisted by this package.
type Event struct {
	Kind        Kind      `json:"kind"`
	OccurredAt  time.Time `json:"occurred_at"`
	Actor       string    `json:"actor"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
}

// Aggregate projects every source row into an Event, merges all sources and
// sorts newest-first. The sort is stable: rows with identical timestamps keep
// their concatenated input order. A limit <= 0 means unbounded.
func Aggregate(sources []Source, limit int) []Event {
	events := make([]Event, 0)
	for _, src := range sources {
		for _, row := range src.Rows {
			events = append(events, Project(src.Kind, row))
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].OccurredAt.After(events[j].OccurredAt)
	})

	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events
}

// Project normalizes a single raw row into a feed entry for its kind.
func Project(kind Kind, row Row) Event {
	e := Event{
		Kind:       kind,
		OccurredAt: row.OccurredAt,
		Actor:      row.Actor,
	}
	if e.Actor == "" {
		e.Actor = UnknownActor
	}

	switch kind {
	case KindBet:
		e.Icon, e.Color, e.Label = "chart-line", "green", "Bet Placed"
		e.Description = fmt.Sprintf("%s on %q - %s",
			strings.ToUpper(row.Outcome), row.MarketTitle, pricing.FormatJD(row.AmountCents))
	case KindMarketCreated:
		e.Icon, e.Color, e.Label = "plus-circle", "purple", "Market Created"
		e.Description = row.MarketTitle
	case KindComment:
		e.Icon, e.Color, e.Label = "comment", "dark-green", "Comment Posted"
		e.Description = fmt.Sprintf("On %q", row.MarketTitle)
	case KindUserJoined:
		e.Icon, e.Color, e.Label = "user-plus", "yellow", "New Member"
		e.Description = fmt.Sprintf("@%s joined", row.Username)
	case KindProposal:
		e.Icon, e.Color, e.Label = "lightbulb", "teal", "Proposal Created"
		e.Description = row.ProposalTitle
	case KindPayout:
		e.Icon, e.Color, e.Label = "trophy", "yellow", "Payout"
		e.Description = "Won " + pricing.FormatJD(row.AmountCents)
	case KindDeposit:
		e.Icon, e.Color, e.Label = "arrow-down", "green", "Deposit"
		e.Description = "+" + pricing.FormatJD(row.AmountCents)
	case KindWithdrawal:
		amount := row.AmountCents
		if amount < 0 {
			amount = -amount
		}
		e.Icon, e.Color, e.Label = "arrow-up", "red", "Withdrawal"
		e.Description = "-" + pricing.FormatJD(amount)
	default:
		e.Icon, e.Color, e.Label = "circle-info", "purple", string(kind)
		e.Description = row.Description
	}
	return e
}
