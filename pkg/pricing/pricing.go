package pricing

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidProbability means the outcome probability is outside (0,1).
	// A probability of exactly 0 or 1 belongs to a resolved market, which
	// takes no new bets, so it is rejected rather than quoted.
	ErrInvalidProbability = errors.New("probability out of range (0,1)")

	// ErrInvalidStake means the stake is zero or negative.
	ErrInvalidStake = errors.New("stake must be positive")
)

// MinStakeCents is the smallest bet the platform accepts (J$1.00).
// Enforced at the API layer; Quote itself only rejects non-positive stakes.
const MinStakeCents int64 = 100

// QuoteResult is what a bettor sees before confirming: the decimal odds for
// the chosen outcome and the payout/profit those odds imply for the stake.
type QuoteResult struct {
	DecimalOdds          float64 `json:"decimal_odds"`
	PotentialPayoutCents int64   `json:"potential_payout_cents"`
	PotentialProfitCents int64   `json:"potential_profit_cents"`
	OddsFormatted        string  `json:"odds_formatted"`
}

// Quote converts a market probability and a stake in J$ cents into decimal
// odds (1/p), gross payout and net profit. Pure function: same inputs always
// produce the same result, safe to call repeatedly while a user types.
func Quote(probability float64, stakeCents int64) (QuoteResult, error) {
	if stakeCents <= 0 {
		return QuoteResult{}, ErrInvalidStake
	}
	if math.IsNaN(probability) || probability <= 0 || probability >= 1 {
		return QuoteResult{}, ErrInvalidProbability
	}

	odds := 1 / probability
	payout := int64(math.Round(float64(stakeCents) * odds))

	return QuoteResult{
		DecimalOdds:          odds,
		PotentialPayoutCents: payout,
		PotentialProfitCents: payout - stakeCents,
		OddsFormatted:        FormatOdds(odds),
	}, nil
}

// FormatOdds renders decimal odds as "2.00x". Non-finite or non-positive
// odds render as the "-" placeholder so callers never show Inf/NaN.
func FormatOdds(odds float64) string {
	if math.IsNaN(odds) || math.IsInf(odds, 0) || odds <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2fx", odds)
}

// Percent converts a probability to a whole percent, half-up, clamped to
// [0,100]. Single rounding convention for every display surface.
func Percent(probability float64) int {
	p := int(math.Round(probability * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// FormatJD renders an amount of J$ cents as "J$20.00" (or "-J$5.50").
func FormatJD(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%sJ$%d.%02d", sign, cents/100, cents%100)
}
