package pricing

import (
	"errors"
	"testing"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		stakeCents  int64
		wantErr     error
		wantOdds    float64
		wantPayout  int64
		wantProfit  int64
		wantFmt     string
	}{
		{
			name:        "25 cent yes with J$20 stake",
			probability: 0.25,
			stakeCents:  2000,
			wantOdds:    4.0,
			wantPayout:  8000,
			wantProfit:  6000,
			wantFmt:     "4.00x",
		},
		{
			name:        "even odds",
			probability: 0.5,
			stakeCents:  100,
			wantOdds:    2.0,
			wantPayout:  200,
			wantProfit:  100,
			wantFmt:     "2.00x",
		},
		{
			name:        "heavy favourite rounds payout half-up",
			probability: 0.75,
			stakeCents:  1000,
			wantOdds:    1 / 0.75,
			wantPayout:  1333,
			wantProfit:  333,
			wantFmt:     "1.33x",
		},
		{
			name:        "zero probability",
			probability: 0,
			stakeCents:  2000,
			wantErr:     ErrInvalidProbability,
		},
		{
			name:        "probability of one (resolved market)",
			probability: 1,
			stakeCents:  2000,
			wantErr:     ErrInvalidProbability,
		},
		{
			name:        "negative probability",
			probability: -0.1,
			stakeCents:  2000,
			wantErr:     ErrInvalidProbability,
		},
		{
			name:        "negative stake",
			probability: 0.5,
			stakeCents:  -500,
			wantErr:     ErrInvalidStake,
		},
		{
			name:        "zero stake",
			probability: 0.5,
			stakeCents:  0,
			wantErr:     ErrInvalidStake,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Quote(tt.probability, tt.stakeCents)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Quote() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Quote() unexpected error: %v", err)
			}
			if got.DecimalOdds != tt.wantOdds {
				t.Errorf("DecimalOdds = %v, want %v", got.DecimalOdds, tt.wantOdds)
			}
			if got.PotentialPayoutCents != tt.wantPayout {
				t.Errorf("PotentialPayoutCents = %d, want %d", got.PotentialPayoutCents, tt.wantPayout)
			}
			if got.PotentialProfitCents != tt.wantProfit {
				t.Errorf("PotentialProfitCents = %d, want %d", got.PotentialProfitCents, tt.wantProfit)
			}
			if got.OddsFormatted != tt.wantFmt {
				t.Errorf("OddsFormatted = %q, want %q", got.OddsFormatted, tt.wantFmt)
			}
		})
	}
}

func TestQuoteIdempotent(t *testing.T) {
	a, err := Quote(0.37, 1550)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Quote(0.37, 1550)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("repeated quotes diverged: %+v vs %+v", a, b)
	}
}

func TestFormatOdds(t *testing.T) {
	tests := []struct {
		odds float64
		want string
	}{
		{2, "2.00x"},
		{1.333333, "1.33x"},
		{0, "-"},
		{-4, "-"},
	}
	for _, tt := range tests {
		if got := FormatOdds(tt.odds); got != tt.want {
			t.Errorf("FormatOdds(%v) = %q, want %q", tt.odds, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		p    float64
		want int
	}{
		{0.25, 25},
		{0.255, 26}, // half-up
		{0.004, 0},
		{0.996, 100},
		{-0.2, 0},
		{1.4, 100},
	}
	for _, tt := range tests {
		if got := Percent(tt.p); got != tt.want {
			t.Errorf("Percent(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestFormatJD(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{2000, "J$20.00"},
		{5, "J$0.05"},
		{-550, "-J$5.50"},
		{0, "J$0.00"},
	}
	for _, tt := range tests {
		if got := FormatJD(tt.cents); got != tt.want {
			t.Errorf("FormatJD(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
