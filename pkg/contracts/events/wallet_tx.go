package events

import "time"

const (
	WalletTxDeposit    = "DEPOSIT"
	WalletTxWithdrawal = "WITHDRAWAL"
	WalletTxPayout     = "PAYOUT"
)

// Event emitted by the wallet-service for every balance movement that should
// show up in the activity feed.
type WalletTx struct {
	WalletID    string    `json:"wallet_id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Type        string    `json:"type"` // DEPOSIT | WITHDRAWAL | PAYOUT
	AmountCents int64     `json:"amount_cents"`
	ExternalRef string    `json:"external_ref,omitempty"`
	Ts          time.Time `json:"ts"`
}
