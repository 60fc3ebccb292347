package dto

type DepositRequest struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	AmountCents int64  `json:"amount_cents"`
	ExternalRef string `json:"external_ref,omitempty"` // optional, simple idempotency
}

type WithdrawRequest struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	AmountCents int64  `json:"amount_cents"`
	ExternalRef string `json:"external_ref,omitempty"`
}

type PayoutRequest struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	AmountCents int64  `json:"amount_cents"`
	ExternalRef string `json:"external_ref"` // ex: betID that won
}

type ReserveRequest struct {
	UserID      string `json:"user_id"`
	AmountCents int64  `json:"amount_cents"`
	ExternalRef string `json:"external_ref"` // ex: betID
}

type CommitRequest struct {
	UserID      string `json:"user_id"`
	ExternalRef string `json:"external_ref"`
}

type RefundRequest struct {
	UserID      string `json:"user_id"`
	ExternalRef string `json:"external_ref"`
}
