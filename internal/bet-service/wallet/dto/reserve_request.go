package dto

// ReserveRequest is the payload for reserving balance at the wallet-service.
type ReserveRequest struct {
	UserID      string `json:"user_id"`
	AmountCents int64  `json:"amount_cents"`
	ExternalRef string `json:"external_ref"`
}
