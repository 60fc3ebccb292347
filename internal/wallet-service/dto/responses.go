package dto

type WalletResponse struct {
	UserID       string `json:"user_id"`
	WalletID     string `json:"wallet_id"`
	BalanceCents int64  `json:"balance_cents"`
}

type ReservationResponse struct {
	ReservationID string `json:"reservation_id"`
	Status        string `json:"status"`
}
