package dto

// ReserveResponse is the wallet-service reserve endpoint response.
type ReserveResponse struct {
	ReservationID string `json:"reservation_id"`
	Status        string `json:"status"`
}
