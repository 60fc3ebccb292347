package ws

// ClientMsg is a message received from a browser client.
// Type: subscribe | unsubscribe | ping
// MarketID: required for subscribe/unsubscribe
type ClientMsg struct {
	Type     string `json:"type"`
	MarketID string `json:"market_id"`
}

// PriceBroadcast is a live price update pushed to subscribed clients.
type PriceBroadcast struct {
	MarketID string      `json:"market_id"`
	Payload  interface{} `json:"payload"`
}
