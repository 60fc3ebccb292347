package topics

const (
	// Market prices
	PriceUpdates = "market_price_updates"

	// Bets
	BetPlaced    = "bet_placed"
	BetConfirmed = "bet_confirmed"

	// Community
	MarketCreated   = "market_created"
	CommentPosted   = "comment_posted"
	UserJoined      = "user_joined"
	ProposalCreated = "proposal_created"

	// Wallet
	WalletTx = "wallet_tx"

	// DLQs
	BetPlacedDLQ = "bet_placed_dlq"
)
