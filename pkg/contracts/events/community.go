package events

import "time"

// Community events published by the hosted backend when users create content.

type MarketCreated struct {
	MarketID string    `json:"market_id"`
	Title    string    `json:"title"`
	Creator  string    `json:"creator"`
	Ts       time.Time `json:"ts"`
}

type CommentPosted struct {
	CommentID   string    `json:"comment_id"`
	MarketID    string    `json:"market_id"`
	MarketTitle string    `json:"market_title"`
	Author      string    `json:"author"`
	Ts          time.Time `json:"ts"`
}

type UserJoined struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	Ts       time.Time `json:"ts"`
}

type ProposalCreated struct {
	ProposalID string    `json:"proposal_id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Ts         time.Time `json:"ts"`
}
