package dto

import "time"

// FeedItem is one rendered activity entry as the dashboard receives it.
type FeedItem struct {
	Kind        string    `json:"kind"`
	OccurredAt  time.Time `json:"occurred_at"`
	TimeAgo     string    `json:"time_ago"`
	Actor       string    `json:"actor"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
}

type FeedResponse struct {
	Items []FeedItem `json:"items"`
	Count int        `json:"count"`
}
