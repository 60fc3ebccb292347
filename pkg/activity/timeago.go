package activity

import (
	"fmt"
	"time"
)

const (
	minute = 60
	hour   = 60 * minute
	day    = 24 * hour
	week   = 7 * day
	month  = 30 * day
	year   = 365 * day
)

// TimeAgo renders the elapsed time between t and now using the largest whole
// unit: "1y ago", "4mo ago", "2w ago", "3d ago", "1h ago", "5m ago", or
// "just now" under a minute. Future timestamps render as "just now".
func TimeAgo(t, now time.Time) string {
	secs := int64(now.Sub(t).Seconds())
	switch {
	case secs >= year:
		return fmt.Sprintf("%dy ago", secs/year)
	case secs >= month:
		return fmt.Sprintf("%dmo ago", secs/month)
	case secs >= week:
		return fmt.Sprintf("%dw ago", secs/week)
	case secs >= day:
		return fmt.Sprintf("%dd ago", secs/day)
	case secs >= hour:
		return fmt.Sprintf("%dh ago", secs/hour)
	case secs >= minute:
		return fmt.Sprintf("%dm ago", secs/minute)
	default:
		return "just now"
	}
}
