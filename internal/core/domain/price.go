package domain

import (
	"fmt"
	"time"
)

// PriceSnapshot is a timestamped, feed-identified market price reading.
// The price is scaled by 10^Expo (Expo is typically negative, e.g. -8).
// Snapshots are transient: fetched fresh per operation, never persisted.
type PriceSnapshot struct {
	FeedID      string    `json:"feed_id"`
	Price       int64     `json:"price"`
	Conf        uint64    `json:"conf"`
	Expo        int32     `json:"expo"`
	PublishedAt time.Time `json:"published_at"`
}

// Validate checks the snapshot against the expected feed identity and the
// maximum acceptable age at the given instant.
func (p *PriceSnapshot) Validate(expectedFeedID string, maxAge time.Duration, now time.Time) error {
	if p.FeedID != expectedFeedID {
		return fmt.Errorf("feed id %q does not match expected %q", p.FeedID, expectedFeedID)
	}
	if age := now.Sub(p.PublishedAt); age > maxAge {
		return fmt.Errorf("price published %s ago exceeds max age %s", age.Truncate(time.Second), maxAge)
	}
	return nil
}
