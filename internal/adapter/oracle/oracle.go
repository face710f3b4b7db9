// Package oracle fetches validated price updates from a Hermes-style
// price feed endpoint. No caching: every call hits the endpoint so a
// stale local copy can never drive a liquidation.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"collateral-ledger/internal/core/domain"
	"collateral-ledger/pkg/apperror"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.PriceOracle against an HTTP price service.
type Client struct {
	endpoint   string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewClient creates a price oracle client.
func NewClient(endpoint string, httpClient HTTPClient, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		log:        log,
	}
}

// priceUpdateResponse mirrors the feed service's latest-update payload.
type priceUpdateResponse struct {
	Parsed []struct {
		ID    string `json:"id"`
		Price struct {
			Price       string `json:"price"`
			Conf        string `json:"conf"`
			Expo        int32  `json:"expo"`
			PublishTime int64  `json:"publish_time"`
		} `json:"price"`
	} `json:"parsed"`
}

// GetPrice fetches the freshest update for feedID and validates identity
// and age before returning it.
func (c *Client) GetPrice(ctx context.Context, feedID string, maxAge time.Duration) (*domain.PriceSnapshot, error) {
	url := fmt.Sprintf("%s/v2/updates/price/latest?ids[]=%s", c.endpoint, feedID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperror.ErrStaleOrMismatchedPrice(fmt.Errorf("build price request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.ErrStaleOrMismatchedPrice(fmt.Errorf("fetch price update: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.ErrStaleOrMismatchedPrice(fmt.Errorf("price service returned status %d", resp.StatusCode))
	}

	var payload priceUpdateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperror.ErrStaleOrMismatchedPrice(fmt.Errorf("decode price update: %w", err))
	}
	if len(payload.Parsed) == 0 {
		return nil, apperror.ErrStaleOrMismatchedPrice(fmt.Errorf("no update for feed %s", feedID))
	}

	update := payload.Parsed[0]
	snapshot := &domain.PriceSnapshot{
		FeedID:      update.ID,
		Expo:        update.Price.Expo,
		PublishedAt: time.Unix(update.Price.PublishTime, 0).UTC(),
	}
	if _, err := fmt.Sscan(update.Price.Price, &snapshot.Price); err != nil {
		return nil, apperror.ErrStaleOrMismatchedPrice(fmt.Errorf("parse price %q: %w", update.Price.Price, err))
	}
	if _, err := fmt.Sscan(update.Price.Conf, &snapshot.Conf); err != nil {
		return nil, apperror.ErrStaleOrMismatchedPrice(fmt.Errorf("parse conf %q: %w", update.Price.Conf, err))
	}

	if err := snapshot.Validate(feedID, maxAge, time.Now().UTC()); err != nil {
		return nil, apperror.ErrStaleOrMismatchedPrice(err)
	}

	c.log.Debug().
		Str("feed_id", snapshot.FeedID).
		Int64("price", snapshot.Price).
		Int32("expo", snapshot.Expo).
		Time("published_at", snapshot.PublishedAt).
		Msg("price update fetched")
	return snapshot, nil
}
