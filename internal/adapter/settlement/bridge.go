// Package settlement moves native value between funding addresses through
// an external transfer service. The ledger treats the bridge as the system
// boundary: a failed transfer aborts the surrounding database transaction.
package settlement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"collateral-ledger/internal/core/ports"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Bridge implements ports.SettlementBridge against an HTTP transfer service.
type Bridge struct {
	endpoint   string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewBridge creates a settlement bridge client.
func NewBridge(endpoint string, httpClient HTTPClient, log zerolog.Logger) *Bridge {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Bridge{
		endpoint:   endpoint,
		httpClient: httpClient,
		log:        log,
	}
}

// Transfer posts one value movement and fails unless the service accepts it.
func (b *Bridge) Transfer(ctx context.Context, req ports.TransferRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode transfer: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint+"/transfers", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build transfer request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("post transfer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("transfer rejected with status %d: %s", resp.StatusCode, detail)
	}

	b.log.Debug().
		Str("from", req.From).
		Str("to", req.To).
		Uint64("amount", req.Amount).
		Msg("transfer settled")
	return nil
}
