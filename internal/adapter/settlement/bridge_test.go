package settlement

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"collateral-ledger/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridge_Transfer_Success(t *testing.T) {
	var received ports.TransferRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transfers", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	bridge := NewBridge(srv.URL, nil, zerolog.Nop())

	err := bridge.Transfer(context.Background(), ports.TransferRequest{
		From:   "owner-a",
		To:     "vault-a",
		Amount: 5_000_000,
		Memo:   "vault deposit",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner-a", received.From)
	assert.Equal(t, "vault-a", received.To)
	assert.Equal(t, uint64(5_000_000), received.Amount)
}

func TestBridge_Transfer_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "insufficient source funds", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	bridge := NewBridge(srv.URL, nil, zerolog.Nop())

	err := bridge.Transfer(context.Background(), ports.TransferRequest{
		From: "owner-a", To: "vault-a", Amount: 1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestBridge_Transfer_Unreachable(t *testing.T) {
	bridge := NewBridge("http://127.0.0.1:1", nil, zerolog.Nop())

	err := bridge.Transfer(context.Background(), ports.TransferRequest{
		From: "owner-a", To: "vault-a", Amount: 1,
	})
	assert.Error(t, err)
}
