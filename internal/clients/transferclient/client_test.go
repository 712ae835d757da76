package transferclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/babylonlabs-io/vesting-engine/internal/config"
	"github.com/babylonlabs-io/vesting-engine/internal/derive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&config.TransferConfig{
		URL:     server.URL + "/",
		Timeout: time.Second,
	})
}

func testRequest(t *testing.T) TransferRequest {
	treasury := derive.TreasuryAddress("acme")
	authority, err := derive.NewTreasuryAuthority("acme", treasury.Bump, treasury.ID)
	require.NoError(t, err)

	return TransferRequest{
		From:           treasury.ID,
		To:             derive.BeneficiaryAccount("alice", "USDC"),
		Asset:          "USDC",
		Amount:         250,
		Decimals:       6,
		Authority:      authority,
		IdempotencyKey: "key",
	}
}

func TestTransfer(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		req := testRequest(t)
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, transfersEndpoint, r.URL.Path)
			assert.Equal(t, "key", r.Header.Get("Idempotency-Key"))

			var got TransferRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			assert.Equal(t, req, got)
			assert.True(t, got.Authority.Verify("acme", derive.TreasuryAddress("acme").Bump))

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"transfer_id":"tx-1","status":"confirmed"}`))
		})

		receipt, err := c.Transfer(t.Context(), req)
		require.NoError(t, err)
		assert.Equal(t, "tx-1", receipt.TransferID)
	})
	t.Run("not confirmed", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"transfer_id":"tx-2","status":"rejected"}`))
		})

		_, err := c.Transfer(t.Context(), testRequest(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rejected")
	})
	t.Run("error status is not retried", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("maintenance"))
		})

		_, err := c.Transfer(t.Context(), testRequest(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
		assert.Equal(t, int32(1), calls.Load())
	})
	t.Run("zero amount", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Fail(t, "no request expected")
		})

		req := testRequest(t)
		req.Amount = 0
		_, err := c.Transfer(t.Context(), req)
		require.Error(t, err)
	})
	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}))
		t.Cleanup(server.Close)

		c := NewClient(&config.TransferConfig{URL: server.URL, Timeout: 20 * time.Millisecond})
		_, err := c.Transfer(t.Context(), testRequest(t))
		require.Error(t, err)
	})
}
