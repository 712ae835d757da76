package transferclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/babylonlabs-io/vesting-engine/internal/clients/client"
	"github.com/babylonlabs-io/vesting-engine/internal/config"
)

const transfersEndpoint = "/v1/transfers"

type Client struct {
	httpClient *http.Client
	cfg        *config.TransferConfig
}

func NewClient(cfg *config.TransferConfig) *Client {
	if cfg == nil {
		return nil
	}

	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
	}
}

func (c *Client) GetBaseURL() string {
	return strings.TrimSuffix(c.cfg.URL, "/")
}

func (c *Client) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

// Transfer is sent exactly once, retrying is left to the caller
func (c *Client) Transfer(ctx context.Context, req TransferRequest) (*TransferReceipt, error) {
	if req.Amount == 0 {
		return nil, fmt.Errorf("transfer amount must be positive")
	}

	opts := &client.HttpClientOptions{
		Path:         transfersEndpoint,
		TemplatePath: transfersEndpoint,
		Headers: map[string]string{
			"Idempotency-Key": req.IdempotencyKey,
		},
	}

	receipt, err := client.SendRequest[TransferRequest, TransferReceipt](ctx, c, http.MethodPost, opts, &req)
	if err != nil {
		return nil, fmt.Errorf("transfer of %d %s to %s failed: %w", req.Amount, req.Asset, req.To, err)
	}

	if receipt.Status != StatusConfirmed {
		return receipt, fmt.Errorf("transfer %s not confirmed, status %q", receipt.TransferID, receipt.Status)
	}

	return receipt, nil
}
