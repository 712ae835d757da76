package transferclient

import "github.com/babylonlabs-io/vesting-engine/internal/derive"

const StatusConfirmed = "confirmed"

type TransferRequest struct {
	From      string                   `json:"from"`
	To        string                   `json:"to"`
	Asset     string                   `json:"asset"`
	Amount    uint64                   `json:"amount"`
	Decimals  uint8                    `json:"decimals"`
	Authority derive.TreasuryAuthority `json:"authority"`
	// IdempotencyKey lets the gateway drop a replayed transfer
	IdempotencyKey string `json:"idempotency_key"`
}

type TransferReceipt struct {
	TransferID string `json:"transfer_id"`
	Status     string `json:"status"`
}
