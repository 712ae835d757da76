package transferclient

import (
	"context"
	"time"

	"github.com/babylonlabs-io/vesting-engine/internal/observability/metrics"
)

type transferClientWithMetrics struct {
	transfer TransferInterface
}

func NewTransferClientWithMetrics(transfer TransferInterface) *transferClientWithMetrics {
	return &transferClientWithMetrics{transfer: transfer}
}

func (t *transferClientWithMetrics) Transfer(ctx context.Context, req TransferRequest) (*TransferReceipt, error) {
	return runTransferClientMethodWithMetrics("Transfer", func() (*TransferReceipt, error) {
		return t.transfer.Transfer(ctx, req)
	})
}

func runTransferClientMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	result, err := f()
	duration := time.Since(startTime)

	metrics.RecordTransferClientLatency(duration, method, err != nil)

	return result, err
}
