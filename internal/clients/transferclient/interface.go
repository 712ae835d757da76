package transferclient

import "context"

//go:generate mockery --name=TransferInterface --output=../../../tests/mocks --outpkg=mocks --filename=mock_transfer_client.go
type TransferInterface interface {
	// Transfer moves Amount of Asset out of the treasury. A nil error means
	// the gateway confirmed the transfer.
	Transfer(ctx context.Context, req TransferRequest) (*TransferReceipt, error)
}
