package ledger

import "context"

// MockGateway is a test double for Gateway. TransferFn must be set before
// Transfer is called.
type MockGateway struct {
	TransferFn func(ctx context.Context, source, recipient Address, satoshis uint64) error
}

func (m *MockGateway) Transfer(ctx context.Context, source, recipient Address, satoshis uint64) error {
	return m.TransferFn(ctx, source, recipient, satoshis)
}
