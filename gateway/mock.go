package gateway

import (
	"context"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"

	"github.com/paysplitorg/libpaysplit-go/ledger"
)

// MockChainService is a test double for ChainService. All function fields
// must be set before the corresponding method is called.
type MockChainService struct {
	ListUnspentFn func(ctx context.Context, addr ledger.Address) ([]*UTXO, error)
	BroadcastTxFn func(ctx context.Context, rawTxHex string) (string, error)
}

func (m *MockChainService) ListUnspent(ctx context.Context, addr ledger.Address) ([]*UTXO, error) {
	return m.ListUnspentFn(ctx, addr)
}

func (m *MockChainService) BroadcastTx(ctx context.Context, rawTxHex string) (string, error) {
	return m.BroadcastTxFn(ctx, rawTxHex)
}

// StaticKeySource is a KeySource backed by a fixed address→key map.
type StaticKeySource map[ledger.Address]*ec.PrivateKey

// Key returns the key for source, or ErrNoSigningKey.
func (s StaticKeySource) Key(source ledger.Address) (*ec.PrivateKey, error) {
	if k, ok := s[source]; ok {
		return k, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoSigningKey, source)
}
