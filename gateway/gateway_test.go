package gateway

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/bsv-blockchain/go-sdk/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paysplitorg/libpaysplit-go/ledger"
)

func makeAddr(seed byte) ledger.Address {
	var addr ledger.Address
	for i := range addr {
		addr[i] = seed
	}
	return addr
}

func makeTxID(seed byte) []byte {
	id := make([]byte, 32)
	for i := range id {
		id[i] = seed
	}
	return id
}

// fundedSource creates a key, its address, and a P2PKH UTXO of the given
// amount locked to that address.
func fundedSource(t *testing.T, amount uint64) (*ec.PrivateKey, ledger.Address, *UTXO) {
	t.Helper()
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)
	addr, err := ledger.AddressFromPublicKey(priv.PubKey())
	require.NoError(t, err)

	out, err := p2pkhOutput(addr, amount)
	require.NoError(t, err)
	return priv, addr, &UTXO{
		TxID:         makeTxID(0x11),
		Vout:         0,
		Amount:       amount,
		ScriptPubKey: []byte(*out.LockingScript),
	}
}

func TestTransfer(t *testing.T) {
	priv, src, utxo := fundedSource(t, 100_000)
	recipient := makeAddr(0xBB)

	var broadcasted string
	svc := &MockChainService{
		ListUnspentFn: func(_ context.Context, addr ledger.Address) ([]*UTXO, error) {
			require.Equal(t, src, addr)
			return []*UTXO{utxo}, nil
		},
		BroadcastTxFn: func(_ context.Context, rawTxHex string) (string, error) {
			broadcasted = rawTxHex
			return "sometxid", nil
		},
	}

	g, err := New(svc, StaticKeySource{src: priv}, 500)
	require.NoError(t, err)

	require.NoError(t, g.Transfer(context.Background(), src, recipient, 50_000))
	require.NotEmpty(t, broadcasted)

	raw, err := hex.DecodeString(broadcasted)
	require.NoError(t, err)
	sdkTx, err := transaction.NewTransactionFromBytes(raw)
	require.NoError(t, err)

	require.Len(t, sdkTx.Inputs, 1)
	assert.NotEmpty(t, sdkTx.Inputs[0].UnlockingScript, "input must be signed")

	// Output 0 pays the recipient, output 1 returns change to the source.
	require.Len(t, sdkTx.Outputs, 2)
	assert.Equal(t, uint64(50_000), sdkTx.Outputs[0].Satoshis)

	wantLock, err := p2pkhOutput(recipient, 50_000)
	require.NoError(t, err)
	assert.Equal(t, wantLock.LockingScript, sdkTx.Outputs[0].LockingScript)

	wantChange, err := p2pkhOutput(src, 0)
	require.NoError(t, err)
	assert.Equal(t, wantChange.LockingScript, sdkTx.Outputs[1].LockingScript)

	// Change = inputs − payout − fee; fee is positive and small.
	change := sdkTx.Outputs[1].Satoshis
	assert.Less(t, change, uint64(50_000))
	assert.Greater(t, change, uint64(49_000))
}

func TestTransfer_SkipsChangeBelowDust(t *testing.T) {
	// Amount leaves almost nothing after the payout and fee.
	priv, src, utxo := fundedSource(t, 51_000)
	recipient := makeAddr(0xBB)

	var broadcasted string
	svc := &MockChainService{
		ListUnspentFn: func(context.Context, ledger.Address) ([]*UTXO, error) {
			return []*UTXO{utxo}, nil
		},
		BroadcastTxFn: func(_ context.Context, rawTxHex string) (string, error) {
			broadcasted = rawTxHex
			return "sometxid", nil
		},
	}
	g, err := New(svc, StaticKeySource{src: priv}, 500)
	require.NoError(t, err)

	require.NoError(t, g.Transfer(context.Background(), src, recipient, 50_500))

	raw, err := hex.DecodeString(broadcasted)
	require.NoError(t, err)
	sdkTx, err := transaction.NewTransactionFromBytes(raw)
	require.NoError(t, err)
	require.Len(t, sdkTx.Outputs, 1)
	assert.Equal(t, uint64(50_500), sdkTx.Outputs[0].Satoshis)
}

func TestTransfer_CombinesMultipleUTXOs(t *testing.T) {
	priv, src, utxo := fundedSource(t, 30_000)
	second := &UTXO{
		TxID:         makeTxID(0x22),
		Vout:         1,
		Amount:       30_000,
		ScriptPubKey: utxo.ScriptPubKey,
	}
	recipient := makeAddr(0xBB)

	var broadcasted string
	svc := &MockChainService{
		ListUnspentFn: func(context.Context, ledger.Address) ([]*UTXO, error) {
			return []*UTXO{utxo, second}, nil
		},
		BroadcastTxFn: func(_ context.Context, rawTxHex string) (string, error) {
			broadcasted = rawTxHex
			return "sometxid", nil
		},
	}
	g, err := New(svc, StaticKeySource{src: priv}, 500)
	require.NoError(t, err)

	require.NoError(t, g.Transfer(context.Background(), src, recipient, 50_000))

	raw, err := hex.DecodeString(broadcasted)
	require.NoError(t, err)
	sdkTx, err := transaction.NewTransactionFromBytes(raw)
	require.NoError(t, err)
	require.Len(t, sdkTx.Inputs, 2)
	for i, in := range sdkTx.Inputs {
		assert.NotEmpty(t, in.UnlockingScript, "input %d must be signed", i)
	}
}

func TestTransfer_Errors(t *testing.T) {
	priv, src, utxo := fundedSource(t, 10_000)
	recipient := makeAddr(0xBB)
	broadcastErr := errors.New("mempool conflict")

	okService := func() *MockChainService {
		return &MockChainService{
			ListUnspentFn: func(context.Context, ledger.Address) ([]*UTXO, error) {
				return []*UTXO{utxo}, nil
			},
			BroadcastTxFn: func(context.Context, string) (string, error) {
				return "sometxid", nil
			},
		}
	}

	tests := []struct {
		name     string
		svc      *MockChainService
		keys     KeySource
		source   ledger.Address
		satoshis uint64
		wantErr  error
	}{
		{"zero source", okService(), StaticKeySource{src: priv}, ledger.Address{}, 5_000, ErrNilParam},
		{"below dust", okService(), StaticKeySource{src: priv}, src, DustLimit - 1, ErrDustOutput},
		{"no signing key", okService(), StaticKeySource{}, src, 5_000, ErrNoSigningKey},
		{"insufficient funds", okService(), StaticKeySource{src: priv}, src, 50_000, ErrInsufficientFunds},
		{
			"broadcast rejected",
			&MockChainService{
				ListUnspentFn: func(context.Context, ledger.Address) ([]*UTXO, error) {
					return []*UTXO{utxo}, nil
				},
				BroadcastTxFn: func(context.Context, string) (string, error) {
					return "", broadcastErr
				},
			},
			StaticKeySource{src: priv}, src, 5_000, ErrBroadcastFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.svc, tt.keys, 500)
			require.NoError(t, err)
			err = g.Transfer(context.Background(), tt.source, recipient, tt.satoshis)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, StaticKeySource{}, 0)
	assert.ErrorIs(t, err, ErrNilParam)

	_, err = New(&MockChainService{}, nil, 0)
	assert.ErrorIs(t, err, ErrNilParam)
}

func TestEstimateFee(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		feeRate uint64
		want    uint64
	}{
		{"rounds up", 250, 1, 1},
		{"exact KB", 1000, 1, 1},
		{"over one KB", 1001, 1, 2},
		{"higher rate", 500, 500, 250},
		{"zero rate uses default", 250, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateFee(tt.size, tt.feeRate))
		})
	}
}

func TestEstimateTxSize(t *testing.T) {
	// 1 input, 2 outputs: 10 + 148 + 68
	assert.Equal(t, 226, EstimateTxSize(1, 2))
	assert.Equal(t, 10, EstimateTxSize(0, 0))
}
