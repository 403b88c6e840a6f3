// Package gateway moves ledger payouts on-chain. PayoutGateway implements
// ledger.Gateway by building, signing, and broadcasting a P2PKH transaction
// from the ledger's funding account to the recipient.
package gateway

import (
	"context"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"

	"github.com/paysplitorg/libpaysplit-go/ledger"
)

const (
	// DustLimit is the minimum satoshi value for a standard P2PKH output.
	DustLimit = uint64(546)

	// DefaultFeeRate is the fallback mining fee rate in satoshis per KB.
	DefaultFeeRate = uint64(1)
)

// UTXO is an unspent output funding the payout source.
type UTXO struct {
	TxID         []byte `json:"txid"` // 32 bytes
	Vout         uint32 `json:"vout"`
	Amount       uint64 `json:"amount"`        // satoshis
	ScriptPubKey []byte `json:"script_pubkey"` // locking script bytes
}

// ChainService is the narrow blockchain surface the gateway needs.
type ChainService interface {
	// ListUnspent returns spendable outputs held by the given address.
	ListUnspent(ctx context.Context, addr ledger.Address) ([]*UTXO, error)

	// BroadcastTx submits a raw transaction hex and returns the txid.
	BroadcastTx(ctx context.Context, rawTxHex string) (string, error)
}

// KeySource supplies the signing key for a payout source address.
type KeySource interface {
	Key(source ledger.Address) (*ec.PrivateKey, error)
}

// PayoutGateway builds and broadcasts payout transactions.
type PayoutGateway struct {
	svc     ChainService
	keys    KeySource
	feeRate uint64 // satoshis per KB
}

// Compile-time interface check.
var _ ledger.Gateway = (*PayoutGateway)(nil)

// New creates a PayoutGateway. A feeRate of 0 selects DefaultFeeRate.
func New(svc ChainService, keys KeySource, feeRate uint64) (*PayoutGateway, error) {
	if svc == nil {
		return nil, fmt.Errorf("%w: chain service", ErrNilParam)
	}
	if keys == nil {
		return nil, fmt.Errorf("%w: key source", ErrNilParam)
	}
	if feeRate == 0 {
		feeRate = DefaultFeeRate
	}
	return &PayoutGateway{svc: svc, keys: keys, feeRate: feeRate}, nil
}

// Transfer pays satoshis from source to recipient in a single transaction
// and reports failure synchronously. State is never left half-moved: the
// payout either confirms into the mempool via BroadcastTx or the error is
// returned before anything is spent.
func (g *PayoutGateway) Transfer(ctx context.Context, source, recipient ledger.Address, satoshis uint64) error {
	if source.IsZero() {
		return fmt.Errorf("%w: source", ErrNilParam)
	}
	if recipient.IsZero() {
		return fmt.Errorf("%w: recipient", ErrNilParam)
	}
	if satoshis < DustLimit {
		return fmt.Errorf("%w: %d sat < %d sat", ErrDustOutput, satoshis, DustLimit)
	}

	priv, err := g.keys.Key(source)
	if err != nil {
		return fmt.Errorf("gateway: signing key for %s: %w", source, err)
	}

	utxos, err := g.svc.ListUnspent(ctx, source)
	if err != nil {
		return fmt.Errorf("gateway: list unspent for %s: %w", source, err)
	}

	inputs, fee, err := selectInputs(utxos, satoshis, g.feeRate)
	if err != nil {
		return err
	}

	rawHex, err := buildPayoutTx(inputs, priv, source, recipient, satoshis, fee)
	if err != nil {
		return err
	}

	if _, err := g.svc.BroadcastTx(ctx, rawHex); err != nil {
		return fmt.Errorf("%w: %w", ErrBroadcastFailed, err)
	}
	return nil
}

// selectInputs accumulates UTXOs in the order the chain service returned
// them until they cover the payout plus the estimated fee. Returns the
// chosen inputs and the fee estimate for the final input count.
func selectInputs(utxos []*UTXO, satoshis, feeRate uint64) ([]*UTXO, uint64, error) {
	var (
		inputs []*UTXO
		total  uint64
	)
	for _, u := range utxos {
		if u == nil || u.Amount == 0 {
			continue
		}
		inputs = append(inputs, u)
		total += u.Amount

		// 2 outputs: recipient + change.
		fee := EstimateFee(EstimateTxSize(len(inputs), 2), feeRate)
		if total >= satoshis+fee {
			return inputs, fee, nil
		}
	}
	fee := EstimateFee(EstimateTxSize(len(inputs), 2), feeRate)
	return nil, 0, fmt.Errorf("%w: need %d sat, have %d sat",
		ErrInsufficientFunds, satoshis+fee, total)
}

// EstimateTxSize returns a conservative byte size for a P2PKH-only tx.
func EstimateTxSize(numInputs, numOutputs int) int {
	// Base: version(4) + locktime(4) + input count varint(1) + output count varint(1) = 10
	// Per input: prevhash(32) + previndex(4) + scriptlen varint(1) + script(~107) + sequence(4) = 148
	// Per output: value(8) + scriptlen varint(1) + script(~25) = 34
	return 10 + numInputs*148 + numOutputs*34
}

// EstimateFee returns the mining fee for a tx of the given size at
// feeRate satoshis per KB, rounded up.
func EstimateFee(txSizeBytes int, feeRate uint64) uint64 {
	if feeRate == 0 {
		feeRate = DefaultFeeRate
	}
	fee := uint64(txSizeBytes) * feeRate
	return (fee + 999) / 1000
}
