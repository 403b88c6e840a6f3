package gateway

import (
	"fmt"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction"
	"github.com/bsv-blockchain/go-sdk/transaction/template/p2pkh"

	"github.com/paysplitorg/libpaysplit-go/ledger"
)

// buildPayoutTx assembles and signs the payout transaction: the selected
// inputs, one P2PKH output to the recipient, and change back to the source
// when it clears the dust limit. Returns the signed tx hex.
func buildPayoutTx(inputs []*UTXO, priv *ec.PrivateKey, source, recipient ledger.Address, satoshis, fee uint64) (string, error) {
	sdkTx := transaction.NewTransaction()

	var total uint64
	for i, u := range inputs {
		utxoHash, err := chainhash.NewHash(u.TxID)
		if err != nil {
			return "", fmt.Errorf("%w: input %d txid: %w", ErrTxBuild, i, err)
		}
		sdkTx.AddInput(&transaction.TransactionInput{
			SourceTXID:       utxoHash,
			SourceTxOutIndex: u.Vout,
			SequenceNumber:   transaction.DefaultSequenceNumber,
		})
		total += u.Amount
	}

	payOut, err := p2pkhOutput(recipient, satoshis)
	if err != nil {
		return "", err
	}
	sdkTx.Outputs = append(sdkTx.Outputs, payOut)

	change := total - satoshis - fee
	if change > DustLimit {
		changeOut, err := p2pkhOutput(source, change)
		if err != nil {
			return "", err
		}
		sdkTx.Outputs = append(sdkTx.Outputs, changeOut)
	}

	// Attach source output info and unlockers so the sighashes can be computed.
	for i, u := range inputs {
		unlocker, err := p2pkh.Unlock(priv, nil)
		if err != nil {
			return "", fmt.Errorf("%w: unlocker for input %d: %w", ErrSigningFailed, i, err)
		}
		lockingScript := script.NewFromBytes(u.ScriptPubKey)
		sdkTx.Inputs[i].SetSourceTxOutput(&transaction.TransactionOutput{
			Satoshis:      u.Amount,
			LockingScript: lockingScript,
		})
		sdkTx.Inputs[i].UnlockingScriptTemplate = unlocker
	}

	if err := sdkTx.Sign(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}
	return sdkTx.Hex(), nil
}

// p2pkhOutput creates a P2PKH output paying satoshis to the address hash.
func p2pkhOutput(addr ledger.Address, satoshis uint64) (*transaction.TransactionOutput, error) {
	sdkAddr, err := script.NewAddressFromPublicKeyHash(addr[:], true)
	if err != nil {
		return nil, fmt.Errorf("%w: address from hash: %w", ErrTxBuild, err)
	}
	lockScript, err := p2pkh.Lock(sdkAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: P2PKH lock: %w", ErrTxBuild, err)
	}
	return &transaction.TransactionOutput{
		Satoshis:      satoshis,
		LockingScript: lockScript,
	}, nil
}
