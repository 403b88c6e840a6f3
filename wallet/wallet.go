// Package wallet derives payout signing keys from a BIP39 seed and serves
// them to the gateway through its KeySource interface. Payout source
// accounts live on a single BIP44 chain; the wallet matches a ledger
// address to a derived key by scanning the chain up to a gap limit.
package wallet

import (
	"fmt"

	bip32 "github.com/bsv-blockchain/go-sdk/compat/bip32"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	chaincfg "github.com/bsv-blockchain/go-sdk/transaction/chaincfg"

	"github.com/paysplitorg/libpaysplit-go/ledger"
)

const (
	// BIP44 path constants: m/44'/236'/0'/0/index.
	PurposeBIP44  = 44
	CoinTypeBSV   = 236
	PayoutAccount = 0
	PayoutChain   = 0

	// Hardened is the BIP32 hardened derivation offset.
	Hardened = 0x80000000

	// DefaultGapLimit is how many payout addresses are derived when
	// scanning for a source key.
	DefaultGapLimit = 20
)

// Wallet holds the master key for payout source accounts.
type Wallet struct {
	masterKey *bip32.ExtendedKey
	gapLimit  uint32

	// keys caches derived keys by their P2PKH address.
	keys map[ledger.Address]*ec.PrivateKey
}

// NewWallet creates a Wallet from a BIP39 seed. network must be "mainnet"
// for production keys; anything else derives testnet keys.
func NewWallet(seed []byte, network string) (*Wallet, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}

	net := &chaincfg.TestNet
	if network == "mainnet" {
		net = &chaincfg.MainNet
	}

	masterKey, err := bip32.NewMaster(seed, net)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}

	return &Wallet{
		masterKey: masterKey,
		gapLimit:  DefaultGapLimit,
		keys:      make(map[ledger.Address]*ec.PrivateKey),
	}, nil
}

// DerivePayoutKey derives the key at m/44'/236'/0'/0/index and returns it
// with its ledger address.
func (w *Wallet) DerivePayoutKey(index uint32) (*ec.PrivateKey, ledger.Address, error) {
	path := []uint32{
		PurposeBIP44 + Hardened,
		CoinTypeBSV + Hardened,
		PayoutAccount + Hardened,
		PayoutChain,
		index,
	}

	current := w.masterKey
	for _, childIdx := range path {
		next, err := current.Child(childIdx)
		if err != nil {
			return nil, ledger.Address{}, fmt.Errorf("%w: child %d: %w", ErrDerivationFailed, childIdx, err)
		}
		current = next
	}

	privKey, err := current.ECPrivKey()
	if err != nil {
		return nil, ledger.Address{}, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}

	addr, err := ledger.AddressFromPublicKey(privKey.PubKey())
	if err != nil {
		return nil, ledger.Address{}, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}
	return privKey, addr, nil
}

// Key returns the signing key whose address matches source, scanning the
// payout chain up to the gap limit. Implements gateway.KeySource.
func (w *Wallet) Key(source ledger.Address) (*ec.PrivateKey, error) {
	if k, ok := w.keys[source]; ok {
		return k, nil
	}

	for i := uint32(0); i < w.gapLimit; i++ {
		priv, addr, err := w.DerivePayoutKey(i)
		if err != nil {
			return nil, err
		}
		w.keys[addr] = priv
		if addr == source {
			return priv, nil
		}
	}
	return nil, fmt.Errorf("%w: %s not within gap limit %d", ErrKeyNotFound, source, w.gapLimit)
}
