package wallet

import "errors"

var (
	// ErrInvalidSeed indicates an empty or malformed wallet seed.
	ErrInvalidSeed = errors.New("wallet: invalid seed")

	// ErrDerivationFailed indicates BIP32 key derivation failed.
	ErrDerivationFailed = errors.New("wallet: key derivation failed")

	// ErrKeyNotFound indicates no derived key matches the requested address.
	ErrKeyNotFound = errors.New("wallet: no key for address")
)
