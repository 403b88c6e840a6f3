package ledger

import (
	"crypto/sha256"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"golang.org/x/crypto/ripemd160"
)

// AddressFromPublicKey derives the P2PKH identity for a public key:
// RIPEMD-160 over the SHA-256 of the compressed key bytes.
func AddressFromPublicKey(pubKey *ec.PublicKey) (Address, error) {
	if pubKey == nil {
		return Address{}, fmt.Errorf("%w: public key", ErrNilParam)
	}
	return hash160(pubKey.Compressed()), nil
}

// AddressFromBytes copies a raw 20-byte hash into an Address.
func AddressFromBytes(b []byte) (Address, error) {
	if len(b) != len(Address{}) {
		return Address{}, fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidAddress, len(Address{}), len(b))
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

func hash160(b []byte) Address {
	sha := sha256.Sum256(b)
	h := ripemd160.New()
	h.Write(sha[:])
	var a Address
	copy(a[:], h.Sum(nil))
	return a
}
