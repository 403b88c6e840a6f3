package ledger

import (
	"context"
	"encoding/hex"
)

// Address identifies a beneficiary or payout recipient as a 20-byte
// P2PKH public key hash.
type Address [20]byte

// IsZero returns true if the address is the all-zero (null) identity.
func (a Address) IsZero() bool {
	return a == Address{}
}

// String returns the hex encoding of the address hash.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// Beneficiary is a registered claimant in the distribution registry.
// Allocation and FeePercent are fixed at registration; Claimed only grows.
type Beneficiary struct {
	Address    Address
	Allocation uint64 // percentage-point units of the distributable pool
	FeePercent uint64 // platform fee rate in [0, 100)
	Claimed    uint64 // cumulative amount already released, accounting units
}

// Gateway moves value from the ledger's funding source to a recipient.
// Implementations must report failure synchronously; the ledger commits
// its accounting only after Transfer returns nil.
type Gateway interface {
	Transfer(ctx context.Context, source, recipient Address, satoshis uint64) error
}

// Authorizer decides whether a caller may invoke privileged operations.
type Authorizer interface {
	IsPrivileged(caller Address) bool
}

// Notifier receives ledger events. Delivery is best effort: a nil
// Notifier is valid and no operation depends on the sink being present.
// Implementations must not call back into the Ledger.
type Notifier interface {
	BeneficiaryAdded(addr Address, allocation uint64)
	PaymentReleased(addr Address, amount uint64)
}

// BeneficiaryRecord is the serializable form of a Beneficiary.
type BeneficiaryRecord struct {
	Address    Address
	Allocation uint64
	FeePercent uint64
	Claimed    uint64
}

// State is a full snapshot of the ledger, in a form the storage layer
// can persist. Beneficiaries are listed in registration order.
type State struct {
	Name            string
	ValueSource     Address
	FeeRecipient    Address
	FeeRecipientSet bool
	TotalClaimed    uint64
	UnlockedPercent uint64
	FeesCollected   uint64
	FeesClaimed     uint64
	Beneficiaries   []BeneficiaryRecord
}
