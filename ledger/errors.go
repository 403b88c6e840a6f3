package ledger

import "errors"

var (
	// ErrNilParam indicates a required constructor parameter is nil.
	ErrNilParam = errors.New("ledger: required parameter is nil")

	// ErrInvalidAddress indicates a null (all-zero) identity.
	ErrInvalidAddress = errors.New("ledger: invalid address")

	// ErrInvalidAllocation indicates an allocation of zero.
	ErrInvalidAllocation = errors.New("ledger: allocation must be greater than zero")

	// ErrInvalidFeePercent indicates a fee rate of 100% or more.
	ErrInvalidFeePercent = errors.New("ledger: fee percent must be below 100")

	// ErrAlreadyRegistered indicates the identity is already in the registry.
	ErrAlreadyRegistered = errors.New("ledger: beneficiary already registered")

	// ErrLengthMismatch indicates batch input slices differ in length.
	ErrLengthMismatch = errors.New("ledger: batch slices differ in length")

	// ErrEmptyBatch indicates a batch registration with no entries.
	ErrEmptyBatch = errors.New("ledger: empty batch")

	// ErrNotBeneficiary indicates the caller is not registered.
	ErrNotBeneficiary = errors.New("ledger: caller is not a beneficiary")

	// ErrNothingDue indicates no amount is currently withdrawable.
	ErrNothingDue = errors.New("ledger: nothing due")

	// ErrFeeRecipientUnset indicates fees cannot be released before a
	// fee recipient is configured.
	ErrFeeRecipientUnset = errors.New("ledger: fee recipient not set")

	// ErrUnauthorized indicates the caller lacks the required privilege.
	ErrUnauthorized = errors.New("ledger: caller not authorized")

	// ErrTransferFailed wraps a gateway failure; no accounting mutation
	// is committed when this is returned.
	ErrTransferFailed = errors.New("ledger: value transfer failed")

	// ErrIndexOutOfRange indicates a registry index past the last entry.
	ErrIndexOutOfRange = errors.New("ledger: registry index out of range")
)
