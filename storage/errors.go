package storage

import "errors"

var (
	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("storage: required parameter is nil")

	// ErrNoState indicates no ledger snapshot has been persisted yet.
	ErrNoState = errors.New("storage: no ledger state saved")

	// ErrCorruptState indicates persisted data could not be decoded.
	ErrCorruptState = errors.New("storage: corrupt ledger state")
)
