package gateway

import "errors"

var (
	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("gateway: required parameter is nil")

	// ErrNoSigningKey indicates no private key is known for the source.
	ErrNoSigningKey = errors.New("gateway: no signing key for source")

	// ErrDustOutput indicates the payout amount is below the dust limit.
	ErrDustOutput = errors.New("gateway: payout below dust limit")

	// ErrInsufficientFunds indicates the source UTXOs cannot cover the
	// payout plus mining fee.
	ErrInsufficientFunds = errors.New("gateway: insufficient funds")

	// ErrTxBuild indicates payout transaction construction failed.
	ErrTxBuild = errors.New("gateway: transaction build failed")

	// ErrSigningFailed indicates payout transaction signing failed.
	ErrSigningFailed = errors.New("gateway: signing failed")

	// ErrBroadcastFailed indicates the network rejected the payout tx.
	ErrBroadcastFailed = errors.New("gateway: broadcast failed")
)
