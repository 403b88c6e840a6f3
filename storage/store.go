// Package storage persists ledger snapshots so the registry and all
// counters survive restarts. Reads always reflect the latest committed
// save.
package storage

import "github.com/paysplitorg/libpaysplit-go/ledger"

// Store persists and recovers full ledger snapshots.
type Store interface {
	// SaveState writes the snapshot, replacing any previous one.
	SaveState(st *ledger.State) error

	// LoadState returns the last saved snapshot, or ErrNoState if
	// nothing has been saved yet.
	LoadState() (*ledger.State, error)

	// Close releases the underlying database.
	Close() error
}
