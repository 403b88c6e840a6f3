package storage

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/paysplitorg/libpaysplit-go/ledger"
)

var (
	bucketBeneficiaries = []byte("beneficiaries")
	bucketRegistryOrder = []byte("registry_order")
	bucketCounters      = []byte("counters")
)

var counterKey = []byte("state")

// ledgerCounters holds everything in a snapshot except the registry.
type ledgerCounters struct {
	Name            string
	ValueSource     ledger.Address
	FeeRecipient    ledger.Address
	FeeRecipientSet bool
	TotalClaimed    uint64
	UnlockedPercent uint64
	FeesCollected   uint64
	FeesClaimed     uint64
}

// BoltStore persists ledger snapshots in a bbolt database.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("storage: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketBeneficiaries, bucketRegistryOrder, bucketCounters} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// SaveState writes the snapshot in a single transaction, replacing any
// previously saved state.
func (s *BoltStore) SaveState(st *ledger.State) error {
	if st == nil {
		return fmt.Errorf("%w: state", ErrNilParam)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		// Replace rather than merge: drop and recreate the registry buckets
		// so removed-in-memory data cannot linger.
		for _, name := range [][]byte{bucketBeneficiaries, bucketRegistryOrder} {
			if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
				return fmt.Errorf("boltstore: drop bucket %q: %w", name, err)
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return fmt.Errorf("boltstore: recreate bucket %q: %w", name, err)
			}
		}

		bb := tx.Bucket(bucketBeneficiaries)
		ob := tx.Bucket(bucketRegistryOrder)
		for i, rec := range st.Beneficiaries {
			data, err := encodeGob(&rec)
			if err != nil {
				return fmt.Errorf("boltstore: encode beneficiary %d: %w", i, err)
			}
			if err := bb.Put(rec.Address[:], data); err != nil {
				return fmt.Errorf("boltstore: put beneficiary %d: %w", i, err)
			}
			if err := ob.Put(orderKey(uint32(i)), rec.Address[:]); err != nil {
				return fmt.Errorf("boltstore: put order %d: %w", i, err)
			}
		}

		counters := ledgerCounters{
			Name:            st.Name,
			ValueSource:     st.ValueSource,
			FeeRecipient:    st.FeeRecipient,
			FeeRecipientSet: st.FeeRecipientSet,
			TotalClaimed:    st.TotalClaimed,
			UnlockedPercent: st.UnlockedPercent,
			FeesCollected:   st.FeesCollected,
			FeesClaimed:     st.FeesClaimed,
		}
		data, err := encodeGob(&counters)
		if err != nil {
			return fmt.Errorf("boltstore: encode counters: %w", err)
		}
		if err := tx.Bucket(bucketCounters).Put(counterKey, data); err != nil {
			return fmt.Errorf("boltstore: put counters: %w", err)
		}
		return nil
	})
}

// LoadState reads the last saved snapshot. Beneficiaries come back in
// their original registration order.
func (s *BoltStore) LoadState() (*ledger.State, error) {
	var st *ledger.State

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketCounters).Get(counterKey)
		if data == nil {
			return ErrNoState
		}
		var counters ledgerCounters
		if err := decodeGob(data, &counters); err != nil {
			return fmt.Errorf("%w: counters: %w", ErrCorruptState, err)
		}

		st = &ledger.State{
			Name:            counters.Name,
			ValueSource:     counters.ValueSource,
			FeeRecipient:    counters.FeeRecipient,
			FeeRecipientSet: counters.FeeRecipientSet,
			TotalClaimed:    counters.TotalClaimed,
			UnlockedPercent: counters.UnlockedPercent,
			FeesCollected:   counters.FeesCollected,
			FeesClaimed:     counters.FeesClaimed,
		}

		bb := tx.Bucket(bucketBeneficiaries)
		return tx.Bucket(bucketRegistryOrder).ForEach(func(_, addr []byte) error {
			data := bb.Get(addr)
			if data == nil {
				return fmt.Errorf("%w: order entry %x has no record", ErrCorruptState, addr)
			}
			var rec ledger.BeneficiaryRecord
			if err := decodeGob(data, &rec); err != nil {
				return fmt.Errorf("%w: beneficiary %x: %w", ErrCorruptState, addr, err)
			}
			st.Beneficiaries = append(st.Beneficiaries, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// orderKey encodes a registry index as a 4-byte big-endian key so bbolt
// iterates entries in registration order.
func orderKey(i uint32) []byte {
	k := make([]byte, 4)
	binary.BigEndian.PutUint32(k, i)
	return k
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
