// Package ledger implements a proportional-distribution ledger: a pool of
// value is released to registered beneficiaries in discrete unlocked
// tranches, split by fixed per-beneficiary allocations, with a platform fee
// skimmed into a separately claimable balance. Beneficiaries pull their owed
// amount on demand; the ledger never pushes value.
//
// Each beneficiary's allocation is interpreted as percentage points of the
// distributable pool. The pending-payment formula multiplies the allocation
// directly by the unlocked percentage without normalizing against the sum of
// all allocations, so a registry whose allocations sum past 100 points can
// over-commit the pool. The ledger does not enforce the sum; callers that
// need the guarantee must keep registrations within 100 points.
package ledger

import "sync"

// Params configures a new Ledger.
type Params struct {
	// Name is opaque display metadata, stored as-is.
	Name string

	// ValueSource identifies the account the gateway draws payouts from.
	// May be zero at construction and set later via SetValueSource.
	ValueSource Address

	// UnitScale converts accounting units to satoshis for transfers.
	// Zero means 1:1.
	UnitScale uint64

	Auth     Authorizer
	Gateway  Gateway
	Notifier Notifier // optional
}

// Ledger is the single aggregate owning all distribution state. Every
// mutating operation takes the one mutex, checks its preconditions before
// touching state, and either applies completely or not at all.
type Ledger struct {
	mu sync.Mutex

	auth     Authorizer
	gateway  Gateway
	notifier Notifier

	name        string
	valueSource Address
	unitScale   uint64

	beneficiaries map[Address]*Beneficiary
	order         []Address

	totalAllocation uint64
	totalClaimed    uint64
	unlockedPercent uint64
	feesCollected   uint64
	feesClaimed     uint64

	feeRecipient    Address
	feeRecipientSet bool
}

// New creates an empty ledger.
func New(p Params) (*Ledger, error) {
	if p.Auth == nil {
		return nil, ErrNilParam
	}
	if p.Gateway == nil {
		return nil, ErrNilParam
	}
	scale := p.UnitScale
	if scale == 0 {
		scale = 1
	}
	return &Ledger{
		auth:          p.Auth,
		gateway:       p.Gateway,
		notifier:      p.Notifier,
		name:          p.Name,
		valueSource:   p.ValueSource,
		unitScale:     scale,
		beneficiaries: make(map[Address]*Beneficiary),
	}, nil
}

// NewFromState creates a ledger from a persisted snapshot. Collaborators
// come from p; all counters and the registry come from st. The snapshot's
// Name and ValueSource take precedence over the values in p.
func NewFromState(p Params, st *State) (*Ledger, error) {
	if st == nil {
		return nil, ErrNilParam
	}
	l, err := New(p)
	if err != nil {
		return nil, err
	}
	l.name = st.Name
	l.valueSource = st.ValueSource
	l.feeRecipient = st.FeeRecipient
	l.feeRecipientSet = st.FeeRecipientSet
	l.totalClaimed = st.TotalClaimed
	l.unlockedPercent = st.UnlockedPercent
	l.feesCollected = st.FeesCollected
	l.feesClaimed = st.FeesClaimed
	for _, rec := range st.Beneficiaries {
		b := &Beneficiary{
			Address:    rec.Address,
			Allocation: rec.Allocation,
			FeePercent: rec.FeePercent,
			Claimed:    rec.Claimed,
		}
		l.beneficiaries[b.Address] = b
		l.order = append(l.order, b.Address)
		l.totalAllocation += b.Allocation
	}
	return l, nil
}

// Snapshot returns a deep copy of the current state, suitable for
// persisting through a storage.Store.
func (l *Ledger) Snapshot() *State {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := &State{
		Name:            l.name,
		ValueSource:     l.valueSource,
		FeeRecipient:    l.feeRecipient,
		FeeRecipientSet: l.feeRecipientSet,
		TotalClaimed:    l.totalClaimed,
		UnlockedPercent: l.unlockedPercent,
		FeesCollected:   l.feesCollected,
		FeesClaimed:     l.feesClaimed,
		Beneficiaries:   make([]BeneficiaryRecord, 0, len(l.order)),
	}
	for _, addr := range l.order {
		b := l.beneficiaries[addr]
		st.Beneficiaries = append(st.Beneficiaries, BeneficiaryRecord{
			Address:    b.Address,
			Allocation: b.Allocation,
			FeePercent: b.FeePercent,
			Claimed:    b.Claimed,
		})
	}
	return st
}

// Name returns the opaque display name.
func (l *Ledger) Name() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.name
}

// ValueSource returns the current payout funding account.
func (l *Ledger) ValueSource() Address {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.valueSource
}

// requirePrivileged is the gate on every restricted operation.
// Callers must not hold the mutex; the authorizer is external code.
func (l *Ledger) requirePrivileged(caller Address) error {
	if !l.auth.IsPrivileged(caller) {
		return ErrUnauthorized
	}
	return nil
}

func (l *Ledger) notifyBeneficiaryAdded(addr Address, allocation uint64) {
	if l.notifier != nil {
		l.notifier.BeneficiaryAdded(addr, allocation)
	}
}

func (l *Ledger) notifyPaymentReleased(addr Address, amount uint64) {
	if l.notifier != nil {
		l.notifier.PaymentReleased(addr, amount)
	}
}
