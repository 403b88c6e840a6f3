package ledger

import "fmt"

// Register adds a beneficiary with a fixed allocation and fee rate.
// Privileged. The allocation is expressed in percentage-point units of
// the distributable pool and cannot be changed after registration.
func (l *Ledger) Register(caller, addr Address, allocation, feePercent uint64) error {
	if err := l.requirePrivileged(caller); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.validateEntry(addr, allocation, feePercent); err != nil {
		return err
	}
	l.addEntry(addr, allocation, feePercent)
	return nil
}

// RegisterBatch registers several beneficiaries at once. All entries are
// validated before any is applied, so a failed batch registers nobody.
func (l *Ledger) RegisterBatch(caller Address, addrs []Address, allocations, feePercents []uint64) error {
	if err := l.requirePrivileged(caller); err != nil {
		return err
	}
	if len(addrs) != len(allocations) || len(addrs) != len(feePercents) {
		return fmt.Errorf("%w: %d addresses, %d allocations, %d fee percents",
			ErrLengthMismatch, len(addrs), len(allocations), len(feePercents))
	}
	if len(addrs) == 0 {
		return ErrEmptyBatch
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	seen := make(map[Address]struct{}, len(addrs))
	for i, addr := range addrs {
		if err := l.validateEntry(addr, allocations[i], feePercents[i]); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if _, dup := seen[addr]; dup {
			return fmt.Errorf("entry %d: %w", i, ErrAlreadyRegistered)
		}
		seen[addr] = struct{}{}
	}
	for i, addr := range addrs {
		l.addEntry(addr, allocations[i], feePercents[i])
	}
	return nil
}

// validateEntry checks one registration against the current registry.
// Caller holds the mutex.
func (l *Ledger) validateEntry(addr Address, allocation, feePercent uint64) error {
	if addr.IsZero() {
		return ErrInvalidAddress
	}
	if allocation == 0 {
		return ErrInvalidAllocation
	}
	if feePercent >= 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidFeePercent, feePercent)
	}
	if _, ok := l.beneficiaries[addr]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, addr)
	}
	return nil
}

// addEntry stores a validated registration. Caller holds the mutex.
func (l *Ledger) addEntry(addr Address, allocation, feePercent uint64) {
	l.beneficiaries[addr] = &Beneficiary{
		Address:    addr,
		Allocation: allocation,
		FeePercent: feePercent,
	}
	l.order = append(l.order, addr)
	l.totalAllocation += allocation
	l.notifyBeneficiaryAdded(addr, allocation)
}

// AllocationOf returns the beneficiary's allocation, or 0 if unregistered.
func (l *Ledger) AllocationOf(addr Address) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.beneficiaries[addr]; ok {
		return b.Allocation
	}
	return 0
}

// FeePercentOf returns the beneficiary's fee rate, or 0 if unregistered.
func (l *Ledger) FeePercentOf(addr Address) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.beneficiaries[addr]; ok {
		return b.FeePercent
	}
	return 0
}

// ClaimedOf returns the amount already released to addr, or 0 if unregistered.
func (l *Ledger) ClaimedOf(addr Address) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.beneficiaries[addr]; ok {
		return b.Claimed
	}
	return 0
}

// BeneficiaryAt returns the i-th registered identity in insertion order.
func (l *Ledger) BeneficiaryAt(i int) (Address, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.order) {
		return Address{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(l.order))
	}
	return l.order[i], nil
}

// Count returns the number of registered beneficiaries.
func (l *Ledger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}

// TotalAllocation returns the sum of all registered allocations.
func (l *Ledger) TotalAllocation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalAllocation
}

// TotalClaimed returns the total amount ever released, beneficiary
// payouts and fee payouts combined.
func (l *Ledger) TotalClaimed() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalClaimed
}
