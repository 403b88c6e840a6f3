package ledger

import (
	"context"
	"fmt"
)

// Release pays the caller everything currently withdrawable. The pending
// amount is
//
//	allocation × unlockedPercent × (100 − feePercent) / 10000 − claimed
//
// with integer truncation, and the fee portion accrued for the platform is
//
//	pending × feePercent / (100 − feePercent)
//
// The fee is accrued on top of the beneficiary's payout rather than
// withheld from it: the beneficiary receives the full pending amount and
// the fee portion becomes claimable by the fee recipient separately, so
// the two together draw more from the pool than unlockedPercent alone
// would suggest.
//
// The gateway transfer happens before any counter moves; if it fails the
// ledger is unchanged and the caller may retry.
func (l *Ledger) Release(ctx context.Context, caller Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.beneficiaries[caller]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotBeneficiary, caller)
	}

	entitled := b.Allocation * l.unlockedPercent * (100 - b.FeePercent) / 10000
	if entitled <= b.Claimed {
		return ErrNothingDue
	}
	pending := entitled - b.Claimed
	feePortion := pending * b.FeePercent / (100 - b.FeePercent)

	if err := l.gateway.Transfer(ctx, l.valueSource, caller, pending*l.unitScale); err != nil {
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	b.Claimed += pending
	l.totalClaimed += pending
	l.feesCollected += feePortion

	l.notifyPaymentReleased(caller, pending)
	return nil
}

// Pending returns the amount a Release call would pay addr right now,
// or 0 if the beneficiary is unregistered or nothing is due.
func (l *Ledger) Pending(addr Address) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.beneficiaries[addr]
	if !ok {
		return 0
	}
	entitled := b.Allocation * l.unlockedPercent * (100 - b.FeePercent) / 10000
	if entitled <= b.Claimed {
		return 0
	}
	return entitled - b.Claimed
}
