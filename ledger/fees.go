package ledger

import (
	"context"
	"fmt"
)

// ReleaseFees pays the fee recipient all fees accrued since the last fee
// payout. Privileged. Like Release, the transfer happens before the
// counters move, so a gateway failure leaves the ledger unchanged.
func (l *Ledger) ReleaseFees(ctx context.Context, caller Address) error {
	if err := l.requirePrivileged(caller); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.feeRecipientSet {
		return ErrFeeRecipientUnset
	}
	due := l.feesCollected - l.feesClaimed
	if due == 0 {
		return ErrNothingDue
	}

	if err := l.gateway.Transfer(ctx, l.valueSource, l.feeRecipient, due*l.unitScale); err != nil {
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	l.feesClaimed += due
	l.totalClaimed += due

	l.notifyPaymentReleased(l.feeRecipient, due)
	return nil
}

// SetFeeRecipient overwrites the account entitled to accrued fees.
// Privileged, unconditional.
func (l *Ledger) SetFeeRecipient(caller, addr Address) error {
	if err := l.requirePrivileged(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.feeRecipient = addr
	l.feeRecipientSet = true
	return nil
}

// SetValueSource overwrites the account the gateway draws payouts from.
// Privileged, unconditional.
func (l *Ledger) SetValueSource(caller, source Address) error {
	if err := l.requirePrivileged(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.valueSource = source
	return nil
}

// FeeRecipient returns the configured fee recipient. The second return
// is false until SetFeeRecipient has been called.
func (l *Ledger) FeeRecipient() (Address, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.feeRecipient, l.feeRecipientSet
}

// FeesCollected returns the cumulative fee amount accrued by releases.
func (l *Ledger) FeesCollected() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.feesCollected
}

// FeesClaimed returns the cumulative fee amount paid to the fee recipient.
func (l *Ledger) FeesClaimed() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.feesClaimed
}
