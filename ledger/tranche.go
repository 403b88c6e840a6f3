package ledger

// UnlockTranche adds percentPoints to the unlocked percentage. Privileged.
// The increment is unconditional: nothing caps the accumulated value at
// 100, matching the pull-payment model where each unlock simply raises
// every beneficiary's cumulative entitlement.
func (l *Ledger) UnlockTranche(caller Address, percentPoints uint64) error {
	if err := l.requirePrivileged(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.unlockedPercent += percentPoints
	return nil
}

// UnlockedPercent returns the accumulated unlocked percentage.
func (l *Ledger) UnlockedPercent() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.unlockedPercent
}
