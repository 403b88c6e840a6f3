package ledger

// AddressSet is a static Authorizer: the fixed set of addresses allowed
// to call privileged operations.
type AddressSet map[Address]struct{}

// NewAddressSet builds an AddressSet from the given admins.
func NewAddressSet(admins ...Address) AddressSet {
	s := make(AddressSet, len(admins))
	for _, a := range admins {
		s[a] = struct{}{}
	}
	return s
}

// IsPrivileged reports whether caller is in the set.
func (s AddressSet) IsPrivileged(caller Address) bool {
	_, ok := s[caller]
	return ok
}
