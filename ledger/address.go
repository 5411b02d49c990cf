package ledger

// Address is an opaque account identity. Addresses are compared by
// value; the empty string is the reserved zero address.
type Address string

// ZeroAddress is the reserved null identity. It may never hold a
// balance, receive a mint, act as a spender, or appear in a grant.
const ZeroAddress Address = ""

// IsZero reports whether the address is the reserved null identity.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}
