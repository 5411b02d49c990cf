package ledger

import "github.com/holiman/uint256"

// Unlimited is the infinite-allowance sentinel: the maximum
// representable 256-bit value. An allowance set to Unlimited is never
// decremented by spending.
var Unlimited = new(uint256.Int).SetAllOne()

// IsUnlimited reports whether an amount equals the infinite-allowance
// sentinel.
func IsUnlimited(x *uint256.Int) bool {
	return x != nil && x.Eq(Unlimited)
}
