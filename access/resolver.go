package access

import (
	"fmt"

	"github.com/pflow-xyz/go-token/ledger"
)

// Resolve returns the identity an account currently acts as: the stored
// active holder pointer if set, otherwise the account itself. Pure read,
// never fails.
func (r *Registry) Resolve(account ledger.Address) ledger.Address {
	if holder, ok := r.active[account]; ok {
		return holder
	}
	return account
}

// SetActive points caller at target's balance for all redirected views
// and operations. Fails with ErrAccessDenied unless caller currently
// holds a grant from target (or target is caller). Setting target ==
// caller clears the pointer back to its default self value.
func (r *Registry) SetActive(caller, target ledger.Address) error {
	if caller.IsZero() || target.IsZero() {
		return fmt.Errorf("%w: zero address", ledger.ErrInvalidAccount)
	}
	if !r.HasAccess(caller, target) {
		return fmt.Errorf("%w: %s has no grant from %s", ErrAccessDenied, caller, target)
	}

	if target == caller {
		delete(r.active, caller)
		return nil
	}
	r.active[caller] = target
	return nil
}

// ActiveHolders returns a copy of all non-default pointers.
func (r *Registry) ActiveHolders() map[ledger.Address]ledger.Address {
	out := make(map[ledger.Address]ledger.Address, len(r.active))
	for account, holder := range r.active {
		out[account] = holder
	}
	return out
}
