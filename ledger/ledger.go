// Package ledger implements the raw token ledger: per-address balances,
// allowances, and total supply. The ledger operates on literal addresses
// only; it knows nothing about access grants or balance redirection.
//
// Every mutating operation validates all preconditions before touching
// state, so a failed call leaves the ledger unchanged. A Ledger is not
// safe for concurrent use; callers serialize access (the token facade
// holds a single mutex around every operation).
package ledger

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Ledger holds raw balances, allowances, and the total supply.
// Balances and allowances are created implicitly at first mutation and
// never deleted; a zero balance is a valid steady state.
type Ledger struct {
	supply     *uint256.Int
	balances   map[Address]*uint256.Int
	allowances map[Address]map[Address]*uint256.Int
}

// New creates an empty ledger with zero supply.
func New() *Ledger {
	return &Ledger{
		supply:     uint256.NewInt(0),
		balances:   make(map[Address]*uint256.Int),
		allowances: make(map[Address]map[Address]*uint256.Int),
	}
}

// TotalSupply returns a copy of the total supply.
func (l *Ledger) TotalSupply() *uint256.Int {
	return l.supply.Clone()
}

// BalanceOf returns a copy of the balance for a literal address.
// Unknown addresses hold zero.
func (l *Ledger) BalanceOf(account Address) *uint256.Int {
	if b, ok := l.balances[account]; ok {
		return b.Clone()
	}
	return uint256.NewInt(0)
}

// Allowance returns a copy of the allowance for (owner, spender).
// Unset entries are zero.
func (l *Ledger) Allowance(owner, spender Address) *uint256.Int {
	if byOwner, ok := l.allowances[owner]; ok {
		if a, ok := byOwner[spender]; ok {
			return a.Clone()
		}
	}
	return uint256.NewInt(0)
}

// Mint creates amount new tokens on account, growing the total supply.
// Fails with ErrInvalidAccount for the zero address and
// ErrArithmeticOverflow if the supply would wrap.
func (l *Ledger) Mint(account Address, amount *uint256.Int) error {
	if account.IsZero() {
		return fmt.Errorf("%w: mint to zero address", ErrInvalidAccount)
	}

	supply, overflow := new(uint256.Int).AddOverflow(l.supply, amount)
	if overflow {
		return fmt.Errorf("%w: total supply", ErrArithmeticOverflow)
	}

	l.supply = supply
	l.credit(account, amount)
	return nil
}

// CanTransfer checks Transfer's preconditions without mutating state.
func (l *Ledger) CanTransfer(from, to Address, amount *uint256.Int) error {
	if from.IsZero() {
		return fmt.Errorf("%w: transfer from zero address", ErrInvalidAccount)
	}
	if to.IsZero() {
		return fmt.Errorf("%w: transfer to zero address", ErrInvalidAccount)
	}
	if balance := l.balances[from]; balance == nil || balance.Lt(amount) {
		return fmt.Errorf("%w: %s has %s, needs %s",
			ErrInsufficientBalance, from, l.BalanceOf(from).Dec(), amount.Dec())
	}
	return nil
}

// Transfer moves amount from one literal address to another. Both
// balance updates commit together or not at all. Fails with
// ErrInvalidAccount for a zero endpoint and ErrInsufficientBalance if
// the source balance is short.
func (l *Ledger) Transfer(from, to Address, amount *uint256.Int) error {
	if err := l.CanTransfer(from, to, amount); err != nil {
		return err
	}

	balance := l.balances[from]
	balance.Sub(balance, amount)
	l.credit(to, amount)
	return nil
}

// Approve sets (overwrites) the allowance for (owner, spender). Fails
// with ErrInvalidAccount if either party is the zero address.
func (l *Ledger) Approve(owner, spender Address, amount *uint256.Int) error {
	if owner.IsZero() {
		return fmt.Errorf("%w: approve from zero address", ErrInvalidAccount)
	}
	if spender.IsZero() {
		return fmt.Errorf("%w: approve zero address spender", ErrInvalidAccount)
	}

	byOwner, ok := l.allowances[owner]
	if !ok {
		byOwner = make(map[Address]*uint256.Int)
		l.allowances[owner] = byOwner
	}
	byOwner[spender] = amount.Clone()
	return nil
}

// CanSpendAllowance checks SpendAllowance's precondition without
// mutating state.
func (l *Ledger) CanSpendAllowance(owner, spender Address, amount *uint256.Int) error {
	current := l.Allowance(owner, spender)
	if IsUnlimited(current) {
		return nil
	}
	if current.Lt(amount) {
		return fmt.Errorf("%w: %s approved %s for %s, spend of %s",
			ErrInsufficientAllowance, owner, current.Dec(), spender, amount.Dec())
	}
	return nil
}

// SpendAllowance consumes amount of the allowance for (owner, spender).
// The Unlimited sentinel is never decremented. Fails with
// ErrInsufficientAllowance if the stored allowance is short; the check
// and the decrement happen in one step with no intervening mutation.
func (l *Ledger) SpendAllowance(owner, spender Address, amount *uint256.Int) error {
	if err := l.CanSpendAllowance(owner, spender, amount); err != nil {
		return err
	}

	current := l.allowances[owner][spender]
	if current == nil || IsUnlimited(current) {
		// Nil means a zero allowance passed the check, so the spend is
		// itself zero; unlimited never decrements.
		return nil
	}
	current.Sub(current, amount)
	return nil
}

// Balances returns a deep copy of all nonzero-or-touched balances.
func (l *Ledger) Balances() map[Address]*uint256.Int {
	out := make(map[Address]*uint256.Int, len(l.balances))
	for a, b := range l.balances {
		out[a] = b.Clone()
	}
	return out
}

// Allowances returns a deep copy of the allowance table.
func (l *Ledger) Allowances() map[Address]map[Address]*uint256.Int {
	out := make(map[Address]map[Address]*uint256.Int, len(l.allowances))
	for owner, byOwner := range l.allowances {
		inner := make(map[Address]*uint256.Int, len(byOwner))
		for spender, a := range byOwner {
			inner[spender] = a.Clone()
		}
		out[owner] = inner
	}
	return out
}

func (l *Ledger) credit(account Address, amount *uint256.Int) {
	if b, ok := l.balances[account]; ok {
		b.Add(b, amount)
		return
	}
	l.balances[account] = amount.Clone()
}
