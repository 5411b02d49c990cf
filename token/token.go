// Package token composes the raw ledger and the access-grant registry
// behind the standard transfer/approve/allowance surface. Every
// identity-scoped operation substitutes the caller's resolved active
// holder for the caller's raw identity, so an account that activated a
// granted balance transparently reads and spends that balance.
//
// All operations run under one mutex and are all-or-nothing: every
// precondition is checked before any state mutates, and a failed call
// publishes no notifications.
package token

import (
	"sync"

	"github.com/holiman/uint256"
	"github.com/pflow-xyz/go-token/access"
	"github.com/pflow-xyz/go-token/event"
	"github.com/pflow-xyz/go-token/ledger"
)

// Token is the public facade over the ledger and the grant registry.
type Token struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
	access *access.Registry
	bus    *event.Bus
}

// New creates an empty token. The bus receives fire-and-forget
// notifications for every committed state change; pass nil to disable
// notifications.
func New(bus *event.Bus) *Token {
	return &Token{
		ledger: ledger.New(),
		access: access.NewRegistry(),
		bus:    bus,
	}
}

// TotalSupply returns the total number of tokens in existence.
func (t *Token) TotalSupply() *uint256.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.TotalSupply()
}

// BalanceOf returns the balance the account currently presents as its
// own: the balance of its resolved active holder.
func (t *Token) BalanceOf(account ledger.Address) *uint256.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.BalanceOf(t.access.Resolve(account))
}

// AddressBalanceOf returns the raw balance of the literal address,
// bypassing redirection.
func (t *Token) AddressBalanceOf(account ledger.Address) *uint256.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.BalanceOf(account)
}

// Allowance returns the allowance between the resolved identities of
// owner and spender.
func (t *Token) Allowance(owner, spender ledger.Address) *uint256.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.Allowance(t.access.Resolve(owner), t.access.Resolve(spender))
}

// AddressAllowance returns the allowance between literal addresses,
// bypassing redirection.
func (t *Token) AddressAllowance(owner, spender ledger.Address) *uint256.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.Allowance(owner, spender)
}

// Mint creates amount new tokens on a literal address and notifies a
// transfer from the zero address.
func (t *Token) Mint(account ledger.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ledger.Mint(account, amount); err != nil {
		return err
	}
	t.publish(event.TransferOccurred, event.Transfer{
		From: ledger.ZeroAddress, To: account, Amount: amount.Clone(),
	})
	return nil
}

// Transfer moves amount from the caller's resolved active holder to the
// literal destination address.
func (t *Token) Transfer(caller, to ledger.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	from := t.access.Resolve(caller)
	if err := t.ledger.Transfer(from, to, amount); err != nil {
		return err
	}
	t.publish(event.TransferOccurred, event.Transfer{
		From: from, To: to, Amount: amount.Clone(),
	})
	return nil
}

// Approve sets the allowance of spender over the balance of the
// caller's resolved active holder.
func (t *Token) Approve(caller, spender ledger.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	owner := t.access.Resolve(caller)
	if err := t.ledger.Approve(owner, spender, amount); err != nil {
		return err
	}
	t.publish(event.AllowanceChanged, event.Allowance{
		Owner: owner, Spender: spender, Amount: amount.Clone(),
	})
	return nil
}

// TransferFrom spends the caller's allowance over from's balance and
// moves amount from the literal from address to the literal to address.
// The spender side is resolved to the caller's active holder; the from
// side is used literally, so the debited balance is always the named
// one. Allowance and balance are both checked before any mutation.
func (t *Token) TransferFrom(caller, from, to ledger.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	spender := t.access.Resolve(caller)

	// Both preconditions must hold before either mutation commits.
	if err := t.ledger.CanSpendAllowance(from, spender, amount); err != nil {
		return err
	}
	if err := t.ledger.CanTransfer(from, to, amount); err != nil {
		return err
	}

	unlimited := ledger.IsUnlimited(t.ledger.Allowance(from, spender))
	if err := t.ledger.SpendAllowance(from, spender, amount); err != nil {
		return err
	}
	if err := t.ledger.Transfer(from, to, amount); err != nil {
		return err
	}

	if !unlimited {
		t.publish(event.AllowanceChanged, event.Allowance{
			Owner: from, Spender: spender, Amount: t.ledger.Allowance(from, spender),
		})
	}
	t.publish(event.TransferOccurred, event.Transfer{
		From: from, To: to, Amount: amount.Clone(),
	})
	return nil
}

// IncreaseAllowance raises the allowance of spender over the caller's
// resolved balance by amount. Fails with ErrArithmeticOverflow if the
// result would wrap.
func (t *Token) IncreaseAllowance(caller, spender ledger.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	owner := t.access.Resolve(caller)
	current := t.ledger.Allowance(owner, spender)
	next, overflow := new(uint256.Int).AddOverflow(current, amount)
	if overflow {
		return ledger.ErrArithmeticOverflow
	}
	if err := t.ledger.Approve(owner, spender, next); err != nil {
		return err
	}
	t.publish(event.AllowanceChanged, event.Allowance{
		Owner: owner, Spender: spender, Amount: next,
	})
	return nil
}

// DecreaseAllowance lowers the allowance of spender over the caller's
// resolved balance by amount. A decrease larger than the current
// allowance fails with ErrInsufficientAllowance and mutates nothing.
func (t *Token) DecreaseAllowance(caller, spender ledger.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	owner := t.access.Resolve(caller)
	current := t.ledger.Allowance(owner, spender)
	if current.Lt(amount) {
		return ledger.ErrInsufficientAllowance
	}
	next := new(uint256.Int).Sub(current, amount)
	if err := t.ledger.Approve(owner, spender, next); err != nil {
		return err
	}
	t.publish(event.AllowanceChanged, event.Allowance{
		Owner: owner, Spender: spender, Amount: next,
	})
	return nil
}

// ShareBalanceAccess grants account the right to read and spend the
// caller's balance.
func (t *Token) ShareBalanceAccess(caller, account ledger.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.access.Grant(caller, account); err != nil {
		return err
	}
	t.publish(event.AccessGranted, event.Access{Granter: caller, Grantee: account})
	return nil
}

// RevokeBalanceAccess withdraws account's right to the caller's
// balance. If account was actively presenting as the caller, its
// pointer resets to self in the same operation and an
// active-holder-changed notification follows the revocation.
func (t *Token) RevokeBalanceAccess(caller, account ledger.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	reset, err := t.access.Revoke(caller, account)
	if err != nil {
		return err
	}
	t.publish(event.AccessRevoked, event.Access{Granter: caller, Grantee: account})
	if reset {
		t.publish(event.ActiveHolderChanged, event.ActiveHolder{
			Account: account, Holder: account,
		})
	}
	return nil
}

// HasBalanceAccess reports whether account may act on balanceHolder's
// balance. Self-access is implicit and always true.
func (t *Token) HasBalanceAccess(account, balanceHolder ledger.Address) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.access.HasAccess(account, balanceHolder)
}

// ActiveBalanceHolderOf returns the identity whose balance the account
// currently presents as its own.
func (t *Token) ActiveBalanceHolderOf(account ledger.Address) ledger.Address {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.access.Resolve(account)
}

// SetActiveBalanceHolder points the caller at account's balance for all
// redirected views and operations. Passing the caller's own address
// clears the pointer back to self.
func (t *Token) SetActiveBalanceHolder(caller, account ledger.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.access.SetActive(caller, account); err != nil {
		return err
	}
	t.publish(event.ActiveHolderChanged, event.ActiveHolder{
		Account: caller, Holder: account,
	})
	return nil
}

func (t *Token) publish(typ event.Type, payload any) {
	if t.bus != nil {
		t.bus.Publish(typ, payload)
	}
}
