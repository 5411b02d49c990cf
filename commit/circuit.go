package commit

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
)

// BalanceCircuit proves that a committed balance leaf covers a public
// amount without revealing the balance. Public inputs are the leaf
// hash, the account field element, and the amount; the balance stays
// private.
//
// The range check bounds balance - amount to 64 bits, so provable
// amounts and balances must fit in uint64.
type BalanceCircuit struct {
	Leaf    frontend.Variable `gnark:",public"`
	Account frontend.Variable `gnark:",public"`
	Amount  frontend.Variable `gnark:",public"`

	Balance frontend.Variable
}

// Define declares the circuit constraints:
// leaf == MiMC(account, balance) and balance >= amount.
func (c *BalanceCircuit) Define(api frontend.API) error {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.Account)
	h.Write(c.Balance)
	api.AssertIsEqual(h.Sum(), c.Leaf)

	// balance >= amount, proven by showing the difference is non-negative
	diff := api.Sub(c.Balance, c.Amount)
	api.ToBinary(diff, 64)

	return nil
}
