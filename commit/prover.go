package commit

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/holiman/uint256"
	"github.com/pflow-xyz/go-token/ledger"
)

// BalanceProver compiles the balance circuit once and produces groth16
// proofs over BN254.
type BalanceProver struct {
	cs constraint.ConstraintSystem
	pk groth16.ProvingKey
	vk groth16.VerifyingKey
}

// NewBalanceProver compiles the circuit and runs the groth16 setup.
// This is expensive; reuse the prover across proofs.
func NewBalanceProver() (*BalanceProver, error) {
	var circuit BalanceCircuit
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuit)
	if err != nil {
		return nil, fmt.Errorf("compile balance circuit: %w", err)
	}

	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return nil, fmt.Errorf("groth16 setup: %w", err)
	}

	return &BalanceProver{cs: cs, pk: pk, vk: vk}, nil
}

// Prove generates a proof that account's balance covers amount under
// the leaf BalanceLeaf(account, balance). Balance and amount must fit
// in 64 bits for the circuit's range check.
func (p *BalanceProver) Prove(account ledger.Address, balance, amount *uint256.Int) (groth16.Proof, error) {
	assignment := &BalanceCircuit{
		Leaf:    leafInt(account, balance),
		Account: fieldInt(account),
		Amount:  amount.ToBig(),
		Balance: balance.ToBig(),
	}

	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("build witness: %w", err)
	}
	proof, err := groth16.Prove(p.cs, p.pk, witness)
	if err != nil {
		return nil, fmt.Errorf("prove balance: %w", err)
	}
	return proof, nil
}

// Verify checks a proof against the public inputs: the committed leaf
// for the account and the amount it must cover.
func (p *BalanceProver) Verify(proof groth16.Proof, account ledger.Address, leaf []byte, amount *uint256.Int) error {
	assignment := &BalanceCircuit{
		Leaf:    new(big.Int).SetBytes(leaf),
		Account: fieldInt(account),
		Amount:  amount.ToBig(),
	}

	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return fmt.Errorf("build public witness: %w", err)
	}
	if err := groth16.Verify(proof, p.vk, witness); err != nil {
		return fmt.Errorf("verify balance proof: %w", err)
	}
	return nil
}

// Constraints returns the compiled constraint count, mainly for
// diagnostics.
func (p *BalanceProver) Constraints() int {
	return p.cs.GetNbConstraints()
}

func leafInt(account ledger.Address, balance *uint256.Int) *big.Int {
	return new(big.Int).SetBytes(BalanceLeaf(account, balance))
}

func fieldInt(account ledger.Address) *big.Int {
	e := addressField(account)
	return e.BigInt(new(big.Int))
}
