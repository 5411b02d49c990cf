package commit

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/holiman/uint256"
)

func TestBalanceCircuitCompiles(t *testing.T) {
	var circuit BalanceCircuit

	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuit)
	if err != nil {
		t.Fatalf("circuit compilation failed: %v", err)
	}

	t.Logf("Balance circuit: %d constraints", cs.GetNbConstraints())
	t.Logf("  Public inputs: %d", cs.GetNbPublicVariables())
	t.Logf("  Private inputs: %d", cs.GetNbSecretVariables())
}

func TestProveAndVerify(t *testing.T) {
	if testing.Short() {
		t.Skip("groth16 setup is slow")
	}

	prover, err := NewBalanceProver()
	if err != nil {
		t.Fatalf("prover setup failed: %v", err)
	}

	balance := uint256.NewInt(1000)
	amount := uint256.NewInt(200)

	proof, err := prover.Prove("alice", balance, amount)
	if err != nil {
		t.Fatalf("prove failed: %v", err)
	}

	leaf := BalanceLeaf("alice", balance)
	if err := prover.Verify(proof, "alice", leaf, amount); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
}

func TestProveInsufficientBalanceFails(t *testing.T) {
	if testing.Short() {
		t.Skip("groth16 setup is slow")
	}

	prover, err := NewBalanceProver()
	if err != nil {
		t.Fatalf("prover setup failed: %v", err)
	}

	// balance < amount: the range check cannot be satisfied.
	_, err = prover.Prove("alice", uint256.NewInt(50), uint256.NewInt(100))
	if err == nil {
		t.Error("expected proof to fail for insufficient balance")
	}
}

func TestVerifyWrongAccountFails(t *testing.T) {
	if testing.Short() {
		t.Skip("groth16 setup is slow")
	}

	prover, err := NewBalanceProver()
	if err != nil {
		t.Fatalf("prover setup failed: %v", err)
	}

	balance := uint256.NewInt(1000)
	amount := uint256.NewInt(200)
	proof, err := prover.Prove("alice", balance, amount)
	if err != nil {
		t.Fatalf("prove failed: %v", err)
	}

	leaf := BalanceLeaf("alice", balance)
	if err := prover.Verify(proof, "bob", leaf, amount); err == nil {
		t.Error("expected verification to fail for the wrong account")
	}
}
