package commit_test

import (
	"bytes"
	"testing"

	"github.com/holiman/uint256"
	"github.com/pflow-xyz/go-token/commit"
	"github.com/pflow-xyz/go-token/token"
)

func demoToken(t *testing.T) *token.Token {
	t.Helper()
	tok := token.New(nil)
	if err := tok.Mint("alice", uint256.NewInt(1000)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := tok.Approve("alice", "bob", uint256.NewInt(250)); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	return tok
}

func TestCommitmentDeterministic(t *testing.T) {
	a := commit.Commitment(demoToken(t).Snapshot())
	b := commit.Commitment(demoToken(t).Snapshot())

	if len(a) != commit.Size {
		t.Fatalf("expected %d-byte commitment, got %d", commit.Size, len(a))
	}
	if !bytes.Equal(a, b) {
		t.Error("identical states produced different commitments")
	}
}

func TestCommitmentSensitivity(t *testing.T) {
	base := commit.Commitment(demoToken(t).Snapshot())

	t.Run("BalanceChange", func(t *testing.T) {
		tok := demoToken(t)
		tok.Transfer("alice", "carol", uint256.NewInt(1))
		if bytes.Equal(base, commit.Commitment(tok.Snapshot())) {
			t.Error("balance change did not move the commitment")
		}
	})

	t.Run("AllowanceChange", func(t *testing.T) {
		tok := demoToken(t)
		tok.Approve("alice", "bob", uint256.NewInt(251))
		if bytes.Equal(base, commit.Commitment(tok.Snapshot())) {
			t.Error("allowance change did not move the commitment")
		}
	})
}

func TestEmptyStateCommitment(t *testing.T) {
	a := commit.Commitment(token.New(nil).Snapshot())
	b := commit.Commitment(token.New(nil).Snapshot())
	if !bytes.Equal(a, b) {
		t.Error("empty state commitment not stable")
	}
}

func TestBalanceLeaf(t *testing.T) {
	a := commit.BalanceLeaf("alice", uint256.NewInt(1000))
	b := commit.BalanceLeaf("alice", uint256.NewInt(1000))
	if !bytes.Equal(a, b) {
		t.Error("leaf not deterministic")
	}

	c := commit.BalanceLeaf("alice", uint256.NewInt(1001))
	if bytes.Equal(a, c) {
		t.Error("different balances produced the same leaf")
	}

	d := commit.BalanceLeaf("bob", uint256.NewInt(1000))
	if bytes.Equal(a, d) {
		t.Error("different accounts produced the same leaf")
	}
}
