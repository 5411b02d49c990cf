// Package commit derives deterministic MiMC Merkle commitments over
// token snapshots, and proves facts about committed balances with
// groth16 on BN254. MiMC keeps the hashes cheap to verify inside an
// arithmetic circuit.
//
// Addresses are mapped into the scalar field by hashing with SHA-256
// and reducing; amounts are reduced directly. Leaves are sorted before
// hashing so the same state always yields the same root.
package commit

import (
	"crypto/sha256"
	"sort"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/holiman/uint256"
	"github.com/pflow-xyz/go-token/ledger"
	"github.com/pflow-xyz/go-token/token"
)

// Size is the commitment length in bytes.
const Size = fr.Bytes

// Commitment computes the state root of a snapshot: the balance tree
// root and the allowance tree root, combined with one more MiMC
// compression. Identical states produce identical roots across runs.
func Commitment(snap *token.Snapshot) []byte {
	balances := balanceLeaves(snap.Balances)
	allowances := allowanceLeaves(snap.Allowances)

	root := hashPair(treeRoot(balances), treeRoot(allowances))
	return root.Marshal()
}

// BalanceLeaf returns the Merkle leaf committing to one (account,
// balance) pair: MiMC(account, balance).
func BalanceLeaf(account ledger.Address, balance *uint256.Int) []byte {
	leaf := hashPair(addressField(account), amountField(balance))
	return leaf.Marshal()
}

func balanceLeaves(balances map[ledger.Address]*uint256.Int) []fr.Element {
	addrs := sortedAddresses(balances)
	leaves := make([]fr.Element, 0, len(addrs))
	for _, a := range addrs {
		leaves = append(leaves, hashPair(addressField(a), amountField(balances[a])))
	}
	return leaves
}

func allowanceLeaves(allowances map[ledger.Address]map[ledger.Address]*uint256.Int) []fr.Element {
	owners := sortedAddresses(allowances)
	var leaves []fr.Element
	for _, owner := range owners {
		spenders := sortedAddresses(allowances[owner])
		for _, spender := range spenders {
			key := hashPair(addressField(owner), addressField(spender))
			leaves = append(leaves, hashPair(key, amountField(allowances[owner][spender])))
		}
	}
	return leaves
}

// treeRoot folds leaves pairwise into a binary Merkle root. An odd leaf
// is promoted unchanged; an empty tree commits to the zero element.
func treeRoot(leaves []fr.Element) fr.Element {
	if len(leaves) == 0 {
		var zero fr.Element
		return zero
	}
	for len(leaves) > 1 {
		next := make([]fr.Element, 0, (len(leaves)+1)/2)
		for i := 0; i+1 < len(leaves); i += 2 {
			next = append(next, hashPair(leaves[i], leaves[i+1]))
		}
		if len(leaves)%2 == 1 {
			next = append(next, leaves[len(leaves)-1])
		}
		leaves = next
	}
	return leaves[0]
}

func hashPair(left, right fr.Element) fr.Element {
	h := mimc.NewMiMC()
	h.Write(left.Marshal())
	h.Write(right.Marshal())

	var out fr.Element
	out.SetBytes(h.Sum(nil))
	return out
}

func addressField(a ledger.Address) fr.Element {
	digest := sha256.Sum256([]byte(a))
	var e fr.Element
	e.SetBytes(digest[:])
	return e
}

func amountField(x *uint256.Int) fr.Element {
	b := x.Bytes32()
	var e fr.Element
	e.SetBytes(b[:])
	return e
}

func sortedAddresses[V any](m map[ledger.Address]V) []ledger.Address {
	out := make([]ledger.Address, 0, len(m))
	for a := range m {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
