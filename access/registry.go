// Package access owns the delegated-balance-access relation: a directed
// set of may-access edges between addresses, and the per-address active
// holder pointer that selects which granted balance an account currently
// presents as.
//
// The two halves are kept in one Registry because they share an atomicity
// requirement: revoking a grant must reset any active pointer that
// depends on it in the same operation, so a pointer can never reference
// a granter that no longer grants access. A Registry is not safe for
// concurrent use; the token facade serializes all calls.
package access

import (
	"fmt"
	"sort"

	"github.com/pflow-xyz/go-token/ledger"
)

// Edge is a directed may-access relation: Grantee may act on Granter's
// balance.
type Edge struct {
	Granter ledger.Address `json:"granter"`
	Grantee ledger.Address `json:"grantee"`
}

// Registry stores grant edges and active holder pointers.
type Registry struct {
	grants map[Edge]struct{}
	active map[ledger.Address]ledger.Address
}

// NewRegistry creates an empty registry: no edges, every pointer at its
// default self value.
func NewRegistry() *Registry {
	return &Registry{
		grants: make(map[Edge]struct{}),
		active: make(map[ledger.Address]ledger.Address),
	}
}

// Grant adds the edge allowing grantee to act on granter's balance.
// Fails with ErrSelfGrant when the sides match, ErrInvalidAccount when
// either side is the zero address, and ErrAlreadyGranted when the edge
// exists.
func (r *Registry) Grant(granter, grantee ledger.Address) error {
	if granter.IsZero() || grantee.IsZero() {
		return fmt.Errorf("%w: zero address in grant", ledger.ErrInvalidAccount)
	}
	if granter == grantee {
		return fmt.Errorf("%w: %s", ErrSelfGrant, granter)
	}

	e := Edge{Granter: granter, Grantee: grantee}
	if _, ok := r.grants[e]; ok {
		return fmt.Errorf("%w: %s -> %s", ErrAlreadyGranted, granter, grantee)
	}
	r.grants[e] = struct{}{}
	return nil
}

// Revoke removes the edge allowing grantee to act on granter's balance.
// If the grantee's active pointer targets the granter, the pointer is
// reset to self in the same call; the return value reports whether that
// happened. Fails with ErrSelfGrant when the sides match and
// ErrNotGranted when the edge does not exist.
func (r *Registry) Revoke(granter, grantee ledger.Address) (reset bool, err error) {
	if granter == grantee {
		return false, fmt.Errorf("%w: %s", ErrSelfGrant, granter)
	}

	e := Edge{Granter: granter, Grantee: grantee}
	if _, ok := r.grants[e]; !ok {
		return false, fmt.Errorf("%w: %s -> %s", ErrNotGranted, granter, grantee)
	}
	delete(r.grants, e)

	if r.active[grantee] == granter {
		delete(r.active, grantee)
		reset = true
	}
	return reset, nil
}

// HasAccess reports whether grantee may act on granter's balance.
// Self-access is implicit and always true.
func (r *Registry) HasAccess(grantee, granter ledger.Address) bool {
	if grantee == granter {
		return true
	}
	_, ok := r.grants[Edge{Granter: granter, Grantee: grantee}]
	return ok
}

// Edges returns all stored grant edges sorted by granter then grantee.
func (r *Registry) Edges() []Edge {
	out := make([]Edge, 0, len(r.grants))
	for e := range r.grants {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Granter != out[j].Granter {
			return out[i].Granter < out[j].Granter
		}
		return out[i].Grantee < out[j].Grantee
	})
	return out
}
