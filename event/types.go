package event

import (
	"time"

	"github.com/holiman/uint256"
	"github.com/pflow-xyz/go-token/ledger"
)

// Type identifies a notification kind.
type Type string

// Notification types published by the token facade.
const (
	TransferOccurred    Type = "transfer-occurred"
	AllowanceChanged    Type = "allowance-changed"
	AccessGranted       Type = "access-granted"
	AccessRevoked       Type = "access-revoked"
	ActiveHolderChanged Type = "active-holder-changed"
)

// Signal is a single fire-and-forget notification. Signals carry no
// delivery guarantee and must never drive core ledger state.
type Signal struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// Transfer is the payload for TransferOccurred. A mint is reported with
// From set to the zero address.
type Transfer struct {
	From   ledger.Address `json:"from"`
	To     ledger.Address `json:"to"`
	Amount *uint256.Int   `json:"amount"`
}

// Allowance is the payload for AllowanceChanged; Amount is the new
// stored allowance.
type Allowance struct {
	Owner   ledger.Address `json:"owner"`
	Spender ledger.Address `json:"spender"`
	Amount  *uint256.Int   `json:"amount"`
}

// Access is the payload for AccessGranted and AccessRevoked.
type Access struct {
	Granter ledger.Address `json:"granter"`
	Grantee ledger.Address `json:"grantee"`
}

// ActiveHolder is the payload for ActiveHolderChanged; Holder equals
// Account when the pointer returns to its default self value.
type ActiveHolder struct {
	Account ledger.Address `json:"account"`
	Holder  ledger.Address `json:"holder"`
}

// Handler processes a dispatched signal.
type Handler func(*Signal)
