package token

// Token metadata. Static constants; not part of the ledger core.
const (
	Name     = "Shared Access Token"
	Symbol   = "SAT"
	Decimals = 18
)
