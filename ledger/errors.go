package ledger

import "errors"

var (
	// ErrInvalidAccount is returned when an operation names the zero address.
	ErrInvalidAccount = errors.New("ledger: invalid account")

	// ErrInsufficientBalance is returned when a transfer exceeds the
	// source balance.
	ErrInsufficientBalance = errors.New("ledger: insufficient balance")

	// ErrInsufficientAllowance is returned when a spend exceeds the
	// stored allowance.
	ErrInsufficientAllowance = errors.New("ledger: insufficient allowance")

	// ErrArithmeticOverflow is returned when an amount would wrap the
	// 256-bit integer range.
	ErrArithmeticOverflow = errors.New("ledger: arithmetic overflow")
)
