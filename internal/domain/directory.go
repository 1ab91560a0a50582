package domain

import "github.com/shopspring/decimal"

// Directory is the account/card/balance collaborator. The core never caches
// a balance across calls; it re-reads through this interface on every
// transaction. Per-account read/write serialization is the directory's
// problem, not the core's.
type Directory interface {
	// CardOwner resolves a card number to its owning username.
	// Returns ErrCardNotFound for an unknown card.
	CardOwner(cardNumber string) (string, error)

	// Balance reads the current balance of one of the user's accounts.
	// Returns ErrUserNotFound when the user has no such account.
	Balance(username string, kind AccountKind) (decimal.Decimal, error)

	// IsStudent reports whether the user holds student status.
	IsStudent(username string) (bool, error)

	// SetBalance writes a new balance for one of the user's accounts.
	// Returns ErrBalanceUpdateFailed when the write is rejected.
	SetBalance(username string, kind AccountKind, balance decimal.Decimal) error

	// PIN returns the user's PIN data for identity verification. The core
	// only passes it through; verification happens at the caller boundary.
	PIN(username string) ([]byte, error)
}
