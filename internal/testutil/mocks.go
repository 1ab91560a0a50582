// Package testutil provides in-memory test doubles for the directory and
// fee calculator collaborators.
package testutil

import (
	"time"

	"github.com/banklabs/teller/internal/domain"
	"github.com/shopspring/decimal"
)

type accountKey struct {
	Username string
	Kind     domain.AccountKind
}

// MockDirectory is a map-backed implementation of domain.Directory. The Fn
// fields override individual calls to inject failures.
type MockDirectory struct {
	Owners   map[string]string
	Balances map[accountKey]decimal.Decimal
	Students map[string]bool
	PINs     map[string][]byte

	CardOwnerFn  func(cardNumber string) (string, error)
	BalanceFn    func(username string, kind domain.AccountKind) (decimal.Decimal, error)
	SetBalanceFn func(username string, kind domain.AccountKind, balance decimal.Decimal) error

	// SetBalanceCalls records every attempted write in order, including
	// rejected ones.
	SetBalanceCalls []SetBalanceCall
}

// SetBalanceCall records one SetBalance invocation.
type SetBalanceCall struct {
	Username string
	Kind     domain.AccountKind
	Balance  decimal.Decimal
}

// NewMockDirectory creates an empty MockDirectory.
func NewMockDirectory() *MockDirectory {
	return &MockDirectory{
		Owners:   make(map[string]string),
		Balances: make(map[accountKey]decimal.Decimal),
		Students: make(map[string]bool),
		PINs:     make(map[string][]byte),
	}
}

// AddUser registers a card, its owner, student status and PIN.
func (m *MockDirectory) AddUser(cardNumber, username string, student bool, pin []byte) {
	m.Owners[cardNumber] = username
	m.Students[username] = student
	m.PINs[username] = pin
}

// SetAccountBalance seeds an account balance.
func (m *MockDirectory) SetAccountBalance(username string, kind domain.AccountKind, balance decimal.Decimal) {
	m.Balances[accountKey{Username: username, Kind: kind}] = balance
}

// AccountBalance reads a seeded balance directly, bypassing the Directory
// contract (helper for asserting final state).
func (m *MockDirectory) AccountBalance(username string, kind domain.AccountKind) decimal.Decimal {
	return m.Balances[accountKey{Username: username, Kind: kind}]
}

// CardOwner resolves a card number to its owner.
func (m *MockDirectory) CardOwner(cardNumber string) (string, error) {
	if m.CardOwnerFn != nil {
		return m.CardOwnerFn(cardNumber)
	}
	owner, ok := m.Owners[cardNumber]
	if !ok {
		return "", domain.ErrCardNotFound
	}
	return owner, nil
}

// Balance reads an account balance.
func (m *MockDirectory) Balance(username string, kind domain.AccountKind) (decimal.Decimal, error) {
	if m.BalanceFn != nil {
		return m.BalanceFn(username, kind)
	}
	balance, ok := m.Balances[accountKey{Username: username, Kind: kind}]
	if !ok {
		return decimal.Zero, domain.ErrUserNotFound
	}
	return balance, nil
}

// IsStudent reports the seeded student status.
func (m *MockDirectory) IsStudent(username string) (bool, error) {
	student, ok := m.Students[username]
	if !ok {
		return false, domain.ErrUserNotFound
	}
	return student, nil
}

// SetBalance writes an account balance.
func (m *MockDirectory) SetBalance(username string, kind domain.AccountKind, balance decimal.Decimal) error {
	m.SetBalanceCalls = append(m.SetBalanceCalls, SetBalanceCall{Username: username, Kind: kind, Balance: balance})
	if m.SetBalanceFn != nil {
		return m.SetBalanceFn(username, kind, balance)
	}
	key := accountKey{Username: username, Kind: kind}
	if _, ok := m.Balances[key]; !ok {
		return domain.ErrBalanceUpdateFailed
	}
	m.Balances[key] = balance
	return nil
}

// PIN returns the seeded PIN data.
func (m *MockDirectory) PIN(username string) ([]byte, error) {
	pin, ok := m.PINs[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return pin, nil
}

// MockFeeCalculator returns canned fees regardless of input.
type MockFeeCalculator struct {
	DepositFee    decimal.Decimal
	WithdrawalFee decimal.Decimal
	TransferFee   decimal.Decimal
}

// Deposit returns the canned deposit fee.
func (m *MockFeeCalculator) Deposit(amount, balance decimal.Decimal, student bool) decimal.Decimal {
	return m.DepositFee
}

// Withdrawal returns the canned withdrawal fee.
func (m *MockFeeCalculator) Withdrawal(amount, balance decimal.Decimal, student bool, day time.Weekday) decimal.Decimal {
	return m.WithdrawalFee
}

// Transfer returns the canned transfer fee.
func (m *MockFeeCalculator) Transfer(amount, fromBalance, toBalance decimal.Decimal, student bool) decimal.Decimal {
	return m.TransferFee
}
