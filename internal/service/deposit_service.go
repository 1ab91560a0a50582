package service

import (
	"fmt"

	"github.com/banklabs/teller/internal/domain"
	"github.com/shopspring/decimal"
)

// DepositService executes deposit transactions
type DepositService struct {
	calc      FeeCalculator
	directory domain.Directory
}

// NewDepositService creates a new DepositService
func NewDepositService(calc FeeCalculator, directory domain.Directory) *DepositService {
	return &DepositService{calc: calc, directory: directory}
}

// Perform credits the selected account with the amount plus the computed
// deposit fee. The balance is read fresh from the directory; nothing is
// cached between invocations.
func (s *DepositService) Perform(req *domain.TransactionRequest) (*domain.TransactionResult, error) {
	if failed := checkRequest(req, domain.TransactionTypeDeposit); failed != nil {
		return failed, nil
	}

	owner, err := s.directory.CardOwner(req.CardNumber)
	if err != nil {
		return nil, fmt.Errorf("resolve card owner: %w", err)
	}

	kind := req.Accounts[0]
	balance, err := s.directory.Balance(owner, kind)
	if err != nil {
		return nil, fmt.Errorf("read balance: %w", err)
	}

	student, err := s.directory.IsStudent(owner)
	if err != nil {
		return nil, fmt.Errorf("read student status: %w", err)
	}

	fee := s.calc.Deposit(req.Amount, balance, student)
	newBalance := balance.Add(req.Amount).Add(fee)

	if err := s.directory.SetBalance(owner, kind, newBalance); err != nil {
		return nil, fmt.Errorf("write balance: %w", err)
	}

	return domain.NewSuccessResult(fee, []decimal.Decimal{newBalance}), nil
}
