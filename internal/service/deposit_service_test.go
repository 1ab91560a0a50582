package service

import (
	"errors"
	"testing"

	"github.com/banklabs/teller/internal/domain"
	"github.com/banklabs/teller/internal/fees"
	"github.com/banklabs/teller/internal/testutil"
	"github.com/shopspring/decimal"
)

const (
	testCard     = "4000000000000000"
	testUsername = "kevin"
)

var testPIN = []byte("5555")

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func depositRequest(amount string) *domain.TransactionRequest {
	return domain.NewTransactionRequest(testCard, testPIN, domain.TransactionTypeDeposit,
		[]domain.AccountKind{domain.AccountChequing}, d(amount))
}

func TestDeposit_Success(t *testing.T) {
	cases := []struct {
		name        string
		amount      string
		balance     string
		student     bool
		wantFee     string
		wantBalance string
	}{
		{"student large amount high balance", "101", "1001", true, "1.01", "1103.01"},
		{"student large amount low balance", "101", "1000", true, "0.505", "1101.505"},
		{"student small amount high balance", "50", "5001", true, "0.25", "5051.25"},
		{"student small amount low balance", "50", "1000", true, "0", "1050"},
		{"standard large amount high balance", "501", "5001", false, "5.01", "5507.01"},
		{"standard large amount low balance", "501", "1000", false, "2.505", "1503.505"},
		{"standard small amount very high balance", "100", "10001", false, "0.5", "10101.5"},
		{"standard small amount low balance", "100", "1000", false, "0", "1100"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			directory := testutil.NewMockDirectory()
			directory.AddUser(testCard, testUsername, tc.student, testPIN)
			directory.SetAccountBalance(testUsername, domain.AccountChequing, d(tc.balance))

			deposit := NewDepositService(fees.NewCalculator(), directory)
			result, err := deposit.Perform(depositRequest(tc.amount))
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			if !result.Successful {
				t.Fatalf("Expected success, got reason %q", result.Reason)
			}
			if result.Reason != "" {
				t.Errorf("Expected empty reason, got %q", result.Reason)
			}
			if !result.Fee.Equal(d(tc.wantFee)) {
				t.Errorf("Expected fee %s, got %s", tc.wantFee, result.Fee.String())
			}
			if len(result.Balances) != 1 || !result.Balances[0].Equal(d(tc.wantBalance)) {
				t.Errorf("Expected balance %s, got %v", tc.wantBalance, result.Balances)
			}
			if got := directory.AccountBalance(testUsername, domain.AccountChequing); !got.Equal(d(tc.wantBalance)) {
				t.Errorf("Directory balance = %s, want %s", got.String(), tc.wantBalance)
			}
		})
	}
}

func TestDeposit_StubbedCalculator(t *testing.T) {
	directory := testutil.NewMockDirectory()
	directory.AddUser(testCard, testUsername, true, testPIN)
	directory.SetAccountBalance(testUsername, domain.AccountChequing, d("1000"))

	calc := &testutil.MockFeeCalculator{DepositFee: d("2.5")}
	deposit := NewDepositService(calc, directory)

	result, err := deposit.Perform(depositRequest("100"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !result.Fee.Equal(d("2.5")) {
		t.Errorf("Expected stubbed fee 2.5, got %s", result.Fee.String())
	}
	if !result.Balances[0].Equal(d("1102.5")) {
		t.Errorf("Expected balance 1102.5, got %s", result.Balances[0].String())
	}
}

func TestDeposit_UnknownCard(t *testing.T) {
	directory := testutil.NewMockDirectory()

	deposit := NewDepositService(fees.NewCalculator(), directory)
	_, err := deposit.Perform(depositRequest("50"))
	if !errors.Is(err, domain.ErrCardNotFound) {
		t.Fatalf("Expected ErrCardNotFound, got %v", err)
	}
	if len(directory.SetBalanceCalls) != 0 {
		t.Error("No balance write may happen for an unknown card")
	}
}

func TestDeposit_UserWithoutAccount(t *testing.T) {
	directory := testutil.NewMockDirectory()
	directory.AddUser(testCard, testUsername, false, testPIN)
	// no account balance seeded

	deposit := NewDepositService(fees.NewCalculator(), directory)
	_, err := deposit.Perform(depositRequest("50"))
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestDeposit_BalanceWriteRejected(t *testing.T) {
	directory := testutil.NewMockDirectory()
	directory.AddUser(testCard, testUsername, false, testPIN)
	directory.SetAccountBalance(testUsername, domain.AccountChequing, d("1000"))
	directory.SetBalanceFn = func(string, domain.AccountKind, decimal.Decimal) error {
		return domain.ErrBalanceUpdateFailed
	}

	deposit := NewDepositService(fees.NewCalculator(), directory)
	_, err := deposit.Perform(depositRequest("50"))
	if !errors.Is(err, domain.ErrBalanceUpdateFailed) {
		t.Fatalf("Expected ErrBalanceUpdateFailed, got %v", err)
	}
}

func TestDeposit_NonPositiveAmount(t *testing.T) {
	directory := testutil.NewMockDirectory()
	directory.AddUser(testCard, testUsername, false, testPIN)
	directory.SetAccountBalance(testUsername, domain.AccountChequing, d("1000"))

	deposit := NewDepositService(fees.NewCalculator(), directory)
	result, err := deposit.Perform(depositRequest("0"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Successful {
		t.Fatal("Expected rejection of zero amount")
	}
	if result.Reason != domain.ReasonNonPositiveAmount {
		t.Errorf("Expected reason %q, got %q", domain.ReasonNonPositiveAmount, result.Reason)
	}
	if len(result.Balances) != 0 {
		t.Error("A failed result must not claim balances")
	}
}

func TestDeposit_WrongSelectorCount(t *testing.T) {
	req := domain.NewTransactionRequest(testCard, testPIN, domain.TransactionTypeDeposit,
		[]domain.AccountKind{domain.AccountChequing, domain.AccountSavings}, d("50"))

	deposit := NewDepositService(fees.NewCalculator(), testutil.NewMockDirectory())
	result, err := deposit.Perform(req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Successful || result.Reason != domain.ReasonInvalidRequest {
		t.Errorf("Expected invalid request rejection, got %+v", result)
	}
}
