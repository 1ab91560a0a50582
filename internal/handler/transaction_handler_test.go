package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/banklabs/teller/internal/domain"
	"github.com/banklabs/teller/internal/fees"
	"github.com/banklabs/teller/internal/middleware"
	"github.com/banklabs/teller/internal/service"
	"github.com/banklabs/teller/internal/testutil"
	"github.com/banklabs/teller/internal/util"
)

func newTestHandler(directory *testutil.MockDirectory) *TransactionHandler {
	calc := fees.NewCalculator()
	clock := util.FixedWeekday(time.Monday)
	transactionService := service.NewTransactionService(
		service.NewDepositService(calc, directory),
		service.NewWithdrawalService(calc, directory, clock),
		service.NewTransferService(calc, directory),
		nil,
		nil,
	)
	return NewTransactionHandler(transactionService)
}

func newTransactionContext(e *echo.Echo, body string, cardNumber string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.CardPINHeader, "5555")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if cardNumber != "" {
		c.Set(string(middleware.CardNumberKey), cardNumber)
	}
	return c, rec
}

func TestCreateTransaction_Deposit(t *testing.T) {
	e := echo.New()
	directory := testutil.NewMockDirectory()
	directory.AddUser("4000000000000000", "kevin", false, []byte("5555"))
	directory.SetAccountBalance("kevin", domain.AccountChequing, decimal.NewFromInt(100))
	handler := newTestHandler(directory)

	reqBody := `{"type": "deposit", "accounts": ["chequing"], "amount": "50.00"}`
	c, rec := newTransactionContext(e, reqBody, "4000000000000000")

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if !response.Successful {
		t.Errorf("Expected successful transaction, got reason %q", response.Reason)
	}

	// Small deposit at a low balance is free
	if response.Fee != "0" {
		t.Errorf("Expected fee '0', got %s", response.Fee)
	}

	if len(response.Balances) != 1 || response.Balances[0] != "150" {
		t.Errorf("Expected balances ['150'], got %v", response.Balances)
	}
}

func TestCreateTransaction_InsufficientFunds(t *testing.T) {
	e := echo.New()
	directory := testutil.NewMockDirectory()
	directory.AddUser("4000000000000000", "kevin", false, []byte("5555"))
	directory.SetAccountBalance("kevin", domain.AccountChequing, decimal.NewFromInt(10))
	handler := newTestHandler(directory)

	reqBody := `{"type": "withdrawal", "accounts": ["chequing"], "amount": "50.00"}`
	c, rec := newTransactionContext(e, reqBody, "4000000000000000")

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status 422, got %d", rec.Code)
	}

	var response TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Successful {
		t.Error("Expected unsuccessful transaction")
	}

	if response.Reason != domain.ReasonInsufficientFunds {
		t.Errorf("Expected reason %q, got %q", domain.ReasonInsufficientFunds, response.Reason)
	}
}

func TestCreateTransaction_UnknownCard(t *testing.T) {
	e := echo.New()
	handler := newTestHandler(testutil.NewMockDirectory())

	reqBody := `{"type": "deposit", "accounts": ["chequing"], "amount": "50.00"}`
	c, rec := newTransactionContext(e, reqBody, "4999999999999999")

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestCreateTransaction_Unauthenticated(t *testing.T) {
	e := echo.New()
	handler := newTestHandler(testutil.NewMockDirectory())

	reqBody := `{"type": "deposit", "accounts": ["chequing"], "amount": "50.00"}`
	c, rec := newTransactionContext(e, reqBody, "")

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestCreateTransaction_BadAmount(t *testing.T) {
	e := echo.New()
	directory := testutil.NewMockDirectory()
	directory.AddUser("4000000000000000", "kevin", false, []byte("5555"))
	handler := newTestHandler(directory)

	reqBody := `{"type": "deposit", "accounts": ["chequing"], "amount": "fifty"}`
	c, rec := newTransactionContext(e, reqBody, "4000000000000000")

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	if !strings.Contains(rec.Body.String(), "amount") {
		t.Errorf("Expected amount validation error, got %s", rec.Body.String())
	}
}

func TestCreateTransaction_MissingType(t *testing.T) {
	e := echo.New()
	directory := testutil.NewMockDirectory()
	directory.AddUser("4000000000000000", "kevin", false, []byte("5555"))
	handler := newTestHandler(directory)

	reqBody := `{"accounts": ["chequing"], "amount": "50.00"}`
	c, rec := newTransactionContext(e, reqBody, "4000000000000000")

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateTransaction_UnknownType(t *testing.T) {
	e := echo.New()
	directory := testutil.NewMockDirectory()
	directory.AddUser("4000000000000000", "kevin", false, []byte("5555"))
	handler := newTestHandler(directory)

	reqBody := `{"type": "reversal", "accounts": ["chequing"], "amount": "50.00"}`
	c, rec := newTransactionContext(e, reqBody, "4000000000000000")

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status 422, got %d", rec.Code)
	}

	if !strings.Contains(rec.Body.String(), domain.ReasonInvalidRequest) {
		t.Errorf("Expected invalid request reason, got %s", rec.Body.String())
	}
}

func TestCreateTransaction_Transfer(t *testing.T) {
	e := echo.New()
	directory := testutil.NewMockDirectory()
	directory.AddUser("4000000000000000", "kevin", true, []byte("5555"))
	directory.SetAccountBalance("kevin", domain.AccountChequing, decimal.NewFromInt(100))
	directory.SetAccountBalance("kevin", domain.AccountSavings, decimal.NewFromInt(100))
	handler := newTestHandler(directory)

	reqBody := `{"type": "transfer", "accounts": ["chequing", "savings"], "amount": "50.00"}`
	c, rec := newTransactionContext(e, reqBody, "4000000000000000")

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Fee != "0.5" {
		t.Errorf("Expected fee '0.5', got %s", response.Fee)
	}

	if len(response.Balances) != 2 {
		t.Fatalf("Expected two balances, got %v", response.Balances)
	}

	if response.Balances[0] != "49.5" || response.Balances[1] != "150" {
		t.Errorf("Expected balances ['49.5', '150'], got %v", response.Balances)
	}
}
