package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/banklabs/teller/internal/domain"
	"github.com/banklabs/teller/internal/middleware"
	"github.com/banklabs/teller/internal/service"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the create transaction request body.
// Accounts lists account kinds in selector order; transfers name source
// then destination.
type CreateTransactionRequest struct {
	Type     string   `json:"type"`
	Accounts []string `json:"accounts"`
	Amount   string   `json:"amount"`
}

// TransactionResponse represents a transaction outcome in API responses
type TransactionResponse struct {
	ID          string   `json:"id"`
	Successful  bool     `json:"successful"`
	Reason      string   `json:"reason,omitempty"`
	Fee         string   `json:"fee"`
	Balances    []string `json:"balances,omitempty"`
	CompletedAt string   `json:"completedAt"`
}

func toTransactionResponse(result *domain.TransactionResult) TransactionResponse {
	balances := make([]string, 0, len(result.Balances))
	for _, b := range result.Balances {
		balances = append(balances, b.String())
	}
	return TransactionResponse{
		ID:          result.ID.String(),
		Successful:  result.Successful,
		Reason:      result.Reason,
		Fee:         result.Fee.String(),
		Balances:    balances,
		CompletedAt: result.CompletedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// CreateTransaction handles POST /api/v1/transactions. The card number and
// PIN come from the authenticated request headers, never from the body.
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	cardNumber := middleware.GetCardNumber(c)
	if cardNumber == "" {
		return NewUnauthorizedError(c, "Card authentication required")
	}

	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if req.Type == "" {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Transaction type is required"},
		})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be a decimal number"},
		})
	}

	accounts := make([]domain.AccountKind, 0, len(req.Accounts))
	for _, kind := range req.Accounts {
		accounts = append(accounts, domain.AccountKind(kind))
	}

	pin := []byte(c.Request().Header.Get(middleware.CardPINHeader))
	txReq := domain.NewTransactionRequest(cardNumber, pin, domain.TransactionType(req.Type), accounts, amount)

	result, err := h.transactionService.Execute(txReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCardNotFound), errors.Is(err, domain.ErrUserNotFound):
			return NewNotFoundError(c, "Account not found")
		case errors.Is(err, domain.ErrBalanceUpdateFailed):
			return NewBadGatewayError(c, "The account directory rejected the balance update")
		default:
			return NewInternalError(c, "Transaction could not be processed")
		}
	}

	if !result.Successful {
		return c.JSON(http.StatusUnprocessableEntity, toTransactionResponse(result))
	}

	return c.JSON(http.StatusCreated, toTransactionResponse(result))
}
