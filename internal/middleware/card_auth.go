package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/banklabs/teller/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	// CardNumberHeader carries the card number on authenticated requests
	CardNumberHeader = "X-Card-Number"
	// CardPINHeader carries the PIN; its value is never logged
	CardPINHeader = "X-Card-PIN"
)

type contextKey string

// CardNumberKey is the echo context key for the verified card number
const CardNumberKey contextKey = "card_number"

// CardAuthMiddleware verifies a card number and PIN against the account
// directory before a request reaches the transaction handlers.
type CardAuthMiddleware struct {
	directory domain.Directory
}

// NewCardAuthMiddleware creates a new CardAuthMiddleware
func NewCardAuthMiddleware(directory domain.Directory) *CardAuthMiddleware {
	return &CardAuthMiddleware{directory: directory}
}

// Authenticate returns an Echo middleware that validates card and PIN
func (m *CardAuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cardNumber := c.Request().Header.Get(CardNumberHeader)
			pin := c.Request().Header.Get(CardPINHeader)
			if cardNumber == "" || pin == "" {
				return unauthorized(c, "Missing card credentials")
			}

			owner, err := m.directory.CardOwner(cardNumber)
			if err != nil {
				if errors.Is(err, domain.ErrCardNotFound) {
					log.Debug().Msg("Unknown card presented")
					return unauthorized(c, "Invalid card credentials")
				}
				log.Error().Err(err).Msg("Card lookup failed")
				return unauthorized(c, "Card verification failed")
			}

			stored, err := m.directory.PIN(owner)
			if err != nil {
				log.Error().Err(err).Msg("PIN lookup failed")
				return unauthorized(c, "Card verification failed")
			}

			if subtle.ConstantTimeCompare(stored, []byte(pin)) != 1 {
				log.Debug().Str("card", maskCard(cardNumber)).Msg("PIN mismatch")
				return unauthorized(c, "Invalid card credentials")
			}

			c.Set(string(CardNumberKey), cardNumber)
			return next(c)
		}
	}
}

// GetCardNumber extracts the verified card number from the context
func GetCardNumber(c echo.Context) string {
	if card, ok := c.Get(string(CardNumberKey)).(string); ok {
		return card
	}
	return ""
}

func maskCard(cardNumber string) string {
	if len(cardNumber) <= 4 {
		return cardNumber
	}
	return "****" + cardNumber[len(cardNumber)-4:]
}

func unauthorized(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, map[string]interface{}{
		"type":   "https://teller.dev/errors/unauthorized",
		"title":  "Unauthorized",
		"status": http.StatusUnauthorized,
		"detail": detail,
	})
}
