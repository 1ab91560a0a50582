package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/banklabs/teller/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, cardAuth *middleware.CardAuthMiddleware, rateLimiter *middleware.RateLimiter, transactionHandler *TransactionHandler, wsHandler *WebSocketHandler) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// WebSocket feed authenticates via query parameters
	e.GET("/ws", wsHandler.HandleWS)

	// API version 1
	api := e.Group("/api/v1")

	// Transaction routes (card-authenticated, rate limited per card)
	transactions := api.Group("/transactions")
	transactions.Use(cardAuth.Authenticate())
	transactions.Use(middleware.RateLimitMiddleware(rateLimiter))
	transactions.POST("", transactionHandler.CreateTransaction)
}
