package handler

import (
	"crypto/subtle"
	"net/http"

	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/banklabs/teller/internal/domain"
	"github.com/banklabs/teller/internal/websocket"
)

// WebSocketHandler handles WebSocket connections for the transaction feed
type WebSocketHandler struct {
	hub            *websocket.Hub
	directory      domain.Directory
	allowedOrigins map[string]bool
	upgrader       ws.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *websocket.Hub, directory domain.Directory, allowedOrigins []string) *WebSocketHandler {
	originMap := make(map[string]bool)
	for _, origin := range allowedOrigins {
		originMap[origin] = true
	}

	h := &WebSocketHandler{
		hub:            hub,
		directory:      directory,
		allowedOrigins: originMap,
	}

	h.upgrader = ws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

// checkOrigin validates the request origin against allowed origins
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// Allow requests with no Origin header (e.g., same-origin or non-browser clients)
		return true
	}

	if h.allowedOrigins[origin] {
		return true
	}

	log.Warn().
		Str("origin", origin).
		Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// HandleWS handles WebSocket connection requests at GET /ws. Browsers cannot
// set custom headers on WebSocket upgrades, so the card credentials arrive as
// query parameters instead.
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	cardNumber := c.QueryParam("card_number")
	pin := c.QueryParam("pin")
	if cardNumber == "" || pin == "" {
		log.Debug().Msg("WebSocket connection rejected: missing credentials")
		return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
	}

	owner, err := h.directory.CardOwner(cardNumber)
	if err != nil {
		log.Debug().Err(err).Msg("WebSocket connection rejected: unknown card")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	stored, err := h.directory.PIN(owner)
	if err != nil || subtle.ConstantTimeCompare(stored, []byte(pin)) != 1 {
		log.Debug().Msg("WebSocket connection rejected: PIN mismatch")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return err
	}

	client := websocket.NewClient(conn, cardNumber, h.hub)
	h.hub.Register(client)

	log.Info().
		Str("client_id", client.ID()).
		Msg("WebSocket client connected")

	go client.WritePump()
	go client.ReadPump()

	return nil
}
