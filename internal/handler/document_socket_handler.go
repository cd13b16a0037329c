package handler

import (
	"errors"

	"docedit-be/internal/pkg/logger"
	"docedit-be/internal/pkg/serverutils"
	"docedit-be/internal/service"
	internalWS "docedit-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// DocumentSocketHandler lets clients watch an edit session for checkbox
// toggles, text edits and resets.
type DocumentSocketHandler struct {
	service service.IDocumentService
	hub     *internalWS.Hub
	logger  logger.ILogger
}

func NewDocumentSocketHandler(service service.IDocumentService, hub *internalWS.Hub, log logger.ILogger) *DocumentSocketHandler {
	return &DocumentSocketHandler{
		service: service,
		hub:     hub,
		logger:  log,
	}
}

// ServeWs authenticates the handshake and attaches the connection to the
// session. Browsers cannot set headers on a websocket handshake, so the token
// may come from the query string.
func (h *DocumentSocketHandler) ServeWs(c *fiber.Ctx) error {
	userID, err := serverutils.ParseUserToken(serverutils.BearerToken(c))
	if err != nil {
		h.logger.Warn("DocumentSocketHandler", "Rejected WS handshake", map[string]interface{}{"error": err})
		message := "Invalid token"
		if errors.Is(err, serverutils.ErrMissingToken) {
			message = "Missing token (Query 'token' or Header 'Authorization')"
		}
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, message))
	}

	sessionID := c.Params("sessionId")
	if err := h.service.Authorize(c.Context(), userID, sessionID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, err.Error()))
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("DocumentSocketHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID, "session_id": sessionID})
			internalWS.ServeWs(h.hub, conn, sessionID, userID)
			h.logger.Info("DocumentSocketHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID, "session_id": sessionID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *DocumentSocketHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/document/v1/:sessionId/ws", h.ServeWs)
}
