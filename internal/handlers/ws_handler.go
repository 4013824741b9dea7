package handlers

import (
	"errors"
	"strings"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	calendarws "github.com/HaeserTec/tennis-manager-sub002/internal/websocket"
	"github.com/HaeserTec/tennis-manager-sub002/pkg/utils"
)

// CalendarFeedHandler upgrades authenticated staff connections onto the
// calendar change feed.
type CalendarFeedHandler struct {
	hub       *calendarws.Hub
	jwtSecret string
}

func NewCalendarFeedHandler(hub *calendarws.Hub, jwtSecret string) *CalendarFeedHandler {
	return &CalendarFeedHandler{hub: hub, jwtSecret: jwtSecret}
}

func (h *CalendarFeedHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	claims, err := h.parseWSClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("role", claims.Role)
	return c.Next()
}

func (h *CalendarFeedHandler) HandleWebSocket(conn *websocket.Conn) {
	client := calendarws.NewClient(h.hub, conn)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump()
}

func (h *CalendarFeedHandler) parseWSClaims(c *fiber.Ctx) (*utils.Claims, error) {
	tokenString := strings.TrimSpace(c.Query("token"))
	if tokenString == "" {
		authHeader := strings.TrimSpace(c.Get("Authorization"))
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
	}

	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	return utils.ValidateToken(tokenString, h.jwtSecret)
}
