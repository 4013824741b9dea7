package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
	"github.com/HaeserTec/tennis-manager-sub002/internal/repository"
	"github.com/HaeserTec/tennis-manager-sub002/internal/services"
)

type playerRosterService interface {
	CreatePlayer(ctx context.Context, input services.PlayerInput) (*models.Player, error)
	GetPlayer(ctx context.Context, playerID string) (*models.Player, error)
	ListPlayers(ctx context.Context, filter repository.PlayerListFilter) ([]models.Player, *models.PaginationMeta, error)
	UpdatePlayer(ctx context.Context, playerID string, input services.PlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, playerID string) error
}

type PlayerHandler struct {
	service playerRosterService
}

func NewPlayerHandler(service *services.RosterService) *PlayerHandler {
	return &PlayerHandler{service: service}
}

type playerRequest struct {
	Name      string  `json:"name"`
	ClientID  *string `json:"client_id"`
	BirthYear *int    `json:"birth_year"`
	Level     *string `json:"level"`
	Notes     *string `json:"notes"`
}

func (h *PlayerHandler) CreatePlayer(c *fiber.Ctx) error {
	var req playerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	player, err := h.service.CreatePlayer(c.Context(), services.PlayerInput{
		Name:      req.Name,
		ClientID:  req.ClientID,
		BirthYear: req.BirthYear,
		Level:     req.Level,
		Notes:     req.Notes,
	})
	if err != nil {
		return mapRosterError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"player": player})
}

func (h *PlayerHandler) GetPlayer(c *fiber.Ctx) error {
	player, err := h.service.GetPlayer(c.Context(), c.Params("id"))
	if err != nil {
		return mapRosterError(c, err)
	}
	return c.JSON(fiber.Map{"player": player})
}

func (h *PlayerHandler) ListPlayers(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	players, meta, err := h.service.ListPlayers(c.Context(), repository.PlayerListFilter{
		ClientID: strings.TrimSpace(c.Query("client_id")),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return mapRosterError(c, err)
	}
	return c.JSON(fiber.Map{"players": players, "pagination": meta})
}

func (h *PlayerHandler) UpdatePlayer(c *fiber.Ctx) error {
	var req playerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	player, err := h.service.UpdatePlayer(c.Context(), c.Params("id"), services.PlayerInput{
		Name:      req.Name,
		ClientID:  req.ClientID,
		BirthYear: req.BirthYear,
		Level:     req.Level,
		Notes:     req.Notes,
	})
	if err != nil {
		return mapRosterError(c, err)
	}
	return c.JSON(fiber.Map{"player": player})
}

func (h *PlayerHandler) DeletePlayer(c *fiber.Ctx) error {
	if err := h.service.DeletePlayer(c.Context(), c.Params("id")); err != nil {
		return mapRosterError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
