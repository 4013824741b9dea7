package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
	"github.com/HaeserTec/tennis-manager-sub002/internal/repository"
	"github.com/HaeserTec/tennis-manager-sub002/internal/services"
)

type clientRosterService interface {
	CreateClient(ctx context.Context, input services.ClientInput) (*models.Client, error)
	GetClient(ctx context.Context, clientID string) (*models.Client, error)
	ListClients(ctx context.Context, filter repository.ClientListFilter) ([]models.Client, *models.PaginationMeta, error)
	UpdateClient(ctx context.Context, clientID string, input services.ClientInput) (*models.Client, error)
	DeleteClient(ctx context.Context, clientID string) error
}

type ClientHandler struct {
	service clientRosterService
}

func NewClientHandler(service *services.RosterService) *ClientHandler {
	return &ClientHandler{service: service}
}

type clientRequest struct {
	Name   string  `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	var req clientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	client, err := h.service.CreateClient(c.Context(), services.ClientInput{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		return mapRosterError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"client": client})
}

func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	client, err := h.service.GetClient(c.Context(), c.Params("id"))
	if err != nil {
		return mapRosterError(c, err)
	}
	return c.JSON(fiber.Map{"client": client})
}

func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	status := strings.TrimSpace(c.Query("status"))
	if status != "" && status != models.ClientStatusActive &&
		status != models.ClientStatusInactive && status != models.ClientStatusLead {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status filter"})
	}

	clients, meta, err := h.service.ListClients(c.Context(), repository.ClientListFilter{
		Status: status,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return mapRosterError(c, err)
	}
	return c.JSON(fiber.Map{"clients": clients, "pagination": meta})
}

func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	var req clientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	client, err := h.service.UpdateClient(c.Context(), c.Params("id"), services.ClientInput{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		return mapRosterError(c, err)
	}
	return c.JSON(fiber.Map{"client": client})
}

func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	if err := h.service.DeleteClient(c.Context(), c.Params("id")); err != nil {
		return mapRosterError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func mapRosterError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrClientNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process roster request"})
	}
}
