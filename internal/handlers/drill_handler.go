package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
	"github.com/HaeserTec/tennis-manager-sub002/internal/services"
)

type drillApplicationService interface {
	CreateDrill(ctx context.Context, input services.DrillInput) (*models.Drill, error)
	GetDrill(ctx context.Context, drillID string) (*models.Drill, error)
	ListDrills(ctx context.Context, category string) ([]models.Drill, error)
	UpdateDrill(ctx context.Context, drillID string, input services.DrillInput) (*models.Drill, error)
	DeleteDrill(ctx context.Context, drillID string) error
}

type DrillHandler struct {
	service drillApplicationService
}

func NewDrillHandler(service *services.DrillService) *DrillHandler {
	return &DrillHandler{service: service}
}

type drillRequest struct {
	Title       string          `json:"title"`
	Category    *string         `json:"category"`
	Description *string         `json:"description"`
	Diagram     json.RawMessage `json:"diagram"`
}

func (h *DrillHandler) CreateDrill(c *fiber.Ctx) error {
	var req drillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	drill, err := h.service.CreateDrill(c.Context(), services.DrillInput{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Diagram:     req.Diagram,
	})
	if err != nil {
		return mapDrillError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"drill": drill})
}

func (h *DrillHandler) GetDrill(c *fiber.Ctx) error {
	drill, err := h.service.GetDrill(c.Context(), c.Params("id"))
	if err != nil {
		return mapDrillError(c, err)
	}
	return c.JSON(fiber.Map{"drill": drill})
}

func (h *DrillHandler) ListDrills(c *fiber.Ctx) error {
	drills, err := h.service.ListDrills(c.Context(), strings.TrimSpace(c.Query("category")))
	if err != nil {
		return mapDrillError(c, err)
	}
	return c.JSON(fiber.Map{"drills": drills})
}

func (h *DrillHandler) UpdateDrill(c *fiber.Ctx) error {
	var req drillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	drill, err := h.service.UpdateDrill(c.Context(), c.Params("id"), services.DrillInput{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Diagram:     req.Diagram,
	})
	if err != nil {
		return mapDrillError(c, err)
	}
	return c.JSON(fiber.Map{"drill": drill})
}

func (h *DrillHandler) DeleteDrill(c *fiber.Ctx) error {
	if err := h.service.DeleteDrill(c.Context(), c.Params("id")); err != nil {
		return mapDrillError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func mapDrillError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidDiagram):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Diagram must be valid JSON"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Drill not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process drill request"})
	}
}
