package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
	"github.com/HaeserTec/tennis-manager-sub002/internal/services"
)

type syncApplicationService interface {
	Push(ctx context.Context, exportedAt time.Time) (*services.SyncResult, error)
	Pull(ctx context.Context) (*services.SyncResult, error)
}

type SyncHandler struct {
	service syncApplicationService
}

func NewSyncHandler(service *services.SyncService) *SyncHandler {
	return &SyncHandler{service: service}
}

// Push exports every collection to the remote bucket. Admin only.
func (h *SyncHandler) Push(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	result, err := h.service.Push(c.Context(), time.Now().UTC())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to push snapshots"})
	}
	return c.JSON(fiber.Map{"sync": result})
}

// Pull replaces local collections with the remote snapshots. Admin only.
func (h *SyncHandler) Pull(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	result, err := h.service.Pull(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to pull snapshots"})
	}
	return c.JSON(fiber.Map{"sync": result})
}
