package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/HaeserTec/tennis-manager-sub002/internal/analytics"
	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
	"github.com/HaeserTec/tennis-manager-sub002/internal/services"
)

type progressApplicationService interface {
	RecordSessionLog(ctx context.Context, input services.SessionLogInput) (*models.SessionLog, error)
	ListSessionLogs(ctx context.Context, playerID string) ([]models.SessionLog, error)
	DeleteSessionLog(ctx context.Context, entryID string) error
	PlayerProgress(ctx context.Context, playerID string) (*analytics.ProgressTrend, error)
	PlayerAttendance(ctx context.Context, playerID string, today string) (*services.AttendanceSummary, error)
}

type ProgressHandler struct {
	service progressApplicationService
}

func NewProgressHandler(service *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

type sessionLogRequest struct {
	SessionID   string  `json:"session_id"`
	PlayerID    string  `json:"player_id"`
	Technique   int     `json:"technique"`
	Footwork    int     `json:"footwork"`
	Consistency int     `json:"consistency"`
	Attitude    int     `json:"attitude"`
	Matchplay   int     `json:"matchplay"`
	Notes       *string `json:"notes"`
}

func (h *ProgressHandler) RecordSessionLog(c *fiber.Ctx) error {
	var req sessionLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	entry, err := h.service.RecordSessionLog(c.Context(), services.SessionLogInput{
		SessionID:   req.SessionID,
		PlayerID:    req.PlayerID,
		Technique:   req.Technique,
		Footwork:    req.Footwork,
		Consistency: req.Consistency,
		Attitude:    req.Attitude,
		Matchplay:   req.Matchplay,
		Notes:       req.Notes,
	})
	if err != nil {
		return mapProgressError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session_log": entry})
}

func (h *ProgressHandler) ListSessionLogs(c *fiber.Ctx) error {
	entries, err := h.service.ListSessionLogs(c.Context(), strings.TrimSpace(c.Query("player_id")))
	if err != nil {
		return mapProgressError(c, err)
	}
	return c.JSON(fiber.Map{"session_logs": entries})
}

func (h *ProgressHandler) DeleteSessionLog(c *fiber.Ctx) error {
	if err := h.service.DeleteSessionLog(c.Context(), c.Params("id")); err != nil {
		return mapProgressError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProgressHandler) GetPlayerProgress(c *fiber.Ctx) error {
	trend, err := h.service.PlayerProgress(c.Context(), c.Params("id"))
	if err != nil {
		return mapProgressError(c, err)
	}
	return c.JSON(fiber.Map{"progress": trend})
}

func (h *ProgressHandler) GetPlayerAttendance(c *fiber.Ctx) error {
	today := strings.TrimSpace(c.Query("today"))
	if today == "" {
		today = time.Now().Format("2006-01-02")
	}

	summary, err := h.service.PlayerAttendance(c.Context(), c.Params("id"), today)
	if err != nil {
		return mapProgressError(c, err)
	}
	return c.JSON(fiber.Map{"attendance": summary})
}

func mapProgressError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process progress request"})
	}
}
