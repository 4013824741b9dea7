package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
	"github.com/HaeserTec/tennis-manager-sub002/internal/repository"
	"github.com/HaeserTec/tennis-manager-sub002/internal/schedule"
	"github.com/HaeserTec/tennis-manager-sub002/internal/services"
)

type sessionScheduleService interface {
	CreateSession(ctx context.Context, input services.SessionInput) (*models.TrainingSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.TrainingSession, error)
	ListSessions(ctx context.Context, filter repository.SessionListFilter) ([]models.TrainingSession, error)
	UpdateSession(ctx context.Context, sessionID string, input services.SessionInput) (*models.TrainingSession, error)
	DeleteSession(ctx context.Context, sessionID string) error
	RepeatSeries(ctx context.Context, sessionID string, mode schedule.RepeatMode, termID string) ([]models.TrainingSession, error)
}

type SessionHandler struct {
	service sessionScheduleService
}

func NewSessionHandler(service *services.ScheduleService) *SessionHandler {
	return &SessionHandler{service: service}
}

type sessionRequest struct {
	Date           string   `json:"date"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	Location       string   `json:"location"`
	Type           string   `json:"type"`
	Price          float64  `json:"price"`
	ParticipantIDs []string `json:"participant_ids"`
	MaxCapacity    int      `json:"max_capacity"`
	Notes          *string  `json:"notes"`
}

type repeatRequest struct {
	Mode   string `json:"mode"`
	TermID string `json:"term_id"`
}

func sessionInputFromRequest(req sessionRequest) services.SessionInput {
	return services.SessionInput{
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Location:       req.Location,
		Type:           req.Type,
		Price:          req.Price,
		ParticipantIDs: req.ParticipantIDs,
		MaxCapacity:    req.MaxCapacity,
		Notes:          req.Notes,
	}
}

func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	var req sessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	session, err := h.service.CreateSession(c.Context(), sessionInputFromRequest(req))
	if err != nil {
		return mapScheduleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.service.GetSession(c.Context(), c.Params("id"))
	if err != nil {
		return mapScheduleError(c, err)
	}
	return c.JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) ListSessions(c *fiber.Ctx) error {
	sessions, err := h.service.ListSessions(c.Context(), repository.SessionListFilter{
		From:     strings.TrimSpace(c.Query("from")),
		To:       strings.TrimSpace(c.Query("to")),
		Location: strings.TrimSpace(c.Query("location")),
		SeriesID: strings.TrimSpace(c.Query("series_id")),
	})
	if err != nil {
		return mapScheduleError(c, err)
	}
	return c.JSON(fiber.Map{"sessions": sessions})
}

func (h *SessionHandler) UpdateSession(c *fiber.Ctx) error {
	var req sessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	session, err := h.service.UpdateSession(c.Context(), c.Params("id"), sessionInputFromRequest(req))
	if err != nil {
		return mapScheduleError(c, err)
	}
	return c.JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) DeleteSession(c *fiber.Ctx) error {
	if err := h.service.DeleteSession(c.Context(), c.Params("id")); err != nil {
		return mapScheduleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RepeatSession expands a session into a weekly series, either to the end of
// its month or through a named term.
func (h *SessionHandler) RepeatSession(c *fiber.Ctx) error {
	var req repeatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var mode schedule.RepeatMode
	switch strings.ToLower(strings.TrimSpace(req.Mode)) {
	case "month":
		mode = schedule.RepeatMonth
	case "term":
		mode = schedule.RepeatTerm
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "mode must be month or term"})
	}

	sessions, err := h.service.RepeatSeries(c.Context(), c.Params("id"), mode, req.TermID)
	if err != nil {
		return mapScheduleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"sessions": sessions})
}

func mapScheduleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrUnknownParticipant):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Participant is not on the roster"})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Slot is already booked"})
	case errors.Is(err, services.ErrTermNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Term not found"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process schedule request"})
	}
}
