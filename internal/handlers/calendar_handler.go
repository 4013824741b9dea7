package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
	"github.com/HaeserTec/tennis-manager-sub002/internal/services"
)

type calendarScheduleService interface {
	CreateDayEvent(ctx context.Context, input services.DayEventInput) (*models.DayEvent, error)
	ListDayEvents(ctx context.Context, from, to string) ([]models.DayEvent, error)
	DeleteDayEvent(ctx context.Context, eventID string) error
	CreateTerm(ctx context.Context, input services.TermInput) (*models.Term, error)
	ListTerms(ctx context.Context) ([]models.Term, error)
	UpdateTerm(ctx context.Context, termID string, input services.TermInput) (*models.Term, error)
	DeleteTerm(ctx context.Context, termID string) error
}

type CalendarHandler struct {
	service calendarScheduleService
}

func NewCalendarHandler(service *services.ScheduleService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

type dayEventRequest struct {
	Date string  `json:"date"`
	Type string  `json:"type"`
	Note *string `json:"note"`
}

type termRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *CalendarHandler) CreateDayEvent(c *fiber.Ctx) error {
	var req dayEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	event, err := h.service.CreateDayEvent(c.Context(), services.DayEventInput{
		Date: req.Date,
		Type: req.Type,
		Note: req.Note,
	})
	if err != nil {
		return mapScheduleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"day_event": event})
}

func (h *CalendarHandler) ListDayEvents(c *fiber.Ctx) error {
	events, err := h.service.ListDayEvents(c.Context(),
		strings.TrimSpace(c.Query("from")), strings.TrimSpace(c.Query("to")))
	if err != nil {
		return mapScheduleError(c, err)
	}
	return c.JSON(fiber.Map{"day_events": events})
}

func (h *CalendarHandler) DeleteDayEvent(c *fiber.Ctx) error {
	if err := h.service.DeleteDayEvent(c.Context(), c.Params("id")); err != nil {
		return mapScheduleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CalendarHandler) CreateTerm(c *fiber.Ctx) error {
	var req termRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	term, err := h.service.CreateTerm(c.Context(), services.TermInput{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return mapScheduleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"term": term})
}

func (h *CalendarHandler) ListTerms(c *fiber.Ctx) error {
	terms, err := h.service.ListTerms(c.Context())
	if err != nil {
		return mapScheduleError(c, err)
	}
	return c.JSON(fiber.Map{"terms": terms})
}

func (h *CalendarHandler) UpdateTerm(c *fiber.Ctx) error {
	var req termRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	term, err := h.service.UpdateTerm(c.Context(), c.Params("id"), services.TermInput{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return mapScheduleError(c, err)
	}
	return c.JSON(fiber.Map{"term": term})
}

func (h *CalendarHandler) DeleteTerm(c *fiber.Ctx) error {
	if err := h.service.DeleteTerm(c.Context(), c.Params("id")); err != nil {
		return mapScheduleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
