package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
	"github.com/HaeserTec/tennis-manager-sub002/internal/services"
)

type stubCalendarService struct {
	eventResult  *models.DayEvent
	eventErr     error
	eventsResult []models.DayEvent
	eventsErr    error
	deleteErr    error
	termResult   *models.Term
	termErr      error
	termsResult  []models.Term
	termsErr     error
	lastEvent    services.DayEventInput
	lastTerm     services.TermInput
	lastFrom     string
	lastTo       string
}

func (s *stubCalendarService) CreateDayEvent(_ context.Context, input services.DayEventInput) (*models.DayEvent, error) {
	s.lastEvent = input
	return s.eventResult, s.eventErr
}

func (s *stubCalendarService) ListDayEvents(_ context.Context, from, to string) ([]models.DayEvent, error) {
	s.lastFrom = from
	s.lastTo = to
	return s.eventsResult, s.eventsErr
}

func (s *stubCalendarService) DeleteDayEvent(_ context.Context, eventID string) error {
	return s.deleteErr
}

func (s *stubCalendarService) CreateTerm(_ context.Context, input services.TermInput) (*models.Term, error) {
	s.lastTerm = input
	return s.termResult, s.termErr
}

func (s *stubCalendarService) ListTerms(_ context.Context) ([]models.Term, error) {
	return s.termsResult, s.termsErr
}

func (s *stubCalendarService) UpdateTerm(_ context.Context, termID string, input services.TermInput) (*models.Term, error) {
	s.lastTerm = input
	return s.termResult, s.termErr
}

func (s *stubCalendarService) DeleteTerm(_ context.Context, termID string) error {
	return s.deleteErr
}

func newCalendarTestApp(service *stubCalendarService) *fiber.App {
	handler := &CalendarHandler{service: service}
	app := fiber.New()
	app.Post("/api/v1/day-events", handler.CreateDayEvent)
	app.Get("/api/v1/day-events", handler.ListDayEvents)
	app.Post("/api/v1/terms", handler.CreateTerm)
	app.Get("/api/v1/terms", handler.ListTerms)
	return app
}

func TestCreateDayEventReturnsCreated(t *testing.T) {
	service := &stubCalendarService{
		eventResult: &models.DayEvent{ID: "event-1", Date: "2026-01-12", Type: models.DayEventRain},
	}
	app := newCalendarTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/day-events", strings.NewReader(`{
		"date": "2026-01-12",
		"type": "rain"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastEvent.Type != models.DayEventRain {
		t.Fatalf("expected rain type to reach the service, got %q", service.lastEvent.Type)
	}
}

func TestCreateDayEventUnknownTypeMapsTo400(t *testing.T) {
	service := &stubCalendarService{eventErr: services.ErrInvalidInput}
	app := newCalendarTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/day-events", strings.NewReader(`{
		"date": "2026-01-12",
		"type": "snow"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestListDayEventsPassesRange(t *testing.T) {
	service := &stubCalendarService{eventsResult: []models.DayEvent{}}
	app := newCalendarTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/day-events?from=2026-01-01&to=2026-01-31", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastFrom != "2026-01-01" || service.lastTo != "2026-01-31" {
		t.Fatalf("expected range to reach the service, got %q..%q", service.lastFrom, service.lastTo)
	}
}

func TestCreateTermReturnsCreated(t *testing.T) {
	service := &stubCalendarService{
		termResult: &models.Term{ID: "term-1", Name: "Term 1", StartDate: "2026-02-02", EndDate: "2026-04-10"},
	}
	app := newCalendarTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/terms", strings.NewReader(`{
		"name": "Term 1",
		"start_date": "2026-02-02",
		"end_date": "2026-04-10"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastTerm.Name != "Term 1" {
		t.Fatalf("expected term name to reach the service, got %q", service.lastTerm.Name)
	}
}
