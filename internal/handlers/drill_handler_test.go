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

type stubDrillService struct {
	createResult *models.Drill
	createErr    error
	getResult    *models.Drill
	getErr       error
	listResult   []models.Drill
	listErr      error
	updateResult *models.Drill
	updateErr    error
	deleteErr    error
	lastInput    services.DrillInput
	lastCategory string
}

func (s *stubDrillService) CreateDrill(_ context.Context, input services.DrillInput) (*models.Drill, error) {
	s.lastInput = input
	return s.createResult, s.createErr
}

func (s *stubDrillService) GetDrill(_ context.Context, drillID string) (*models.Drill, error) {
	return s.getResult, s.getErr
}

func (s *stubDrillService) ListDrills(_ context.Context, category string) ([]models.Drill, error) {
	s.lastCategory = category
	return s.listResult, s.listErr
}

func (s *stubDrillService) UpdateDrill(_ context.Context, drillID string, input services.DrillInput) (*models.Drill, error) {
	s.lastInput = input
	return s.updateResult, s.updateErr
}

func (s *stubDrillService) DeleteDrill(_ context.Context, drillID string) error {
	return s.deleteErr
}

func newDrillTestApp(service *stubDrillService) *fiber.App {
	handler := &DrillHandler{service: service}
	app := fiber.New()
	app.Post("/api/v1/drills", handler.CreateDrill)
	app.Get("/api/v1/drills", handler.ListDrills)
	app.Get("/api/v1/drills/:id", handler.GetDrill)
	return app
}

func TestCreateDrillReturnsCreated(t *testing.T) {
	service := &stubDrillService{
		createResult: &models.Drill{ID: "drill-1", Title: "Crosscourt rally"},
	}
	app := newDrillTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/drills", strings.NewReader(`{
		"title": "Crosscourt rally",
		"category": "groundstrokes",
		"diagram": {"shapes": [{"kind": "cone", "x": 1, "y": 2}]}
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
	if service.lastInput.Title != "Crosscourt rally" {
		t.Fatalf("expected title to reach the service, got %q", service.lastInput.Title)
	}
	if len(service.lastInput.Diagram) == 0 {
		t.Fatal("expected diagram payload to reach the service")
	}
}

func TestCreateDrillInvalidDiagramMapsTo400(t *testing.T) {
	service := &stubDrillService{createErr: services.ErrInvalidDiagram}
	app := newDrillTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/drills", strings.NewReader(`{"title": "Broken"}`))
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

func TestListDrillsPassesCategoryFilter(t *testing.T) {
	service := &stubDrillService{listResult: []models.Drill{}}
	app := newDrillTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/drills?category=serves", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastCategory != "serves" {
		t.Fatalf("expected category filter serves, got %q", service.lastCategory)
	}
}
