package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
	"github.com/HaeserTec/tennis-manager-sub002/internal/repository"
	"github.com/HaeserTec/tennis-manager-sub002/internal/services"
)

type stubRosterService struct {
	createResult   *models.Client
	createErr      error
	getResult      *models.Client
	getErr         error
	listResult     []models.Client
	listMeta       *models.PaginationMeta
	listErr        error
	updateResult   *models.Client
	updateErr      error
	deleteErr      error
	lastInput      services.ClientInput
	lastClientID   string
	lastListFilter repository.ClientListFilter
}

func (s *stubRosterService) CreateClient(_ context.Context, input services.ClientInput) (*models.Client, error) {
	s.lastInput = input
	return s.createResult, s.createErr
}

func (s *stubRosterService) GetClient(_ context.Context, clientID string) (*models.Client, error) {
	s.lastClientID = clientID
	return s.getResult, s.getErr
}

func (s *stubRosterService) ListClients(_ context.Context, filter repository.ClientListFilter) ([]models.Client, *models.PaginationMeta, error) {
	s.lastListFilter = filter
	return s.listResult, s.listMeta, s.listErr
}

func (s *stubRosterService) UpdateClient(_ context.Context, clientID string, input services.ClientInput) (*models.Client, error) {
	s.lastClientID = clientID
	s.lastInput = input
	return s.updateResult, s.updateErr
}

func (s *stubRosterService) DeleteClient(_ context.Context, clientID string) error {
	s.lastClientID = clientID
	return s.deleteErr
}

func newClientTestApp(service *stubRosterService) *fiber.App {
	handler := &ClientHandler{service: service}
	app := fiber.New()
	app.Post("/api/v1/clients", handler.CreateClient)
	app.Get("/api/v1/clients", handler.ListClients)
	app.Get("/api/v1/clients/:id", handler.GetClient)
	app.Put("/api/v1/clients/:id", handler.UpdateClient)
	app.Delete("/api/v1/clients/:id", handler.DeleteClient)
	return app
}

func TestCreateClientReturnsCreated(t *testing.T) {
	service := &stubRosterService{
		createResult: &models.Client{ID: "client-1", Name: "Jordan Reeves", Status: models.ClientStatusActive},
	}
	app := newClientTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", strings.NewReader(`{
		"name": "Jordan Reeves",
		"email": "jordan@example.com",
		"status": "active"
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
	if service.lastInput.Name != "Jordan Reeves" {
		t.Fatalf("expected name to reach the service, got %q", service.lastInput.Name)
	}
}

func TestCreateClientInvalidInputMapsTo400(t *testing.T) {
	service := &stubRosterService{createErr: services.ErrInvalidInput}
	app := newClientTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", strings.NewReader(`{"name": ""}`))
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

func TestListClientsRejectsUnknownStatus(t *testing.T) {
	service := &stubRosterService{}
	app := newClientTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients?status=archived", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestListClientsPassesPagination(t *testing.T) {
	service := &stubRosterService{
		listResult: []models.Client{{ID: "client-1", Name: "Jordan Reeves"}},
		listMeta:   &models.PaginationMeta{Page: 2, Limit: 5, Total: 11, TotalPages: 3},
	}
	app := newClientTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients?page=2&limit=5&status=lead", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastListFilter.Page != 2 || service.lastListFilter.Limit != 5 {
		t.Fatalf("expected page 2 limit 5, got %+v", service.lastListFilter)
	}
	if service.lastListFilter.Status != models.ClientStatusLead {
		t.Fatalf("expected lead filter, got %q", service.lastListFilter.Status)
	}

	var body struct {
		Clients    []models.Client        `json:"clients"`
		Pagination *models.PaginationMeta `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Pagination == nil || body.Pagination.TotalPages != 3 {
		t.Fatalf("expected pagination meta in response, got %+v", body.Pagination)
	}
}

func TestDeleteClientNotFoundMapsTo404(t *testing.T) {
	service := &stubRosterService{deleteErr: pgx.ErrNoRows}
	app := newClientTestApp(service)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/clients/ghost", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
