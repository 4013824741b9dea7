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

	"github.com/HaeserTec/tennis-manager-sub002/internal/analytics"
	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
	"github.com/HaeserTec/tennis-manager-sub002/internal/services"
)

type stubProgressService struct {
	recordResult     *models.SessionLog
	recordErr        error
	listResult       []models.SessionLog
	listErr          error
	deleteErr        error
	progressResult   *analytics.ProgressTrend
	progressErr      error
	attendanceResult *services.AttendanceSummary
	attendanceErr    error
	lastInput        services.SessionLogInput
	lastPlayerID     string
	lastToday        string
}

func (s *stubProgressService) RecordSessionLog(_ context.Context, input services.SessionLogInput) (*models.SessionLog, error) {
	s.lastInput = input
	return s.recordResult, s.recordErr
}

func (s *stubProgressService) ListSessionLogs(_ context.Context, playerID string) ([]models.SessionLog, error) {
	s.lastPlayerID = playerID
	return s.listResult, s.listErr
}

func (s *stubProgressService) DeleteSessionLog(_ context.Context, entryID string) error {
	return s.deleteErr
}

func (s *stubProgressService) PlayerProgress(_ context.Context, playerID string) (*analytics.ProgressTrend, error) {
	s.lastPlayerID = playerID
	return s.progressResult, s.progressErr
}

func (s *stubProgressService) PlayerAttendance(_ context.Context, playerID string, today string) (*services.AttendanceSummary, error) {
	s.lastPlayerID = playerID
	s.lastToday = today
	return s.attendanceResult, s.attendanceErr
}

func newProgressTestApp(service *stubProgressService) *fiber.App {
	handler := &ProgressHandler{service: service}
	app := fiber.New()
	app.Post("/api/v1/session-logs", handler.RecordSessionLog)
	app.Get("/api/v1/session-logs", handler.ListSessionLogs)
	app.Delete("/api/v1/session-logs/:id", handler.DeleteSessionLog)
	app.Get("/api/v1/players/:id/progress", handler.GetPlayerProgress)
	app.Get("/api/v1/players/:id/attendance", handler.GetPlayerAttendance)
	return app
}

func TestRecordSessionLogReturnsCreated(t *testing.T) {
	service := &stubProgressService{
		recordResult: &models.SessionLog{ID: "log-1", PlayerID: "p1", SessionID: "sess-1", Total: 8},
	}
	app := newProgressTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/session-logs", strings.NewReader(`{
		"session_id": "sess-1",
		"player_id": "p1",
		"technique": 2,
		"footwork": 1,
		"consistency": 2,
		"attitude": 2,
		"matchplay": 1
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
	if service.lastInput.Technique != 2 || service.lastInput.Matchplay != 1 {
		t.Fatalf("expected scores to reach the service, got %+v", service.lastInput)
	}
}

func TestRecordSessionLogOutOfRangeMapsTo400(t *testing.T) {
	service := &stubProgressService{recordErr: services.ErrInvalidInput}
	app := newProgressTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/session-logs", strings.NewReader(`{
		"session_id": "sess-1",
		"player_id": "p1",
		"technique": 5
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

func TestGetPlayerProgressReturnsTrend(t *testing.T) {
	service := &stubProgressService{
		progressResult: &analytics.ProgressTrend{Entries: 3, First: 4, Latest: 8, Average: 6, Slope: 2},
	}
	app := newProgressTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/players/p1/progress", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastPlayerID != "p1" {
		t.Fatalf("expected player id p1, got %q", service.lastPlayerID)
	}

	var body struct {
		Progress analytics.ProgressTrend `json:"progress"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Progress.Slope != 2 {
		t.Fatalf("expected slope 2, got %v", body.Progress.Slope)
	}
}

func TestGetPlayerAttendancePassesToday(t *testing.T) {
	service := &stubProgressService{
		attendanceResult: &services.AttendanceSummary{PlayerID: "p1", CurrentStreak: 2, LongestStreak: 5},
	}
	app := newProgressTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/players/p1/attendance?today=2026-01-21", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastToday != "2026-01-21" {
		t.Fatalf("expected today to reach the service, got %q", service.lastToday)
	}
}

func TestGetPlayerProgressUnknownPlayerMapsTo404(t *testing.T) {
	service := &stubProgressService{progressErr: pgx.ErrNoRows}
	app := newProgressTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/players/ghost/progress", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
