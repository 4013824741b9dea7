package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
	"github.com/HaeserTec/tennis-manager-sub002/internal/repository"
)

// DrillService manages the drill library. Diagrams are opaque JSON from the
// canvas editor; the only server-side rule is that they must decode.
type DrillService struct {
	drillRepo *repository.DrillRepository
}

func NewDrillService(drillRepo *repository.DrillRepository) *DrillService {
	return &DrillService{drillRepo: drillRepo}
}

type DrillInput struct {
	Title       string
	Category    *string
	Description *string
	Diagram     json.RawMessage
}

func normalizeDrillInput(input DrillInput) (DrillInput, error) {
	input.Title = trimmed(input.Title)
	if input.Title == "" {
		return input, ErrInvalidInput
	}
	if len(input.Diagram) == 0 {
		input.Diagram = json.RawMessage(`{}`)
	}
	if !json.Valid(input.Diagram) {
		return input, ErrInvalidDiagram
	}
	input.Category = trimmedPtr(input.Category)
	input.Description = trimmedPtr(input.Description)
	return input, nil
}

func (s *DrillService) CreateDrill(ctx context.Context, input DrillInput) (*models.Drill, error) {
	input, err := normalizeDrillInput(input)
	if err != nil {
		return nil, err
	}
	return s.drillRepo.Create(ctx, repository.CreateDrillInput{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Category:    input.Category,
		Description: input.Description,
		Diagram:     []byte(input.Diagram),
	})
}

func (s *DrillService) GetDrill(ctx context.Context, drillID string) (*models.Drill, error) {
	return s.drillRepo.GetByID(ctx, drillID)
}

func (s *DrillService) ListDrills(ctx context.Context, category string) ([]models.Drill, error) {
	return s.drillRepo.List(ctx, category)
}

func (s *DrillService) UpdateDrill(ctx context.Context, drillID string, input DrillInput) (*models.Drill, error) {
	input, err := normalizeDrillInput(input)
	if err != nil {
		return nil, err
	}
	return s.drillRepo.Update(ctx, drillID, repository.UpdateDrillInput{
		Title:       input.Title,
		Category:    input.Category,
		Description: input.Description,
		Diagram:     []byte(input.Diagram),
	})
}

func (s *DrillService) DeleteDrill(ctx context.Context, drillID string) error {
	return s.drillRepo.Delete(ctx, drillID)
}
