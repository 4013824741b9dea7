package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
	"github.com/HaeserTec/tennis-manager-sub002/internal/repository"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrClientNotFound     = errors.New("client not found")
	ErrTermNotFound       = errors.New("term not found")
	ErrUnknownParticipant = errors.New("unknown participant")
	ErrInvalidDiagram     = errors.New("invalid diagram")
)

// RosterService manages clients and the player roster. A player may be
// linked to at most one client; unlinking happens either explicitly or via
// client deletion.
type RosterService struct {
	clientRepo *repository.ClientRepository
	playerRepo *repository.PlayerRepository
}

func NewRosterService(clientRepo *repository.ClientRepository, playerRepo *repository.PlayerRepository) *RosterService {
	return &RosterService{clientRepo: clientRepo, playerRepo: playerRepo}
}

type ClientInput struct {
	Name   string
	Email  *string
	Phone  *string
	Status string
	Notes  *string
}

func normalizeClientInput(input ClientInput) (ClientInput, error) {
	input.Name = trimmed(input.Name)
	if input.Name == "" {
		return input, ErrInvalidInput
	}
	input.Status = trimmed(input.Status)
	if input.Status == "" {
		input.Status = models.ClientStatusActive
	}
	switch input.Status {
	case models.ClientStatusActive, models.ClientStatusInactive, models.ClientStatusLead:
	default:
		return input, ErrInvalidInput
	}
	input.Email = trimmedPtr(input.Email)
	input.Phone = trimmedPtr(input.Phone)
	input.Notes = trimmedPtr(input.Notes)
	return input, nil
}

func (s *RosterService) CreateClient(ctx context.Context, input ClientInput) (*models.Client, error) {
	input, err := normalizeClientInput(input)
	if err != nil {
		return nil, err
	}
	return s.clientRepo.Create(ctx, repository.CreateClientInput{
		ID:     uuid.NewString(),
		Name:   input.Name,
		Email:  input.Email,
		Phone:  input.Phone,
		Status: input.Status,
		Notes:  input.Notes,
	})
}

func (s *RosterService) GetClient(ctx context.Context, clientID string) (*models.Client, error) {
	return s.clientRepo.GetByID(ctx, clientID)
}

func (s *RosterService) ListClients(ctx context.Context, filter repository.ClientListFilter) ([]models.Client, *models.PaginationMeta, error) {
	clients, total, err := s.clientRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return clients, paginationMeta(filter.Page, filter.Limit, total), nil
}

func (s *RosterService) UpdateClient(ctx context.Context, clientID string, input ClientInput) (*models.Client, error) {
	input, err := normalizeClientInput(input)
	if err != nil {
		return nil, err
	}
	return s.clientRepo.Update(ctx, clientID, repository.UpdateClientInput{
		Name:   input.Name,
		Email:  input.Email,
		Phone:  input.Phone,
		Status: input.Status,
		Notes:  input.Notes,
	})
}

func (s *RosterService) DeleteClient(ctx context.Context, clientID string) error {
	return s.clientRepo.Delete(ctx, clientID)
}

type PlayerInput struct {
	Name      string
	ClientID  *string
	BirthYear *int
	Level     *string
	Notes     *string
}

func (s *RosterService) normalizePlayerInput(ctx context.Context, input PlayerInput) (PlayerInput, error) {
	input.Name = trimmed(input.Name)
	if input.Name == "" {
		return input, ErrInvalidInput
	}
	if input.BirthYear != nil {
		year := *input.BirthYear
		if year < 1900 || year > time.Now().Year() {
			return input, ErrInvalidInput
		}
	}
	input.ClientID = trimmedPtr(input.ClientID)
	if input.ClientID != nil {
		if _, err := s.clientRepo.GetByID(ctx, *input.ClientID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return input, ErrClientNotFound
			}
			return input, err
		}
	}
	input.Level = trimmedPtr(input.Level)
	input.Notes = trimmedPtr(input.Notes)
	return input, nil
}

func (s *RosterService) CreatePlayer(ctx context.Context, input PlayerInput) (*models.Player, error) {
	input, err := s.normalizePlayerInput(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.playerRepo.Create(ctx, repository.CreatePlayerInput{
		ID:        uuid.NewString(),
		Name:      input.Name,
		ClientID:  input.ClientID,
		BirthYear: input.BirthYear,
		Level:     input.Level,
		Notes:     input.Notes,
	})
}

func (s *RosterService) GetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	return s.playerRepo.GetByID(ctx, playerID)
}

func (s *RosterService) ListPlayers(ctx context.Context, filter repository.PlayerListFilter) ([]models.Player, *models.PaginationMeta, error) {
	players, total, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return players, paginationMeta(filter.Page, filter.Limit, total), nil
}

func (s *RosterService) UpdatePlayer(ctx context.Context, playerID string, input PlayerInput) (*models.Player, error) {
	input, err := s.normalizePlayerInput(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.playerRepo.Update(ctx, playerID, repository.UpdatePlayerInput{
		Name:      input.Name,
		ClientID:  input.ClientID,
		BirthYear: input.BirthYear,
		Level:     input.Level,
		Notes:     input.Notes,
	})
}

func (s *RosterService) DeletePlayer(ctx context.Context, playerID string) error {
	return s.playerRepo.Delete(ctx, playerID)
}

func paginationMeta(page, limit, total int) *models.PaginationMeta {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return &models.PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
