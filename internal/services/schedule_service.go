package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
	"github.com/HaeserTec/tennis-manager-sub002/internal/repository"
	"github.com/HaeserTec/tennis-manager-sub002/internal/schedule"
)

// CalendarNotifier receives a change signal after any mutation of the
// calendar. Delivery is best effort; a nil notifier is a no-op.
type CalendarNotifier interface {
	CalendarChanged(entity string)
}

type participantChecker interface {
	ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error)
}

// ScheduleService owns the training calendar: sessions, their weekly repeat
// expansion, day events and terms.
type ScheduleService struct {
	db           *pgxpool.Pool
	sessionRepo  *repository.SessionRepository
	playerRepo   participantChecker
	dayEventRepo *repository.DayEventRepository
	termRepo     *repository.TermRepository
	notifier     CalendarNotifier
}

func NewScheduleService(
	db *pgxpool.Pool,
	sessionRepo *repository.SessionRepository,
	playerRepo participantChecker,
	dayEventRepo *repository.DayEventRepository,
	termRepo *repository.TermRepository,
	notifier CalendarNotifier,
) *ScheduleService {
	return &ScheduleService{
		db:           db,
		sessionRepo:  sessionRepo,
		playerRepo:   playerRepo,
		dayEventRepo: dayEventRepo,
		termRepo:     termRepo,
		notifier:     notifier,
	}
}

func (s *ScheduleService) notify(entity string) {
	if s.notifier != nil {
		s.notifier.CalendarChanged(entity)
	}
}

type SessionInput struct {
	Date           string
	StartTime      string
	EndTime        string
	Location       string
	Type           string
	Price          float64
	ParticipantIDs []string
	MaxCapacity    int
	Notes          *string
}

func (s *ScheduleService) normalizeSessionInput(ctx context.Context, input SessionInput) (SessionInput, error) {
	input.Date = trimmed(input.Date)
	input.StartTime = trimmed(input.StartTime)
	input.EndTime = trimmed(input.EndTime)
	input.Location = trimmed(input.Location)
	input.Type = trimmed(input.Type)
	if !validDay(input.Date) || !validClock(input.StartTime) || !validClock(input.EndTime) {
		return input, ErrInvalidInput
	}
	if input.Location == "" || input.Price < 0 {
		return input, ErrInvalidInput
	}
	switch input.Type {
	case models.SessionTypePrivate, models.SessionTypeSemi, models.SessionTypeGroup:
	default:
		return input, ErrInvalidInput
	}
	if input.MaxCapacity <= 0 {
		return input, ErrInvalidInput
	}
	input.ParticipantIDs = dedupeIDs(input.ParticipantIDs)
	if len(input.ParticipantIDs) > input.MaxCapacity {
		return input, ErrInvalidInput
	}
	existing, err := s.playerRepo.ExistingIDs(ctx, input.ParticipantIDs)
	if err != nil {
		return input, err
	}
	for _, id := range input.ParticipantIDs {
		if _, ok := existing[id]; !ok {
			return input, ErrUnknownParticipant
		}
	}
	input.Notes = trimmedPtr(input.Notes)
	return input, nil
}

func (s *ScheduleService) CreateSession(ctx context.Context, input SessionInput) (*models.TrainingSession, error) {
	input, err := s.normalizeSessionInput(ctx, input)
	if err != nil {
		return nil, err
	}

	taken, err := s.sessionRepo.ExistsAt(ctx, input.Date, input.StartTime, input.Location)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	session, err := s.sessionRepo.Create(ctx, repository.CreateSessionInput{
		ID:             uuid.NewString(),
		Date:           input.Date,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		Location:       input.Location,
		Type:           input.Type,
		Price:          input.Price,
		ParticipantIDs: input.ParticipantIDs,
		MaxCapacity:    input.MaxCapacity,
		Notes:          input.Notes,
	})
	if err != nil {
		return nil, err
	}
	s.notify("session")
	return session, nil
}

func (s *ScheduleService) GetSession(ctx context.Context, sessionID string) (*models.TrainingSession, error) {
	return s.sessionRepo.GetByID(ctx, sessionID)
}

func (s *ScheduleService) ListSessions(ctx context.Context, filter repository.SessionListFilter) ([]models.TrainingSession, error) {
	return s.sessionRepo.List(ctx, filter)
}

func (s *ScheduleService) UpdateSession(ctx context.Context, sessionID string, input SessionInput) (*models.TrainingSession, error) {
	input, err := s.normalizeSessionInput(ctx, input)
	if err != nil {
		return nil, err
	}

	current, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	slotChanged := current.Date != input.Date || current.StartTime != input.StartTime || current.Location != input.Location
	if slotChanged {
		taken, err := s.sessionRepo.ExistsAt(ctx, input.Date, input.StartTime, input.Location)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrConflict
		}
	}

	updated, err := s.sessionRepo.Update(ctx, sessionID, repository.UpdateSessionInput{
		Date:           input.Date,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		Location:       input.Location,
		Type:           input.Type,
		Price:          input.Price,
		ParticipantIDs: input.ParticipantIDs,
		MaxCapacity:    input.MaxCapacity,
		Notes:          input.Notes,
	})
	if err != nil {
		return nil, err
	}
	s.notify("session")
	return updated, nil
}

func (s *ScheduleService) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.notify("session")
	return nil
}

// RepeatSeries expands an existing session into weekly instances. Month mode
// fills the rest of the session's calendar month; term mode runs through the
// named term's end date inclusive. Slots already occupied by any session are
// skipped, never doubled. The whole expansion commits atomically.
func (s *ScheduleService) RepeatSeries(ctx context.Context, sessionID string, mode schedule.RepeatMode, termID string) ([]models.TrainingSession, error) {
	template, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var term *models.Term
	if mode == schedule.RepeatTerm {
		termID = trimmed(termID)
		if termID == "" {
			return nil, ErrInvalidInput
		}
		term, err = s.termRepo.GetByID(ctx, termID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrTermNotFound
			}
			return nil, err
		}
	}

	instances := schedule.GenerateRecurringSeries(*template, mode, term, uuid.NewString)
	if len(instances) == 0 {
		return nil, ErrInvalidInput
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewSessionRepository(tx)

	existing, err := txSessionRepo.List(ctx, repository.SessionListFilter{
		From:     template.Date,
		Location: template.Location,
	})
	if err != nil {
		return nil, err
	}
	// The template itself occupies its slot; drop it from the occupancy list
	// so the first instance (which reuses the template row) survives.
	occupied := make([]models.TrainingSession, 0, len(existing))
	for _, session := range existing {
		if session.ID != template.ID {
			occupied = append(occupied, session)
		}
	}

	instances = schedule.FilterExisting(instances, occupied)
	if len(instances) == 0 {
		return nil, ErrConflict
	}

	seriesID := *instances[0].SeriesID
	if err := txSessionRepo.SetSeriesID(ctx, template.ID, seriesID); err != nil {
		return nil, err
	}

	created := make([]models.TrainingSession, 0, len(instances))
	for _, instance := range instances {
		if instance.ID == template.ID {
			refreshed, err := txSessionRepo.GetByID(ctx, template.ID)
			if err != nil {
				return nil, err
			}
			created = append(created, *refreshed)
			continue
		}
		row, err := txSessionRepo.Create(ctx, repository.CreateSessionInput{
			ID:             instance.ID,
			Date:           instance.Date,
			StartTime:      instance.StartTime,
			EndTime:        instance.EndTime,
			Location:       instance.Location,
			Type:           instance.Type,
			Price:          instance.Price,
			ParticipantIDs: instance.ParticipantIDs,
			MaxCapacity:    instance.MaxCapacity,
			SeriesID:       instance.SeriesID,
			Notes:          instance.Notes,
		})
		if err != nil {
			return nil, err
		}
		created = append(created, *row)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	s.notify("session")
	return created, nil
}

type DayEventInput struct {
	Date string
	Type string
	Note *string
}

func (s *ScheduleService) CreateDayEvent(ctx context.Context, input DayEventInput) (*models.DayEvent, error) {
	input.Date = trimmed(input.Date)
	input.Type = trimmed(input.Type)
	if !validDay(input.Date) {
		return nil, ErrInvalidInput
	}
	switch input.Type {
	case models.DayEventRain, models.DayEventCoachCancelled, models.DayEventTournament, models.DayEventHoliday:
	default:
		return nil, ErrInvalidInput
	}

	event, err := s.dayEventRepo.Create(ctx, repository.CreateDayEventInput{
		ID:   uuid.NewString(),
		Date: input.Date,
		Type: input.Type,
		Note: trimmedPtr(input.Note),
	})
	if err != nil {
		return nil, err
	}
	s.notify("day_event")
	return event, nil
}

func (s *ScheduleService) ListDayEvents(ctx context.Context, from, to string) ([]models.DayEvent, error) {
	if from != "" && !validDay(from) {
		return nil, ErrInvalidInput
	}
	if to != "" && !validDay(to) {
		return nil, ErrInvalidInput
	}
	return s.dayEventRepo.List(ctx, from, to)
}

func (s *ScheduleService) DeleteDayEvent(ctx context.Context, eventID string) error {
	if err := s.dayEventRepo.Delete(ctx, eventID); err != nil {
		return err
	}
	s.notify("day_event")
	return nil
}

type TermInput struct {
	Name      string
	StartDate string
	EndDate   string
}

func normalizeTermInput(input TermInput) (TermInput, error) {
	input.Name = trimmed(input.Name)
	input.StartDate = trimmed(input.StartDate)
	input.EndDate = trimmed(input.EndDate)
	if input.Name == "" || !validDay(input.StartDate) || !validDay(input.EndDate) {
		return input, ErrInvalidInput
	}
	if input.EndDate < input.StartDate {
		return input, ErrInvalidInput
	}
	return input, nil
}

func (s *ScheduleService) CreateTerm(ctx context.Context, input TermInput) (*models.Term, error) {
	input, err := normalizeTermInput(input)
	if err != nil {
		return nil, err
	}
	return s.termRepo.Create(ctx, repository.CreateTermInput{
		ID:        uuid.NewString(),
		Name:      input.Name,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
}

func (s *ScheduleService) ListTerms(ctx context.Context) ([]models.Term, error) {
	return s.termRepo.List(ctx)
}

func (s *ScheduleService) UpdateTerm(ctx context.Context, termID string, input TermInput) (*models.Term, error) {
	input, err := normalizeTermInput(input)
	if err != nil {
		return nil, err
	}
	return s.termRepo.Update(ctx, termID, repository.CreateTermInput{
		Name:      input.Name,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
}

func (s *ScheduleService) DeleteTerm(ctx context.Context, termID string) error {
	return s.termRepo.Delete(ctx, termID)
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = trimmed(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
