package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/HaeserTec/tennis-manager-sub002/internal/analytics"
	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
	"github.com/HaeserTec/tennis-manager-sub002/internal/repository"
)

// ProgressService records per-session player evaluations and serves the
// derived progress and attendance views.
type ProgressService struct {
	playerRepo     *repository.PlayerRepository
	sessionRepo    *repository.SessionRepository
	sessionLogRepo *repository.SessionLogRepository
	dayEventRepo   *repository.DayEventRepository
}

func NewProgressService(
	playerRepo *repository.PlayerRepository,
	sessionRepo *repository.SessionRepository,
	sessionLogRepo *repository.SessionLogRepository,
	dayEventRepo *repository.DayEventRepository,
) *ProgressService {
	return &ProgressService{
		playerRepo:     playerRepo,
		sessionRepo:    sessionRepo,
		sessionLogRepo: sessionLogRepo,
		dayEventRepo:   dayEventRepo,
	}
}

type SessionLogInput struct {
	SessionID   string
	PlayerID    string
	Technique   int
	Footwork    int
	Consistency int
	Attitude    int
	Matchplay   int
	Notes       *string
}

// RecordSessionLog scores one player in one session. Every metric must be
// 0, 1 or 2; the stored total is the sum, giving the 0-10 scale the progress
// charts run on. The log inherits its date from the session.
func (s *ProgressService) RecordSessionLog(ctx context.Context, input SessionLogInput) (*models.SessionLog, error) {
	input.SessionID = trimmed(input.SessionID)
	input.PlayerID = trimmed(input.PlayerID)
	if input.SessionID == "" || input.PlayerID == "" {
		return nil, ErrInvalidInput
	}
	for _, score := range []int{input.Technique, input.Footwork, input.Consistency, input.Attitude, input.Matchplay} {
		if score < 0 || score > 2 {
			return nil, ErrInvalidInput
		}
	}

	session, err := s.sessionRepo.GetByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.playerRepo.GetByID(ctx, input.PlayerID); err != nil {
		return nil, err
	}

	total := input.Technique + input.Footwork + input.Consistency + input.Attitude + input.Matchplay
	return s.sessionLogRepo.Create(ctx, repository.CreateSessionLogInput{
		ID:          uuid.NewString(),
		SessionID:   session.ID,
		PlayerID:    input.PlayerID,
		Date:        session.Date,
		Technique:   input.Technique,
		Footwork:    input.Footwork,
		Consistency: input.Consistency,
		Attitude:    input.Attitude,
		Matchplay:   input.Matchplay,
		Total:       total,
		Notes:       trimmedPtr(input.Notes),
	})
}

func (s *ProgressService) ListSessionLogs(ctx context.Context, playerID string) ([]models.SessionLog, error) {
	return s.sessionLogRepo.ListByPlayerID(ctx, playerID)
}

func (s *ProgressService) DeleteSessionLog(ctx context.Context, entryID string) error {
	return s.sessionLogRepo.Delete(ctx, entryID)
}

func (s *ProgressService) PlayerProgress(ctx context.Context, playerID string) (*analytics.ProgressTrend, error) {
	if _, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return nil, err
	}
	logs, err := s.sessionLogRepo.ListByPlayerID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	trend := analytics.ProgressTrendForPlayer(logs)
	return &trend, nil
}

type AttendanceSummary struct {
	PlayerID      string `json:"player_id"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
}

// PlayerAttendance reports weekly attendance streaks as of today. Weeks
// start on Monday; sessions wiped out by rain or a coach cancellation do not
// count as attended.
func (s *ProgressService) PlayerAttendance(ctx context.Context, playerID string, today string) (*AttendanceSummary, error) {
	today = trimmed(today)
	if !validDay(today) {
		return nil, ErrInvalidInput
	}
	if _, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	events, err := s.dayEventRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	current, longest := analytics.AttendanceStreak(playerID, sessions, events, today)
	return &AttendanceSummary{PlayerID: playerID, CurrentStreak: current, LongestStreak: longest}, nil
}
