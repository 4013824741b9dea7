package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
)

type CreateSessionInput struct {
	ID             string
	Date           string
	StartTime      string
	EndTime        string
	Location       string
	Type           string
	Price          float64
	ParticipantIDs []string
	MaxCapacity    int
	SeriesID       *string
	Notes          *string
}

type UpdateSessionInput struct {
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

type SessionListFilter struct {
	From     string // YYYY-MM-DD, inclusive; empty for no bound
	To       string // YYYY-MM-DD, inclusive; empty for no bound
	Location string
	SeriesID string
}

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, to_char(session_date, 'YYYY-MM-DD'), to_char(start_time, 'HH24:MI'),
	to_char(end_time, 'HH24:MI'), location, session_type, price, participant_ids, max_capacity,
	series_id, notes, created_at, updated_at`

func scanSession(row interface{ Scan(...any) error }) (*models.TrainingSession, error) {
	var session models.TrainingSession
	err := row.Scan(
		&session.ID,
		&session.Date,
		&session.StartTime,
		&session.EndTime,
		&session.Location,
		&session.Type,
		&session.Price,
		&session.ParticipantIDs,
		&session.MaxCapacity,
		&session.SeriesID,
		&session.Notes,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Create(ctx context.Context, input CreateSessionInput) (*models.TrainingSession, error) {
	query := fmt.Sprintf(`
		INSERT INTO sessions (id, session_date, start_time, end_time, location, session_type,
			price, participant_ids, max_capacity, series_id, notes)
		VALUES ($1, $2::date, $3::time, $4::time, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s
	`, sessionColumns)
	return scanSession(r.db.QueryRow(ctx, query,
		input.ID, input.Date, input.StartTime, input.EndTime, input.Location, input.Type,
		input.Price, input.ParticipantIDs, input.MaxCapacity, input.SeriesID, input.Notes))
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*models.TrainingSession, error) {
	query := fmt.Sprintf(`SELECT %s FROM sessions WHERE id = $1`, sessionColumns)
	return scanSession(r.db.QueryRow(ctx, query, sessionID))
}

func (r *SessionRepository) List(ctx context.Context, filter SessionListFilter) ([]models.TrainingSession, error) {
	args := []any{}
	whereParts := []string{"TRUE"}
	if from := strings.TrimSpace(filter.From); from != "" {
		args = append(args, from)
		whereParts = append(whereParts, fmt.Sprintf("session_date >= $%d::date", len(args)))
	}
	if to := strings.TrimSpace(filter.To); to != "" {
		args = append(args, to)
		whereParts = append(whereParts, fmt.Sprintf("session_date <= $%d::date", len(args)))
	}
	if location := strings.TrimSpace(filter.Location); location != "" {
		args = append(args, location)
		whereParts = append(whereParts, fmt.Sprintf("location = $%d", len(args)))
	}
	if seriesID := strings.TrimSpace(filter.SeriesID); seriesID != "" {
		args = append(args, seriesID)
		whereParts = append(whereParts, fmt.Sprintf("series_id = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s FROM sessions
		WHERE %s
		ORDER BY session_date ASC, start_time ASC, id ASC
	`, sessionColumns, strings.Join(whereParts, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.TrainingSession, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SessionRepository) ListAll(ctx context.Context) ([]models.TrainingSession, error) {
	return r.List(ctx, SessionListFilter{})
}

// ExistsAt reports whether a session already occupies the slot. This is the
// duplicate-booking guard for repeat expansion.
func (r *SessionRepository) ExistsAt(ctx context.Context, date, startTime, location string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM sessions
			WHERE session_date = $1::date
			  AND start_time = $2::time
			  AND location = $3
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, date, startTime, location).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *SessionRepository) Update(ctx context.Context, sessionID string, input UpdateSessionInput) (*models.TrainingSession, error) {
	query := fmt.Sprintf(`
		UPDATE sessions
		SET session_date = $2::date, start_time = $3::time, end_time = $4::time, location = $5,
			session_type = $6, price = $7, participant_ids = $8, max_capacity = $9, notes = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, sessionColumns)
	return scanSession(r.db.QueryRow(ctx, query,
		sessionID, input.Date, input.StartTime, input.EndTime, input.Location, input.Type,
		input.Price, input.ParticipantIDs, input.MaxCapacity, input.Notes))
}

func (r *SessionRepository) SetSeriesID(ctx context.Context, sessionID string, seriesID string) error {
	tag, err := r.db.Exec(ctx, `UPDATE sessions SET series_id = $2, updated_at = NOW() WHERE id = $1`, sessionID, seriesID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *SessionRepository) ReplaceAll(ctx context.Context, sessions []models.TrainingSession) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM sessions`); err != nil {
		return err
	}
	for _, session := range sessions {
		_, err := r.db.Exec(ctx, `
			INSERT INTO sessions (id, session_date, start_time, end_time, location, session_type,
				price, participant_ids, max_capacity, series_id, notes, created_at, updated_at)
			VALUES ($1, $2::date, $3::time, $4::time, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`, session.ID, session.Date, session.StartTime, session.EndTime, session.Location, session.Type,
			session.Price, session.ParticipantIDs, session.MaxCapacity, session.SeriesID, session.Notes,
			session.CreatedAt, session.UpdatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}
