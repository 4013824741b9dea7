package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
)

type CreateSessionLogInput struct {
	ID          string
	SessionID   string
	PlayerID    string
	Date        string
	Technique   int
	Footwork    int
	Consistency int
	Attitude    int
	Matchplay   int
	Total       int
	Notes       *string
}

type SessionLogRepository struct {
	db DBTX
}

func NewSessionLogRepository(db DBTX) *SessionLogRepository {
	return &SessionLogRepository{db: db}
}

const sessionLogColumns = `id, session_id, player_id, to_char(logged_on, 'YYYY-MM-DD'),
	technique, footwork, consistency, attitude, matchplay, total, notes, created_at`

func scanSessionLog(row interface{ Scan(...any) error }) (*models.SessionLog, error) {
	var entry models.SessionLog
	err := row.Scan(
		&entry.ID,
		&entry.SessionID,
		&entry.PlayerID,
		&entry.Date,
		&entry.Technique,
		&entry.Footwork,
		&entry.Consistency,
		&entry.Attitude,
		&entry.Matchplay,
		&entry.Total,
		&entry.Notes,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *SessionLogRepository) Create(ctx context.Context, input CreateSessionLogInput) (*models.SessionLog, error) {
	query := fmt.Sprintf(`
		INSERT INTO session_logs (id, session_id, player_id, logged_on, technique, footwork,
			consistency, attitude, matchplay, total, notes)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s
	`, sessionLogColumns)
	return scanSessionLog(r.db.QueryRow(ctx, query,
		input.ID, input.SessionID, input.PlayerID, input.Date, input.Technique, input.Footwork,
		input.Consistency, input.Attitude, input.Matchplay, input.Total, input.Notes))
}

func (r *SessionLogRepository) ListByPlayerID(ctx context.Context, playerID string) ([]models.SessionLog, error) {
	args := []any{}
	whereParts := []string{"TRUE"}
	if playerID = strings.TrimSpace(playerID); playerID != "" {
		args = append(args, playerID)
		whereParts = append(whereParts, fmt.Sprintf("player_id = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s FROM session_logs
		WHERE %s
		ORDER BY logged_on ASC, created_at ASC, id ASC
	`, sessionLogColumns, strings.Join(whereParts, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.SessionLog, 0)
	for rows.Next() {
		entry, err := scanSessionLog(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *SessionLogRepository) ListAll(ctx context.Context) ([]models.SessionLog, error) {
	return r.ListByPlayerID(ctx, "")
}

func (r *SessionLogRepository) Delete(ctx context.Context, entryID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM session_logs WHERE id = $1`, entryID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *SessionLogRepository) ReplaceAll(ctx context.Context, entries []models.SessionLog) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM session_logs`); err != nil {
		return err
	}
	for _, entry := range entries {
		_, err := r.db.Exec(ctx, `
			INSERT INTO session_logs (id, session_id, player_id, logged_on, technique, footwork,
				consistency, attitude, matchplay, total, notes, created_at)
			VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10, $11, $12)
		`, entry.ID, entry.SessionID, entry.PlayerID, entry.Date, entry.Technique, entry.Footwork,
			entry.Consistency, entry.Attitude, entry.Matchplay, entry.Total, entry.Notes, entry.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}
