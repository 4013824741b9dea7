package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
)

type CreateDayEventInput struct {
	ID   string
	Date string
	Type string
	Note *string
}

type DayEventRepository struct {
	db DBTX
}

func NewDayEventRepository(db DBTX) *DayEventRepository {
	return &DayEventRepository{db: db}
}

const dayEventColumns = `id, to_char(event_date, 'YYYY-MM-DD'), event_type, note, created_at`

func scanDayEvent(row interface{ Scan(...any) error }) (*models.DayEvent, error) {
	var event models.DayEvent
	err := row.Scan(
		&event.ID,
		&event.Date,
		&event.Type,
		&event.Note,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *DayEventRepository) Create(ctx context.Context, input CreateDayEventInput) (*models.DayEvent, error) {
	query := `
		INSERT INTO day_events (id, event_date, event_type, note)
		VALUES ($1, $2::date, $3, $4)
		RETURNING ` + dayEventColumns
	return scanDayEvent(r.db.QueryRow(ctx, query, input.ID, input.Date, input.Type, input.Note))
}

// List returns day events ordered by date then creation time, so the
// billing tie-break (first event of a date governs) is stable.
func (r *DayEventRepository) List(ctx context.Context, from, to string) ([]models.DayEvent, error) {
	args := []any{}
	whereParts := []string{"TRUE"}
	if from = strings.TrimSpace(from); from != "" {
		args = append(args, from)
		whereParts = append(whereParts, fmt.Sprintf("event_date >= $%d::date", len(args)))
	}
	if to = strings.TrimSpace(to); to != "" {
		args = append(args, to)
		whereParts = append(whereParts, fmt.Sprintf("event_date <= $%d::date", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s FROM day_events
		WHERE %s
		ORDER BY event_date ASC, created_at ASC, id ASC
	`, dayEventColumns, strings.Join(whereParts, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.DayEvent, 0)
	for rows.Next() {
		event, err := scanDayEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *DayEventRepository) ListAll(ctx context.Context) ([]models.DayEvent, error) {
	return r.List(ctx, "", "")
}

func (r *DayEventRepository) Delete(ctx context.Context, eventID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM day_events WHERE id = $1`, eventID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *DayEventRepository) ReplaceAll(ctx context.Context, events []models.DayEvent) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM day_events`); err != nil {
		return err
	}
	for _, event := range events {
		_, err := r.db.Exec(ctx, `
			INSERT INTO day_events (id, event_date, event_type, note, created_at)
			VALUES ($1, $2::date, $3, $4, $5)
		`, event.ID, event.Date, event.Type, event.Note, event.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}
