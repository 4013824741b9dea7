package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
)

type CreateTermInput struct {
	ID        string
	Name      string
	StartDate string
	EndDate   string
}

type TermRepository struct {
	db DBTX
}

func NewTermRepository(db DBTX) *TermRepository {
	return &TermRepository{db: db}
}

const termColumns = `id, name, to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'), created_at`

func scanTerm(row interface{ Scan(...any) error }) (*models.Term, error) {
	var term models.Term
	err := row.Scan(
		&term.ID,
		&term.Name,
		&term.StartDate,
		&term.EndDate,
		&term.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &term, nil
}

func (r *TermRepository) Create(ctx context.Context, input CreateTermInput) (*models.Term, error) {
	query := `
		INSERT INTO terms (id, name, start_date, end_date)
		VALUES ($1, $2, $3::date, $4::date)
		RETURNING ` + termColumns
	return scanTerm(r.db.QueryRow(ctx, query, input.ID, input.Name, input.StartDate, input.EndDate))
}

func (r *TermRepository) GetByID(ctx context.Context, termID string) (*models.Term, error) {
	query := `SELECT ` + termColumns + ` FROM terms WHERE id = $1`
	return scanTerm(r.db.QueryRow(ctx, query, termID))
}

func (r *TermRepository) List(ctx context.Context) ([]models.Term, error) {
	query := `SELECT ` + termColumns + ` FROM terms ORDER BY start_date ASC, id ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	terms := make([]models.Term, 0)
	for rows.Next() {
		term, err := scanTerm(rows)
		if err != nil {
			return nil, err
		}
		terms = append(terms, *term)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return terms, nil
}

func (r *TermRepository) Update(ctx context.Context, termID string, input CreateTermInput) (*models.Term, error) {
	query := `
		UPDATE terms
		SET name = $2, start_date = $3::date, end_date = $4::date
		WHERE id = $1
		RETURNING ` + termColumns
	return scanTerm(r.db.QueryRow(ctx, query, termID, input.Name, input.StartDate, input.EndDate))
}

func (r *TermRepository) Delete(ctx context.Context, termID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM terms WHERE id = $1`, termID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *TermRepository) ReplaceAll(ctx context.Context, terms []models.Term) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM terms`); err != nil {
		return err
	}
	for _, term := range terms {
		_, err := r.db.Exec(ctx, `
			INSERT INTO terms (id, name, start_date, end_date, created_at)
			VALUES ($1, $2, $3::date, $4::date, $5)
		`, term.ID, term.Name, term.StartDate, term.EndDate, term.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}
