package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
)

type CreateDrillInput struct {
	ID          string
	Title       string
	Category    *string
	Description *string
	Diagram     []byte
}

type UpdateDrillInput struct {
	Title       string
	Category    *string
	Description *string
	Diagram     []byte
}

type DrillRepository struct {
	db DBTX
}

func NewDrillRepository(db DBTX) *DrillRepository {
	return &DrillRepository{db: db}
}

const drillColumns = `id, title, category, description, diagram, created_at, updated_at`

func scanDrill(row interface{ Scan(...any) error }) (*models.Drill, error) {
	var drill models.Drill
	err := row.Scan(
		&drill.ID,
		&drill.Title,
		&drill.Category,
		&drill.Description,
		&drill.Diagram,
		&drill.CreatedAt,
		&drill.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &drill, nil
}

func (r *DrillRepository) Create(ctx context.Context, input CreateDrillInput) (*models.Drill, error) {
	query := fmt.Sprintf(`
		INSERT INTO drills (id, title, category, description, diagram)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`, drillColumns)
	return scanDrill(r.db.QueryRow(ctx, query,
		input.ID, input.Title, input.Category, input.Description, input.Diagram))
}

func (r *DrillRepository) GetByID(ctx context.Context, drillID string) (*models.Drill, error) {
	query := fmt.Sprintf(`SELECT %s FROM drills WHERE id = $1`, drillColumns)
	return scanDrill(r.db.QueryRow(ctx, query, drillID))
}

func (r *DrillRepository) List(ctx context.Context, category string) ([]models.Drill, error) {
	args := []any{}
	whereParts := []string{"TRUE"}
	if category = strings.TrimSpace(category); category != "" {
		args = append(args, category)
		whereParts = append(whereParts, fmt.Sprintf("category = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s FROM drills
		WHERE %s
		ORDER BY title ASC, id ASC
	`, drillColumns, strings.Join(whereParts, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drills := make([]models.Drill, 0)
	for rows.Next() {
		drill, err := scanDrill(rows)
		if err != nil {
			return nil, err
		}
		drills = append(drills, *drill)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return drills, nil
}

func (r *DrillRepository) ListAll(ctx context.Context) ([]models.Drill, error) {
	return r.List(ctx, "")
}

func (r *DrillRepository) Update(ctx context.Context, drillID string, input UpdateDrillInput) (*models.Drill, error) {
	query := fmt.Sprintf(`
		UPDATE drills
		SET title = $2, category = $3, description = $4, diagram = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, drillColumns)
	return scanDrill(r.db.QueryRow(ctx, query,
		drillID, input.Title, input.Category, input.Description, input.Diagram))
}

func (r *DrillRepository) Delete(ctx context.Context, drillID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM drills WHERE id = $1`, drillID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *DrillRepository) ReplaceAll(ctx context.Context, drills []models.Drill) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM drills`); err != nil {
		return err
	}
	for _, drill := range drills {
		_, err := r.db.Exec(ctx, `
			INSERT INTO drills (id, title, category, description, diagram, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, drill.ID, drill.Title, drill.Category, drill.Description, []byte(drill.Diagram), drill.CreatedAt, drill.UpdatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}
