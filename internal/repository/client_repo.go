package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
)

type CreateClientInput struct {
	ID     string
	Name   string
	Email  *string
	Phone  *string
	Status string
	Notes  *string
}

type UpdateClientInput struct {
	Name   string
	Email  *string
	Phone  *string
	Status string
	Notes  *string
}

type ClientListFilter struct {
	Status string
	Page   int
	Limit  int
}

type ClientRepository struct {
	db DBTX
}

func NewClientRepository(db DBTX) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientColumns = `id, name, email, phone, status, notes, created_at, updated_at`

func scanClient(row interface{ Scan(...any) error }) (*models.Client, error) {
	var client models.Client
	err := row.Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.Status,
		&client.Notes,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) Create(ctx context.Context, input CreateClientInput) (*models.Client, error) {
	query := fmt.Sprintf(`
		INSERT INTO clients (id, name, email, phone, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`, clientColumns)
	return scanClient(r.db.QueryRow(ctx, query,
		input.ID, input.Name, input.Email, input.Phone, input.Status, input.Notes))
}

func (r *ClientRepository) GetByID(ctx context.Context, clientID string) (*models.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE id = $1`, clientColumns)
	return scanClient(r.db.QueryRow(ctx, query, clientID))
}

func (r *ClientRepository) List(ctx context.Context, filter ClientListFilter) ([]models.Client, int, error) {
	args := []any{}
	whereParts := []string{"TRUE"}
	if status := strings.TrimSpace(filter.Status); status != "" {
		args = append(args, status)
		whereParts = append(whereParts, fmt.Sprintf("status = $%d", len(args)))
	}
	where := strings.Join(whereParts, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM clients WHERE %s`, where)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	query := fmt.Sprintf(`
		SELECT %s FROM clients
		WHERE %s
		ORDER BY name ASC, id ASC
		LIMIT $%d OFFSET $%d
	`, clientColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	clients := make([]models.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, 0, err
		}
		clients = append(clients, *client)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (r *ClientRepository) ListAll(ctx context.Context) ([]models.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients ORDER BY name ASC, id ASC`, clientColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]models.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *client)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepository) Update(ctx context.Context, clientID string, input UpdateClientInput) (*models.Client, error) {
	query := fmt.Sprintf(`
		UPDATE clients
		SET name = $2, email = $3, phone = $4, status = $5, notes = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, clientColumns)
	return scanClient(r.db.QueryRow(ctx, query,
		clientID, input.Name, input.Email, input.Phone, input.Status, input.Notes))
}

// Delete removes the client, its payment ledger (cascade) and unlinks its
// players (set null), mirroring the foreign keys in the schema.
func (r *ClientRepository) Delete(ctx context.Context, clientID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, clientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ClientRepository) ReplaceAll(ctx context.Context, clients []models.Client) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM clients`); err != nil {
		return err
	}
	for _, client := range clients {
		_, err := r.db.Exec(ctx, `
			INSERT INTO clients (id, name, email, phone, status, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, client.ID, client.Name, client.Email, client.Phone, client.Status, client.Notes, client.CreatedAt, client.UpdatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}
