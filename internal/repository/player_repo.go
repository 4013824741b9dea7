package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
)

type CreatePlayerInput struct {
	ID        string
	Name      string
	ClientID  *string
	BirthYear *int
	Level     *string
	Notes     *string
}

type UpdatePlayerInput struct {
	Name      string
	ClientID  *string
	BirthYear *int
	Level     *string
	Notes     *string
}

type PlayerListFilter struct {
	ClientID string
	Page     int
	Limit    int
}

type PlayerRepository struct {
	db DBTX
}

func NewPlayerRepository(db DBTX) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerColumns = `id, name, client_id, birth_year, level, notes, created_at, updated_at`

func scanPlayer(row interface{ Scan(...any) error }) (*models.Player, error) {
	var player models.Player
	err := row.Scan(
		&player.ID,
		&player.Name,
		&player.ClientID,
		&player.BirthYear,
		&player.Level,
		&player.Notes,
		&player.CreatedAt,
		&player.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *PlayerRepository) Create(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	query := fmt.Sprintf(`
		INSERT INTO players (id, name, client_id, birth_year, level, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`, playerColumns)
	return scanPlayer(r.db.QueryRow(ctx, query,
		input.ID, input.Name, input.ClientID, input.BirthYear, input.Level, input.Notes))
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (*models.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players WHERE id = $1`, playerColumns)
	return scanPlayer(r.db.QueryRow(ctx, query, playerID))
}

func (r *PlayerRepository) List(ctx context.Context, filter PlayerListFilter) ([]models.Player, int, error) {
	args := []any{}
	whereParts := []string{"TRUE"}
	if clientID := strings.TrimSpace(filter.ClientID); clientID != "" {
		args = append(args, clientID)
		whereParts = append(whereParts, fmt.Sprintf("client_id = $%d", len(args)))
	}
	where := strings.Join(whereParts, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM players WHERE %s`, where), args...).Scan(&total); err != nil {
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
		SELECT %s FROM players
		WHERE %s
		ORDER BY name ASC, id ASC
		LIMIT $%d OFFSET $%d
	`, playerColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, 0, err
		}
		players = append(players, *player)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return players, total, nil
}

func (r *PlayerRepository) ListAll(ctx context.Context) ([]models.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players ORDER BY name ASC, id ASC`, playerColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *player)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

// ExistingIDs filters ids down to the ones present on the roster. Used to
// validate session participant lists at the store boundary.
func (r *PlayerRepository) ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	rows, err := r.db.Query(ctx, `SELECT id FROM players WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *PlayerRepository) Update(ctx context.Context, playerID string, input UpdatePlayerInput) (*models.Player, error) {
	query := fmt.Sprintf(`
		UPDATE players
		SET name = $2, client_id = $3, birth_year = $4, level = $5, notes = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, playerColumns)
	return scanPlayer(r.db.QueryRow(ctx, query,
		playerID, input.Name, input.ClientID, input.BirthYear, input.Level, input.Notes))
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM players WHERE id = $1`, playerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PlayerRepository) ReplaceAll(ctx context.Context, players []models.Player) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM players`); err != nil {
		return err
	}
	for _, player := range players {
		_, err := r.db.Exec(ctx, `
			INSERT INTO players (id, name, client_id, birth_year, level, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, player.ID, player.Name, player.ClientID, player.BirthYear, player.Level, player.Notes, player.CreatedAt, player.UpdatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}
