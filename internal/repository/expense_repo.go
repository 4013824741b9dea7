package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
)

type CreateExpenseInput struct {
	ID       string
	Date     string
	Amount   float64
	Category string
	Note     *string
}

type ExpenseRepository struct {
	db DBTX
}

func NewExpenseRepository(db DBTX) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const expenseColumns = `id, to_char(spent_on, 'YYYY-MM-DD'), amount, category, note, created_at`

func scanExpense(row interface{ Scan(...any) error }) (*models.Expense, error) {
	var expense models.Expense
	err := row.Scan(
		&expense.ID,
		&expense.Date,
		&expense.Amount,
		&expense.Category,
		&expense.Note,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *ExpenseRepository) Create(ctx context.Context, input CreateExpenseInput) (*models.Expense, error) {
	query := `
		INSERT INTO expenses (id, spent_on, amount, category, note)
		VALUES ($1, $2::date, $3, $4, $5)
		RETURNING ` + expenseColumns
	return scanExpense(r.db.QueryRow(ctx, query, input.ID, input.Date, input.Amount, input.Category, input.Note))
}

func (r *ExpenseRepository) List(ctx context.Context, from, to string) ([]models.Expense, error) {
	args := []any{}
	whereParts := []string{"TRUE"}
	if from = strings.TrimSpace(from); from != "" {
		args = append(args, from)
		whereParts = append(whereParts, fmt.Sprintf("spent_on >= $%d::date", len(args)))
	}
	if to = strings.TrimSpace(to); to != "" {
		args = append(args, to)
		whereParts = append(whereParts, fmt.Sprintf("spent_on <= $%d::date", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s FROM expenses
		WHERE %s
		ORDER BY spent_on ASC, created_at ASC, id ASC
	`, expenseColumns, strings.Join(whereParts, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *ExpenseRepository) ListAll(ctx context.Context) ([]models.Expense, error) {
	return r.List(ctx, "", "")
}

func (r *ExpenseRepository) Delete(ctx context.Context, expenseID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, expenseID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ExpenseRepository) ReplaceAll(ctx context.Context, expenses []models.Expense) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM expenses`); err != nil {
		return err
	}
	for _, expense := range expenses {
		_, err := r.db.Exec(ctx, `
			INSERT INTO expenses (id, spent_on, amount, category, note, created_at)
			VALUES ($1, $2::date, $3, $4, $5, $6)
		`, expense.ID, expense.Date, expense.Amount, expense.Category, expense.Note, expense.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}
