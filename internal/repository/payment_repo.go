package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
)

type CreatePaymentInput struct {
	ID        string
	ClientID  string
	Date      string
	Amount    float64
	Reference *string
	Note      *string
}

type UpdatePaymentInput struct {
	Date      string
	Amount    float64
	Reference *string
	Note      *string
}

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, client_id, to_char(paid_on, 'YYYY-MM-DD'), amount, reference, note, created_at`

func scanPayment(row interface{ Scan(...any) error }) (*models.Payment, error) {
	var payment models.Payment
	err := row.Scan(
		&payment.ID,
		&payment.ClientID,
		&payment.Date,
		&payment.Amount,
		&payment.Reference,
		&payment.Note,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) Create(ctx context.Context, input CreatePaymentInput) (*models.Payment, error) {
	query := `
		INSERT INTO payments (id, client_id, paid_on, amount, reference, note)
		VALUES ($1, $2, $3::date, $4, $5, $6)
		RETURNING ` + paymentColumns
	return scanPayment(r.db.QueryRow(ctx, query,
		input.ID, input.ClientID, input.Date, input.Amount, input.Reference, input.Note))
}

func (r *PaymentRepository) GetByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.db.QueryRow(ctx, query, paymentID))
}

func (r *PaymentRepository) ListByClientID(ctx context.Context, clientID string) ([]models.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE client_id = $1
		ORDER BY paid_on ASC, created_at ASC
	`
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *payment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

// ListAll returns every payment grouped by owning client, for statement
// snapshots and sync.
func (r *PaymentRepository) ListAll(ctx context.Context) (map[string][]models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY paid_on ASC, created_at ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make(map[string][]models.Payment)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments[payment.ClientID] = append(payments[payment.ClientID], *payment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *PaymentRepository) Update(ctx context.Context, paymentID string, input UpdatePaymentInput) (*models.Payment, error) {
	query := `
		UPDATE payments
		SET paid_on = $2::date, amount = $3, reference = $4, note = $5
		WHERE id = $1
		RETURNING ` + paymentColumns
	return scanPayment(r.db.QueryRow(ctx, query,
		paymentID, input.Date, input.Amount, input.Reference, input.Note))
}

func (r *PaymentRepository) Delete(ctx context.Context, paymentID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, paymentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PaymentRepository) ReplaceAll(ctx context.Context, payments []models.Payment) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM payments`); err != nil {
		return err
	}
	for _, payment := range payments {
		_, err := r.db.Exec(ctx, `
			INSERT INTO payments (id, client_id, paid_on, amount, reference, note, created_at)
			VALUES ($1, $2, $3::date, $4, $5, $6, $7)
		`, payment.ID, payment.ClientID, payment.Date, payment.Amount, payment.Reference, payment.Note, payment.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}
