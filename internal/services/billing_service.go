package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/HaeserTec/tennis-manager-sub002/internal/analytics"
	"github.com/HaeserTec/tennis-manager-sub002/internal/billing"
	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
	"github.com/HaeserTec/tennis-manager-sub002/internal/repository"
)

// BillingService owns the payment ledger, monthly statements and the revenue
// report. Statements and reports are always derived from full-history
// snapshots; nothing billing-related is ever stored per month.
type BillingService struct {
	clientRepo   *repository.ClientRepository
	playerRepo   *repository.PlayerRepository
	sessionRepo  *repository.SessionRepository
	paymentRepo  *repository.PaymentRepository
	dayEventRepo *repository.DayEventRepository
	expenseRepo  *repository.ExpenseRepository
}

func NewBillingService(
	clientRepo *repository.ClientRepository,
	playerRepo *repository.PlayerRepository,
	sessionRepo *repository.SessionRepository,
	paymentRepo *repository.PaymentRepository,
	dayEventRepo *repository.DayEventRepository,
	expenseRepo *repository.ExpenseRepository,
) *BillingService {
	return &BillingService{
		clientRepo:   clientRepo,
		playerRepo:   playerRepo,
		sessionRepo:  sessionRepo,
		paymentRepo:  paymentRepo,
		dayEventRepo: dayEventRepo,
		expenseRepo:  expenseRepo,
	}
}

type PaymentInput struct {
	ClientID  string
	Date      string
	Amount    float64
	Reference *string
	Note      *string
}

func (s *BillingService) RecordPayment(ctx context.Context, input PaymentInput) (*models.Payment, error) {
	input.ClientID = trimmed(input.ClientID)
	input.Date = trimmed(input.Date)
	if input.ClientID == "" || !validDay(input.Date) || input.Amount <= 0 {
		return nil, ErrInvalidInput
	}
	if _, err := s.clientRepo.GetByID(ctx, input.ClientID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return s.paymentRepo.Create(ctx, repository.CreatePaymentInput{
		ID:        uuid.NewString(),
		ClientID:  input.ClientID,
		Date:      input.Date,
		Amount:    input.Amount,
		Reference: trimmedPtr(input.Reference),
		Note:      trimmedPtr(input.Note),
	})
}

func (s *BillingService) ListPayments(ctx context.Context, clientID string) ([]models.Payment, error) {
	return s.paymentRepo.ListByClientID(ctx, clientID)
}

func (s *BillingService) UpdatePayment(ctx context.Context, paymentID string, input PaymentInput) (*models.Payment, error) {
	input.Date = trimmed(input.Date)
	if !validDay(input.Date) || input.Amount <= 0 {
		return nil, ErrInvalidInput
	}
	return s.paymentRepo.Update(ctx, paymentID, repository.UpdatePaymentInput{
		Date:      input.Date,
		Amount:    input.Amount,
		Reference: trimmedPtr(input.Reference),
		Note:      trimmedPtr(input.Note),
	})
}

func (s *BillingService) DeletePayment(ctx context.Context, paymentID string) error {
	return s.paymentRepo.Delete(ctx, paymentID)
}

// ClientStatement assembles the monthly statement for one client. The
// snapshots passed to the calculator span the client's entire history so the
// opening balance never loses months.
func (s *BillingService) ClientStatement(ctx context.Context, clientID string, month string) (*billing.Statement, error) {
	if !validMonth(trimmed(month)) {
		return nil, ErrInvalidInput
	}

	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	client.Payments = payments

	players, err := s.playerRepo.ListAll(ctx)
	if err != nil {
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

	statement := billing.ComputeClientStatement(*client, players, sessions, events, trimmed(month))
	return &statement, nil
}

// RevenueReport aggregates billed fees, collected payments and expenses per
// month over the inclusive from..to range (YYYY-MM).
func (s *BillingService) RevenueReport(ctx context.Context, from, to string) ([]analytics.MonthlyRevenue, error) {
	from = trimmed(from)
	to = trimmed(to)
	if !validMonth(from) || !validMonth(to) || to < from {
		return nil, ErrInvalidInput
	}

	clients, err := s.clientRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	paymentsByClient, err := s.paymentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		clients[i].Payments = paymentsByClient[clients[i].ID]
	}

	players, err := s.playerRepo.ListAll(ctx)
	if err != nil {
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
	expenses, err := s.expenseRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return analytics.RevenueByMonth(clients, players, sessions, events, expenses, from, to), nil
}

type ExpenseInput struct {
	Date     string
	Category string
	Amount   float64
	Note     *string
}

func (s *BillingService) RecordExpense(ctx context.Context, input ExpenseInput) (*models.Expense, error) {
	input.Date = trimmed(input.Date)
	input.Category = trimmed(input.Category)
	if !validDay(input.Date) || input.Category == "" || input.Amount <= 0 {
		return nil, ErrInvalidInput
	}
	return s.expenseRepo.Create(ctx, repository.CreateExpenseInput{
		ID:       uuid.NewString(),
		Date:     input.Date,
		Amount:   input.Amount,
		Category: input.Category,
		Note:     trimmedPtr(input.Note),
	})
}

func (s *BillingService) ListExpenses(ctx context.Context, from, to string) ([]models.Expense, error) {
	if from != "" && !validDay(from) {
		return nil, ErrInvalidInput
	}
	if to != "" && !validDay(to) {
		return nil, ErrInvalidInput
	}
	return s.expenseRepo.List(ctx, from, to)
}

func (s *BillingService) DeleteExpense(ctx context.Context, expenseID string) error {
	return s.expenseRepo.Delete(ctx, expenseID)
}
