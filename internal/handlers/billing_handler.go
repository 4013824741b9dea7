package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/HaeserTec/tennis-manager-sub002/internal/analytics"
	"github.com/HaeserTec/tennis-manager-sub002/internal/billing"
	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
	"github.com/HaeserTec/tennis-manager-sub002/internal/services"
)

type billingApplicationService interface {
	RecordPayment(ctx context.Context, input services.PaymentInput) (*models.Payment, error)
	ListPayments(ctx context.Context, clientID string) ([]models.Payment, error)
	UpdatePayment(ctx context.Context, paymentID string, input services.PaymentInput) (*models.Payment, error)
	DeletePayment(ctx context.Context, paymentID string) error
	ClientStatement(ctx context.Context, clientID string, month string) (*billing.Statement, error)
	RevenueReport(ctx context.Context, from, to string) ([]analytics.MonthlyRevenue, error)
	RecordExpense(ctx context.Context, input services.ExpenseInput) (*models.Expense, error)
	ListExpenses(ctx context.Context, from, to string) ([]models.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string) error
}

type BillingHandler struct {
	service billingApplicationService
}

func NewBillingHandler(service *services.BillingService) *BillingHandler {
	return &BillingHandler{service: service}
}

type paymentRequest struct {
	ClientID  string  `json:"client_id"`
	Date      string  `json:"date"`
	Amount    float64 `json:"amount"`
	Reference *string `json:"reference"`
	Note      *string `json:"note"`
}

type expenseRequest struct {
	Date     string  `json:"date"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Note     *string `json:"note"`
}

func (h *BillingHandler) RecordPayment(c *fiber.Ctx) error {
	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	payment, err := h.service.RecordPayment(c.Context(), services.PaymentInput{
		ClientID:  req.ClientID,
		Date:      req.Date,
		Amount:    req.Amount,
		Reference: req.Reference,
		Note:      req.Note,
	})
	if err != nil {
		return mapBillingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"payment": payment})
}

func (h *BillingHandler) ListPayments(c *fiber.Ctx) error {
	clientID := strings.TrimSpace(c.Query("client_id"))
	if clientID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "client_id is required"})
	}

	payments, err := h.service.ListPayments(c.Context(), clientID)
	if err != nil {
		return mapBillingError(c, err)
	}
	return c.JSON(fiber.Map{"payments": payments})
}

func (h *BillingHandler) UpdatePayment(c *fiber.Ctx) error {
	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	payment, err := h.service.UpdatePayment(c.Context(), c.Params("id"), services.PaymentInput{
		Date:      req.Date,
		Amount:    req.Amount,
		Reference: req.Reference,
		Note:      req.Note,
	})
	if err != nil {
		return mapBillingError(c, err)
	}
	return c.JSON(fiber.Map{"payment": payment})
}

func (h *BillingHandler) DeletePayment(c *fiber.Ctx) error {
	if err := h.service.DeletePayment(c.Context(), c.Params("id")); err != nil {
		return mapBillingError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetStatement returns the monthly account statement for one client.
// The month comes from the ?month=YYYY-MM query parameter.
func (h *BillingHandler) GetStatement(c *fiber.Ctx) error {
	month := strings.TrimSpace(c.Query("month"))
	if month == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month is required"})
	}

	statement, err := h.service.ClientStatement(c.Context(), c.Params("id"), month)
	if err != nil {
		return mapBillingError(c, err)
	}
	return c.JSON(fiber.Map{"statement": statement})
}

func (h *BillingHandler) GetRevenueReport(c *fiber.Ctx) error {
	report, err := h.service.RevenueReport(c.Context(),
		strings.TrimSpace(c.Query("from")), strings.TrimSpace(c.Query("to")))
	if err != nil {
		return mapBillingError(c, err)
	}
	return c.JSON(fiber.Map{"revenue": report})
}

func (h *BillingHandler) RecordExpense(c *fiber.Ctx) error {
	var req expenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	expense, err := h.service.RecordExpense(c.Context(), services.ExpenseInput{
		Date:     req.Date,
		Category: req.Category,
		Amount:   req.Amount,
		Note:     req.Note,
	})
	if err != nil {
		return mapBillingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"expense": expense})
}

func (h *BillingHandler) ListExpenses(c *fiber.Ctx) error {
	expenses, err := h.service.ListExpenses(c.Context(),
		strings.TrimSpace(c.Query("from")), strings.TrimSpace(c.Query("to")))
	if err != nil {
		return mapBillingError(c, err)
	}
	return c.JSON(fiber.Map{"expenses": expenses})
}

func (h *BillingHandler) DeleteExpense(c *fiber.Ctx) error {
	if err := h.service.DeleteExpense(c.Context(), c.Params("id")); err != nil {
		return mapBillingError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func mapBillingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrClientNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process billing request"})
	}
}
