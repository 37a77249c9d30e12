package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/maelyb/eclat/eclat-backend/internal/domain"
	"github.com/maelyb/eclat/eclat-backend/internal/middleware"
	"github.com/maelyb/eclat/eclat-backend/internal/service"
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents the create/update expense request body
type ExpenseRequest struct {
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Date          string  `json:"date"`
	Notes         *string `json:"notes,omitempty"`
	PaymentMethod string  `json:"paymentMethod"`
	CashAmount    string  `json:"cashAmount"`
	CardAmount    string  `json:"cardAmount"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID            int64   `json:"id"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Date          string  `json:"date"`
	Notes         *string `json:"notes,omitempty"`
	PaymentMethod string  `json:"paymentMethod"`
	CashAmount    string  `json:"cashAmount"`
	CardAmount    string  `json:"cardAmount"`
	Total         string  `json:"total"`
	ReceiptURL    *string `json:"receiptUrl,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// CreateExpense handles POST /api/v1/expenses
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	ownerEmail := middleware.GetOwnerEmail(c)
	if ownerEmail == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verr := parseExpenseRequest(&req)
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}

	expense, err := h.expenseService.CreateExpense(ownerEmail, *input)
	if err != nil {
		if verr := mapSplitValidationError(err); verr != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{*verr})
		}
		log.Error().Err(err).Str("owner_email", ownerEmail).Msg("Failed to create expense")
		return NewInternalError(c, "Failed to create expense")
	}

	log.Info().Str("owner_email", ownerEmail).Int64("expense_id", expense.ID).Str("category", expense.Category).Msg("Expense created")
	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// GetExpenses handles GET /api/v1/expenses
func (h *ExpenseHandler) GetExpenses(c echo.Context) error {
	ownerEmail := middleware.GetOwnerEmail(c)
	if ownerEmail == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	expenses, err := h.expenseService.GetExpenses(ownerEmail)
	if err != nil {
		log.Error().Err(err).Str("owner_email", ownerEmail).Msg("Failed to get expenses")
		return NewInternalError(c, "Failed to get expenses")
	}

	response := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		response[i] = toExpenseResponse(e)
	}
	return c.JSON(http.StatusOK, response)
}

// GetExpense handles GET /api/v1/expenses/:id
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	ownerEmail := middleware.GetOwnerEmail(c)
	if ownerEmail == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	expense, err := h.expenseService.GetExpenseByID(ownerEmail, id)
	if err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Str("owner_email", ownerEmail).Int64("expense_id", id).Msg("Failed to get expense")
		return NewInternalError(c, "Failed to get expense")
	}
	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// UpdateExpense handles PUT /api/v1/expenses/:id
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	ownerEmail := middleware.GetOwnerEmail(c)
	if ownerEmail == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verr := parseExpenseRequest(&req)
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}

	expense, err := h.expenseService.UpdateExpense(ownerEmail, id, *input)
	if err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		if verr := mapSplitValidationError(err); verr != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{*verr})
		}
		log.Error().Err(err).Str("owner_email", ownerEmail).Int64("expense_id", id).Msg("Failed to update expense")
		return NewInternalError(c, "Failed to update expense")
	}

	log.Info().Str("owner_email", ownerEmail).Int64("expense_id", expense.ID).Msg("Expense updated")
	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// DeleteExpense handles DELETE /api/v1/expenses/:id
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	ownerEmail := middleware.GetOwnerEmail(c)
	if ownerEmail == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	if err := h.expenseService.DeleteExpense(ownerEmail, id); err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Str("owner_email", ownerEmail).Int64("expense_id", id).Msg("Failed to delete expense")
		return NewInternalError(c, "Failed to delete expense")
	}

	log.Info().Str("owner_email", ownerEmail).Int64("expense_id", id).Msg("Expense deleted")
	return c.NoContent(http.StatusNoContent)
}

func parseExpenseRequest(req *ExpenseRequest) (*service.CreateExpenseInput, *ValidationError) {
	input := service.CreateExpenseInput{
		Category:      req.Category,
		Description:   req.Description,
		Notes:         req.Notes,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	}

	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, &ValidationError{Field: "date", Message: "Must be in YYYY-MM-DD format"}
		}
		input.Date = &parsed
	}

	cash, err := parseAmount(req.CashAmount)
	if err != nil {
		return nil, &ValidationError{Field: "cashAmount", Message: "Must be a valid decimal number"}
	}
	card, err := parseAmount(req.CardAmount)
	if err != nil {
		return nil, &ValidationError{Field: "cardAmount", Message: "Must be a valid decimal number"}
	}
	input.CashAmount = cash
	input.CardAmount = card
	return &input, nil
}

// toExpenseResponse converts a domain.Expense to its API representation
func toExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		Category:      e.Category,
		Description:   e.Description,
		Date:          e.Date.Format("2006-01-02"),
		Notes:         e.Notes,
		PaymentMethod: string(e.PaymentMethod),
		CashAmount:    e.CashAmount.StringFixed(2),
		CardAmount:    e.CardAmount.StringFixed(2),
		Total:         e.Total().StringFixed(2),
		ReceiptURL:    e.ReceiptURL,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     e.UpdatedAt.Format(time.RFC3339),
	}
}
