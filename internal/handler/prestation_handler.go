package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/maelyb/eclat/eclat-backend/internal/domain"
	"github.com/maelyb/eclat/eclat-backend/internal/middleware"
	"github.com/maelyb/eclat/eclat-backend/internal/service"
)

// PrestationHandler handles prestation-related HTTP requests
type PrestationHandler struct {
	prestationService *service.PrestationService
}

// NewPrestationHandler creates a new PrestationHandler
func NewPrestationHandler(prestationService *service.PrestationService) *PrestationHandler {
	return &PrestationHandler{prestationService: prestationService}
}

// PrestationRequest represents the create/update prestation request body
type PrestationRequest struct {
	Category      string  `json:"category"`
	Date          string  `json:"date"`
	Notes         *string `json:"notes,omitempty"`
	PaymentMethod string  `json:"paymentMethod"`
	CashAmount    string  `json:"cashAmount"`
	CardAmount    string  `json:"cardAmount"`
}

// PrestationResponse represents a prestation in API responses
type PrestationResponse struct {
	ID            int64   `json:"id"`
	Category      string  `json:"category"`
	Date          string  `json:"date"`
	Notes         *string `json:"notes,omitempty"`
	PaymentMethod string  `json:"paymentMethod"`
	CashAmount    string  `json:"cashAmount"`
	CardAmount    string  `json:"cardAmount"`
	Total         string  `json:"total"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// CreatePrestation handles POST /api/v1/prestations
func (h *PrestationHandler) CreatePrestation(c echo.Context) error {
	ownerEmail := middleware.GetOwnerEmail(c)
	if ownerEmail == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req PrestationRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verr := parsePrestationRequest(&req)
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}

	prestation, err := h.prestationService.CreatePrestation(ownerEmail, *input)
	if err != nil {
		if verr := mapSplitValidationError(err); verr != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{*verr})
		}
		log.Error().Err(err).Str("owner_email", ownerEmail).Msg("Failed to create prestation")
		return NewInternalError(c, "Failed to create prestation")
	}

	log.Info().Str("owner_email", ownerEmail).Int64("prestation_id", prestation.ID).Str("category", prestation.Category).Msg("Prestation created")
	return c.JSON(http.StatusCreated, toPrestationResponse(prestation))
}

// GetPrestations handles GET /api/v1/prestations
func (h *PrestationHandler) GetPrestations(c echo.Context) error {
	ownerEmail := middleware.GetOwnerEmail(c)
	if ownerEmail == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	prestations, err := h.prestationService.GetPrestations(ownerEmail)
	if err != nil {
		log.Error().Err(err).Str("owner_email", ownerEmail).Msg("Failed to get prestations")
		return NewInternalError(c, "Failed to get prestations")
	}

	response := make([]PrestationResponse, len(prestations))
	for i, p := range prestations {
		response[i] = toPrestationResponse(p)
	}
	return c.JSON(http.StatusOK, response)
}

// GetPrestation handles GET /api/v1/prestations/:id
func (h *PrestationHandler) GetPrestation(c echo.Context) error {
	ownerEmail := middleware.GetOwnerEmail(c)
	if ownerEmail == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid prestation ID", nil)
	}

	prestation, err := h.prestationService.GetPrestationByID(ownerEmail, id)
	if err != nil {
		if errors.Is(err, domain.ErrPrestationNotFound) {
			return NewNotFoundError(c, "Prestation not found")
		}
		log.Error().Err(err).Str("owner_email", ownerEmail).Int64("prestation_id", id).Msg("Failed to get prestation")
		return NewInternalError(c, "Failed to get prestation")
	}
	return c.JSON(http.StatusOK, toPrestationResponse(prestation))
}

// UpdatePrestation handles PUT /api/v1/prestations/:id
func (h *PrestationHandler) UpdatePrestation(c echo.Context) error {
	ownerEmail := middleware.GetOwnerEmail(c)
	if ownerEmail == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid prestation ID", nil)
	}

	var req PrestationRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verr := parsePrestationRequest(&req)
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}

	prestation, err := h.prestationService.UpdatePrestation(ownerEmail, id, *input)
	if err != nil {
		if errors.Is(err, domain.ErrPrestationNotFound) {
			return NewNotFoundError(c, "Prestation not found")
		}
		if verr := mapSplitValidationError(err); verr != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{*verr})
		}
		log.Error().Err(err).Str("owner_email", ownerEmail).Int64("prestation_id", id).Msg("Failed to update prestation")
		return NewInternalError(c, "Failed to update prestation")
	}

	log.Info().Str("owner_email", ownerEmail).Int64("prestation_id", prestation.ID).Msg("Prestation updated")
	return c.JSON(http.StatusOK, toPrestationResponse(prestation))
}

// DeletePrestation handles DELETE /api/v1/prestations/:id
func (h *PrestationHandler) DeletePrestation(c echo.Context) error {
	ownerEmail := middleware.GetOwnerEmail(c)
	if ownerEmail == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid prestation ID", nil)
	}

	if err := h.prestationService.DeletePrestation(ownerEmail, id); err != nil {
		if errors.Is(err, domain.ErrPrestationNotFound) {
			return NewNotFoundError(c, "Prestation not found")
		}
		log.Error().Err(err).Str("owner_email", ownerEmail).Int64("prestation_id", id).Msg("Failed to delete prestation")
		return NewInternalError(c, "Failed to delete prestation")
	}

	log.Info().Str("owner_email", ownerEmail).Int64("prestation_id", id).Msg("Prestation deleted")
	return c.NoContent(http.StatusNoContent)
}

// parsePrestationRequest converts the wire request into a service input,
// reporting the first malformed field.
func parsePrestationRequest(req *PrestationRequest) (*service.CreatePrestationInput, *ValidationError) {
	input := service.CreatePrestationInput{
		Category:      req.Category,
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

// parseAmount treats a missing amount as zero so single-method requests can
// omit the unused side of the split.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// mapSplitValidationError maps shared domain validation errors to field
// errors. Returns nil for errors that are not validation failures.
func mapSplitValidationError(err error) *ValidationError {
	switch {
	case errors.Is(err, domain.ErrUnknownCategory):
		return &ValidationError{Field: "category", Message: "Unknown category"}
	case errors.Is(err, domain.ErrDateRequired):
		return &ValidationError{Field: "date", Message: "Date is required"}
	case errors.Is(err, domain.ErrInvalidPaymentMethod):
		return &ValidationError{Field: "paymentMethod", Message: "Must be one of: cash, card, mixed"}
	case errors.Is(err, domain.ErrNegativeAmount):
		return &ValidationError{Field: "cashAmount", Message: "Amounts must not be negative"}
	case errors.Is(err, domain.ErrInvalidAmount):
		return &ValidationError{Field: "cashAmount", Message: "Total amount must be positive"}
	case errors.Is(err, domain.ErrAmountMethodMismatch):
		return &ValidationError{Field: "paymentMethod", Message: "Amounts do not match the payment method"}
	case errors.Is(err, domain.ErrNotesTooLong):
		return &ValidationError{Field: "notes", Message: "Notes must be 1000 characters or less"}
	case errors.Is(err, domain.ErrDescriptionRequired):
		return &ValidationError{Field: "description", Message: "Description is required"}
	case errors.Is(err, domain.ErrDescriptionTooLong):
		return &ValidationError{Field: "description", Message: "Description must be 1000 characters or less"}
	}
	return nil
}

// toPrestationResponse converts a domain.Prestation to its API representation
func toPrestationResponse(p *domain.Prestation) PrestationResponse {
	return PrestationResponse{
		ID:            p.ID,
		Category:      p.Category,
		Date:          p.Date.Format("2006-01-02"),
		Notes:         p.Notes,
		PaymentMethod: string(p.PaymentMethod),
		CashAmount:    p.CashAmount.StringFixed(2),
		CardAmount:    p.CardAmount.StringFixed(2),
		Total:         p.Total().StringFixed(2),
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
}
