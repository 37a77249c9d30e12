package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maelyb/eclat/eclat-backend/internal/domain"
	"github.com/maelyb/eclat/eclat-backend/internal/middleware"
)

// CategoryHandler serves the configured category sets
type CategoryHandler struct {
	categories domain.CategorySet
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories domain.CategorySet) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategorySetResponse represents both category sets
type CategorySetResponse struct {
	Revenue  []CategoryResponse `json:"revenue"`
	Expenses []CategoryResponse `json:"expenses"`
}

// GetCategories handles GET /api/v1/categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	ownerEmail := middleware.GetOwnerEmail(c)
	if ownerEmail == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	return c.JSON(http.StatusOK, CategorySetResponse{
		Revenue:  toCategoryResponses(h.categories.Revenue),
		Expenses: toCategoryResponses(h.categories.Expenses),
	})
}

func toCategoryResponses(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		out[i] = CategoryResponse{Name: cat.Name, Color: cat.Color}
	}
	return out
}
