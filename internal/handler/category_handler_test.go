package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/maelyb/eclat/eclat-backend/internal/domain"
)

func TestGetCategories_Success(t *testing.T) {
	e := echo.New()
	handler := NewCategoryHandler(domain.DefaultCategorySet())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupOwnerContext(c, testOwner)

	if err := handler.GetCategories(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp CategorySetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(resp.Revenue) != 7 {
		t.Errorf("Expected 7 revenue categories, got %d", len(resp.Revenue))
	}
	if len(resp.Expenses) != 6 {
		t.Errorf("Expected 6 expense categories, got %d", len(resp.Expenses))
	}
	if resp.Revenue[0].Name != "Manucure" || resp.Revenue[0].Color == "" {
		t.Errorf("Unexpected first revenue category: %+v", resp.Revenue[0])
	}
}

func TestGetCategories_MissingOwner(t *testing.T) {
	e := echo.New()
	handler := NewCategoryHandler(domain.DefaultCategorySet())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetCategories(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}
