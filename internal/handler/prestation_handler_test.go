package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/maelyb/eclat/eclat-backend/internal/domain"
	"github.com/maelyb/eclat/eclat-backend/internal/service"
	"github.com/maelyb/eclat/eclat-backend/internal/testutil"
)

func newPrestationHandler() (*PrestationHandler, *testutil.MockPrestationRepository) {
	repo := testutil.NewMockPrestationRepository()
	svc := service.NewPrestationService(repo, domain.DefaultCategorySet(), testutil.NewMockEventPublisher())
	return NewPrestationHandler(svc), repo
}

func TestCreatePrestation_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newPrestationHandler()

	body := `{"category":"Manucure","date":"2025-03-12","paymentMethod":"cash","cashAmount":"45.50"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/prestations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupOwnerContext(c, testOwner)

	if err := handler.CreatePrestation(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp PrestationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.Category != "Manucure" {
		t.Errorf("Expected category Manucure, got %s", resp.Category)
	}
	if resp.CashAmount != "45.50" {
		t.Errorf("Expected cashAmount 45.50, got %s", resp.CashAmount)
	}
	if resp.Total != "45.50" {
		t.Errorf("Expected total 45.50, got %s", resp.Total)
	}
	if resp.Date != "2025-03-12" {
		t.Errorf("Expected date 2025-03-12, got %s", resp.Date)
	}
}

func TestCreatePrestation_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"unknown category", `{"category":"Massage","date":"2025-03-12","paymentMethod":"cash","cashAmount":"10"}`, "category"},
		{"missing date", `{"category":"Manucure","paymentMethod":"cash","cashAmount":"10"}`, "date"},
		{"bad date format", `{"category":"Manucure","date":"12/03/2025","paymentMethod":"cash","cashAmount":"10"}`, "date"},
		{"bad amount", `{"category":"Manucure","date":"2025-03-12","paymentMethod":"cash","cashAmount":"abc"}`, "cashAmount"},
		{"zero total", `{"category":"Manucure","date":"2025-03-12","paymentMethod":"cash","cashAmount":"0"}`, "cashAmount"},
		{"unknown method", `{"category":"Manucure","date":"2025-03-12","paymentMethod":"cheque","cashAmount":"10"}`, "paymentMethod"},
		{"cash with card amount", `{"category":"Manucure","date":"2025-03-12","paymentMethod":"cash","cashAmount":"10","cardAmount":"5"}`, "paymentMethod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			handler, _ := newPrestationHandler()

			req := httptest.NewRequest(http.MethodPost, "/api/v1/prestations", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			setupOwnerContext(c, testOwner)

			if err := handler.CreatePrestation(c); err != nil {
				t.Fatalf("Expected JSON response, got error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", rec.Code)
			}

			var problem ProblemDetails
			if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}
			if len(problem.Errors) == 0 {
				t.Fatal("Expected field errors")
			}
			if problem.Errors[0].Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, problem.Errors[0].Field)
			}
		})
	}
}

func TestCreatePrestation_Mixed(t *testing.T) {
	e := echo.New()
	handler, _ := newPrestationHandler()

	body := `{"category":"Soins","date":"2025-03-12","paymentMethod":"mixed","cashAmount":"30","cardAmount":"20"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/prestations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupOwnerContext(c, testOwner)

	if err := handler.CreatePrestation(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp PrestationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.Total != "50.00" {
		t.Errorf("Expected total 50.00, got %s", resp.Total)
	}
}

func TestCreatePrestation_MissingOwner(t *testing.T) {
	e := echo.New()
	handler, _ := newPrestationHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/prestations", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreatePrestation(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGetPrestations_NewestFirst(t *testing.T) {
	e := echo.New()
	handler, repo := newPrestationHandler()

	repo.Add(&domain.Prestation{
		OwnerEmail:    testOwner,
		Category:      "Manucure",
		Date:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		PaymentMethod: domain.PaymentMethodCash,
		CashAmount:    decimal.NewFromInt(30),
	})
	repo.Add(&domain.Prestation{
		OwnerEmail:    testOwner,
		Category:      "Soins",
		Date:          time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		PaymentMethod: domain.PaymentMethodCard,
		CardAmount:    decimal.NewFromInt(60),
	})
	repo.Add(&domain.Prestation{
		OwnerEmail:    "other@example.com",
		Category:      "Manucure",
		Date:          time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		PaymentMethod: domain.PaymentMethodCash,
		CashAmount:    decimal.NewFromInt(99),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/prestations", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupOwnerContext(c, testOwner)

	if err := handler.GetPrestations(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp []PrestationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("Expected 2 prestations, got %d", len(resp))
	}
	if resp[0].Category != "Soins" {
		t.Errorf("Expected newest prestation first, got %s", resp[0].Category)
	}
}

func TestUpdatePrestation_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newPrestationHandler()

	body := `{"category":"Manucure","date":"2025-03-12","paymentMethod":"cash","cashAmount":"10"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/prestations/42", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")
	setupOwnerContext(c, testOwner)

	if err := handler.UpdatePrestation(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestDeletePrestation_Success(t *testing.T) {
	e := echo.New()
	handler, repo := newPrestationHandler()

	p := repo.Add(&domain.Prestation{
		OwnerEmail:    testOwner,
		Category:      "Manucure",
		Date:          time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		PaymentMethod: domain.PaymentMethodCash,
		CashAmount:    decimal.NewFromInt(30),
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/prestations/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupOwnerContext(c, testOwner)

	if err := handler.DeletePrestation(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
	if _, ok := repo.Prestations[p.ID]; ok {
		t.Error("Expected prestation to be removed")
	}
}

func TestDeletePrestation_WrongOwner(t *testing.T) {
	e := echo.New()
	handler, repo := newPrestationHandler()

	repo.Add(&domain.Prestation{
		OwnerEmail:    "other@example.com",
		Category:      "Manucure",
		Date:          time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		PaymentMethod: domain.PaymentMethodCash,
		CashAmount:    decimal.NewFromInt(30),
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/prestations/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupOwnerContext(c, testOwner)

	if err := handler.DeletePrestation(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
