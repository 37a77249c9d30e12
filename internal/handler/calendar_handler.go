package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/maelyb/eclat/eclat-backend/internal/middleware"
	"github.com/maelyb/eclat/eclat-backend/internal/service"
)

// CalendarHandler handles daily activity HTTP requests
type CalendarHandler struct {
	calendarService *service.CalendarService
}

// NewCalendarHandler creates a new CalendarHandler
func NewCalendarHandler(calendarService *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// DayStatsResponse represents one calendar day in API responses
type DayStatsResponse struct {
	Date             string `json:"date"`
	Revenue          string `json:"revenue"`
	CashRevenue      string `json:"cashRevenue"`
	CardRevenue      string `json:"cardRevenue"`
	Expenses         string `json:"expenses"`
	NetProfit        string `json:"netProfit"`
	PrestationCount  int    `json:"prestationCount"`
	ExpenseCount     int    `json:"expenseCount"`
	TransactionCount int    `json:"transactionCount"`
}

// GetDailyStats handles GET /api/v1/calendar/days
func (h *CalendarHandler) GetDailyStats(c echo.Context) error {
	ownerEmail := middleware.GetOwnerEmail(c)
	if ownerEmail == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	stats, err := h.calendarService.GetDailyStats(ownerEmail)
	if err != nil {
		log.Error().Err(err).Str("owner_email", ownerEmail).Msg("Failed to compute daily stats")
		return NewInternalError(c, "Failed to compute daily stats")
	}

	response := make([]DayStatsResponse, len(stats))
	for i, day := range stats {
		response[i] = DayStatsResponse{
			Date:             day.Date.Format("2006-01-02"),
			Revenue:          day.Revenue.StringFixed(2),
			CashRevenue:      day.CashRevenue.StringFixed(2),
			CardRevenue:      day.CardRevenue.StringFixed(2),
			Expenses:         day.Expenses.StringFixed(2),
			NetProfit:        day.NetProfit.StringFixed(2),
			PrestationCount:  day.PrestationCount,
			ExpenseCount:     day.ExpenseCount,
			TransactionCount: day.TransactionCount,
		}
	}
	return c.JSON(http.StatusOK, response)
}
