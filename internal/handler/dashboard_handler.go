package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/maelyb/eclat/eclat-backend/internal/domain"
	"github.com/maelyb/eclat/eclat-backend/internal/middleware"
	"github.com/maelyb/eclat/eclat-backend/internal/service"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// IntervalResponse represents one window bucket in API responses
type IntervalResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

// DatasetResponse represents one chart series in API responses
type DatasetResponse struct {
	Label       string   `json:"label"`
	Kind        string   `json:"kind"`
	Stack       string   `json:"stack,omitempty"`
	Color       string   `json:"color"`
	Values      []string `json:"values"`
	PointColors []string `json:"pointColors,omitempty"`
}

// CategoryAmountResponse represents one tooltip line in API responses
type CategoryAmountResponse struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// IntervalDetailResponse represents one interval's tooltip payload
type IntervalDetailResponse struct {
	Label     string                   `json:"label"`
	Revenue   []CategoryAmountResponse `json:"revenue"`
	Expenses  []CategoryAmountResponse `json:"expenses"`
	Total     string                   `json:"total"`
	Spent     string                   `json:"spent"`
	NetProfit string                   `json:"netProfit"`
}

// ChartResponse represents the dashboard chart payload
type ChartResponse struct {
	Labels          []string                 `json:"labels"`
	Datasets        []DatasetResponse        `json:"datasets"`
	Intervals       []IntervalResponse       `json:"intervals"`
	Details         []IntervalDetailResponse `json:"details"`
	Anchor          string                   `json:"anchor"`
	CanNavigateNext bool                     `json:"canNavigateNext"`
}

// NavigateResponse represents the window navigation payload
type NavigateResponse struct {
	Anchor          string `json:"anchor"`
	CanNavigateNext bool   `json:"canNavigateNext"`
}

// SummaryResponse represents the dashboard summary payload
type SummaryResponse struct {
	Revenue             PaymentSplitResponse `json:"revenue"`
	Expenses            PaymentSplitResponse `json:"expenses"`
	NetProfit           string               `json:"netProfit"`
	CurrentMonthRevenue string               `json:"currentMonthRevenue"`
	PrestationCount     int                  `json:"prestationCount"`
	ExpenseCount        int                  `json:"expenseCount"`
	ActiveDays          int                  `json:"activeDays"`
}

// PaymentSplitResponse splits a figure by payment method
type PaymentSplitResponse struct {
	Cash  string `json:"cash"`
	Card  string `json:"card"`
	Total string `json:"total"`
}

// GetChart handles GET /api/v1/dashboard/chart
func (h *DashboardHandler) GetChart(c echo.Context) error {
	ownerEmail := middleware.GetOwnerEmail(c)
	if ownerEmail == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	opts, verr := parseChartOptions(c)
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}

	result, err := h.dashboardService.GetChart(ownerEmail, *opts)
	if err != nil {
		log.Error().Err(err).Str("owner_email", ownerEmail).Str("granularity", string(opts.Granularity)).Msg("Failed to compute chart")
		return NewInternalError(c, "Failed to compute chart")
	}

	return c.JSON(http.StatusOK, toChartResponse(result))
}

// Navigate handles GET /api/v1/dashboard/navigate
func (h *DashboardHandler) Navigate(c echo.Context) error {
	ownerEmail := middleware.GetOwnerEmail(c)
	if ownerEmail == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	direction, err := domain.ParseDirection(c.QueryParam("direction"))
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "direction", Message: "Must be one of: previous, next"},
		})
	}

	opts, verr := parseChartOptions(c)
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}

	result := h.dashboardService.Navigate(direction, opts.Granularity, opts.Anchor, opts.Compact)
	return c.JSON(http.StatusOK, NavigateResponse{
		Anchor:          result.Anchor.Format("2006-01-02"),
		CanNavigateNext: result.CanNavigateNext,
	})
}

// GetSummary handles GET /api/v1/dashboard/summary
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	ownerEmail := middleware.GetOwnerEmail(c)
	if ownerEmail == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	stats, err := h.dashboardService.GetSummary(ownerEmail)
	if err != nil {
		log.Error().Err(err).Str("owner_email", ownerEmail).Msg("Failed to compute summary")
		return NewInternalError(c, "Failed to compute summary")
	}

	return c.JSON(http.StatusOK, SummaryResponse{
		Revenue:             toPaymentSplitResponse(stats.Revenue),
		Expenses:            toPaymentSplitResponse(stats.Expenses),
		NetProfit:           stats.NetProfit.StringFixed(2),
		CurrentMonthRevenue: stats.CurrentMonthRevenue.StringFixed(2),
		PrestationCount:     stats.PrestationCount,
		ExpenseCount:        stats.ExpenseCount,
		ActiveDays:          stats.ActiveDays,
	})
}

// parseChartOptions reads the shared granularity/anchor/compact/payment query
// parameters. Granularity defaults to month, payment to total and a missing
// anchor means "now".
func parseChartOptions(c echo.Context) (*service.ChartOptions, *ValidationError) {
	opts := service.ChartOptions{
		Granularity: domain.GranularityMonth,
		Payment:     domain.PaymentFilterTotal,
	}

	if s := c.QueryParam("granularity"); s != "" {
		granularity, err := domain.ParseGranularity(s)
		if err != nil {
			return nil, &ValidationError{Field: "granularity", Message: "Must be one of: day, week, month, year"}
		}
		opts.Granularity = granularity
	}

	if s := c.QueryParam("anchor"); s != "" {
		anchor, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, &ValidationError{Field: "anchor", Message: "Must be in YYYY-MM-DD format"}
		}
		opts.Anchor = anchor
	}

	if s := c.QueryParam("compact"); s != "" {
		switch s {
		case "true":
			opts.Compact = true
		case "false":
		default:
			return nil, &ValidationError{Field: "compact", Message: "Must be true or false"}
		}
	}

	if s := c.QueryParam("payment"); s != "" {
		payment, err := domain.ParsePaymentFilter(s)
		if err != nil {
			return nil, &ValidationError{Field: "payment", Message: "Must be one of: total, cash, card"}
		}
		opts.Payment = payment
	}

	return &opts, nil
}

func toChartResponse(result *service.ChartResult) ChartResponse {
	resp := ChartResponse{
		Labels:          result.Series.Labels,
		Datasets:        make([]DatasetResponse, len(result.Series.Datasets)),
		Intervals:       make([]IntervalResponse, len(result.Intervals)),
		Details:         make([]IntervalDetailResponse, len(result.Details)),
		Anchor:          result.Anchor.Format("2006-01-02"),
		CanNavigateNext: result.CanNavigateNext,
	}

	for i, ds := range result.Series.Datasets {
		values := make([]string, len(ds.Values))
		for j, v := range ds.Values {
			values[j] = v.StringFixed(2)
		}
		resp.Datasets[i] = DatasetResponse{
			Label:       ds.Label,
			Kind:        string(ds.Kind),
			Stack:       ds.Stack,
			Color:       ds.Color,
			Values:      values,
			PointColors: ds.PointColors,
		}
	}

	for i, interval := range result.Intervals {
		resp.Intervals[i] = IntervalResponse{
			Start: interval.Start.Format("2006-01-02"),
			End:   interval.End.Format("2006-01-02"),
			Label: interval.Label,
		}
	}

	for i, detail := range result.Details {
		resp.Details[i] = IntervalDetailResponse{
			Label:     detail.Label,
			Revenue:   toCategoryAmountResponses(detail.Revenue),
			Expenses:  toCategoryAmountResponses(detail.Expenses),
			Total:     detail.Total.StringFixed(2),
			Spent:     detail.Spent.StringFixed(2),
			NetProfit: detail.NetProfit.StringFixed(2),
		}
	}

	return resp
}

func toCategoryAmountResponses(amounts []domain.CategoryAmount) []CategoryAmountResponse {
	out := make([]CategoryAmountResponse, len(amounts))
	for i, a := range amounts {
		out[i] = CategoryAmountResponse{Category: a.Category, Amount: a.Amount.StringFixed(2)}
	}
	return out
}

func toPaymentSplitResponse(stats domain.PaymentMethodStats) PaymentSplitResponse {
	return PaymentSplitResponse{
		Cash:  stats.Cash.StringFixed(2),
		Card:  stats.Card.StringFixed(2),
		Total: stats.Total.StringFixed(2),
	}
}
