package service

import (
	"time"

	"github.com/maelyb/eclat/eclat-backend/internal/domain"
	"github.com/maelyb/eclat/eclat-backend/internal/util"
)

// ChartOptions selects the window and view of a dashboard chart request.
// A zero Anchor means "now". Switching granularity resets the anchor: the
// caller simply omits it on the first request after a switch.
type ChartOptions struct {
	Granularity domain.Granularity
	Anchor      time.Time
	Compact     bool
	Payment     domain.PaymentFilter
}

// ChartResult is the full dashboard chart payload.
type ChartResult struct {
	Intervals       []domain.TimeInterval   `json:"intervals"`
	Series          domain.ChartSeries      `json:"series"`
	Details         []domain.IntervalDetail `json:"details"`
	Anchor          time.Time               `json:"anchor"`
	CanNavigateNext bool                    `json:"canNavigateNext"`
}

// NavigateResult is the outcome of a window navigation request.
type NavigateResult struct {
	Anchor          time.Time `json:"anchor"`
	CanNavigateNext bool      `json:"canNavigateNext"`
}

// DashboardService orchestrates the reporting pipeline: window computation,
// aggregation and series projection over the owner's full transaction set.
type DashboardService struct {
	prestationRepo domain.PrestationRepository
	expenseRepo    domain.ExpenseRepository
	window         *WindowService
	aggregation    *AggregationService
	series         *SeriesService
	now            func() time.Time
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(prestationRepo domain.PrestationRepository, expenseRepo domain.ExpenseRepository, window *WindowService, aggregation *AggregationService, series *SeriesService) *DashboardService {
	return &DashboardService{
		prestationRepo: prestationRepo,
		expenseRepo:    expenseRepo,
		window:         window,
		aggregation:    aggregation,
		series:         series,
		now:            time.Now,
	}
}

// GetChart computes the chart for one owner. An owner with no records gets a
// fully zero-valued window, never an error.
func (s *DashboardService) GetChart(ownerEmail string, opts ChartOptions) (*ChartResult, error) {
	anchor := opts.Anchor
	if anchor.IsZero() {
		anchor = s.now()
	}
	anchor = util.Day(anchor)

	prestations, err := s.prestationRepo.ListByOwner(ownerEmail)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListByOwner(ownerEmail)
	if err != nil {
		return nil, err
	}

	intervals := s.window.ComputeIntervals(opts.Granularity, anchor, opts.Compact)
	aggregates := s.aggregation.Aggregate(prestations, expenses, intervals)

	return &ChartResult{
		Intervals:       intervals,
		Series:          s.series.ProjectSeries(aggregates, opts.Payment),
		Details:         s.series.IntervalDetails(aggregates, opts.Payment),
		Anchor:          anchor,
		CanNavigateNext: s.window.CanNavigateNext(opts.Granularity, anchor, opts.Compact),
	}, nil
}

// Navigate shifts the window anchor a full page in the given direction.
func (s *DashboardService) Navigate(direction domain.Direction, granularity domain.Granularity, anchor time.Time, compact bool) NavigateResult {
	if anchor.IsZero() {
		anchor = s.now()
	}
	next := s.window.Navigate(direction, granularity, anchor, compact)
	return NavigateResult{
		Anchor:          next,
		CanNavigateNext: s.window.CanNavigateNext(granularity, next, compact),
	}
}

// GetSummary computes the headline stats over the owner's entire history.
func (s *DashboardService) GetSummary(ownerEmail string) (*domain.SummaryStats, error) {
	prestations, err := s.prestationRepo.ListByOwner(ownerEmail)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListByOwner(ownerEmail)
	if err != nil {
		return nil, err
	}

	stats := &domain.SummaryStats{
		PrestationCount: len(prestations),
		ExpenseCount:    len(expenses),
	}

	monthStart := util.StartOfMonth(s.now())
	monthEnd := util.EndOfMonth(s.now())
	activeDays := make(map[time.Time]struct{})

	for _, p := range prestations {
		stats.Revenue.Cash = stats.Revenue.Cash.Add(p.CashAmount)
		stats.Revenue.Card = stats.Revenue.Card.Add(p.CardAmount)
		d := util.Day(p.Date)
		activeDays[d] = struct{}{}
		if !d.Before(monthStart) && !d.After(monthEnd) {
			stats.CurrentMonthRevenue = stats.CurrentMonthRevenue.Add(p.Total())
		}
	}
	for _, e := range expenses {
		stats.Expenses.Cash = stats.Expenses.Cash.Add(e.CashAmount)
		stats.Expenses.Card = stats.Expenses.Card.Add(e.CardAmount)
		activeDays[util.Day(e.Date)] = struct{}{}
	}

	stats.Revenue.Total = stats.Revenue.Cash.Add(stats.Revenue.Card)
	stats.Expenses.Total = stats.Expenses.Cash.Add(stats.Expenses.Card)
	stats.NetProfit = stats.Revenue.Total.Sub(stats.Expenses.Total)
	stats.ActiveDays = len(activeDays)
	return stats, nil
}
