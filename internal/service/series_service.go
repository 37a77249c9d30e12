package service

import (
	"github.com/shopspring/decimal"

	"github.com/maelyb/eclat/eclat-backend/internal/domain"
)

// SeriesService projects aggregates into the chart shape: stacked revenue
// bars, mirrored negative expense bars, and the net profit overlay line.
type SeriesService struct {
	categories domain.CategorySet
}

// NewSeriesService creates a new series projection service.
func NewSeriesService(categories domain.CategorySet) *SeriesService {
	return &SeriesService{categories: categories}
}

// ProjectSeries flattens aggregates into chart datasets under the given
// payment filter. Category series that are zero across the whole window are
// suppressed; the profit line is always present, with per-point colors
// marking negative intervals.
func (s *SeriesService) ProjectSeries(aggregates []domain.PeriodAggregate, filter domain.PaymentFilter) domain.ChartSeries {
	series := domain.ChartSeries{
		Labels:   make([]string, len(aggregates)),
		Datasets: make([]domain.Dataset, 0, len(s.categories.Revenue)+len(s.categories.Expenses)+1),
	}
	for i, agg := range aggregates {
		series.Labels[i] = agg.Interval.Label
	}

	for _, c := range s.categories.Revenue {
		values := make([]decimal.Decimal, len(aggregates))
		hasActivity := false
		for i, agg := range aggregates {
			v := revenueMap(&agg, filter)[c.Name]
			values[i] = v
			if !v.IsZero() {
				hasActivity = true
			}
		}
		if !hasActivity {
			continue
		}
		series.Datasets = append(series.Datasets, domain.Dataset{
			Label:  c.Name,
			Kind:   domain.DatasetKindBar,
			Stack:  domain.StackRevenue,
			Color:  c.Color,
			Values: values,
		})
	}

	for _, c := range s.categories.Expenses {
		values := make([]decimal.Decimal, len(aggregates))
		hasActivity := false
		for i, agg := range aggregates {
			v := expenseMap(&agg, filter)[c.Name]
			if v.IsZero() {
				// a negated zero must render as plain zero, never "-0"
				values[i] = decimal.Zero
				continue
			}
			values[i] = v.Neg()
			hasActivity = true
		}
		if !hasActivity {
			continue
		}
		series.Datasets = append(series.Datasets, domain.Dataset{
			Label:  c.Name,
			Kind:   domain.DatasetKindBar,
			Stack:  domain.StackExpenses,
			Color:  c.Color,
			Values: values,
		})
	}

	profit := make([]decimal.Decimal, len(aggregates))
	pointColors := make([]string, len(aggregates))
	for i, agg := range aggregates {
		profit[i] = netProfit(&agg, filter)
		if profit[i].IsNegative() {
			pointColors[i] = domain.ProfitPointNegativeColor
		} else {
			pointColors[i] = domain.ProfitPointPositiveColor
		}
	}
	series.Datasets = append(series.Datasets, domain.Dataset{
		Label:       "Bénéfice net",
		Kind:        domain.DatasetKindLine,
		Color:       domain.ProfitLineColor,
		Values:      profit,
		PointColors: pointColors,
	})

	return series
}

// IntervalDetails builds the tooltip payload for every interval: headline
// figures plus per-category magnitudes, omitting zero entries. Expense
// magnitudes are signed the way the chart draws them.
func (s *SeriesService) IntervalDetails(aggregates []domain.PeriodAggregate, filter domain.PaymentFilter) []domain.IntervalDetail {
	details := make([]domain.IntervalDetail, len(aggregates))
	for i, agg := range aggregates {
		detail := domain.IntervalDetail{
			Label:    agg.Interval.Label,
			Revenue:  make([]domain.CategoryAmount, 0, len(s.categories.Revenue)),
			Expenses: make([]domain.CategoryAmount, 0, len(s.categories.Expenses)),
		}
		revenues := revenueMap(&agg, filter)
		for _, c := range s.categories.Revenue {
			if v := revenues[c.Name]; !v.IsZero() {
				detail.Revenue = append(detail.Revenue, domain.CategoryAmount{Category: c.Name, Amount: v})
			}
		}
		expenses := expenseMap(&agg, filter)
		for _, c := range s.categories.Expenses {
			if v := expenses[c.Name]; !v.IsZero() {
				detail.Expenses = append(detail.Expenses, domain.CategoryAmount{Category: c.Name, Amount: v.Neg()})
			}
		}
		detail.Total = sumValues(revenues)
		detail.Spent = sumValues(expenses)
		detail.NetProfit = netProfit(&agg, filter)
		details[i] = detail
	}
	return details
}

func revenueMap(agg *domain.PeriodAggregate, filter domain.PaymentFilter) map[string]decimal.Decimal {
	switch filter {
	case domain.PaymentFilterCash:
		return agg.CashRevenueByCategory
	case domain.PaymentFilterCard:
		return agg.CardRevenueByCategory
	}
	return agg.RevenueByCategory
}

func expenseMap(agg *domain.PeriodAggregate, filter domain.PaymentFilter) map[string]decimal.Decimal {
	switch filter {
	case domain.PaymentFilterCash:
		return agg.CashExpensesByCategory
	case domain.PaymentFilterCard:
		return agg.CardExpensesByCategory
	}
	return agg.ExpensesByCategory
}

func netProfit(agg *domain.PeriodAggregate, filter domain.PaymentFilter) decimal.Decimal {
	switch filter {
	case domain.PaymentFilterCash:
		return agg.CashNetProfit
	case domain.PaymentFilterCard:
		return agg.CardNetProfit
	}
	return agg.NetProfit
}
