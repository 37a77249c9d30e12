package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/maelyb/eclat/eclat-backend/internal/domain"
	"github.com/maelyb/eclat/eclat-backend/internal/util"
)

// AggregationService buckets transactions into reporting intervals. It is a
// pure computation over already-fetched data: aggregates are recomputed from
// scratch on every call, never cached or mutated incrementally.
type AggregationService struct {
	categories domain.CategorySet
}

// NewAggregationService creates a new aggregation service.
func NewAggregationService(categories domain.CategorySet) *AggregationService {
	return &AggregationService{categories: categories}
}

// Aggregate produces one PeriodAggregate per interval, in interval order.
// Every configured category appears in every aggregate, zeros included.
// Transactions dated outside every interval are silently excluded; a record
// dated exactly on a boundary belongs to that interval.
func (s *AggregationService) Aggregate(prestations []*domain.Prestation, expenses []*domain.Expense, intervals []domain.TimeInterval) []domain.PeriodAggregate {
	aggregates := make([]domain.PeriodAggregate, len(intervals))
	for i, interval := range intervals {
		aggregates[i] = s.newZeroAggregate(interval)
	}

	for _, p := range prestations {
		idx := findInterval(intervals, p.Date)
		if idx < 0 {
			continue
		}
		agg := &aggregates[idx]
		category := s.categories.CanonicalRevenue(p.Category)
		agg.RevenueByCategory[category] = agg.RevenueByCategory[category].Add(p.Total())
		agg.CashRevenueByCategory[category] = agg.CashRevenueByCategory[category].Add(p.CashAmount)
		agg.CardRevenueByCategory[category] = agg.CardRevenueByCategory[category].Add(p.CardAmount)
	}

	for _, e := range expenses {
		idx := findInterval(intervals, e.Date)
		if idx < 0 {
			continue
		}
		agg := &aggregates[idx]
		category := s.categories.CanonicalExpense(e.Category)
		agg.ExpensesByCategory[category] = agg.ExpensesByCategory[category].Add(e.Total())
		agg.CashExpensesByCategory[category] = agg.CashExpensesByCategory[category].Add(e.CashAmount)
		agg.CardExpensesByCategory[category] = agg.CardExpensesByCategory[category].Add(e.CardAmount)
	}

	for i := range aggregates {
		deriveTotals(&aggregates[i])
	}
	return aggregates
}

func (s *AggregationService) newZeroAggregate(interval domain.TimeInterval) domain.PeriodAggregate {
	agg := domain.PeriodAggregate{
		Interval:               interval,
		RevenueByCategory:      make(map[string]decimal.Decimal, len(s.categories.Revenue)),
		CashRevenueByCategory:  make(map[string]decimal.Decimal, len(s.categories.Revenue)),
		CardRevenueByCategory:  make(map[string]decimal.Decimal, len(s.categories.Revenue)),
		ExpensesByCategory:     make(map[string]decimal.Decimal, len(s.categories.Expenses)),
		CashExpensesByCategory: make(map[string]decimal.Decimal, len(s.categories.Expenses)),
		CardExpensesByCategory: make(map[string]decimal.Decimal, len(s.categories.Expenses)),
	}
	for _, c := range s.categories.Revenue {
		agg.RevenueByCategory[c.Name] = decimal.Zero
		agg.CashRevenueByCategory[c.Name] = decimal.Zero
		agg.CardRevenueByCategory[c.Name] = decimal.Zero
	}
	for _, c := range s.categories.Expenses {
		agg.ExpensesByCategory[c.Name] = decimal.Zero
		agg.CashExpensesByCategory[c.Name] = decimal.Zero
		agg.CardExpensesByCategory[c.Name] = decimal.Zero
	}
	return agg
}

// deriveTotals recomputes every total and net field from the category maps.
// Totals are never accumulated independently, so they cannot drift from the
// per-category figures.
func deriveTotals(agg *domain.PeriodAggregate) {
	agg.TotalRevenue = sumValues(agg.RevenueByCategory)
	agg.CashRevenue = sumValues(agg.CashRevenueByCategory)
	agg.CardRevenue = sumValues(agg.CardRevenueByCategory)

	agg.TotalExpenses = sumValues(agg.ExpensesByCategory)
	agg.CashExpenses = sumValues(agg.CashExpensesByCategory)
	agg.CardExpenses = sumValues(agg.CardExpensesByCategory)

	agg.NetProfit = agg.TotalRevenue.Sub(agg.TotalExpenses)
	agg.CashNetProfit = agg.CashRevenue.Sub(agg.CashExpenses)
	agg.CardNetProfit = agg.CardRevenue.Sub(agg.CardExpenses)
}

func sumValues(m map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range m {
		total = total.Add(v)
	}
	return total
}

func findInterval(intervals []domain.TimeInterval, date time.Time) int {
	d := util.Day(date)
	for i, interval := range intervals {
		if interval.Contains(d) {
			return i
		}
	}
	return -1
}
