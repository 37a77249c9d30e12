package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maelyb/eclat/eclat-backend/internal/domain"
)

func newPrestation(category string, date time.Time, cash, card int64) *domain.Prestation {
	method := domain.PaymentMethodMixed
	switch {
	case card == 0:
		method = domain.PaymentMethodCash
	case cash == 0:
		method = domain.PaymentMethodCard
	}
	return &domain.Prestation{
		OwnerEmail:    "owner@example.com",
		Category:      category,
		Date:          date,
		PaymentMethod: method,
		CashAmount:    decimal.NewFromInt(cash),
		CardAmount:    decimal.NewFromInt(card),
	}
}

func newExpense(category string, date time.Time, cash, card int64) *domain.Expense {
	method := domain.PaymentMethodCash
	if cash == 0 {
		method = domain.PaymentMethodCard
	}
	return &domain.Expense{
		OwnerEmail:    "owner@example.com",
		Category:      category,
		Description:   "test expense",
		Date:          date,
		PaymentMethod: method,
		CashAmount:    decimal.NewFromInt(cash),
		CardAmount:    decimal.NewFromInt(card),
	}
}

func weekOf(anchor time.Time) []domain.TimeInterval {
	return NewWindowService().ComputeIntervals(domain.GranularityDay, anchor, true)
}

func assertDecimalEqual(t *testing.T, want int64, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	if !got.Equal(decimal.NewFromInt(want)) {
		assert.Fail(t, "decimal mismatch: got "+got.String(), msgAndArgs...)
	}
}

func TestAggregateSplitsPaymentMethods(t *testing.T) {
	s := NewAggregationService(domain.DefaultCategorySet())
	d := day(2025, time.March, 10)
	intervals := weekOf(d)

	prestations := []*domain.Prestation{
		newPrestation("Manucure", d, 30, 0),
		newPrestation("Manucure", d, 0, 20),
	}
	expenses := []*domain.Expense{
		newExpense("Fournisseur ongle", d, 10, 0),
	}

	aggregates := s.Aggregate(prestations, expenses, intervals)
	require.Len(t, aggregates, len(intervals))

	agg := aggregates[len(aggregates)-1]
	assertDecimalEqual(t, 50, agg.RevenueByCategory["Manucure"])
	assertDecimalEqual(t, 30, agg.CashRevenueByCategory["Manucure"])
	assertDecimalEqual(t, 20, agg.CardRevenueByCategory["Manucure"])
	assertDecimalEqual(t, 50, agg.TotalRevenue)
	assertDecimalEqual(t, 30, agg.CashRevenue)
	assertDecimalEqual(t, 20, agg.CardRevenue)
	assertDecimalEqual(t, 10, agg.TotalExpenses)
	assertDecimalEqual(t, 40, agg.NetProfit)

	// the other days of the window stay untouched
	for _, other := range aggregates[:len(aggregates)-1] {
		assertDecimalEqual(t, 0, other.TotalRevenue)
		assertDecimalEqual(t, 0, other.TotalExpenses)
	}
}

func TestAggregateMixedPayment(t *testing.T) {
	s := NewAggregationService(domain.DefaultCategorySet())
	d := day(2025, time.March, 10)

	// one transaction, one category bucket, two payment sub-buckets
	aggregates := s.Aggregate(
		[]*domain.Prestation{newPrestation("Soins", d, 25, 35)},
		nil,
		weekOf(d),
	)

	agg := aggregates[len(aggregates)-1]
	assertDecimalEqual(t, 60, agg.RevenueByCategory["Soins"])
	assertDecimalEqual(t, 25, agg.CashRevenueByCategory["Soins"])
	assertDecimalEqual(t, 35, agg.CardRevenueByCategory["Soins"])
	assertDecimalEqual(t, 0, agg.RevenueByCategory["Manucure"])
}

func TestAggregateSundayBelongsToEndingWeek(t *testing.T) {
	s := NewAggregationService(domain.DefaultCategorySet())
	ws := NewWindowService()

	// Wednesday anchor; the last week runs Mon 10 - Sun 16
	intervals := ws.ComputeIntervals(domain.GranularityWeek, day(2025, time.March, 12), false)
	sunday := day(2025, time.March, 16)

	aggregates := s.Aggregate([]*domain.Prestation{newPrestation("Manucure", sunday, 40, 0)}, nil, intervals)

	last := aggregates[len(aggregates)-1]
	assertDecimalEqual(t, 40, last.TotalRevenue, "Sunday must land in the week ending that Sunday")
	for _, agg := range aggregates[:len(aggregates)-1] {
		assertDecimalEqual(t, 0, agg.TotalRevenue)
	}
}

func TestAggregateUnknownCategoryFallsBack(t *testing.T) {
	s := NewAggregationService(domain.DefaultCategorySet())
	d := day(2025, time.March, 10)

	aggregates := s.Aggregate(
		[]*domain.Prestation{newPrestation("Coiffure", d, 15, 0)},
		[]*domain.Expense{newExpense("Loyer", d, 0, 100)},
		weekOf(d),
	)

	agg := aggregates[len(aggregates)-1]
	assertDecimalEqual(t, 15, agg.RevenueByCategory[domain.FallbackCategory])
	assertDecimalEqual(t, 100, agg.ExpensesByCategory[domain.FallbackCategory])
	assertDecimalEqual(t, 15, agg.TotalRevenue, "aggregation stays total-preserving")
	assertDecimalEqual(t, 100, agg.TotalExpenses)
}

func TestAggregateExcludesOutOfWindowTransactions(t *testing.T) {
	s := NewAggregationService(domain.DefaultCategorySet())
	d := day(2025, time.March, 10)
	intervals := weekOf(d)

	aggregates := s.Aggregate(
		[]*domain.Prestation{
			newPrestation("Manucure", day(2024, time.March, 10), 100, 0),
			newPrestation("Manucure", day(2025, time.June, 1), 100, 0),
		},
		nil,
		intervals,
	)

	for _, agg := range aggregates {
		assertDecimalEqual(t, 0, agg.TotalRevenue)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	s := NewAggregationService(domain.DefaultCategorySet())
	intervals := weekOf(day(2025, time.March, 10))

	aggregates := s.Aggregate(nil, nil, intervals)
	require.Len(t, aggregates, len(intervals))

	set := domain.DefaultCategorySet()
	for _, agg := range aggregates {
		require.Len(t, agg.RevenueByCategory, len(set.Revenue))
		require.Len(t, agg.ExpensesByCategory, len(set.Expenses))
		for _, c := range set.Revenue {
			assertDecimalEqual(t, 0, agg.RevenueByCategory[c.Name])
		}
		for _, c := range set.Expenses {
			assertDecimalEqual(t, 0, agg.ExpensesByCategory[c.Name])
		}
		assertDecimalEqual(t, 0, agg.TotalRevenue)
		assertDecimalEqual(t, 0, agg.TotalExpenses)
		assertDecimalEqual(t, 0, agg.NetProfit)
	}
}

// Totals are always re-derived from the category maps, and the payment
// sub-buckets sum back to the total buckets.
func TestAggregateConservation(t *testing.T) {
	s := NewAggregationService(domain.DefaultCategorySet())
	d := day(2025, time.March, 10)

	prestations := []*domain.Prestation{
		newPrestation("Manucure", d, 30, 0),
		newPrestation("Pédicure", d.AddDate(0, 0, -1), 0, 45),
		newPrestation("Soins", d.AddDate(0, 0, -2), 12, 18),
		newPrestation("Inconnu", d, 5, 5),
	}
	expenses := []*domain.Expense{
		newExpense("Fournisseur ongle", d, 20, 0),
		newExpense("Divers", d.AddDate(0, 0, -3), 0, 7),
	}

	aggregates := s.Aggregate(prestations, expenses, weekOf(d))

	for _, agg := range aggregates {
		revSum := decimal.Zero
		cashSum := decimal.Zero
		cardSum := decimal.Zero
		for name, v := range agg.RevenueByCategory {
			revSum = revSum.Add(v)
			cashSum = cashSum.Add(agg.CashRevenueByCategory[name])
			cardSum = cardSum.Add(agg.CardRevenueByCategory[name])
		}
		assert.True(t, agg.TotalRevenue.Equal(revSum))
		assert.True(t, agg.TotalRevenue.Equal(cashSum.Add(cardSum)), "cash+card must reconstruct the revenue total")

		expSum := decimal.Zero
		for _, v := range agg.ExpensesByCategory {
			expSum = expSum.Add(v)
		}
		assert.True(t, agg.TotalExpenses.Equal(expSum))
		assert.True(t, agg.NetProfit.Equal(agg.TotalRevenue.Sub(agg.TotalExpenses)))
		assert.True(t, agg.CashNetProfit.Equal(agg.CashRevenue.Sub(agg.CashExpenses)))
		assert.True(t, agg.CardNetProfit.Equal(agg.CardRevenue.Sub(agg.CardExpenses)))
	}
}

func TestAggregateBoundaryMembership(t *testing.T) {
	s := NewAggregationService(domain.DefaultCategorySet())
	ws := NewWindowService()
	intervals := ws.ComputeIntervals(domain.GranularityMonth, day(2025, time.March, 15), true)

	// Dated exactly on the last day of January: belongs to January, not February.
	aggregates := s.Aggregate(
		[]*domain.Prestation{newPrestation("Lissages", day(2025, time.January, 31), 80, 0)},
		nil,
		intervals,
	)

	var jan, feb domain.PeriodAggregate
	for _, agg := range aggregates {
		switch agg.Interval.Start.Month() {
		case time.January:
			jan = agg
		case time.February:
			feb = agg
		}
	}
	assertDecimalEqual(t, 80, jan.TotalRevenue)
	assertDecimalEqual(t, 0, feb.TotalRevenue)
}
