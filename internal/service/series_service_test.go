package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maelyb/eclat/eclat-backend/internal/domain"
)

func decimalInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func buildAggregates(t *testing.T, prestations []*domain.Prestation, expenses []*domain.Expense) []domain.PeriodAggregate {
	t.Helper()
	intervals := weekOf(day(2025, time.March, 10))
	return NewAggregationService(domain.DefaultCategorySet()).Aggregate(prestations, expenses, intervals)
}

func findDataset(series domain.ChartSeries, label string) (domain.Dataset, bool) {
	for _, ds := range series.Datasets {
		if ds.Label == label {
			return ds, true
		}
	}
	return domain.Dataset{}, false
}

func TestProjectSeriesSuppressesInactiveCategories(t *testing.T) {
	s := NewSeriesService(domain.DefaultCategorySet())
	d := day(2025, time.March, 10)

	aggregates := buildAggregates(t,
		[]*domain.Prestation{newPrestation("Manucure", d, 30, 0)},
		[]*domain.Expense{newExpense("Fournisseur ongle", d, 10, 0)},
	)
	series := s.ProjectSeries(aggregates, domain.PaymentFilterTotal)

	require.Len(t, series.Labels, len(aggregates))

	manucure, ok := findDataset(series, "Manucure")
	require.True(t, ok)
	assert.Equal(t, domain.DatasetKindBar, manucure.Kind)
	assert.Equal(t, domain.StackRevenue, manucure.Stack)
	assert.Equal(t, "#ec4899", manucure.Color)
	require.Len(t, manucure.Values, len(aggregates))
	assert.True(t, manucure.Values[len(manucure.Values)-1].Equal(decimalInt(30)))
	// zero entries of an active category are kept
	assert.True(t, manucure.Values[0].IsZero())

	_, ok = findDataset(series, "Pédicure")
	assert.False(t, ok, "all-zero category must be suppressed")
	_, ok = findDataset(series, "Fournisseur cheveux")
	assert.False(t, ok)
}

func TestProjectSeriesNegatesExpenses(t *testing.T) {
	s := NewSeriesService(domain.DefaultCategorySet())
	d := day(2025, time.March, 10)

	aggregates := buildAggregates(t, nil,
		[]*domain.Expense{newExpense("Fournisseur ongle", d, 25, 0)},
	)
	series := s.ProjectSeries(aggregates, domain.PaymentFilterTotal)

	ds, ok := findDataset(series, "Fournisseur ongle")
	require.True(t, ok)
	assert.Equal(t, domain.StackExpenses, ds.Stack)
	assert.True(t, ds.Values[len(ds.Values)-1].Equal(decimalInt(-25)))
}

func TestProjectSeriesNoNegativeZero(t *testing.T) {
	s := NewSeriesService(domain.DefaultCategorySet())
	d := day(2025, time.March, 10)

	aggregates := buildAggregates(t, nil,
		[]*domain.Expense{newExpense("Fournisseur ongle", d, 25, 0)},
	)
	series := s.ProjectSeries(aggregates, domain.PaymentFilterTotal)

	ds, ok := findDataset(series, "Fournisseur ongle")
	require.True(t, ok)
	for i, v := range ds.Values {
		if v.IsZero() {
			assert.Equal(t, "0", v.String(), "value %d renders as -0", i)
		}
	}
}

func TestProjectSeriesProfitLineAlwaysPresent(t *testing.T) {
	s := NewSeriesService(domain.DefaultCategorySet())

	series := s.ProjectSeries(buildAggregates(t, nil, nil), domain.PaymentFilterTotal)
	require.Len(t, series.Datasets, 1, "empty window still carries the profit line")

	line := series.Datasets[0]
	assert.Equal(t, domain.DatasetKindLine, line.Kind)
	assert.Equal(t, domain.ProfitLineColor, line.Color)
	require.Len(t, line.PointColors, len(series.Labels))
	for _, c := range line.PointColors {
		assert.Equal(t, domain.ProfitPointPositiveColor, c, "zero profit counts as non-negative")
	}
}

func TestProjectSeriesProfitPointColors(t *testing.T) {
	s := NewSeriesService(domain.DefaultCategorySet())
	d := day(2025, time.March, 10)

	aggregates := buildAggregates(t,
		[]*domain.Prestation{newPrestation("Manucure", d, 30, 0)},
		[]*domain.Expense{newExpense("Divers", d.AddDate(0, 0, -1), 50, 0)},
	)
	series := s.ProjectSeries(aggregates, domain.PaymentFilterTotal)

	line, ok := findDataset(series, "Bénéfice net")
	require.True(t, ok)

	n := len(line.Values)
	assert.True(t, line.Values[n-1].Equal(decimalInt(30)))
	assert.Equal(t, domain.ProfitPointPositiveColor, line.PointColors[n-1])
	assert.True(t, line.Values[n-2].Equal(decimalInt(-50)), "losses propagate unclamped")
	assert.Equal(t, domain.ProfitPointNegativeColor, line.PointColors[n-2])
}

func TestProjectSeriesPaymentFilter(t *testing.T) {
	s := NewSeriesService(domain.DefaultCategorySet())
	d := day(2025, time.March, 10)

	aggregates := buildAggregates(t,
		[]*domain.Prestation{newPrestation("Manucure", d, 30, 20)},
		nil,
	)

	cash := s.ProjectSeries(aggregates, domain.PaymentFilterCash)
	ds, ok := findDataset(cash, "Manucure")
	require.True(t, ok)
	assert.True(t, ds.Values[len(ds.Values)-1].Equal(decimalInt(30)))

	card := s.ProjectSeries(aggregates, domain.PaymentFilterCard)
	ds, ok = findDataset(card, "Manucure")
	require.True(t, ok)
	assert.True(t, ds.Values[len(ds.Values)-1].Equal(decimalInt(20)))

	// card-only activity disappears entirely under the cash filter
	cardOnly := buildAggregates(t, []*domain.Prestation{newPrestation("Soins", d, 0, 15)}, nil)
	filtered := s.ProjectSeries(cardOnly, domain.PaymentFilterCash)
	_, ok = findDataset(filtered, "Soins")
	assert.False(t, ok)
}

func TestIntervalDetails(t *testing.T) {
	s := NewSeriesService(domain.DefaultCategorySet())
	d := day(2025, time.March, 10)

	aggregates := buildAggregates(t,
		[]*domain.Prestation{
			newPrestation("Manucure", d, 30, 0),
			newPrestation("Soins", d, 0, 20),
		},
		[]*domain.Expense{newExpense("Fournisseur ongle", d, 10, 0)},
	)
	details := s.IntervalDetails(aggregates, domain.PaymentFilterTotal)
	require.Len(t, details, len(aggregates))

	last := details[len(details)-1]
	assert.Equal(t, aggregates[len(aggregates)-1].Interval.Label, last.Label)
	require.Len(t, last.Revenue, 2, "zero categories omitted from the detail")
	assert.Equal(t, "Manucure", last.Revenue[0].Category)
	assert.True(t, last.Revenue[0].Amount.Equal(decimalInt(30)))
	require.Len(t, last.Expenses, 1)
	assert.True(t, last.Expenses[0].Amount.Equal(decimalInt(-10)), "expense detail is signed like the chart")
	assert.True(t, last.Total.Equal(decimalInt(50)))
	assert.True(t, last.Spent.Equal(decimalInt(10)))
	assert.True(t, last.NetProfit.Equal(decimalInt(40)))

	empty := details[0]
	assert.Empty(t, empty.Revenue)
	assert.Empty(t, empty.Expenses)
	assert.True(t, empty.NetProfit.IsZero())
}
