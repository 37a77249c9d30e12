package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maelyb/eclat/eclat-backend/internal/domain"
	"github.com/maelyb/eclat/eclat-backend/internal/testutil"
)

func newDashboardService(now func() time.Time) (*DashboardService, *testutil.MockPrestationRepository, *testutil.MockExpenseRepository) {
	prestationRepo := testutil.NewMockPrestationRepository()
	expenseRepo := testutil.NewMockExpenseRepository()
	set := domain.DefaultCategorySet()
	s := NewDashboardService(
		prestationRepo,
		expenseRepo,
		NewWindowServiceWithClock(now),
		NewAggregationService(set),
		NewSeriesService(set),
	)
	s.now = now
	return s, prestationRepo, expenseRepo
}

func TestGetChart(t *testing.T) {
	now := fixedClock(2025, time.March, 12)
	s, prestationRepo, expenseRepo := newDashboardService(now)

	prestationRepo.Add(newPrestation("Manucure", day(2025, time.March, 10), 30, 20))
	expenseRepo.Add(newExpense("Fournisseur ongle", day(2025, time.March, 11), 10, 0))

	result, err := s.GetChart(testOwner, ChartOptions{
		Granularity: domain.GranularityDay,
		Compact:     true,
		Payment:     domain.PaymentFilterTotal,
	})
	require.NoError(t, err)

	require.Len(t, result.Intervals, 7)
	assert.Equal(t, day(2025, time.March, 12), result.Anchor, "zero anchor defaults to now")
	assert.False(t, result.CanNavigateNext)
	require.Len(t, result.Details, 7)

	manucure, ok := findDataset(result.Series, "Manucure")
	require.True(t, ok)
	assert.True(t, manucure.Values[4].Equal(decimalInt(50)), "March 10 is the fifth bucket of a window starting March 6")

	ongle, ok := findDataset(result.Series, "Fournisseur ongle")
	require.True(t, ok)
	assert.True(t, ongle.Values[5].Equal(decimalInt(-10)))
}

func TestGetChartEmptyOwner(t *testing.T) {
	now := fixedClock(2025, time.March, 12)
	s, _, _ := newDashboardService(now)

	result, err := s.GetChart("unknown@example.com", ChartOptions{
		Granularity: domain.GranularityMonth,
		Payment:     domain.PaymentFilterTotal,
	})
	require.NoError(t, err, "missing owner is empty data, not an error")

	require.Len(t, result.Intervals, 12)
	require.Len(t, result.Series.Datasets, 1, "only the profit line survives an empty window")
	for _, v := range result.Series.Datasets[0].Values {
		assert.True(t, v.IsZero())
	}
}

func TestGetChartExplicitAnchor(t *testing.T) {
	now := fixedClock(2025, time.March, 12)
	s, prestationRepo, _ := newDashboardService(now)

	prestationRepo.Add(newPrestation("Soins", day(2024, time.June, 15), 100, 0))

	result, err := s.GetChart(testOwner, ChartOptions{
		Granularity: domain.GranularityMonth,
		Anchor:      day(2024, time.June, 20),
		Compact:     true,
		Payment:     domain.PaymentFilterTotal,
	})
	require.NoError(t, err)

	assert.True(t, result.CanNavigateNext, "past window can page forward")
	soins, ok := findDataset(result.Series, "Soins")
	require.True(t, ok)
	assert.True(t, soins.Values[len(soins.Values)-1].Equal(decimalInt(100)))
}

func TestDashboardNavigate(t *testing.T) {
	now := fixedClock(2025, time.March, 12)
	s, _, _ := newDashboardService(now)

	result := s.Navigate(domain.DirectionPrevious, domain.GranularityWeek, day(2025, time.March, 12), false)
	assert.Equal(t, day(2025, time.January, 15), result.Anchor)
	assert.True(t, result.CanNavigateNext)

	back := s.Navigate(domain.DirectionNext, domain.GranularityWeek, result.Anchor, false)
	assert.Equal(t, day(2025, time.March, 12), back.Anchor)
	assert.False(t, back.CanNavigateNext)
}

func TestGetSummary(t *testing.T) {
	now := fixedClock(2025, time.March, 12)
	s, prestationRepo, expenseRepo := newDashboardService(now)

	prestationRepo.Add(newPrestation("Manucure", day(2025, time.March, 10), 30, 20))
	prestationRepo.Add(newPrestation("Soins", day(2025, time.February, 5), 40, 0))
	expenseRepo.Add(newExpense("Divers", day(2025, time.March, 10), 0, 15))

	stats, err := s.GetSummary(testOwner)
	require.NoError(t, err)

	assert.True(t, stats.Revenue.Cash.Equal(decimalInt(70)))
	assert.True(t, stats.Revenue.Card.Equal(decimalInt(20)))
	assert.True(t, stats.Revenue.Total.Equal(decimalInt(90)))
	assert.True(t, stats.Expenses.Total.Equal(decimalInt(15)))
	assert.True(t, stats.NetProfit.Equal(decimalInt(75)))
	assert.True(t, stats.CurrentMonthRevenue.Equal(decimalInt(50)), "February revenue stays out of the March figure")
	assert.Equal(t, 2, stats.PrestationCount)
	assert.Equal(t, 1, stats.ExpenseCount)
	assert.Equal(t, 2, stats.ActiveDays, "prestation and expense on the same day count once")
}

func TestGetSummaryEmpty(t *testing.T) {
	now := fixedClock(2025, time.March, 12)
	s, _, _ := newDashboardService(now)

	stats, err := s.GetSummary(testOwner)
	require.NoError(t, err)
	assert.True(t, stats.Revenue.Total.IsZero())
	assert.True(t, stats.NetProfit.IsZero())
	assert.Equal(t, 0, stats.ActiveDays)
}
