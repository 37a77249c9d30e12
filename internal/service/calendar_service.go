package service

import (
	"sort"
	"time"

	"github.com/maelyb/eclat/eclat-backend/internal/domain"
	"github.com/maelyb/eclat/eclat-backend/internal/util"
)

// CalendarService produces the per-day activity list for the calendar view.
type CalendarService struct {
	prestationRepo domain.PrestationRepository
	expenseRepo    domain.ExpenseRepository
}

// NewCalendarService creates a new CalendarService
func NewCalendarService(prestationRepo domain.PrestationRepository, expenseRepo domain.ExpenseRepository) *CalendarService {
	return &CalendarService{
		prestationRepo: prestationRepo,
		expenseRepo:    expenseRepo,
	}
}

// GetDailyStats combines prestations and expenses into per-day stats,
// newest day first. Days with no activity are absent.
func (s *CalendarService) GetDailyStats(ownerEmail string) ([]domain.DayStats, error) {
	prestations, err := s.prestationRepo.ListByOwner(ownerEmail)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListByOwner(ownerEmail)
	if err != nil {
		return nil, err
	}

	byDay := make(map[time.Time]*domain.DayStats)
	dayOf := func(t time.Time) *domain.DayStats {
		d := util.Day(t)
		stats, ok := byDay[d]
		if !ok {
			stats = &domain.DayStats{Date: d}
			byDay[d] = stats
		}
		return stats
	}

	for _, p := range prestations {
		stats := dayOf(p.Date)
		stats.Revenue = stats.Revenue.Add(p.Total())
		stats.CashRevenue = stats.CashRevenue.Add(p.CashAmount)
		stats.CardRevenue = stats.CardRevenue.Add(p.CardAmount)
		stats.PrestationCount++
	}
	for _, e := range expenses {
		stats := dayOf(e.Date)
		stats.Expenses = stats.Expenses.Add(e.Total())
		stats.ExpenseCount++
	}

	days := make([]domain.DayStats, 0, len(byDay))
	for _, stats := range byDay {
		stats.NetProfit = stats.Revenue.Sub(stats.Expenses)
		stats.TransactionCount = stats.PrestationCount + stats.ExpenseCount
		days = append(days, *stats)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
	return days, nil
}
