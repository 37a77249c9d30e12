package service

import (
	"time"

	"github.com/maelyb/eclat/eclat-backend/internal/domain"
	"github.com/maelyb/eclat/eclat-backend/internal/util"
)

// WindowService computes the reporting window: the ordered list of intervals
// for a granularity and anchor, page-wise navigation, and the future guard.
type WindowService struct {
	now func() time.Time
}

// NewWindowService creates a new window service using the real clock.
func NewWindowService() *WindowService {
	return &WindowService{now: time.Now}
}

// NewWindowServiceWithClock creates a window service with an injected clock.
func NewWindowServiceWithClock(now func() time.Time) *WindowService {
	return &WindowService{now: now}
}

// LookbackCount returns the number of buckets shown for a granularity.
// Compact mode shows the shorter variant; the year window is always 5.
func (s *WindowService) LookbackCount(granularity domain.Granularity, compact bool) int {
	switch granularity {
	case domain.GranularityDay:
		if compact {
			return 7
		}
		return 14
	case domain.GranularityWeek:
		if compact {
			return 6
		}
		return 8
	case domain.GranularityMonth:
		if compact {
			return 6
		}
		return 12
	case domain.GranularityYear:
		return 5
	}
	return 0
}

// ComputeIntervals returns lookback-many contiguous intervals ending in the
// bucket containing anchor, oldest first. Start and End are inclusive UTC
// midnights.
func (s *WindowService) ComputeIntervals(granularity domain.Granularity, anchor time.Time, compact bool) []domain.TimeInterval {
	count := s.LookbackCount(granularity, compact)
	intervals := make([]domain.TimeInterval, 0, count)

	switch granularity {
	case domain.GranularityDay:
		last := util.Day(anchor)
		for i := count - 1; i >= 0; i-- {
			day := last.AddDate(0, 0, -i)
			intervals = append(intervals, domain.TimeInterval{
				Start: day,
				End:   day,
				Label: util.FormatDayLabel(day),
			})
		}
	case domain.GranularityWeek:
		lastStart := util.StartOfWeek(anchor)
		for i := count - 1; i >= 0; i-- {
			start := lastStart.AddDate(0, 0, -7*i)
			end := start.AddDate(0, 0, 6)
			intervals = append(intervals, domain.TimeInterval{
				Start: start,
				End:   end,
				Label: util.FormatWeekLabel(start, end),
			})
		}
	case domain.GranularityMonth:
		lastStart := util.StartOfMonth(anchor)
		for i := count - 1; i >= 0; i-- {
			start := lastStart.AddDate(0, -i, 0)
			intervals = append(intervals, domain.TimeInterval{
				Start: start,
				End:   util.EndOfMonth(start),
				Label: util.FormatMonthLabel(start),
			})
		}
	case domain.GranularityYear:
		lastStart := util.StartOfYear(anchor)
		for i := count - 1; i >= 0; i-- {
			start := lastStart.AddDate(-i, 0, 0)
			intervals = append(intervals, domain.TimeInterval{
				Start: start,
				End:   util.EndOfYear(start),
				Label: util.FormatYearLabel(start),
			})
		}
	}
	return intervals
}

// Navigate shifts the anchor by a full page of buckets, so repeated
// navigation tiles the timeline without overlap. It never clamps: callers
// must consult CanNavigateNext before moving forward.
func (s *WindowService) Navigate(direction domain.Direction, granularity domain.Granularity, anchor time.Time, compact bool) time.Time {
	count := s.LookbackCount(granularity, compact)
	if direction == domain.DirectionPrevious {
		count = -count
	}
	a := util.Day(anchor)
	switch granularity {
	case domain.GranularityDay:
		return a.AddDate(0, 0, count)
	case domain.GranularityWeek:
		return a.AddDate(0, 0, 7*count)
	case domain.GranularityMonth:
		// Shift from the month start: AddDate normalizes day-of-month
		// overflow (Aug 31 minus 6 months lands in March), which would
		// skip or double a bucket.
		return util.StartOfMonth(a).AddDate(0, count, 0)
	case domain.GranularityYear:
		return util.StartOfYear(a).AddDate(count, 0, 0)
	}
	return a
}

// CanNavigateNext reports whether moving the window forward stays within the
// present: it is false exactly when the forward anchor lands strictly after
// today.
func (s *WindowService) CanNavigateNext(granularity domain.Granularity, anchor time.Time, compact bool) bool {
	next := s.Navigate(domain.DirectionNext, granularity, anchor, compact)
	return !util.Day(next).After(util.Day(s.now()))
}
