package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Granularity selects the bucket size of the dashboard window.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// ParseGranularity validates a granularity received over the wire.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityYear:
		return Granularity(s), nil
	}
	return "", ErrInvalidGranularity
}

// Direction is a window navigation step.
type Direction string

const (
	DirectionPrevious Direction = "previous"
	DirectionNext     Direction = "next"
)

// ParseDirection validates a navigation direction received over the wire.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionPrevious, DirectionNext:
		return Direction(s), nil
	}
	return "", ErrInvalidDirection
}

// PaymentFilter restricts chart figures to one side of the payment split.
type PaymentFilter string

const (
	PaymentFilterTotal PaymentFilter = "total"
	PaymentFilterCash  PaymentFilter = "cash"
	PaymentFilterCard  PaymentFilter = "card"
)

// ParsePaymentFilter validates a payment filter received over the wire.
func ParsePaymentFilter(s string) (PaymentFilter, error) {
	switch PaymentFilter(s) {
	case PaymentFilterTotal, PaymentFilterCash, PaymentFilterCard:
		return PaymentFilter(s), nil
	}
	return "", ErrInvalidPaymentFilter
}

// TimeInterval is one bucket of the dashboard window. Start and End are
// UTC midnights and both ends are inclusive: a record dated exactly End
// belongs to this interval.
type TimeInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// Contains reports whether the day d falls inside the interval.
func (ti TimeInterval) Contains(d time.Time) bool {
	return !d.Before(ti.Start) && !d.After(ti.End)
}

// PeriodAggregate holds the per-category and derived totals of a single
// interval, split by payment method. Category maps are keyed by canonical
// category name and always carry every configured category, zeros included.
type PeriodAggregate struct {
	Interval TimeInterval

	RevenueByCategory     map[string]decimal.Decimal
	CashRevenueByCategory map[string]decimal.Decimal
	CardRevenueByCategory map[string]decimal.Decimal

	ExpensesByCategory     map[string]decimal.Decimal
	CashExpensesByCategory map[string]decimal.Decimal
	CardExpensesByCategory map[string]decimal.Decimal

	TotalRevenue decimal.Decimal
	CashRevenue  decimal.Decimal
	CardRevenue  decimal.Decimal

	TotalExpenses decimal.Decimal
	CashExpenses  decimal.Decimal
	CardExpenses  decimal.Decimal

	NetProfit     decimal.Decimal
	CashNetProfit decimal.Decimal
	CardNetProfit decimal.Decimal
}

// DatasetKind distinguishes stacked bars from the profit overlay line.
type DatasetKind string

const (
	DatasetKindBar  DatasetKind = "bar"
	DatasetKindLine DatasetKind = "line"
)

// Stack group names for bar datasets.
const (
	StackRevenue  = "revenue"
	StackExpenses = "expenses"
)

// Dataset is one chart series aligned with the window's intervals.
// Expense values are negated so revenue and expense stacks grow in
// opposite directions. PointColors is populated only for the profit line.
type Dataset struct {
	Label       string            `json:"label"`
	Kind        DatasetKind       `json:"kind"`
	Stack       string            `json:"stack,omitempty"`
	Color       string            `json:"color"`
	Values      []decimal.Decimal `json:"values"`
	PointColors []string          `json:"pointColors,omitempty"`
}

// ChartSeries is the full projection of a window: one label per interval
// and the datasets drawn over them.
type ChartSeries struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// CategoryAmount is one line of an interval's tooltip breakdown.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// IntervalDetail is the per-interval tooltip payload: non-zero category
// amounts plus the interval's headline figures.
type IntervalDetail struct {
	Label     string           `json:"label"`
	Revenue   []CategoryAmount `json:"revenue"`
	Expenses  []CategoryAmount `json:"expenses"`
	Total     decimal.Decimal  `json:"total"`
	Spent     decimal.Decimal  `json:"spent"`
	NetProfit decimal.Decimal  `json:"netProfit"`
}

// DayStats summarizes one calendar day for the activity list.
type DayStats struct {
	Date             time.Time       `json:"date"`
	Revenue          decimal.Decimal `json:"revenue"`
	CashRevenue      decimal.Decimal `json:"cashRevenue"`
	CardRevenue      decimal.Decimal `json:"cardRevenue"`
	Expenses         decimal.Decimal `json:"expenses"`
	NetProfit        decimal.Decimal `json:"netProfit"`
	PrestationCount  int             `json:"prestationCount"`
	ExpenseCount     int             `json:"expenseCount"`
	TransactionCount int             `json:"transactionCount"`
}

// PaymentMethodStats splits a figure by how it was paid.
type PaymentMethodStats struct {
	Cash  decimal.Decimal `json:"cash"`
	Card  decimal.Decimal `json:"card"`
	Total decimal.Decimal `json:"total"`
}

// SummaryStats is the headline block of the dashboard.
type SummaryStats struct {
	Revenue             PaymentMethodStats `json:"revenue"`
	Expenses            PaymentMethodStats `json:"expenses"`
	NetProfit           decimal.Decimal    `json:"netProfit"`
	CurrentMonthRevenue decimal.Decimal    `json:"currentMonthRevenue"`
	PrestationCount     int                `json:"prestationCount"`
	ExpenseCount        int                `json:"expenseCount"`
	ActiveDays          int                `json:"activeDays"`
}
