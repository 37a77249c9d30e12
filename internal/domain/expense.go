package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an operating cost record (supplies, rent, salon equipment).
// Like prestations, expenses carry a cash/card split; in practice an expense
// is paid entirely one way, so exactly one side of the split is non-zero.
type Expense struct {
	ID            int64           `json:"id"`
	OwnerEmail    string          `json:"ownerEmail"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	Notes         *string         `json:"notes,omitempty"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	CashAmount    decimal.Decimal `json:"cashAmount"`
	CardAmount    decimal.Decimal `json:"cardAmount"`
	ReceiptURL    *string         `json:"receiptUrl,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Total returns the derived amount of the expense.
func (e *Expense) Total() decimal.Decimal {
	return e.CashAmount.Add(e.CardAmount)
}

// UpdateExpenseData holds the updatable fields of an expense
type UpdateExpenseData struct {
	Category      string
	Description   string
	Date          time.Time
	Notes         *string
	PaymentMethod PaymentMethod
	CashAmount    decimal.Decimal
	CardAmount    decimal.Decimal
}

// ExpenseRepository defines persistence operations for expenses
type ExpenseRepository interface {
	Create(expense *Expense) (*Expense, error)
	GetByID(ownerEmail string, id int64) (*Expense, error)
	ListByOwner(ownerEmail string) ([]*Expense, error)
	Update(ownerEmail string, id int64, data *UpdateExpenseData) (*Expense, error)
	SetReceiptURL(ownerEmail string, id int64, receiptURL *string) (*Expense, error)
	Delete(ownerEmail string, id int64) error
}
