package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodCard  PaymentMethod = "card"
	PaymentMethodMixed PaymentMethod = "mixed"
)

// Prestation is a revenue-generating service transaction (a salon service
// rendered to a client). Payment is recorded as a cash/card split; a single
// prestation may be paid partly in cash and partly by card.
type Prestation struct {
	ID            int64           `json:"id"`
	OwnerEmail    string          `json:"ownerEmail"`
	Category      string          `json:"category"`
	Date          time.Time       `json:"date"`
	Notes         *string         `json:"notes,omitempty"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	CashAmount    decimal.Decimal `json:"cashAmount"`
	CardAmount    decimal.Decimal `json:"cardAmount"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Total returns the derived amount of the prestation. The split fields are
// the source of truth; a legacy stored amount is never trusted over this sum.
func (p *Prestation) Total() decimal.Decimal {
	return p.CashAmount.Add(p.CardAmount)
}

// UpdatePrestationData holds the updatable fields of a prestation
type UpdatePrestationData struct {
	Category      string
	Date          time.Time
	Notes         *string
	PaymentMethod PaymentMethod
	CashAmount    decimal.Decimal
	CardAmount    decimal.Decimal
}

// PrestationRepository defines persistence operations for prestations.
// ListByOwner returns the complete set for the owner, newest first; callers
// filter in memory. An unknown owner yields an empty slice, never an error.
type PrestationRepository interface {
	Create(prestation *Prestation) (*Prestation, error)
	GetByID(ownerEmail string, id int64) (*Prestation, error)
	ListByOwner(ownerEmail string) ([]*Prestation, error)
	Update(ownerEmail string, id int64, data *UpdatePrestationData) (*Prestation, error)
	Delete(ownerEmail string, id int64) error
}

// Validation constants
const (
	MaxNotesLength       = 1000
	MaxDescriptionLength = 1000
)
