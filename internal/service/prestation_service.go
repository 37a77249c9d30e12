package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maelyb/eclat/eclat-backend/internal/domain"
	"github.com/maelyb/eclat/eclat-backend/internal/util"
	"github.com/maelyb/eclat/eclat-backend/internal/websocket"
)

// PrestationService handles prestation-related business logic
type PrestationService struct {
	prestationRepo domain.PrestationRepository
	categories     domain.CategorySet
	publisher      websocket.EventPublisher
}

// NewPrestationService creates a new PrestationService
func NewPrestationService(prestationRepo domain.PrestationRepository, categories domain.CategorySet, publisher websocket.EventPublisher) *PrestationService {
	return &PrestationService{
		prestationRepo: prestationRepo,
		categories:     categories,
		publisher:      publisher,
	}
}

// CreatePrestationInput holds the input for creating a prestation
type CreatePrestationInput struct {
	Category      string
	Date          *time.Time
	Notes         *string
	PaymentMethod domain.PaymentMethod
	CashAmount    decimal.Decimal
	CardAmount    decimal.Decimal
}

// CreatePrestation creates a new prestation with validation
func (s *PrestationService) CreatePrestation(ownerEmail string, input CreatePrestationInput) (*domain.Prestation, error) {
	if !s.categories.HasRevenue(input.Category) {
		return nil, domain.ErrUnknownCategory
	}
	if input.Date == nil {
		return nil, domain.ErrDateRequired
	}
	if err := validateSplit(input.PaymentMethod, input.CashAmount, input.CardAmount, true); err != nil {
		return nil, err
	}
	notes, err := trimNotes(input.Notes)
	if err != nil {
		return nil, err
	}

	prestation := &domain.Prestation{
		OwnerEmail:    ownerEmail,
		Category:      input.Category,
		Date:          util.Day(*input.Date),
		Notes:         notes,
		PaymentMethod: input.PaymentMethod,
		CashAmount:    input.CashAmount,
		CardAmount:    input.CardAmount,
	}

	created, err := s.prestationRepo.Create(prestation)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ownerEmail, websocket.PrestationCreated(created))
	return created, nil
}

// GetPrestations retrieves all prestations for an owner, newest first
func (s *PrestationService) GetPrestations(ownerEmail string) ([]*domain.Prestation, error) {
	return s.prestationRepo.ListByOwner(ownerEmail)
}

// GetPrestationByID retrieves a single prestation scoped to its owner
func (s *PrestationService) GetPrestationByID(ownerEmail string, id int64) (*domain.Prestation, error) {
	return s.prestationRepo.GetByID(ownerEmail, id)
}

// UpdatePrestation updates an existing prestation with validation
func (s *PrestationService) UpdatePrestation(ownerEmail string, id int64, input CreatePrestationInput) (*domain.Prestation, error) {
	if !s.categories.HasRevenue(input.Category) {
		return nil, domain.ErrUnknownCategory
	}
	if input.Date == nil {
		return nil, domain.ErrDateRequired
	}
	if err := validateSplit(input.PaymentMethod, input.CashAmount, input.CardAmount, true); err != nil {
		return nil, err
	}
	notes, err := trimNotes(input.Notes)
	if err != nil {
		return nil, err
	}

	data := &domain.UpdatePrestationData{
		Category:      input.Category,
		Date:          util.Day(*input.Date),
		Notes:         notes,
		PaymentMethod: input.PaymentMethod,
		CashAmount:    input.CashAmount,
		CardAmount:    input.CardAmount,
	}

	updated, err := s.prestationRepo.Update(ownerEmail, id, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ownerEmail, websocket.PrestationUpdated(updated))
	return updated, nil
}

// DeletePrestation deletes a prestation
func (s *PrestationService) DeletePrestation(ownerEmail string, id int64) error {
	if err := s.prestationRepo.Delete(ownerEmail, id); err != nil {
		return err
	}
	s.publisher.Publish(ownerEmail, websocket.PrestationDeleted(map[string]int64{"id": id}))
	return nil
}

// validateSplit checks that the cash/card amounts are non-negative, sum to a
// positive total, and agree with the declared payment method. Mixed is only
// accepted where allowMixed is set.
func validateSplit(method domain.PaymentMethod, cash, card decimal.Decimal, allowMixed bool) error {
	if cash.IsNegative() || card.IsNegative() {
		return domain.ErrNegativeAmount
	}
	if cash.Add(card).LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	switch method {
	case domain.PaymentMethodCash:
		if !card.IsZero() {
			return domain.ErrAmountMethodMismatch
		}
	case domain.PaymentMethodCard:
		if !cash.IsZero() {
			return domain.ErrAmountMethodMismatch
		}
	case domain.PaymentMethodMixed:
		if !allowMixed {
			return domain.ErrInvalidPaymentMethod
		}
		if cash.IsZero() || card.IsZero() {
			return domain.ErrAmountMethodMismatch
		}
	default:
		return domain.ErrInvalidPaymentMethod
	}
	return nil
}

// trimNotes trims free-text notes and drops them entirely when blank
func trimNotes(notes *string) (*string, error) {
	if notes == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) > domain.MaxNotesLength {
		return nil, domain.ErrNotesTooLong
	}
	return &trimmed, nil
}
