package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maelyb/eclat/eclat-backend/internal/domain"
	"github.com/maelyb/eclat/eclat-backend/internal/util"
	"github.com/maelyb/eclat/eclat-backend/internal/websocket"
)

// ExpenseService handles expense-related business logic
type ExpenseService struct {
	expenseRepo domain.ExpenseRepository
	categories  domain.CategorySet
	publisher   websocket.EventPublisher
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo domain.ExpenseRepository, categories domain.CategorySet, publisher websocket.EventPublisher) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		categories:  categories,
		publisher:   publisher,
	}
}

// CreateExpenseInput holds the input for creating an expense
type CreateExpenseInput struct {
	Category      string
	Description   string
	Date          *time.Time
	Notes         *string
	PaymentMethod domain.PaymentMethod
	CashAmount    decimal.Decimal
	CardAmount    decimal.Decimal
}

func (s *ExpenseService) validate(input CreateExpenseInput) (string, *string, error) {
	if !s.categories.HasExpense(input.Category) {
		return "", nil, domain.ErrUnknownCategory
	}
	if input.Date == nil {
		return "", nil, domain.ErrDateRequired
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return "", nil, domain.ErrDescriptionRequired
	}
	if len(description) > domain.MaxDescriptionLength {
		return "", nil, domain.ErrDescriptionTooLong
	}
	// New expenses are paid one way or the other; stored mixed splits from
	// older records still aggregate correctly
	if err := validateSplit(input.PaymentMethod, input.CashAmount, input.CardAmount, false); err != nil {
		return "", nil, err
	}
	notes, err := trimNotes(input.Notes)
	if err != nil {
		return "", nil, err
	}
	return description, notes, nil
}

// CreateExpense creates a new expense with validation
func (s *ExpenseService) CreateExpense(ownerEmail string, input CreateExpenseInput) (*domain.Expense, error) {
	description, notes, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		OwnerEmail:    ownerEmail,
		Category:      input.Category,
		Description:   description,
		Date:          util.Day(*input.Date),
		Notes:         notes,
		PaymentMethod: input.PaymentMethod,
		CashAmount:    input.CashAmount,
		CardAmount:    input.CardAmount,
	}

	created, err := s.expenseRepo.Create(expense)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ownerEmail, websocket.ExpenseCreated(created))
	return created, nil
}

// GetExpenses retrieves all expenses for an owner, newest first
func (s *ExpenseService) GetExpenses(ownerEmail string) ([]*domain.Expense, error) {
	return s.expenseRepo.ListByOwner(ownerEmail)
}

// GetExpenseByID retrieves a single expense scoped to its owner
func (s *ExpenseService) GetExpenseByID(ownerEmail string, id int64) (*domain.Expense, error) {
	return s.expenseRepo.GetByID(ownerEmail, id)
}

// UpdateExpense updates an existing expense with validation
func (s *ExpenseService) UpdateExpense(ownerEmail string, id int64, input CreateExpenseInput) (*domain.Expense, error) {
	description, notes, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	data := &domain.UpdateExpenseData{
		Category:      input.Category,
		Description:   description,
		Date:          util.Day(*input.Date),
		Notes:         notes,
		PaymentMethod: input.PaymentMethod,
		CashAmount:    input.CashAmount,
		CardAmount:    input.CardAmount,
	}

	updated, err := s.expenseRepo.Update(ownerEmail, id, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ownerEmail, websocket.ExpenseUpdated(updated))
	return updated, nil
}

// DeleteExpense deletes an expense
func (s *ExpenseService) DeleteExpense(ownerEmail string, id int64) error {
	if err := s.expenseRepo.Delete(ownerEmail, id); err != nil {
		return err
	}
	s.publisher.Publish(ownerEmail, websocket.ExpenseDeleted(map[string]int64{"id": id}))
	return nil
}
