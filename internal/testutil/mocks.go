package testutil

import (
	"sort"
	"time"

	"github.com/maelyb/eclat/eclat-backend/internal/domain"
	"github.com/maelyb/eclat/eclat-backend/internal/websocket"
)

// MockPrestationRepository is a mock implementation of domain.PrestationRepository
type MockPrestationRepository struct {
	Prestations map[int64]*domain.Prestation
	NextID      int64
	ListErr     error
}

// NewMockPrestationRepository creates a new MockPrestationRepository
func NewMockPrestationRepository() *MockPrestationRepository {
	return &MockPrestationRepository{
		Prestations: make(map[int64]*domain.Prestation),
		NextID:      1,
	}
}

// Add seeds a prestation directly, bypassing validation
func (m *MockPrestationRepository) Add(p *domain.Prestation) *domain.Prestation {
	if p.ID == 0 {
		p.ID = m.NextID
		m.NextID++
	}
	m.Prestations[p.ID] = p
	return p
}

// Create stores a new prestation
func (m *MockPrestationRepository) Create(p *domain.Prestation) (*domain.Prestation, error) {
	p.ID = m.NextID
	m.NextID++
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.Prestations[p.ID] = p
	return p, nil
}

// GetByID retrieves a prestation by ID scoped to its owner
func (m *MockPrestationRepository) GetByID(ownerEmail string, id int64) (*domain.Prestation, error) {
	p, ok := m.Prestations[id]
	if !ok || p.OwnerEmail != ownerEmail {
		return nil, domain.ErrPrestationNotFound
	}
	return p, nil
}

// ListByOwner returns all prestations for an owner, newest first
func (m *MockPrestationRepository) ListByOwner(ownerEmail string) ([]*domain.Prestation, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]*domain.Prestation, 0)
	for _, p := range m.Prestations {
		if p.OwnerEmail == ownerEmail {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Update modifies an existing prestation
func (m *MockPrestationRepository) Update(ownerEmail string, id int64, data *domain.UpdatePrestationData) (*domain.Prestation, error) {
	p, err := m.GetByID(ownerEmail, id)
	if err != nil {
		return nil, err
	}
	p.Category = data.Category
	p.Date = data.Date
	p.Notes = data.Notes
	p.PaymentMethod = data.PaymentMethod
	p.CashAmount = data.CashAmount
	p.CardAmount = data.CardAmount
	p.UpdatedAt = time.Now()
	return p, nil
}

// Delete removes a prestation
func (m *MockPrestationRepository) Delete(ownerEmail string, id int64) error {
	if _, err := m.GetByID(ownerEmail, id); err != nil {
		return err
	}
	delete(m.Prestations, id)
	return nil
}

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository
type MockExpenseRepository struct {
	Expenses map[int64]*domain.Expense
	NextID   int64
	ListErr  error
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		Expenses: make(map[int64]*domain.Expense),
		NextID:   1,
	}
}

// Add seeds an expense directly, bypassing validation
func (m *MockExpenseRepository) Add(e *domain.Expense) *domain.Expense {
	if e.ID == 0 {
		e.ID = m.NextID
		m.NextID++
	}
	m.Expenses[e.ID] = e
	return e
}

// Create stores a new expense
func (m *MockExpenseRepository) Create(e *domain.Expense) (*domain.Expense, error) {
	e.ID = m.NextID
	m.NextID++
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	m.Expenses[e.ID] = e
	return e, nil
}

// GetByID retrieves an expense by ID scoped to its owner
func (m *MockExpenseRepository) GetByID(ownerEmail string, id int64) (*domain.Expense, error) {
	e, ok := m.Expenses[id]
	if !ok || e.OwnerEmail != ownerEmail {
		return nil, domain.ErrExpenseNotFound
	}
	return e, nil
}

// ListByOwner returns all expenses for an owner, newest first
func (m *MockExpenseRepository) ListByOwner(ownerEmail string) ([]*domain.Expense, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]*domain.Expense, 0)
	for _, e := range m.Expenses {
		if e.OwnerEmail == ownerEmail {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Update modifies an existing expense
func (m *MockExpenseRepository) Update(ownerEmail string, id int64, data *domain.UpdateExpenseData) (*domain.Expense, error) {
	e, err := m.GetByID(ownerEmail, id)
	if err != nil {
		return nil, err
	}
	e.Category = data.Category
	e.Description = data.Description
	e.Date = data.Date
	e.Notes = data.Notes
	e.PaymentMethod = data.PaymentMethod
	e.CashAmount = data.CashAmount
	e.CardAmount = data.CardAmount
	e.UpdatedAt = time.Now()
	return e, nil
}

// SetReceiptURL attaches or clears an expense receipt
func (m *MockExpenseRepository) SetReceiptURL(ownerEmail string, id int64, receiptURL *string) (*domain.Expense, error) {
	e, err := m.GetByID(ownerEmail, id)
	if err != nil {
		return nil, err
	}
	e.ReceiptURL = receiptURL
	e.UpdatedAt = time.Now()
	return e, nil
}

// Delete removes an expense
func (m *MockExpenseRepository) Delete(ownerEmail string, id int64) error {
	if _, err := m.GetByID(ownerEmail, id); err != nil {
		return err
	}
	delete(m.Expenses, id)
	return nil
}

// MockEventPublisher records published events for assertions
type MockEventPublisher struct {
	Events []PublishedEvent
}

// PublishedEvent is one recorded publish call
type PublishedEvent struct {
	OwnerEmail string
	Event      websocket.Event
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(ownerEmail string, event websocket.Event) {
	m.Events = append(m.Events, PublishedEvent{OwnerEmail: ownerEmail, Event: event})
}
