package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maelyb/eclat/eclat-backend/internal/domain"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `id, owner_email, category, description, date, notes, payment_method, cash_amount, card_amount, amount, receipt_url, created_at, updated_at`

// Create creates a new expense
func (r *ExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	ctx := context.Background()
	cash, err := decimalToPgNumeric(expense.CashAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid cash amount: %w", err)
	}
	card, err := decimalToPgNumeric(expense.CardAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid card amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO expenses (owner_email, category, description, date, notes, payment_method, cash_amount, card_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+expenseColumns,
		expense.OwnerEmail,
		expense.Category,
		expense.Description,
		expense.Date,
		expense.Notes,
		string(expense.PaymentMethod),
		cash,
		card,
	)
	return scanExpense(row)
}

// GetByID retrieves an expense by ID scoped to its owner
func (r *ExpenseRepository) GetByID(ownerEmail string, id int64) (*domain.Expense, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE owner_email = $1 AND id = $2`,
		ownerEmail, id,
	)
	expense, err := scanExpense(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// ListByOwner retrieves all expenses for an owner, newest first
func (r *ExpenseRepository) ListByOwner(ownerEmail string) ([]*domain.Expense, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE owner_email = $1
		ORDER BY date DESC, id DESC`,
		ownerEmail,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

// Update updates an existing expense
func (r *ExpenseRepository) Update(ownerEmail string, id int64, data *domain.UpdateExpenseData) (*domain.Expense, error) {
	ctx := context.Background()
	cash, err := decimalToPgNumeric(data.CashAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid cash amount: %w", err)
	}
	card, err := decimalToPgNumeric(data.CardAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid card amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE expenses
		SET category = $3, description = $4, date = $5, notes = $6,
		    payment_method = $7, cash_amount = $8, card_amount = $9,
		    amount = NULL, updated_at = now()
		WHERE owner_email = $1 AND id = $2
		RETURNING `+expenseColumns,
		ownerEmail, id,
		data.Category,
		data.Description,
		data.Date,
		data.Notes,
		string(data.PaymentMethod),
		cash,
		card,
	)
	expense, err := scanExpense(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// SetReceiptURL attaches or clears the receipt reference on an expense
func (r *ExpenseRepository) SetReceiptURL(ownerEmail string, id int64, receiptURL *string) (*domain.Expense, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE expenses
		SET receipt_url = $3, updated_at = now()
		WHERE owner_email = $1 AND id = $2
		RETURNING `+expenseColumns,
		ownerEmail, id, receiptURL,
	)
	expense, err := scanExpense(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// Delete removes an expense
func (r *ExpenseRepository) Delete(ownerEmail string, id int64) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM expenses
		WHERE owner_email = $1 AND id = $2`,
		ownerEmail, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// scanExpense reads one expense row, applying the same legacy amount
// normalization as prestations
func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		e            domain.Expense
		method       string
		cash         pgtype.Numeric
		card         pgtype.Numeric
		legacyAmount pgtype.Numeric
	)
	err := row.Scan(
		&e.ID,
		&e.OwnerEmail,
		&e.Category,
		&e.Description,
		&e.Date,
		&e.Notes,
		&method,
		&cash,
		&card,
		&legacyAmount,
		&e.ReceiptURL,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.PaymentMethod = domain.PaymentMethod(method)
	e.CashAmount = pgNumericToDecimal(cash)
	e.CardAmount = pgNumericToDecimal(card)
	if e.CashAmount.IsZero() && e.CardAmount.IsZero() {
		if legacy := pgNumericToDecimal(legacyAmount); !legacy.IsZero() {
			e.CashAmount = legacy
		}
	}
	return &e, nil
}
