package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/maelyb/eclat/eclat-backend/internal/domain"
)

// PrestationRepository implements domain.PrestationRepository using PostgreSQL
type PrestationRepository struct {
	pool *pgxpool.Pool
}

// NewPrestationRepository creates a new PrestationRepository
func NewPrestationRepository(pool *pgxpool.Pool) *PrestationRepository {
	return &PrestationRepository{pool: pool}
}

const prestationColumns = `id, owner_email, category, date, notes, payment_method, cash_amount, card_amount, amount, created_at, updated_at`

// Create creates a new prestation
func (r *PrestationRepository) Create(prestation *domain.Prestation) (*domain.Prestation, error) {
	ctx := context.Background()
	cash, err := decimalToPgNumeric(prestation.CashAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid cash amount: %w", err)
	}
	card, err := decimalToPgNumeric(prestation.CardAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid card amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO prestations (owner_email, category, date, notes, payment_method, cash_amount, card_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+prestationColumns,
		prestation.OwnerEmail,
		prestation.Category,
		prestation.Date,
		prestation.Notes,
		string(prestation.PaymentMethod),
		cash,
		card,
	)
	return scanPrestation(row)
}

// GetByID retrieves a prestation by ID scoped to its owner
func (r *PrestationRepository) GetByID(ownerEmail string, id int64) (*domain.Prestation, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+prestationColumns+`
		FROM prestations
		WHERE owner_email = $1 AND id = $2`,
		ownerEmail, id,
	)
	prestation, err := scanPrestation(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrPrestationNotFound
		}
		return nil, err
	}
	return prestation, nil
}

// ListByOwner retrieves all prestations for an owner, newest first
func (r *PrestationRepository) ListByOwner(ownerEmail string) ([]*domain.Prestation, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+prestationColumns+`
		FROM prestations
		WHERE owner_email = $1
		ORDER BY date DESC, id DESC`,
		ownerEmail,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prestations := make([]*domain.Prestation, 0)
	for rows.Next() {
		prestation, err := scanPrestation(rows)
		if err != nil {
			return nil, err
		}
		prestations = append(prestations, prestation)
	}
	return prestations, rows.Err()
}

// Update updates an existing prestation
func (r *PrestationRepository) Update(ownerEmail string, id int64, data *domain.UpdatePrestationData) (*domain.Prestation, error) {
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
		UPDATE prestations
		SET category = $3, date = $4, notes = $5, payment_method = $6,
		    cash_amount = $7, card_amount = $8, amount = NULL, updated_at = now()
		WHERE owner_email = $1 AND id = $2
		RETURNING `+prestationColumns,
		ownerEmail, id,
		data.Category,
		data.Date,
		data.Notes,
		string(data.PaymentMethod),
		cash,
		card,
	)
	prestation, err := scanPrestation(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrPrestationNotFound
		}
		return nil, err
	}
	return prestation, nil
}

// Delete removes a prestation
func (r *PrestationRepository) Delete(ownerEmail string, id int64) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM prestations
		WHERE owner_email = $1 AND id = $2`,
		ownerEmail, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPrestationNotFound
	}
	return nil
}

// scanPrestation reads one prestation row, normalizing the legacy single
// amount column: when both split amounts are zero and amount is not, the
// record predates split accounting and its amount counts as cash.
func scanPrestation(row pgx.Row) (*domain.Prestation, error) {
	var (
		p            domain.Prestation
		method       string
		cash         pgtype.Numeric
		card         pgtype.Numeric
		legacyAmount pgtype.Numeric
	)
	err := row.Scan(
		&p.ID,
		&p.OwnerEmail,
		&p.Category,
		&p.Date,
		&p.Notes,
		&method,
		&cash,
		&card,
		&legacyAmount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.PaymentMethod = domain.PaymentMethod(method)
	p.CashAmount = pgNumericToDecimal(cash)
	p.CardAmount = pgNumericToDecimal(card)
	if p.CashAmount.IsZero() && p.CardAmount.IsZero() {
		if legacy := pgNumericToDecimal(legacyAmount); !legacy.IsZero() {
			p.CashAmount = legacy
		}
	}
	return &p, nil
}

// decimalToPgNumeric converts a decimal.Decimal to pgtype.Numeric
func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

// pgNumericToDecimal converts a pgtype.Numeric to decimal.Decimal
func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
