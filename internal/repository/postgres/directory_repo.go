// Package postgres implements the account directory on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/banklabs/teller/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// DirectoryRepository implements domain.Directory using PostgreSQL
type DirectoryRepository struct {
	pool *pgxpool.Pool
}

// NewDirectoryRepository creates a new DirectoryRepository
func NewDirectoryRepository(pool *pgxpool.Pool) *DirectoryRepository {
	return &DirectoryRepository{pool: pool}
}

// CardOwner resolves a card number to its owning username
func (r *DirectoryRepository) CardOwner(cardNumber string) (string, error) {
	ctx := context.Background()
	var username string
	err := r.pool.QueryRow(ctx,
		`SELECT username FROM cards WHERE card_number = $1`,
		cardNumber,
	).Scan(&username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrCardNotFound
		}
		return "", fmt.Errorf("query card owner: %w", err)
	}
	return username, nil
}

// Balance reads the current balance of one of the user's accounts
func (r *DirectoryRepository) Balance(username string, kind domain.AccountKind) (decimal.Decimal, error) {
	ctx := context.Background()
	var balance pgtype.Numeric
	err := r.pool.QueryRow(ctx,
		`SELECT balance FROM accounts WHERE username = $1 AND account_kind = $2`,
		username, string(kind),
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrUserNotFound
		}
		return decimal.Zero, fmt.Errorf("query balance: %w", err)
	}
	return pgNumericToDecimal(balance), nil
}

// IsStudent reports whether the user holds student status
func (r *DirectoryRepository) IsStudent(username string) (bool, error) {
	ctx := context.Background()
	var student bool
	err := r.pool.QueryRow(ctx,
		`SELECT is_student FROM users WHERE username = $1`,
		username,
	).Scan(&student)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrUserNotFound
		}
		return false, fmt.Errorf("query student status: %w", err)
	}
	return student, nil
}

// SetBalance writes a new balance for one of the user's accounts
func (r *DirectoryRepository) SetBalance(username string, kind domain.AccountKind, balance decimal.Decimal) error {
	ctx := context.Background()
	num, err := decimalToPgNumeric(balance)
	if err != nil {
		return fmt.Errorf("invalid balance: %w", err)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts SET balance = $3, updated_at = NOW() WHERE username = $1 AND account_kind = $2`,
		username, string(kind), num,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBalanceUpdateFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBalanceUpdateFailed
	}
	return nil
}

// PIN returns the user's PIN data
func (r *DirectoryRepository) PIN(username string) ([]byte, error) {
	ctx := context.Background()
	var pin []byte
	err := r.pool.QueryRow(ctx,
		`SELECT pin FROM users WHERE username = $1`,
		username,
	).Scan(&pin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query pin: %w", err)
	}
	return pin, nil
}

func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	if n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

// Ensure DirectoryRepository implements domain.Directory
var _ domain.Directory = (*DirectoryRepository)(nil)
