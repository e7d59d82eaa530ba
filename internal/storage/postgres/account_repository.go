package postgres

import (
	"context"
	"fmt"

	"github.com/Prakshal-Jain/The-NFT-Club/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *AccountRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	const query = `SELECT balance FROM users WHERE id = $1`
	return r.balance(ctx, query, userID)
}

func (r *AccountRepository) GetBalanceForUpdate(ctx context.Context, userID string) (int64, error) {
	const query = `SELECT balance FROM users WHERE id = $1 FOR UPDATE`
	return r.balance(ctx, query, userID)
}

func (r *AccountRepository) balance(ctx context.Context, query, userID string) (int64, error) {
	var balance int64
	if err := r.queryRow(ctx, query, userID).Scan(&balance); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return balance, nil
}

// AddToBalance applies a signed delta. The balance CHECK constraint is
// the last line of defense against a negative balance; the ledger
// service checks funds before calling this.
func (r *AccountRepository) AddToBalance(ctx context.Context, userID string, delta int64) error {
	const stmt = `UPDATE users SET balance = balance + $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, userID, delta)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *AccountRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *AccountRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
