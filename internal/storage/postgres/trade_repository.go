package postgres

import (
	"context"
	"fmt"

	"github.com/Prakshal-Jain/The-NFT-Club/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TradeRepository struct {
	pool *pgxpool.Pool
}

func NewTradeRepository(pool *pgxpool.Pool) *TradeRepository {
	return &TradeRepository{pool: pool}
}

func (r *TradeRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *TradeRepository) RecordTrade(ctx context.Context, trade domain.Trade) error {
	const stmt = `
INSERT INTO trades (id, item_id, seller_id, buyer_id, price, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.exec(ctx, stmt,
		trade.ID,
		trade.ItemID,
		trade.SellerID,
		trade.BuyerID,
		trade.Price,
		trade.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrItemNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("record trade: %w", err)
	}
	return nil
}

func (r *TradeRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}
