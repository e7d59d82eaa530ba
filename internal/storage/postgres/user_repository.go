package postgres

import (
	"context"
	"fmt"

	"github.com/Prakshal-Jain/The-NFT-Club/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) CreateUser(ctx context.Context, user domain.User) error {
	const stmt = `
INSERT INTO users (id, name, balance, created_at)
VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, stmt, user.ID, user.Name, user.Balance, user.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetUser(ctx context.Context, userID string) (domain.User, error) {
	const query = `SELECT id, name, balance, created_at FROM users WHERE id = $1`

	var user domain.User
	err := r.pool.QueryRow(ctx, query, userID).Scan(&user.ID, &user.Name, &user.Balance, &user.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.User{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) ListItemsByOwner(ctx context.Context, ownerID string) ([]domain.Item, error) {
	query := `
SELECT ` + itemColumns + `
FROM items
WHERE owner_id = $1
ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list owned items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *UserRepository) ListTradesBySeller(ctx context.Context, sellerID string) ([]domain.Trade, error) {
	const query = `
SELECT id, item_id, seller_id, buyer_id, price, created_at
FROM trades
WHERE seller_id = $1
ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, sellerID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list trades: %w", err)
	}
	defer rows.Close()

	var trades []domain.Trade
	for rows.Next() {
		var t domain.Trade
		if err := rows.Scan(&t.ID, &t.ItemID, &t.SellerID, &t.BuyerID, &t.Price, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		trades = append(trades, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate trades: %w", rows.Err())
	}
	return trades, nil
}
