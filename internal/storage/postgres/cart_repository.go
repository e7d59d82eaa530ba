package postgres

import (
	"context"
	"fmt"

	"github.com/Prakshal-Jain/The-NFT-Club/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

func (r *CartRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetItemForUpdate locks the item row regardless of availability, so
// removal can still find a sold item and drop its stale reservation.
func (r *CartRepository) GetItemForUpdate(ctx context.Context, itemType domain.ItemType, name string) (domain.Item, error) {
	query := `
SELECT ` + itemColumns + `
FROM items
WHERE item_type = $1 AND name = $2
FOR UPDATE NOWAIT`

	var item domain.Item
	err := r.queryRow(ctx, query, itemType, name).Scan(
		&item.ID,
		&item.Type,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.ImageRef,
		&item.OwnerID,
		&item.Availability,
		&item.CreatedAt,
	)
	if err != nil {
		if isLockNotAvailable(err) {
			return domain.Item{}, domain.ErrAlreadyReserved
		}
		if err == pgx.ErrNoRows {
			return domain.Item{}, domain.ErrItemNotFound
		}
		return domain.Item{}, fmt.Errorf("lock item: %w", err)
	}
	return item, nil
}

func (r *CartRepository) FindReservationByItem(ctx context.Context, itemID string) (*domain.Reservation, error) {
	const query = `SELECT id, item_id, user_id, created_at FROM reservations WHERE item_id = $1`

	var res domain.Reservation
	err := r.queryRow(ctx, query, itemID).Scan(&res.ID, &res.ItemID, &res.UserID, &res.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	return &res, nil
}

func (r *CartRepository) CreateReservation(ctx context.Context, res domain.Reservation) error {
	const stmt = `
INSERT INTO reservations (id, item_id, user_id, created_at)
VALUES ($1, $2, $3, $4)`

	_, err := r.exec(ctx, stmt, res.ID, res.ItemID, res.UserID, res.CreatedAt)
	if err != nil {
		// The unique index on item_id means another cart won the race.
		if isUniqueViolation(err) {
			return domain.ErrAlreadyReserved
		}
		if isForeignKeyViolation(err) {
			return domain.ErrItemNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (r *CartRepository) DeleteReservation(ctx context.Context, userID, itemID string) error {
	const stmt = `DELETE FROM reservations WHERE user_id = $1 AND item_id = $2`

	tag, err := r.exec(ctx, stmt, userID, itemID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotReserved
	}
	return nil
}

func (r *CartRepository) SetAvailability(ctx context.Context, itemID string, availability domain.Availability) error {
	const stmt = `UPDATE items SET availability = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, itemID, availability)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("set availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *CartRepository) ListCartItems(ctx context.Context, userID string) ([]domain.Item, error) {
	query := `
SELECT ` + prefixedItemColumns("i") + `
FROM items i
JOIN reservations res ON res.item_id = i.id
WHERE res.user_id = $1
ORDER BY res.created_at ASC`

	rows, err := r.query(ctx, query, userID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func prefixedItemColumns(alias string) string {
	return alias + ".id, " + alias + ".item_type, " + alias + ".name, " + alias + ".description, " +
		alias + ".price, " + alias + ".image_ref, " + alias + ".owner_id, " + alias + ".availability, " +
		alias + ".created_at"
}

func (r *CartRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *CartRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *CartRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
