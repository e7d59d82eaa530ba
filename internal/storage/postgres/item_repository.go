package postgres

import (
	"context"
	"fmt"

	"github.com/Prakshal-Jain/The-NFT-Club/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const itemColumns = `id, item_type, name, description, price, image_ref, owner_id, availability, created_at`

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

func (r *ItemRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *ItemRepository) CreateItem(ctx context.Context, item domain.Item) error {
	const stmt = `
INSERT INTO items (id, item_type, name, description, price, image_ref, owner_id, availability, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.exec(ctx, stmt,
		item.ID,
		item.Type,
		item.Name,
		item.Description,
		item.Price,
		item.ImageRef,
		item.OwnerID,
		item.Availability,
		item.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateItemName
		}
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

func (r *ItemRepository) GetItem(ctx context.Context, itemType domain.ItemType, name string) (domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_type = $1 AND name = $2`

	item, err := r.scanItem(r.queryRow(ctx, query, itemType, name))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Item{}, domain.ErrItemNotFound
		}
		return domain.Item{}, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (r *ItemRepository) ListItemsByType(ctx context.Context, itemType domain.ItemType) ([]domain.Item, error) {
	query := `
SELECT ` + itemColumns + `
FROM items
WHERE item_type = $1 AND availability <> 'sold'
ORDER BY created_at ASC`

	rows, err := r.query(ctx, query, itemType)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// GetListedForUpdate locks the item row for the duration of the
// purchase. NOWAIT turns lock contention into an immediate error
// instead of an unbounded wait behind another buyer.
func (r *ItemRepository) GetListedForUpdate(ctx context.Context, itemType domain.ItemType, name string) (domain.Item, error) {
	query := `
SELECT ` + itemColumns + `
FROM items
WHERE item_type = $1 AND name = $2 AND availability <> 'sold'
FOR UPDATE NOWAIT`

	item, err := r.scanItem(r.queryRow(ctx, query, itemType, name))
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

// UpdateOwnership is conditional on the recorded owner so a concurrent
// transfer that already completed makes this one fail instead of
// silently overwriting it.
func (r *ItemRepository) UpdateOwnership(ctx context.Context, itemID, fromOwner, toOwner string) error {
	const stmt = `
UPDATE items
SET owner_id = $3, availability = 'sold'
WHERE id = $1 AND owner_id = $2`

	tag, err := r.exec(ctx, stmt, itemID, fromOwner, toOwner)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("update ownership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOwnershipMismatch
	}
	return nil
}

func (r *ItemRepository) ListItemsByOwner(ctx context.Context, ownerID string) ([]domain.Item, error) {
	query := `
SELECT ` + itemColumns + `
FROM items
WHERE owner_id = $1
ORDER BY created_at ASC`

	rows, err := r.query(ctx, query, ownerID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list items by owner: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *ItemRepository) scanItem(row pgx.Row) (domain.Item, error) {
	var item domain.Item
	err := row.Scan(
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
	return item, err
}

func scanItems(rows pgx.Rows) ([]domain.Item, error) {
	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(
			&item.ID,
			&item.Type,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.ImageRef,
			&item.OwnerID,
			&item.Availability,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate items: %w", rows.Err())
	}
	return items, nil
}

func (r *ItemRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ItemRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *ItemRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
