package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BlockRepo struct {
	pool *pgxpool.Pool
}

type BlockedUserRecord struct {
	UserID    int64
	FirstName string
	LastName  string
	CreatedAt time.Time
}

func NewBlockRepo(pool *pgxpool.Pool) *BlockRepo {
	return &BlockRepo{pool: pool}
}

func (r *BlockRepo) Upsert(ctx context.Context, tx pgx.Tx, blockerID, blockedID int64) error {
	if blockerID <= 0 || blockedID <= 0 || blockerID == blockedID {
		return fmt.Errorf("invalid block payload")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO blocks (
	blocker_id,
	blocked_id,
	created_at
) VALUES ($1, $2, NOW())
ON CONFLICT (blocker_id, blocked_id) DO NOTHING
`, blockerID, blockedID); err != nil {
		return fmt.Errorf("upsert block: %w", err)
	}

	return nil
}

func (r *BlockRepo) Delete(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	if blockerID <= 0 || blockedID <= 0 {
		return false, fmt.Errorf("invalid block delete payload")
	}
	if r.pool == nil {
		return false, nil
	}

	result, err := r.pool.Exec(ctx, `
DELETE FROM blocks
WHERE blocker_id = $1 AND blocked_id = $2
`, blockerID, blockedID)
	if err != nil {
		return false, fmt.Errorf("delete block: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *BlockRepo) ListBlocked(ctx context.Context, blockerID int64) ([]BlockedUserRecord, error) {
	if blockerID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return []BlockedUserRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	u.id,
	COALESCE(u.first_name, ''),
	COALESCE(u.last_name, ''),
	b.created_at
FROM blocks b
JOIN users u ON u.id = b.blocked_id
WHERE b.blocker_id = $1
ORDER BY b.created_at DESC
`, blockerID)
	if err != nil {
		return nil, fmt.Errorf("list blocked users: %w", err)
	}
	defer rows.Close()

	items := make([]BlockedUserRecord, 0, 16)
	for rows.Next() {
		var item BlockedUserRecord
		if err := rows.Scan(&item.UserID, &item.FirstName, &item.LastName, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan blocked user: %w", err)
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate blocked users: %w", rows.Err())
	}

	return items, nil
}
