package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RejectedLikeRepo records declined likes so the same like never resurfaces
// in the incoming list.
type RejectedLikeRepo struct {
	pool *pgxpool.Pool
}

func NewRejectedLikeRepo(pool *pgxpool.Pool) *RejectedLikeRepo {
	return &RejectedLikeRepo{pool: pool}
}

func (r *RejectedLikeRepo) Create(ctx context.Context, tx pgx.Tx, likerID, likedID int64) error {
	if likerID <= 0 || likedID <= 0 {
		return fmt.Errorf("invalid rejected like payload")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO rejected_likes (
	liker_id,
	liked_id,
	created_at
) VALUES ($1, $2, NOW())
ON CONFLICT (liker_id, liked_id) DO NOTHING
`, likerID, likedID); err != nil {
		return fmt.Errorf("insert rejected like: %w", err)
	}

	return nil
}

// DeleteOlderThan drops rejection rows past the retention cutoff, letting a
// long-declined user eventually appear in the incoming list again.
func (r *RejectedLikeRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.pool == nil {
		return 0, nil
	}

	result, err := r.pool.Exec(ctx, `
DELETE FROM rejected_likes
WHERE created_at < $1
`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete stale rejected likes: %w", err)
	}

	return result.RowsAffected(), nil
}
