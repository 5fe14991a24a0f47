package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LikeRepo struct {
	pool *pgxpool.Pool
}

func NewLikeRepo(pool *pgxpool.Pool) *LikeRepo {
	return &LikeRepo{pool: pool}
}

// IncomingLikeRecord is one visible like received by a user, joined with the
// liker's directory fields the presentation layer needs.
type IncomingLikeRecord struct {
	LikeID      int64
	LikerID     int64
	FirstName   string
	Gender      string
	Orientation string
	Age         int
	Message     string
	CreatedAt   time.Time
}

func (r *LikeRepo) Upsert(ctx context.Context, tx pgx.Tx, likerID, likedID int64, message string) error {
	if likerID <= 0 || likedID <= 0 || likerID == likedID {
		return fmt.Errorf("invalid like payload")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO likes (
	liker_id,
	liked_id,
	message,
	created_at
) VALUES ($1, $2, NULLIF($3, ''), NOW())
ON CONFLICT (liker_id, liked_id) DO UPDATE SET
	message = EXCLUDED.message,
	created_at = NOW()
`, likerID, likedID, strings.TrimSpace(message)); err != nil {
		return fmt.Errorf("upsert like: %w", err)
	}

	return nil
}

func (r *LikeRepo) Exists(ctx context.Context, tx pgx.Tx, likerID, likedID int64) (bool, error) {
	if likerID <= 0 || likedID <= 0 {
		return false, fmt.Errorf("invalid like lookup payload")
	}
	if tx == nil {
		return false, fmt.Errorf("transaction is required")
	}

	var one int
	err := tx.QueryRow(ctx, `
SELECT 1
FROM likes
WHERE liker_id = $1 AND liked_id = $2
LIMIT 1
`, likerID, likedID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup like: %w", err)
	}

	return true, nil
}

func (r *LikeRepo) Delete(ctx context.Context, tx pgx.Tx, likerID, likedID int64) (bool, error) {
	if likerID <= 0 || likedID <= 0 {
		return false, fmt.Errorf("invalid like delete payload")
	}
	if tx == nil {
		return false, fmt.Errorf("transaction is required")
	}

	result, err := tx.Exec(ctx, `
DELETE FROM likes
WHERE liker_id = $1 AND liked_id = $2
`, likerID, likedID)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// ListIncoming returns likes received by userID, newest first, suppressing
// likes the user already declined and pairs blocked in either direction.
func (r *LikeRepo) ListIncoming(ctx context.Context, userID int64, limit int) ([]IncomingLikeRecord, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if limit <= 0 {
		limit = 100
	}
	if r.pool == nil {
		return []IncomingLikeRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	l.id,
	u.id,
	COALESCE(u.first_name, ''),
	COALESCE(u.gender, ''),
	COALESCE(u.orientation, 'unspecified'),
	DATE_PART('year', AGE(NOW(), u.birthdate::timestamp))::int AS age,
	COALESCE(l.message, ''),
	l.created_at
FROM likes l
JOIN users u ON u.id = l.liker_id
WHERE
	l.liked_id = $1
	AND u.banned = FALSE
	AND NOT EXISTS (
		SELECT 1
		FROM rejected_likes rl
		WHERE rl.liker_id = l.liker_id AND rl.liked_id = l.liked_id
	)
	AND NOT EXISTS (
		SELECT 1
		FROM blocks b
		WHERE (b.blocker_id = $1 AND b.blocked_id = l.liker_id)
			OR (b.blocker_id = l.liker_id AND b.blocked_id = $1)
	)
ORDER BY l.created_at DESC, l.id DESC
LIMIT $2
`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list incoming likes: %w", err)
	}
	defer rows.Close()

	items := make([]IncomingLikeRecord, 0, limit)
	for rows.Next() {
		var item IncomingLikeRecord
		if err := rows.Scan(
			&item.LikeID,
			&item.LikerID,
			&item.FirstName,
			&item.Gender,
			&item.Orientation,
			&item.Age,
			&item.Message,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan incoming like: %w", err)
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate incoming likes: %w", rows.Err())
	}

	return items, nil
}

// DeleteAllBetween removes like edges in both directions, used when a block
// severs the pair.
func (r *LikeRepo) DeleteAllBetween(ctx context.Context, tx pgx.Tx, userID, targetID int64) error {
	if userID <= 0 || targetID <= 0 {
		return fmt.Errorf("invalid like delete payload")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	if _, err := tx.Exec(ctx, `
DELETE FROM likes
WHERE (liker_id = $1 AND liked_id = $2)
	OR (liker_id = $2 AND liked_id = $1)
`, userID, targetID); err != nil {
		return fmt.Errorf("delete likes between users: %w", err)
	}

	return nil
}
