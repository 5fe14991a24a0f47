package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const passedPrefix = "passed:"

// ExclusionRepo holds the session-scoped set of passed user ids. SADD and
// DEL are atomic on the server, so concurrent pass/refresh calls from the
// same session cannot lose writes.
type ExclusionRepo struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewExclusionRepo(client *goredis.Client, ttl time.Duration) *ExclusionRepo {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ExclusionRepo{client: client, ttl: ttl}
}

func (r *ExclusionRepo) GetPassed(ctx context.Context, sessionID string) ([]int64, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("session id is required")
	}

	members, err := r.client.SMembers(ctx, passedKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read passed set: %w", err)
	}

	ids := make([]int64, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// AddPassed is idempotent: re-adding a present id is a no-op.
func (r *ExclusionRepo) AddPassed(ctx context.Context, sessionID string, userID int64) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(sessionID) == "" || userID <= 0 {
		return fmt.Errorf("invalid passed payload")
	}

	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, passedKey(sessionID), userID)
	pipe.Expire(ctx, passedKey(sessionID), r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("add passed user: %w", err)
	}

	return nil
}

// ClearPassed empties the set. Clearing an absent key is a no-op, so refresh
// on an empty tracker succeeds without error.
func (r *ExclusionRepo) ClearPassed(ctx context.Context, sessionID string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}

	if err := r.client.Del(ctx, passedKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear passed set: %w", err)
	}

	return nil
}

func passedKey(sessionID string) string {
	return passedPrefix + sessionID
}
