package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jordanhale/emberline/internal/domain/enums"
	"github.com/jordanhale/emberline/internal/domain/model"
)

var ErrProfileNotFound = errors.New("profile not found")

type DirectoryRepo struct {
	pool *pgxpool.Pool
}

func NewDirectoryRepo(pool *pgxpool.Pool) *DirectoryRepo {
	return &DirectoryRepo{pool: pool}
}

// EligibleQuery carries the resolved compatibility predicate and the
// exclusion state for one discovery request. ExcludeIDs holds the
// session-passed users; likes and blocks are excluded in SQL.
type EligibleQuery struct {
	RequesterID        int64
	RequesterGender    enums.Gender
	TargetGenders      []enums.Gender
	TargetOrientations []enums.Orientation
	BisexualRule       bool
	ExcludeIDs         []int64
	Limit              int
}

func (r *DirectoryRepo) GetProfile(ctx context.Context, userID int64) (model.Profile, error) {
	if userID <= 0 {
		return model.Profile{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return model.Profile{}, ErrProfileNotFound
	}

	var profile model.Profile
	err := r.pool.QueryRow(ctx, `
SELECT
	id,
	COALESCE(first_name, ''),
	COALESCE(last_name, ''),
	COALESCE(bio, ''),
	COALESCE(gender, ''),
	COALESCE(orientation, 'unspecified'),
	birthdate,
	COALESCE(interests, ''),
	banned,
	created_at
FROM users
WHERE id = $1
LIMIT 1
`, userID).Scan(
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Bio,
		&profile.Gender,
		&profile.Orientation,
		&profile.Birthdate,
		&profile.Interests,
		&profile.Banned,
		&profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, ErrProfileNotFound
		}
		return model.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	return profile, nil
}

// FindEligible returns candidates that satisfy the compatibility predicate
// and none of the exclusion rules: self, banned, already liked by the
// requester, blocked in either direction, or passed this session. Result
// order is unspecified; callers must not rely on it.
func (r *DirectoryRepo) FindEligible(ctx context.Context, q EligibleQuery) ([]model.Profile, error) {
	if q.RequesterID <= 0 {
		return nil, fmt.Errorf("invalid requester id")
	}
	if q.Limit <= 0 {
		q.Limit = 500
	}
	if r.pool == nil {
		return []model.Profile{}, nil
	}

	genders := make([]string, 0, len(q.TargetGenders))
	for _, g := range q.TargetGenders {
		genders = append(genders, string(g))
	}
	orientations := make([]string, 0, len(q.TargetOrientations))
	for _, o := range q.TargetOrientations {
		orientations = append(orientations, string(o))
	}
	excludeIDs := q.ExcludeIDs
	if excludeIDs == nil {
		excludeIDs = []int64{}
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	u.id,
	COALESCE(u.first_name, ''),
	COALESCE(u.last_name, ''),
	COALESCE(u.bio, ''),
	COALESCE(u.gender, ''),
	COALESCE(u.orientation, 'unspecified'),
	u.birthdate,
	COALESCE(u.interests, ''),
	u.banned,
	u.created_at
FROM users u
WHERE
	u.id <> $1
	AND u.banned = FALSE
	AND u.gender = ANY($2::text[])
	AND u.orientation = ANY($3::text[])
	AND (
		$4::boolean = FALSE
		OR (u.gender = $5 AND u.orientation IN ('gay', 'bisexual'))
		OR (u.gender <> $5 AND u.orientation IN ('straight', 'bisexual'))
	)
	AND NOT EXISTS (
		SELECT 1
		FROM likes l
		WHERE l.liker_id = $1 AND l.liked_id = u.id
	)
	AND NOT EXISTS (
		SELECT 1
		FROM blocks b
		WHERE (b.blocker_id = $1 AND b.blocked_id = u.id)
			OR (b.blocker_id = u.id AND b.blocked_id = $1)
	)
	AND NOT (u.id = ANY($6::bigint[]))
LIMIT $7
`,
		q.RequesterID,             // $1
		genders,                   // $2
		orientations,              // $3
		q.BisexualRule,            // $4
		string(q.RequesterGender), // $5
		excludeIDs,                // $6
		q.Limit,                   // $7
	)
	if err != nil {
		return nil, fmt.Errorf("find eligible candidates: %w", err)
	}
	defer rows.Close()

	items := make([]model.Profile, 0, 64)
	for rows.Next() {
		var profile model.Profile
		if err := rows.Scan(
			&profile.UserID,
			&profile.FirstName,
			&profile.LastName,
			&profile.Bio,
			&profile.Gender,
			&profile.Orientation,
			&profile.Birthdate,
			&profile.Interests,
			&profile.Banned,
			&profile.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan eligible candidate: %w", err)
		}
		items = append(items, profile)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate eligible candidates: %w", rows.Err())
	}

	return items, nil
}
