package matches

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	pgrepo "github.com/jordanhale/emberline/internal/repo/postgres"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

var (
	ErrValidation      = errors.New("validation error")
	ErrMatchNotFound   = errors.New("match not found")
	ErrDependenciesNil = errors.New("matches dependencies are not configured")
)

type MatchStore interface {
	ListForUser(ctx context.Context, userID int64, limit int) ([]pgrepo.MatchRecord, error)
	DeleteByUsers(ctx context.Context, tx pgx.Tx, userID, targetID int64) (bool, error)
}

type LikeStore interface {
	DeleteAllBetween(ctx context.Context, tx pgx.Tx, userID, targetID int64) error
}

type BlockStore interface {
	Upsert(ctx context.Context, tx pgx.Tx, blockerID, blockedID int64) error
	Delete(ctx context.Context, blockerID, blockedID int64) (bool, error)
	ListBlocked(ctx context.Context, blockerID int64) ([]pgrepo.BlockedUserRecord, error)
}

type Dependencies struct {
	Pool       *pgxpool.Pool
	MatchStore MatchStore
	LikeStore  LikeStore
	BlockStore BlockStore
}

type Service struct {
	matchStore MatchStore
	likeStore  LikeStore
	blockStore BlockStore
	runTx      func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error
}

type MatchView struct {
	MatchID   int64
	UserID    int64
	FirstName string
	Age       int
	MatchedAt time.Time
}

type BlockedUser struct {
	UserID    int64
	FirstName string
	LastName  string
	BlockedAt time.Time
}

func NewService(deps Dependencies) *Service {
	return &Service{
		matchStore: deps.MatchStore,
		likeStore:  deps.LikeStore,
		blockStore: deps.BlockStore,
		runTx: func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
			return pgrepo.WithTx(ctx, deps.Pool, fn)
		},
	}
}

func (s *Service) List(ctx context.Context, userID int64, limit int) ([]MatchView, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.matchStore == nil {
		return nil, ErrDependenciesNil
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	records, err := s.matchStore.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	items := make([]MatchView, 0, len(records))
	for _, record := range records {
		items = append(items, MatchView{
			MatchID:   record.ID,
			UserID:    record.TargetUserID,
			FirstName: record.FirstName,
			Age:       record.Age,
			MatchedAt: record.CreatedAt,
		})
	}

	return items, nil
}

// Unmatch dissolves the pair. Any likes between the two users go with the
// match, so neither side keeps a stale pending like.
func (s *Service) Unmatch(ctx context.Context, userID, targetID int64) error {
	if userID <= 0 || targetID <= 0 || userID == targetID {
		return ErrValidation
	}
	if s.matchStore == nil || s.likeStore == nil {
		return ErrDependenciesNil
	}

	err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		deleted, err := s.matchStore.DeleteByUsers(txCtx, tx, userID, targetID)
		if err != nil {
			return fmt.Errorf("delete match: %w", err)
		}
		if !deleted {
			return ErrMatchNotFound
		}
		if err := s.likeStore.DeleteAllBetween(txCtx, tx, userID, targetID); err != nil {
			return fmt.Errorf("delete likes between users: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return err
	}

	return nil
}

// Block severs the relationship entirely: the block row plus any match and
// likes between the two users, all in one transaction. Blocking someone you
// never interacted with is still a valid block.
func (s *Service) Block(ctx context.Context, blockerID, blockedID int64) error {
	if blockerID <= 0 || blockedID <= 0 || blockerID == blockedID {
		return ErrValidation
	}
	if s.matchStore == nil || s.likeStore == nil || s.blockStore == nil {
		return ErrDependenciesNil
	}

	return s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		if err := s.blockStore.Upsert(txCtx, tx, blockerID, blockedID); err != nil {
			return fmt.Errorf("upsert block: %w", err)
		}
		if _, err := s.matchStore.DeleteByUsers(txCtx, tx, blockerID, blockedID); err != nil {
			return fmt.Errorf("delete match: %w", err)
		}
		if err := s.likeStore.DeleteAllBetween(txCtx, tx, blockerID, blockedID); err != nil {
			return fmt.Errorf("delete likes between users: %w", err)
		}
		return nil
	})
}

// Unblock lifts the block only. Matches and likes removed by the block do
// not come back.
func (s *Service) Unblock(ctx context.Context, blockerID, blockedID int64) error {
	if blockerID <= 0 || blockedID <= 0 {
		return ErrValidation
	}
	if s.blockStore == nil {
		return ErrDependenciesNil
	}

	if _, err := s.blockStore.Delete(ctx, blockerID, blockedID); err != nil {
		return fmt.Errorf("delete block: %w", err)
	}
	return nil
}

func (s *Service) Blocked(ctx context.Context, blockerID int64) ([]BlockedUser, error) {
	if blockerID <= 0 {
		return nil, ErrValidation
	}
	if s.blockStore == nil {
		return nil, ErrDependenciesNil
	}

	records, err := s.blockStore.ListBlocked(ctx, blockerID)
	if err != nil {
		return nil, fmt.Errorf("list blocked users: %w", err)
	}

	items := make([]BlockedUser, 0, len(records))
	for _, record := range records {
		items = append(items, BlockedUser{
			UserID:    record.UserID,
			FirstName: record.FirstName,
			LastName:  record.LastName,
			BlockedAt: record.CreatedAt,
		})
	}

	return items, nil
}
