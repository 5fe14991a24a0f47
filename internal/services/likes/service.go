package likes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	pgrepo "github.com/jordanhale/emberline/internal/repo/postgres"
)

const (
	ActionMatch = "match"
	ActionPass  = "pass"

	defaultIncomingLimit = 50
	maxIncomingLimit     = 200
	maxMessageLen        = 500
)

var (
	ErrValidation        = errors.New("validation error")
	ErrUnsupportedAction = errors.New("unsupported action")
	ErrLikeNotFound      = errors.New("like not found")
	ErrDependenciesNil   = errors.New("likes dependencies are not configured")
)

type LikeStore interface {
	Upsert(ctx context.Context, tx pgx.Tx, likerID, likedID int64, message string) error
	Exists(ctx context.Context, tx pgx.Tx, likerID, likedID int64) (bool, error)
	Delete(ctx context.Context, tx pgx.Tx, likerID, likedID int64) (bool, error)
	ListIncoming(ctx context.Context, userID int64, limit int) ([]pgrepo.IncomingLikeRecord, error)
}

type MatchStore interface {
	Create(ctx context.Context, tx pgx.Tx, userID, targetID int64) (bool, error)
}

type RejectedStore interface {
	Create(ctx context.Context, tx pgx.Tx, likerID, likedID int64) error
}

type Dependencies struct {
	Pool          *pgxpool.Pool
	LikeStore     LikeStore
	MatchStore    MatchStore
	RejectedStore RejectedStore
}

type Service struct {
	likeStore     LikeStore
	matchStore    MatchStore
	rejectedStore RejectedStore
	runTx         func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error
}

type IncomingLike struct {
	LikerID   int64
	FirstName string
	Age       int
	Message   string
	CreatedAt time.Time
}

type RespondResult struct {
	Matched bool
}

func NewService(deps Dependencies) *Service {
	return &Service{
		likeStore:     deps.LikeStore,
		matchStore:    deps.MatchStore,
		rejectedStore: deps.RejectedStore,
		runTx: func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
			return pgrepo.WithTx(ctx, deps.Pool, fn)
		},
	}
}

// Like records a directed like with an optional message. Re-liking the same
// user replaces the message instead of erroring.
func (s *Service) Like(ctx context.Context, likerID, likedID int64, message string) error {
	if likerID <= 0 || likedID <= 0 || likerID == likedID {
		return ErrValidation
	}
	if len(message) > maxMessageLen {
		return ErrValidation
	}
	if s.likeStore == nil {
		return ErrDependenciesNil
	}

	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		return s.likeStore.Upsert(txCtx, tx, likerID, likedID, message)
	}); err != nil {
		return fmt.Errorf("record like: %w", err)
	}

	return nil
}

func (s *Service) Incoming(ctx context.Context, userID int64, limit int) ([]IncomingLike, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.likeStore == nil {
		return nil, ErrDependenciesNil
	}
	if limit <= 0 {
		limit = defaultIncomingLimit
	}
	if limit > maxIncomingLimit {
		limit = maxIncomingLimit
	}

	records, err := s.likeStore.ListIncoming(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list incoming likes: %w", err)
	}

	items := make([]IncomingLike, 0, len(records))
	for _, record := range records {
		items = append(items, IncomingLike{
			LikerID:   record.LikerID,
			FirstName: record.FirstName,
			Age:       record.Age,
			Message:   record.Message,
			CreatedAt: record.CreatedAt,
		})
	}

	return items, nil
}

// Respond settles one incoming like. "match" creates the match and consumes
// the like; "pass" records the rejection so the like never resurfaces. Both
// outcomes remove the pending like in the same transaction.
func (s *Service) Respond(ctx context.Context, userID, likerID int64, action string) (RespondResult, error) {
	if userID <= 0 || likerID <= 0 || userID == likerID {
		return RespondResult{}, ErrValidation
	}
	if s.likeStore == nil || s.matchStore == nil || s.rejectedStore == nil {
		return RespondResult{}, ErrDependenciesNil
	}

	action = strings.ToLower(strings.TrimSpace(action))
	if action != ActionMatch && action != ActionPass {
		return RespondResult{}, ErrUnsupportedAction
	}

	var result RespondResult
	err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		exists, err := s.likeStore.Exists(txCtx, tx, likerID, userID)
		if err != nil {
			return fmt.Errorf("lookup pending like: %w", err)
		}
		if !exists {
			return ErrLikeNotFound
		}

		switch action {
		case ActionMatch:
			created, err := s.matchStore.Create(txCtx, tx, userID, likerID)
			if err != nil {
				return fmt.Errorf("create match: %w", err)
			}
			result.Matched = created
		case ActionPass:
			if err := s.rejectedStore.Create(txCtx, tx, likerID, userID); err != nil {
				return fmt.Errorf("record rejected like: %w", err)
			}
		}

		if _, err := s.likeStore.Delete(txCtx, tx, likerID, userID); err != nil {
			return fmt.Errorf("consume pending like: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrLikeNotFound) {
			return RespondResult{}, ErrLikeNotFound
		}
		return RespondResult{}, err
	}

	return result, nil
}
