package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	MinSessionTTL = time.Hour
	MaxSessionTTL = 7 * 24 * time.Hour
)

type SessionStore interface {
	Create(ctx context.Context, record SessionRecord) error
	Get(ctx context.Context, sid string) (SessionRecord, error)
	Delete(ctx context.Context, sid string) error
}

type Service struct {
	jwt      *JWTManager
	sessions SessionStore
	ttl      time.Duration
	now      func() time.Time
}

func NewService(jwtManager *JWTManager, sessions SessionStore, ttl time.Duration) *Service {
	if ttl < MinSessionTTL {
		ttl = MinSessionTTL
	}
	if ttl > MaxSessionTTL {
		ttl = MaxSessionTTL
	}

	return &Service{
		jwt:      jwtManager,
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Open starts a fresh browsing session for the user. Each session gets its
// own SID, and with it an empty passed-user set.
func (s *Service) Open(ctx context.Context, userID int64) (SessionResult, error) {
	if userID <= 0 {
		return SessionResult{}, ErrInvalidInput
	}

	sid := uuid.NewString()
	expiresAt := s.now().UTC().Add(s.ttl)

	if err := s.sessions.Create(ctx, SessionRecord{
		SID:       sid,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}); err != nil {
		return SessionResult{}, fmt.Errorf("create session record: %w", err)
	}

	token, tokenExpires, err := s.jwt.Generate(userID, sid)
	if err != nil {
		return SessionResult{}, fmt.Errorf("generate session token: %w", err)
	}
	if tokenExpires.Before(expiresAt) {
		expiresAt = tokenExpires
	}

	return SessionResult{
		Token:     token,
		SID:       sid,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate parses the token and confirms the session is still live in the
// store. A token that outlived its session record is rejected.
func (s *Service) Validate(ctx context.Context, token string) (Identity, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return Identity{}, ErrUnauthorized
	}

	record, err := s.sessions.Get(ctx, claims.SID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return Identity{}, ErrUnauthorized
		}
		return Identity{}, fmt.Errorf("get session record: %w", err)
	}
	if record.UserID != claims.UserID {
		return Identity{}, ErrUnauthorized
	}
	if s.now().After(record.ExpiresAt) {
		return Identity{}, ErrUnauthorized
	}

	return Identity{
		UserID: record.UserID,
		SID:    record.SID,
	}, nil
}

func (s *Service) Close(ctx context.Context, sid string) error {
	if sid == "" {
		return ErrInvalidInput
	}
	if err := s.sessions.Delete(ctx, sid); err != nil {
		return fmt.Errorf("delete session record: %w", err)
	}
	return nil
}
