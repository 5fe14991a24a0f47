package sessions

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrSessionNotFound = errors.New("session not found")
)

// SessionRecord binds a browsing session to a user. The exclusion tracker is
// keyed by SID, so all session-scoped state dies with the record.
type SessionRecord struct {
	SID       string
	UserID    int64
	ExpiresAt time.Time
}

type TokenClaims struct {
	UserID    int64
	SID       string
	ExpiresAt time.Time
}

type SessionResult struct {
	Token     string
	SID       string
	ExpiresAt time.Time
}
