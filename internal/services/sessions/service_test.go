package sessions_test

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	redrepo "github.com/jordanhale/emberline/internal/repo/redis"
	sessionsvc "github.com/jordanhale/emberline/internal/services/sessions"
)

func TestOpenAndValidate(t *testing.T) {
	svc, cleanup := newSessionServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	res, err := svc.Open(ctx, 1001)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if res.Token == "" || res.SID == "" {
		t.Fatalf("expected token and sid, got %+v", res)
	}

	identity, err := svc.Validate(ctx, res.Token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if identity.UserID != 1001 {
		t.Fatalf("expected user 1001, got %d", identity.UserID)
	}
	if identity.SID != res.SID {
		t.Fatalf("expected sid %q, got %q", res.SID, identity.SID)
	}
}

func TestOpenAssignsDistinctSessions(t *testing.T) {
	svc, cleanup := newSessionServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	first, err := svc.Open(ctx, 1001)
	if err != nil {
		t.Fatalf("open first session: %v", err)
	}
	second, err := svc.Open(ctx, 1001)
	if err != nil {
		t.Fatalf("open second session: %v", err)
	}

	if first.SID == second.SID {
		t.Fatalf("two sessions for the same user share sid %q", first.SID)
	}
}

func TestCloseInvalidatesToken(t *testing.T) {
	svc, cleanup := newSessionServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	res, err := svc.Open(ctx, 2002)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}

	if err := svc.Close(ctx, res.SID); err != nil {
		t.Fatalf("close session: %v", err)
	}

	if _, err := svc.Validate(ctx, res.Token); !errors.Is(err, sessionsvc.ErrUnauthorized) {
		t.Fatalf("token should be unauthorized after close, got err=%v", err)
	}
}

func TestValidateRejectsGarbageToken(t *testing.T) {
	svc, cleanup := newSessionServiceForTest(t)
	defer cleanup()

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.Validate(context.Background(), token); !errors.Is(err, sessionsvc.ErrUnauthorized) {
			t.Fatalf("token %q should be unauthorized, got err=%v", token, err)
		}
	}
}

func TestOpenRejectsInvalidUser(t *testing.T) {
	svc, cleanup := newSessionServiceForTest(t)
	defer cleanup()

	if _, err := svc.Open(context.Background(), 0); !errors.Is(err, sessionsvc.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func newSessionServiceForTest(t *testing.T) (*sessionsvc.Service, func()) {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	repo := redrepo.NewSessionRepo(client)
	jwtManager := sessionsvc.NewJWTManager("test-secret", 2*time.Hour)
	svc := sessionsvc.NewService(jwtManager, repo, 2*time.Hour)

	cleanup := func() {
		_ = client.Close()
		mini.Close()
	}

	return svc, cleanup
}
