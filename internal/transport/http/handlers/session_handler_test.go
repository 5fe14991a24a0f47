package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	redrepo "github.com/jordanhale/emberline/internal/repo/redis"
	sessionsvc "github.com/jordanhale/emberline/internal/services/sessions"
	"github.com/jordanhale/emberline/internal/transport/http/dto"
)

func newSessionHandlerForTest(t *testing.T) (*SessionHandler, *sessionsvc.Service, func()) {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})

	jwtManager := sessionsvc.NewJWTManager("test-secret", 2*time.Hour)
	svc := sessionsvc.NewService(jwtManager, redrepo.NewSessionRepo(client), 2*time.Hour)

	cleanup := func() {
		_ = client.Close()
		mini.Close()
	}

	return NewSessionHandler(svc), svc, cleanup
}

func TestSessionOpenIssuesToken(t *testing.T) {
	handler, svc, cleanup := newSessionHandlerForTest(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(`{"user_id":42}`))
	rr := httptest.NewRecorder()
	handler.Open(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d body=%s", rr.Code, rr.Body.String())
	}

	var res dto.SessionOpenResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Token == "" || res.SID == "" || res.ExpiresInSec <= 0 {
		t.Fatalf("incomplete session response %+v", res)
	}

	identity, err := svc.Validate(req.Context(), res.Token)
	if err != nil {
		t.Fatalf("issued token should validate: %v", err)
	}
	if identity.UserID != 42 {
		t.Fatalf("expected user 42, got %d", identity.UserID)
	}
}

func TestSessionOpenRejectsBadBody(t *testing.T) {
	handler, _, cleanup := newSessionHandlerForTest(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(`{"user_id":"abc"}`))
	rr := httptest.NewRecorder()
	handler.Open(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d", rr.Code)
	}
}

func TestSessionCloseRevokesSession(t *testing.T) {
	handler, svc, cleanup := newSessionHandlerForTest(t)
	defer cleanup()

	res, err := svc.Open(httptest.NewRequest(http.MethodGet, "/", nil).Context(), 42)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}

	req := withTestIdentity(httptest.NewRequest(http.MethodPost, "/session/close", nil), 42, res.SID)
	rr := httptest.NewRecorder()
	handler.Close(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d", rr.Code)
	}

	if _, err := svc.Validate(req.Context(), res.Token); err == nil {
		t.Fatalf("token should be invalid after close")
	}
}
