package sso

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/fingate/fingate/internal/shared"
	"github.com/fingate/fingate/internal/users"
	_ "github.com/fingate/fingate/testing"
)

type stubLogins struct {
	recorded []int64
}

func (s *stubLogins) RecordLogin(ctx context.Context, id int64, at time.Time) error {
	s.recorded = append(s.recorded, id)
	return nil
}

func newSessionManager(t *testing.T) *shared.SessionManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return shared.NewSessionManager(client, "test_session", "secret", time.Hour, false)
}

func doTokenLogin(t *testing.T, handler *Handler, manager *shared.SessionManager, token string) (*httptest.ResponseRecorder, *shared.Session) {
	t.Helper()
	target := "/login-sso"
	if token != "" {
		target += "?token=" + url.QueryEscape(token)
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	sess, err := manager.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	ctx := shared.ContextWithSession(req.Context(), sess)
	req = req.WithContext(ctx)
	res := httptest.NewRecorder()
	handler.handleTokenLogin(res, req)
	if err := manager.Commit(ctx, res, req, sess); err != nil {
		t.Fatalf("commit session: %v", err)
	}
	return res, sess
}

func TestTokenLoginSuccess(t *testing.T) {
	verifier := newTestVerifier(stubUsers{user: users.User{
		ID:       42,
		Email:    "fin@example.com",
		Username: "fin",
		Name:     "Fin User",
		Role:     "manager",
	}})
	logins := &stubLogins{}
	handler := NewHandler(slog.Default(), verifier, logins, nil)
	manager := newSessionManager(t)

	res, sess := doTokenLogin(t, handler, manager, buildToken(t, validClaims(), testSecret))
	if res.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", res.Code, res.Body.String())
	}
	if sess.User() != "42" {
		t.Errorf("session user: got %q", sess.User())
	}
	if sess.Get("department") != "FIN1" {
		t.Errorf("department: got %q", sess.Get("department"))
	}
	if len(logins.recorded) != 1 || logins.recorded[0] != 42 {
		t.Errorf("login not recorded: %v", logins.recorded)
	}
}

func TestTokenLoginMissingToken(t *testing.T) {
	handler := NewHandler(slog.Default(), newTestVerifier(stubUsers{}), nil, nil)
	manager := newSessionManager(t)

	res, sess := doTokenLogin(t, handler, manager, "")
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	if sess.User() != "" {
		t.Errorf("no session user should be set on failure")
	}
}

func TestTokenLoginTamperedToken(t *testing.T) {
	handler := NewHandler(slog.Default(), newTestVerifier(stubUsers{user: users.User{ID: 42, Email: "fin@example.com"}}), nil, nil)
	manager := newSessionManager(t)

	res, sess := doTokenLogin(t, handler, manager, buildToken(t, validClaims(), "wrong-secret"))
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
	if sess.User() != "" {
		t.Errorf("no session user should be set on failure")
	}
}

func TestTokenLoginUnknownUserLooksLikeTampered(t *testing.T) {
	tamperedHandler := NewHandler(slog.Default(), newTestVerifier(stubUsers{user: users.User{ID: 42, Email: "fin@example.com"}}), nil, nil)
	unknownHandler := NewHandler(slog.Default(), newTestVerifier(stubUsers{err: shared.ErrNotFound}), nil, nil)
	manager := newSessionManager(t)

	tamperedRes, _ := doTokenLogin(t, tamperedHandler, manager, buildToken(t, validClaims(), "wrong-secret"))
	unknownRes, _ := doTokenLogin(t, unknownHandler, manager, buildToken(t, validClaims(), testSecret))

	if tamperedRes.Code != unknownRes.Code {
		t.Fatalf("status must not distinguish causes: %d vs %d", tamperedRes.Code, unknownRes.Code)
	}
	if tamperedRes.Body.String() != unknownRes.Body.String() {
		t.Fatalf("body must not distinguish causes: %q vs %q", tamperedRes.Body.String(), unknownRes.Body.String())
	}
}

func TestTokenLoginExpired(t *testing.T) {
	handler := NewHandler(slog.Default(), newTestVerifier(stubUsers{user: users.User{ID: 42, Email: "fin@example.com"}}), nil, nil)
	manager := newSessionManager(t)

	claims := validClaims()
	claims.Exp = 1
	res, _ := doTokenLogin(t, handler, manager, buildToken(t, claims, testSecret))
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
}
