package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"leadclip/internal/modules/auth/domain"
	apperrors "leadclip/internal/platform/errors"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type fakeAPI struct {
	user  domain.User
	token string
	err   error

	passwordChanges int
}

func (f *fakeAPI) Login(context.Context, string, string) (domain.User, string, error) {
	return f.user, f.token, f.err
}

func (f *fakeAPI) DashboardLogin(context.Context, string, string) (domain.User, string, error) {
	return f.user, f.token, f.err
}

func (f *fakeAPI) ChangePassword(context.Context, string, string, string) error {
	f.passwordChanges++
	return nil
}

type memoryTokenStore struct{ token string }

func (m *memoryTokenStore) Save(token string) error { m.token = token; return nil }
func (m *memoryTokenStore) Load() (string, error) {
	if m.token == "" {
		return "", apperrors.ErrNotLoggedIn
	}
	return m.token, nil
}
func (m *memoryTokenStore) Clear() error { m.token = ""; return nil }

type memoryUserStore struct{ user domain.User }

func (m *memoryUserStore) Save(_ context.Context, user domain.User) error {
	m.user = user
	return nil
}
func (m *memoryUserStore) Load(context.Context) (domain.User, error) {
	if m.user.ID == "" {
		return domain.User{}, apperrors.ErrNotLoggedIn
	}
	return m.user, nil
}
func (m *memoryUserStore) Clear(context.Context) error {
	m.user = domain.User{}
	return nil
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestLoginPersistsSession(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{user: domain.User{ID: "u1", Name: "Jane", Role: "capturing"}, token: "opaque-token"}
	tokens := &memoryTokenStore{}
	users := &memoryUserStore{}
	svc := NewAuthService(&fakeClock{now: time.Now()}, api, tokens, users)

	session, err := svc.Login(context.Background(), "jane@acme.example", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.User.Role != "capturing" || session.Token != "opaque-token" {
		t.Fatalf("session: %+v", session)
	}
	if tokens.token != "opaque-token" || users.user.ID != "u1" {
		t.Fatal("session not persisted")
	}
}

func TestCurrentWithoutLoginFails(t *testing.T) {
	t.Parallel()
	svc := NewAuthService(&fakeClock{now: time.Now()}, &fakeAPI{}, &memoryTokenStore{}, &memoryUserStore{})
	if _, err := svc.Current(context.Background()); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestJWTClaimsOverrideStoredRole(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	token := signedToken(t, jwt.MapClaims{
		"sub":  "u1",
		"role": "handler",
		"exp":  now.Add(time.Hour).Unix(),
	})
	api := &fakeAPI{user: domain.User{ID: "u1", Role: "capturing"}, token: token}
	svc := NewAuthService(&fakeClock{now: now}, api, &memoryTokenStore{}, &memoryUserStore{})

	session, err := svc.Login(context.Background(), "jane@acme.example", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.User.Role != "handler" {
		t.Fatalf("claims role ignored: %q", session.User.Role)
	}
	if session.ExpiresAt.IsZero() {
		t.Fatal("expiry claim not parsed")
	}
}

func TestExpiredTokenMeansLoggedOut(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	token := signedToken(t, jwt.MapClaims{"sub": "u1", "exp": now.Add(-time.Minute).Unix()})
	clk := &fakeClock{now: now}
	svc := NewAuthService(clk, &fakeAPI{user: domain.User{ID: "u1"}, token: token}, &memoryTokenStore{}, &memoryUserStore{})

	if _, err := svc.Login(context.Background(), "jane@acme.example", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Current(context.Background()); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Fatalf("expected expired session to read as logged out, got %v", err)
	}
}

func TestLogoutDestroysBothStores(t *testing.T) {
	t.Parallel()
	tokens := &memoryTokenStore{token: "x"}
	users := &memoryUserStore{user: domain.User{ID: "u1"}}
	svc := NewAuthService(&fakeClock{now: time.Now()}, &fakeAPI{}, tokens, users)

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if tokens.token != "" || users.user.ID != "" {
		t.Fatal("logout left credentials behind")
	}
}

func TestOpaqueTokenKeepsStoredRole(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{user: domain.User{ID: "u1", Role: "researcher"}, token: "not-a-jwt"}
	svc := NewAuthService(&fakeClock{now: time.Now()}, api, &memoryTokenStore{}, &memoryUserStore{})

	session, err := svc.Login(context.Background(), "x@y.z", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.User.Role != "researcher" {
		t.Fatalf("role: %q", session.User.Role)
	}
	if !session.ExpiresAt.IsZero() {
		t.Fatal("opaque token should carry no expiry")
	}
}
