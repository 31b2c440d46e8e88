package out

import (
	"context"

	"leadclip/internal/modules/auth/domain"
)

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	DashboardLogin(ctx context.Context, email, password string) (domain.User, string, error)
	ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error
}

// TokenStore keeps the bearer token in the OS keyring.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// UserStore persists the signed-in user record.
type UserStore interface {
	Save(ctx context.Context, user domain.User) error
	Load(ctx context.Context) (domain.User, error)
	Clear(ctx context.Context) error
}
