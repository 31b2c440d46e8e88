package in

import (
	"context"

	"leadclip/internal/modules/auth/dto"
)

type Usecase interface {
	Login(ctx context.Context, input dto.LoginInput) (dto.SessionOutput, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	Logout(ctx context.Context) error
	Current(ctx context.Context) (dto.SessionOutput, error)

	// Token returns the bearer token of the current session.
	Token(ctx context.Context) (string, error)
}
