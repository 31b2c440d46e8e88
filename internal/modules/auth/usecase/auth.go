package usecase

import (
	"context"

	"leadclip/internal/modules/auth/domain"
	"leadclip/internal/modules/auth/dto"
	authin "leadclip/internal/modules/auth/port/in"
	"leadclip/internal/modules/auth/service"
)

type Interactor struct {
	svc *service.AuthService
}

func NewInteractor(svc *service.AuthService) authin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Login(ctx context.Context, input dto.LoginInput) (dto.SessionOutput, error) {
	var (
		session domain.Session
		err     error
	)
	if input.Dashboard {
		session, err = i.svc.DashboardLogin(ctx, input.Email, input.Password)
	} else {
		session, err = i.svc.Login(ctx, input.Email, input.Password)
	}
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return mapSession(session), nil
}

func (i *Interactor) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return i.svc.ChangePassword(ctx, currentPassword, newPassword)
}

func (i *Interactor) Logout(ctx context.Context) error {
	return i.svc.Logout(ctx)
}

func (i *Interactor) Current(ctx context.Context) (dto.SessionOutput, error) {
	session, err := i.svc.Current(ctx)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return mapSession(session), nil
}

func (i *Interactor) Token(ctx context.Context) (string, error) {
	session, err := i.svc.Current(ctx)
	if err != nil {
		return "", err
	}
	return session.Token, nil
}

func mapSession(session domain.Session) dto.SessionOutput {
	return dto.SessionOutput{
		UserID:    session.User.ID,
		Name:      session.User.Name,
		Email:     session.User.Email,
		Role:      session.User.Role,
		ExpiresAt: session.ExpiresAt,
	}
}
