package usecase

import (
	"context"
	"errors"

	"leadclip/internal/modules/draft/domain"
	"leadclip/internal/modules/draft/dto"
	draftin "leadclip/internal/modules/draft/port/in"
	"leadclip/internal/modules/draft/service"
	prospectdomain "leadclip/internal/modules/prospect/domain"
	apperrors "leadclip/internal/platform/errors"
)

type Interactor struct {
	svc *service.DraftService
}

func NewInteractor(svc *service.DraftService) draftin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Current(ctx context.Context) (dto.DraftOutput, error) {
	draft, err := i.svc.Current(ctx)
	if errors.Is(err, apperrors.ErrNoActiveDraft) {
		return dto.DraftOutput{}, nil
	}
	if err != nil {
		return dto.DraftOutput{}, err
	}
	return dto.DraftOutput{Draft: draft, Exists: true}, nil
}

func (i *Interactor) StartNew(ctx context.Context) (dto.DraftOutput, error) {
	draft, err := i.svc.StartNew(ctx)
	if err != nil {
		return dto.DraftOutput{}, err
	}
	return dto.DraftOutput{Draft: draft, Exists: true}, nil
}

func (i *Interactor) Apply(ctx context.Context, input dto.ApplyInput) (dto.DraftOutput, error) {
	draft, err := i.svc.Apply(ctx, input.Field, input.Value)
	if err != nil {
		return dto.DraftOutput{}, err
	}
	return dto.DraftOutput{Draft: draft, Exists: true}, nil
}

func (i *Interactor) Replace(ctx context.Context, record prospectdomain.Prospect) (dto.DraftOutput, error) {
	draft, err := i.svc.Replace(ctx, record)
	if err != nil {
		return dto.DraftOutput{}, err
	}
	return dto.DraftOutput{Draft: draft, Exists: true}, nil
}

func (i *Interactor) Clear(ctx context.Context) error {
	return i.svc.Clear(ctx)
}

func (i *Interactor) Panel(ctx context.Context) (domain.PanelState, error) {
	return i.svc.Panel(ctx)
}

func (i *Interactor) UpdatePanel(ctx context.Context, mutate func(domain.PanelState) domain.PanelState) (domain.PanelState, error) {
	return i.svc.UpdatePanel(ctx, mutate)
}

func (i *Interactor) Subscribe(fn func(prospectdomain.Prospect)) {
	i.svc.Subscribe(fn)
}
