package usecase

import (
	"context"

	"leadclip/internal/modules/capture/domain"
	"leadclip/internal/modules/capture/dto"
	capturein "leadclip/internal/modules/capture/port/in"
	"leadclip/internal/modules/capture/service"
)

type Interactor struct {
	svc *service.PopupService
}

func NewInteractor(svc *service.PopupService) capturein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Watch(ctx context.Context) error {
	return i.svc.Run(ctx)
}

func (i *Interactor) HandleCopy(ctx context.Context, input dto.CopyInput) error {
	return i.svc.HandleCopy(ctx, input.Text, domain.Point{X: input.X, Y: input.Y})
}
