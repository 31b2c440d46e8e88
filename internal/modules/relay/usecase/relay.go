package usecase

import (
	"context"

	"leadclip/internal/modules/relay/dto"
	relayin "leadclip/internal/modules/relay/port/in"
	"leadclip/internal/modules/relay/service"
)

type Interactor struct {
	svc *service.RelayService
}

func NewInteractor(svc *service.RelayService) relayin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) RunDaemon(ctx context.Context) error {
	return i.svc.RunDaemon(ctx)
}

func (i *Interactor) StartDaemon(ctx context.Context) error {
	return i.svc.StartDaemon(ctx)
}

func (i *Interactor) StopDaemon(ctx context.Context) error {
	return i.svc.StopDaemon(ctx)
}

func (i *Interactor) DaemonStatus(ctx context.Context) (dto.RelayStatusOutput, error) {
	status, err := i.svc.DaemonStatus(ctx)
	if err != nil {
		return dto.RelayStatusOutput{}, err
	}
	return dto.RelayStatusOutput{
		Running:        status.Running,
		PID:            status.PID,
		SocketPath:     status.SocketPath,
		PanelReady:     status.Status.PanelReady,
		OverlayVisible: status.Status.OverlayVisible,
		Delivered:      status.Status.Delivered,
		Pending:        status.Status.Pending,
		StartedAt:      status.Status.StartedAt,
	}, nil
}

func (i *Interactor) DaemonLogs(ctx context.Context, tail int) (string, error) {
	return i.svc.DaemonLogs(ctx, tail)
}

func (i *Interactor) Publish(ctx context.Context, input dto.PublishInput) error {
	return i.svc.Publish(ctx, input.Kind, input.Payload)
}

func (i *Interactor) ToggleOverlay(ctx context.Context) error {
	return i.svc.Publish(ctx, "toggle_overlay", nil)
}
