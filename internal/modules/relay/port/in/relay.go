package in

import (
	"context"

	"leadclip/internal/modules/relay/dto"
)

type Usecase interface {
	RunDaemon(ctx context.Context) error
	StartDaemon(ctx context.Context) error
	StopDaemon(ctx context.Context) error
	DaemonStatus(ctx context.Context) (dto.RelayStatusOutput, error)
	DaemonLogs(ctx context.Context, tail int) (string, error)

	// Publish seals a payload into an envelope and hands it to the
	// relay daemon for delivery.
	Publish(ctx context.Context, input dto.PublishInput) error

	// ToggleOverlay flips panel visibility, the action-click analog.
	ToggleOverlay(ctx context.Context) error
}
