package out

import (
	"context"
	"errors"

	"leadclip/internal/modules/capture/domain"
	captureout "leadclip/internal/modules/capture/port/out"
	relaydomain "leadclip/internal/modules/relay/domain"
	"leadclip/internal/modules/relay/dto"
	relayin "leadclip/internal/modules/relay/port/in"
	apperrors "leadclip/internal/platform/errors"
)

// RelayPublisher hands capture events to the relay daemon. A relay
// that is not running is tolerated for detection events but not for
// paste instructions, which would otherwise be lost silently.
type RelayPublisher struct {
	relay relayin.Usecase
}

func NewRelayPublisher(relay relayin.Usecase) captureout.Publisher {
	return &RelayPublisher{relay: relay}
}

func (p *RelayPublisher) CopyDetected(ctx context.Context, text string, field domain.Field, at domain.Point) error {
	err := p.relay.Publish(ctx, dto.PublishInput{
		Kind: string(relaydomain.KindCopyDetected),
		Payload: relaydomain.CopyDetectedPayload{
			Text:  text,
			Field: string(field),
			X:     at.X,
			Y:     at.Y,
		},
	})
	if errors.Is(err, apperrors.ErrRelayNotRunning) {
		return nil
	}
	return err
}

// RequestExpand asks the panel to leave its collapsed bubble. A panel
// that is not reachable simply keeps the request uninteresting, so a
// stopped relay is tolerated the same way as for detection events.
func (p *RelayPublisher) RequestExpand(ctx context.Context) error {
	err := p.relay.Publish(ctx, dto.PublishInput{
		Kind: string(relaydomain.KindExpandRequest),
	})
	if errors.Is(err, apperrors.ErrRelayNotRunning) {
		return nil
	}
	return err
}

func (p *RelayPublisher) PasteField(ctx context.Context, field domain.Field, value string) error {
	return p.relay.Publish(ctx, dto.PublishInput{
		Kind: string(relaydomain.KindPasteField),
		Payload: relaydomain.PasteFieldPayload{
			Field: string(field),
			Value: value,
		},
	})
}
