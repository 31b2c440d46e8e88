package in

import (
	"context"

	"leadclip/internal/modules/draft/domain"
	"leadclip/internal/modules/draft/dto"
	prospectdomain "leadclip/internal/modules/prospect/domain"
)

type Usecase interface {
	Current(ctx context.Context) (dto.DraftOutput, error)
	StartNew(ctx context.Context) (dto.DraftOutput, error)
	Apply(ctx context.Context, input dto.ApplyInput) (dto.DraftOutput, error)
	Replace(ctx context.Context, record prospectdomain.Prospect) (dto.DraftOutput, error)
	Clear(ctx context.Context) error

	Panel(ctx context.Context) (domain.PanelState, error)
	UpdatePanel(ctx context.Context, mutate func(domain.PanelState) domain.PanelState) (domain.PanelState, error)

	// Subscribe registers a callback invoked after every draft
	// mutation. Callbacks run on the mutating goroutine.
	Subscribe(fn func(prospectdomain.Prospect))
}
