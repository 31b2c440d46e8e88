package out

import (
	"context"

	"leadclip/internal/modules/draft/domain"
	prospectdomain "leadclip/internal/modules/prospect/domain"
)

type DraftStore interface {
	Save(ctx context.Context, draft prospectdomain.Prospect) error
	Load(ctx context.Context) (prospectdomain.Prospect, error)
	Clear(ctx context.Context) error
}

type PanelStateStore interface {
	Save(ctx context.Context, state domain.PanelState) error
	Load(ctx context.Context) (domain.PanelState, error)
}
