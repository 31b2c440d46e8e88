package in

import (
	"context"

	prospectdomain "leadclip/internal/modules/prospect/domain"
	"leadclip/internal/modules/prospect/dto"
)

type Usecase interface {
	// Save pushes the active draft to the backend, applying the
	// role's validation and status transition.
	Save(ctx context.Context, input dto.SaveInput) (dto.SaveOutput, error)

	ChangeStatus(ctx context.Context, prospectID string, to string) (prospectdomain.Prospect, error)
	List(ctx context.Context, input dto.ListInput) ([]prospectdomain.Prospect, error)
	Skills(ctx context.Context) ([]string, error)
	TeamMembers(ctx context.Context) ([]dto.TeamMemberOutput, error)

	// Strategy resolves the current user's workflow strategy.
	Strategy(ctx context.Context) (prospectdomain.Strategy, error)

	// Busy reports whether a save is in flight.
	Busy() bool
}
