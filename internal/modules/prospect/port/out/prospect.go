package out

import (
	"context"

	"leadclip/internal/modules/prospect/domain"
)

type ListFilter struct {
	Statuses  []domain.Status
	UserID    string
	HandlerID string
}

// BackendAPI is the REST backend. Create strips the local id; Update
// addresses the record by its server id and never repeats it in the
// body.
type BackendAPI interface {
	Create(ctx context.Context, token string, p domain.Prospect) (domain.Prospect, error)
	Update(ctx context.Context, token string, p domain.Prospect) (domain.Prospect, error)
	List(ctx context.Context, token string, filter ListFilter) ([]domain.Prospect, error)
	Skills(ctx context.Context, token string) ([]string, error)
	TeamMembers(ctx context.Context, token string) ([]TeamMember, error)
}

type TeamMember struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Cache is the local projection of the backend list, so the list tab
// renders without a round trip.
type Cache interface {
	Replace(ctx context.Context, prospects []domain.Prospect) error
	List(ctx context.Context, filter ListFilter) ([]domain.Prospect, error)
}
