// Package usecase ties saves to the session and the draft lifecycle:
// the token and role come from auth, the record comes from the draft
// store, and a successful non-stay save clears the draft.
package usecase

import (
	"context"
	"fmt"

	authin "leadclip/internal/modules/auth/port/in"
	draftin "leadclip/internal/modules/draft/port/in"
	prospectdomain "leadclip/internal/modules/prospect/domain"
	"leadclip/internal/modules/prospect/dto"
	prospectin "leadclip/internal/modules/prospect/port/in"
	prospectout "leadclip/internal/modules/prospect/port/out"
	"leadclip/internal/modules/prospect/service"
	apperrors "leadclip/internal/platform/errors"
)

type Interactor struct {
	svc    *service.ProspectService
	auth   authin.Usecase
	drafts draftin.Usecase
}

func NewInteractor(svc *service.ProspectService, auth authin.Usecase, drafts draftin.Usecase) prospectin.Usecase {
	return &Interactor{svc: svc, auth: auth, drafts: drafts}
}

func (i *Interactor) Save(ctx context.Context, input dto.SaveInput) (dto.SaveOutput, error) {
	session, err := i.auth.Current(ctx)
	if err != nil {
		return dto.SaveOutput{}, err
	}
	current, err := i.drafts.Current(ctx)
	if err != nil {
		return dto.SaveOutput{}, err
	}
	if !current.Exists {
		return dto.SaveOutput{}, apperrors.ErrNoActiveDraft
	}

	draft := current.Draft
	if draft.UserID == "" {
		draft.UserID = session.UserID
	}
	strategy := prospectdomain.StrategyFor(prospectdomain.ParseRole(session.Role))

	token, err := i.auth.Token(ctx)
	if err != nil {
		return dto.SaveOutput{}, err
	}
	result, err := i.svc.Save(ctx, token, draft, strategy)
	if err != nil {
		// The draft stays untouched so the user can fix and retry.
		return dto.SaveOutput{}, err
	}

	if input.Stay {
		if _, err := i.drafts.Replace(ctx, result.Prospect); err != nil {
			return dto.SaveOutput{}, fmt.Errorf("reload saved draft: %w", err)
		}
	} else if err := i.drafts.Clear(ctx); err != nil {
		return dto.SaveOutput{}, fmt.Errorf("clear saved draft: %w", err)
	}
	return dto.SaveOutput{Prospect: result.Prospect, Created: result.Created}, nil
}

func (i *Interactor) ChangeStatus(ctx context.Context, prospectID string, to string) (prospectdomain.Prospect, error) {
	status, err := prospectdomain.ParseStatus(to)
	if err != nil {
		return prospectdomain.Prospect{}, err
	}
	token, err := i.auth.Token(ctx)
	if err != nil {
		return prospectdomain.Prospect{}, err
	}
	records, err := i.svc.List(ctx, prospectout.ListFilter{})
	if err != nil {
		return prospectdomain.Prospect{}, err
	}
	for _, record := range records {
		if record.ID == prospectID {
			return i.svc.ChangeStatus(ctx, token, record, status)
		}
	}
	return prospectdomain.Prospect{}, apperrors.ErrNotFound
}

func (i *Interactor) List(ctx context.Context, input dto.ListInput) ([]prospectdomain.Prospect, error) {
	filter := prospectout.ListFilter{}
	for _, raw := range input.Statuses {
		status, err := prospectdomain.ParseStatus(raw)
		if err != nil {
			return nil, err
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	if input.Refresh {
		token, err := i.auth.Token(ctx)
		if err != nil {
			return nil, err
		}
		return i.svc.Sync(ctx, token, filter)
	}
	return i.svc.List(ctx, filter)
}

func (i *Interactor) Skills(ctx context.Context) ([]string, error) {
	token, err := i.auth.Token(ctx)
	if err != nil {
		return nil, err
	}
	return i.svc.Skills(ctx, token)
}

func (i *Interactor) TeamMembers(ctx context.Context) ([]dto.TeamMemberOutput, error) {
	token, err := i.auth.Token(ctx)
	if err != nil {
		return nil, err
	}
	members, err := i.svc.TeamMembers(ctx, token)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TeamMemberOutput, 0, len(members))
	for _, m := range members {
		out = append(out, dto.TeamMemberOutput{ID: m.ID, Name: m.Name, Email: m.Email, Role: m.Role})
	}
	return out, nil
}

func (i *Interactor) Strategy(ctx context.Context) (prospectdomain.Strategy, error) {
	session, err := i.auth.Current(ctx)
	if err != nil {
		return prospectdomain.Strategy{}, err
	}
	return prospectdomain.StrategyFor(prospectdomain.ParseRole(session.Role)), nil
}

func (i *Interactor) Busy() bool {
	return i.svc.Busy()
}
