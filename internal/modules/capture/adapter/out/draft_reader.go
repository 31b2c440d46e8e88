package out

import (
	"context"
	"errors"
	"strings"

	"leadclip/internal/modules/capture/domain"
	captureout "leadclip/internal/modules/capture/port/out"
	draftin "leadclip/internal/modules/draft/port/in"
	prospectdomain "leadclip/internal/modules/prospect/domain"
	apperrors "leadclip/internal/platform/errors"
)

// DraftValues reads the active draft so the popup can annotate each
// field with the value a selection would overwrite. No active draft
// means no annotations, not an error.
type DraftValues struct {
	drafts draftin.Usecase
}

func NewDraftValues(drafts draftin.Usecase) captureout.DraftReader {
	return &DraftValues{drafts: drafts}
}

func (r *DraftValues) FieldValues(ctx context.Context) (map[domain.Field]string, error) {
	cur, err := r.drafts.Current(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoActiveDraft) {
			return nil, nil
		}
		return nil, err
	}
	return fieldValues(cur.Draft), nil
}

func fieldValues(p prospectdomain.Prospect) map[domain.Field]string {
	vals := map[domain.Field]string{
		domain.FieldName:        p.Name,
		domain.FieldEmail:       p.Email,
		domain.FieldNumber:      p.Number,
		domain.FieldCompanyName: p.CompanyName,
		domain.FieldWebsiteLink: p.WebsiteLink,
		domain.FieldLinkedInURL: p.LinkedInURL,
		domain.FieldCategory:    string(p.Category),
		domain.FieldSources:     p.Sources,
		domain.FieldStatus:      string(p.Status),
		domain.FieldAbout:       p.AboutProspect,
		domain.FieldIntentSkill: strings.Join(p.IntentSkills, ", "),
	}
	for f, v := range vals {
		if v == "" {
			delete(vals, f)
		}
	}
	return vals
}
