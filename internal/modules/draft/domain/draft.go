// Package domain holds the draft editing rules, how captured text
// lands in prospect fields and how the panel state machine moves.
package domain

import (
	"strings"

	"github.com/samber/lo"

	prospectdomain "leadclip/internal/modules/prospect/domain"
	apperrors "leadclip/internal/platform/errors"
)

// ApplyField writes a captured value into the named field of the draft
// and returns the updated copy. Applying the same skill value twice is
// a no-op, so a replayed paste message cannot duplicate list entries.
func ApplyField(p prospectdomain.Prospect, field, value string) (prospectdomain.Prospect, error) {
	value = strings.TrimSpace(value)
	switch field {
	case "name":
		p.Name = value
	case "email":
		p.Email = strings.ToLower(value)
	case "number":
		p.Number = value
	case "company_name":
		p.CompanyName = value
	case "website_link":
		p.WebsiteLink = normalizeURL(value)
	case "linkedin_url":
		p.LinkedInURL = normalizeURL(value)
	case "category":
		p.Category = prospectdomain.Category(value)
	case "sources":
		p.Sources = normalizeSource(value)
	case "status":
		status, err := prospectdomain.ParseStatus(value)
		if err != nil {
			return p, err
		}
		p.Status = status
	case "about_prospect":
		p.AboutProspect = value
	case "linkedin_state":
		state := prospectdomain.LinkedInState(strings.ToLower(value))
		switch state {
		case prospectdomain.LinkedInNone, prospectdomain.LinkedInInvite, prospectdomain.LinkedInConnected:
			p.LinkedInState = state
		default:
			return p, apperrors.ErrInvalidInput
		}
	case "assigned_lh":
		p.AssignedLH = value
	case "pitch_template":
		p.PitchTemplate = value
	case "follow_up_date":
		p.FollowUpDate = value
	case "intent_category":
		p.IntentCategory = value
	case "intent_proof_link":
		p.IntentProofLink = normalizeURL(value)
	case "intent_date":
		p.IntentDate = value
	case "intent_skills":
		if value != "" && !lo.Contains(p.IntentSkills, value) {
			p.IntentSkills = append(p.IntentSkills, value)
		}
	default:
		return p, apperrors.ErrInvalidInput
	}
	return p, nil
}

func normalizeURL(raw string) string {
	if raw == "" {
		return raw
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}
	return raw
}

func normalizeSource(raw string) string {
	lower := strings.ToLower(raw)
	if lo.Contains(prospectdomain.KnownSources, lower) {
		return lower
	}
	return "others"
}
