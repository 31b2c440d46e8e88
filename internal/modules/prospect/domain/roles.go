package domain

import (
	"time"

	"github.com/samber/lo"
)

// Role selects the workflow strategy for the signed-in user. Each role
// sees a different tab set and enforces different required fields at
// save time.
type Role string

const (
	RoleCapturing  Role = "capturing"
	RoleResearcher Role = "researcher"
	RoleHandler    Role = "handler"
	RoleAdmin      Role = "admin"
)

func ParseRole(s string) Role {
	switch Role(s) {
	case RoleCapturing, RoleResearcher, RoleHandler, RoleAdmin:
		return Role(s)
	}
	return RoleCapturing
}

// Tab identifies a panel tab.
type Tab string

const (
	TabCapture   Tab = "capture"
	TabOutreach  Tab = "outreach"
	TabFollowUp  Tab = "followup"
	TabProspects Tab = "prospects"
	TabSettings  Tab = "settings"
)

// Strategy bundles the per-role behavior.
type Strategy struct {
	Role Role
	Tabs []Tab
}

func StrategyFor(role Role) Strategy {
	switch role {
	case RoleHandler:
		return Strategy{Role: role, Tabs: []Tab{TabOutreach, TabFollowUp, TabProspects, TabSettings}}
	case RoleAdmin:
		return Strategy{Role: role, Tabs: []Tab{TabCapture, TabOutreach, TabFollowUp, TabProspects, TabSettings}}
	default:
		return Strategy{Role: role, Tabs: []Tab{TabCapture, TabProspects, TabSettings}}
	}
}

func (s Strategy) Allows(tab Tab) bool {
	return lo.Contains(s.Tabs, tab)
}

// Missing returns the field names a save still requires for the given
// prospect, determined by its workflow phase. An empty slice means the
// save may proceed.
//
// The early capture statuses only gate identity fields so incremental
// saves stay possible; the campaign-ready statuses demand the full
// intent evidence. The outreach phase cannot hand off without an
// invited, assigned prospect, and a follow-up save needs a contact
// date that is still ahead of now.
func (s Strategy) Missing(p Prospect, now time.Time) []string {
	if s.Role == RoleAdmin {
		// Admin edits bypass field gating.
		return nil
	}
	var missing []string
	require := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}
	switch PhaseOf(p.Status) {
	case PhaseCapture:
		require("name", p.Name)
		require("sources", p.Sources)
		require("status", string(p.Status))
		if p.Status == StatusUseInCampaign || p.Status == StatusPitch {
			require("category", string(p.Category))
			require("linkedin_url", p.LinkedInURL)
			require("intent_proof_link", p.IntentProofLink)
			require("intent_category", p.IntentCategory)
			if len(p.IntentSkills) == 0 {
				missing = append(missing, "intent_skills")
			}
		}
	case PhaseOutreach:
		require("name", p.Name)
		require("pitch_template", p.PitchTemplate)
		if p.LinkedInState != LinkedInInvite && p.LinkedInState != LinkedInConnected {
			missing = append(missing, "linkedin_state")
		}
		require("assigned_lh", p.AssignedLH)
	case PhaseFollowUp:
		require("name", p.Name)
		if !futureFollowUp(p.FollowUpDate, now) {
			missing = append(missing, "follow_up_date")
		}
	}
	return missing
}

// futureFollowUp reports whether the raw date parses and names a day
// strictly after today. Follow-up dates carry day precision only.
func futureFollowUp(raw string, now time.Time) bool {
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return false
	}
	y, mo, day := now.Date()
	today := time.Date(y, mo, day, 0, 0, 0, 0, d.Location())
	return d.After(today)
}
