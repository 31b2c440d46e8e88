// Package domain defines the prospect record and its two-phase workflow.
//
// Status graph (B_* is the has-email track):
//
//	new ──► data_refined ──► use_in_campaign ──► pitch
//	                                               │ handoff save
//	                              ┌── no email ────┤
//	                              ▼                ▼ has email
//	                             LNC             B_LNC
//	                              │ connected      │ connected
//	                              ▼                ▼
//	                              LC             B_LC ──► COMMUNICATION
//
// TRASH is reachable from anywhere and terminal. Follow-up saves on
// LC/B_LC never move status; they only stamp last_contacted_at.
package domain

import (
	"fmt"
	"strings"
	"time"

	"leadclip/internal/platform/id"
)

type Status string

const (
	StatusNew           Status = "new"
	StatusDataRefined   Status = "data_refined"
	StatusUseInCampaign Status = "use_in_campaign"
	StatusPitch         Status = "pitch"
	StatusLNC           Status = "LNC"
	StatusBLNC          Status = "B_LNC"
	StatusLC            Status = "LC"
	StatusBLC           Status = "B_LC"
	StatusCommunication Status = "COMMUNICATION"
	StatusTrash         Status = "TRASH"
)

// ParseStatus converts a raw string to a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusNew, StatusDataRefined, StatusUseInCampaign, StatusPitch,
		StatusLNC, StatusBLNC, StatusLC, StatusBLC, StatusCommunication, StatusTrash:
		return st, nil
	}
	return "", fmt.Errorf("unknown prospect status %q", s)
}

type LinkedInState string

const (
	LinkedInNone      LinkedInState = "none"
	LinkedInInvite    LinkedInState = "invite"
	LinkedInConnected LinkedInState = "connected"
)

type Category string

const (
	CategoryEntrepreneur  Category = "Entrepreneur"
	CategorySubcontractor Category = "Subcontractor"
	CategorySME           Category = "SME"
	CategoryHR            Category = "HR"
	CategoryCLevel        Category = "C_Level"
)

// Sources the capturing team works from.
var KnownSources = []string{
	"upwork", "linkedin", "clutch", "crunchbase",
	"producthunt", "glassdoor", "indeed", "others",
}

// Prospect is the unit of work, both as the in-progress draft and as
// the record exchanged with the backend. The identifier is an all-digit
// local string until the backend replaces it with an opaque id.
type Prospect struct {
	ID              string        `json:"id,omitempty"`
	Name            string        `json:"name,omitempty"`
	Email           string        `json:"email,omitempty"`
	Number          string        `json:"number,omitempty"`
	CompanyName     string        `json:"company_name,omitempty"`
	WebsiteLink     string        `json:"website_link,omitempty"`
	LinkedInURL     string        `json:"linkedin_url,omitempty"`
	LinkedInState   LinkedInState `json:"linkedin_state,omitempty"`
	Category        Category      `json:"category,omitempty"`
	Sources         string        `json:"sources,omitempty"`
	IntentSkills    []string      `json:"intent_skills,omitempty"`
	IntentCategory  string        `json:"intent_category,omitempty"`
	IntentProofLink string        `json:"intent_proof_link,omitempty"`
	IntentDate      string        `json:"intent_date,omitempty"`
	AboutProspect   string        `json:"about_prospect,omitempty"`
	Status          Status        `json:"status,omitempty"`
	AssignedLH      string        `json:"assigned_lh,omitempty"`
	LeadScore       int           `json:"lead_score,omitempty"`
	FollowUpDate    string        `json:"follow_up_date,omitempty"`
	PitchTemplate   string        `json:"pitch_template,omitempty"`
	PitchedAt       string        `json:"pitched_at,omitempty"`
	UserID          string        `json:"user_id,omitempty"`
	LastContactedAt time.Time     `json:"last_contacted_at,omitzero"`
	CreatedAt       time.Time     `json:"created_at,omitzero"`
	UpdatedAt       time.Time     `json:"updated_at,omitzero"`
}

// IsPersisted reports whether the prospect carries a server-issued
// identifier. The rule is the id shape: locally generated ids are pure
// digit strings, server ids are opaque and non-numeric. A future
// explicit persisted flag only needs to replace this one function.
func (p Prospect) IsPersisted() bool {
	return p.ID != "" && !id.IsLocal(p.ID)
}

func (p Prospect) HasEmail() bool {
	return strings.TrimSpace(p.Email) != ""
}

// NewDraft returns an empty draft carrying a local identifier.
func NewDraft(localID string, now time.Time) Prospect {
	return Prospect{
		ID:            localID,
		Status:        StatusNew,
		LinkedInState: LinkedInNone,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Phase buckets statuses into the workflow phases that drive required
// fields and save side effects.
type Phase int

const (
	PhaseCapture Phase = iota
	PhaseOutreach
	PhaseFollowUp
	PhaseDone
)

func PhaseOf(status Status) Phase {
	switch status {
	case StatusNew, StatusDataRefined, StatusUseInCampaign, StatusPitch:
		return PhaseCapture
	case StatusLNC, StatusBLNC:
		return PhaseOutreach
	case StatusLC, StatusBLC:
		return PhaseFollowUp
	default:
		return PhaseDone
	}
}

// NextStatus computes the status a save moves to from the outreach
// handoff. The email split selects between the parallel tracks; a
// connected prospect advances within its own track.
func NextStatus(current Status, hasEmail bool, state LinkedInState) Status {
	switch current {
	case StatusPitch:
		if hasEmail {
			return StatusBLNC
		}
		return StatusLNC
	case StatusLNC:
		if state == LinkedInConnected {
			return StatusLC
		}
		return StatusLNC
	case StatusBLNC:
		if state == LinkedInConnected {
			return StatusBLC
		}
		return StatusBLNC
	default:
		return current
	}
}

// AllowedTransition reports whether an explicit status edit from → to is
// permitted outside the computed save transitions.
func AllowedTransition(from, to Status) bool {
	if to == StatusTrash {
		return from != StatusTrash
	}
	allowed, ok := manualTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

var manualTransitions = map[Status][]Status{
	StatusNew:           {StatusDataRefined},
	StatusDataRefined:   {StatusUseInCampaign},
	StatusUseInCampaign: {StatusPitch},
	StatusLC:            {StatusCommunication},
	StatusBLC:           {StatusCommunication},
}
