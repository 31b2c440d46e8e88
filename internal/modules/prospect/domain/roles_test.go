package domain

import (
	"reflect"
	"testing"
	"time"
)

var gateNow = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

func TestStrategyTabsPerRole(t *testing.T) {
	t.Parallel()
	if tabs := StrategyFor(RoleCapturing).Tabs; !reflect.DeepEqual(tabs, []Tab{TabCapture, TabProspects, TabSettings}) {
		t.Fatalf("capturing tabs: %v", tabs)
	}
	if s := StrategyFor(RoleHandler); s.Allows(TabCapture) || !s.Allows(TabOutreach) {
		t.Fatalf("handler tabs: %v", s.Tabs)
	}
	if s := StrategyFor(RoleAdmin); !s.Allows(TabCapture) || !s.Allows(TabFollowUp) {
		t.Fatalf("admin tabs: %v", s.Tabs)
	}
}

func TestMissingCapturePhase(t *testing.T) {
	t.Parallel()
	s := StrategyFor(RoleCapturing)
	missing := s.Missing(Prospect{Status: StatusNew}, gateNow)
	if !reflect.DeepEqual(missing, []string{"name", "sources"}) {
		t.Fatalf("new prospect missing: %v", missing)
	}
	if m := s.Missing(Prospect{Status: StatusNew, Name: "Ada Lovelace", Sources: "linkedin"}, gateNow); len(m) != 0 {
		t.Fatalf("complete capture draft flagged: %v", m)
	}
}

func TestMissingLateCaptureRequiresIntentEvidence(t *testing.T) {
	t.Parallel()
	s := StrategyFor(RoleResearcher)
	p := Prospect{Status: StatusPitch, Name: "Ada", Sources: "upwork"}
	missing := s.Missing(p, gateNow)
	want := []string{"category", "linkedin_url", "intent_proof_link", "intent_category", "intent_skills"}
	if !reflect.DeepEqual(missing, want) {
		t.Fatalf("pitch missing: %v", missing)
	}
	p.Category = CategorySME
	p.LinkedInURL = "https://linkedin.com/in/ada"
	p.IntentProofLink = "https://acme.example/jobs/42"
	p.IntentCategory = "hiring"
	p.IntentSkills = []string{"golang"}
	if m := s.Missing(p, gateNow); len(m) != 0 {
		t.Fatalf("complete pitch draft flagged: %v", m)
	}
}

func TestMissingOutreachRequiresInviteAndAssignment(t *testing.T) {
	t.Parallel()
	s := StrategyFor(RoleHandler)
	p := Prospect{Status: StatusLNC, Name: "Ada", PitchTemplate: "intro-v2"}
	if m := s.Missing(p, gateNow); !reflect.DeepEqual(m, []string{"linkedin_state", "assigned_lh"}) {
		t.Fatalf("un-invited record passed the gate: %v", m)
	}
	p.LinkedInState = LinkedInInvite
	p.AssignedLH = "lh-9"
	if m := s.Missing(p, gateNow); len(m) != 0 {
		t.Fatalf("invited assigned record flagged: %v", m)
	}
	// A connected record is also past the invite requirement.
	p.LinkedInState = LinkedInConnected
	if m := s.Missing(p, gateNow); len(m) != 0 {
		t.Fatalf("connected record flagged: %v", m)
	}
}

func TestMissingFollowUpRequiresFutureDate(t *testing.T) {
	t.Parallel()
	s := StrategyFor(RoleHandler)
	p := Prospect{Status: StatusBLC, Name: "Ada"}

	for _, date := range []string{"", "not a date", "2026-07-20", "2026-08-01"} {
		p.FollowUpDate = date
		if m := s.Missing(p, gateNow); !reflect.DeepEqual(m, []string{"follow_up_date"}) {
			t.Fatalf("date %q passed the gate: %v", date, m)
		}
	}
	p.FollowUpDate = "2026-08-15"
	if m := s.Missing(p, gateNow); len(m) != 0 {
		t.Fatalf("future date flagged: %v", m)
	}
}

func TestAdminBypassesFieldGating(t *testing.T) {
	t.Parallel()
	if m := StrategyFor(RoleAdmin).Missing(Prospect{Status: StatusPitch}, gateNow); m != nil {
		t.Fatalf("admin gated: %v", m)
	}
}

func TestParseRoleDefaultsToCapturing(t *testing.T) {
	t.Parallel()
	if r := ParseRole("handler"); r != RoleHandler {
		t.Fatalf("parse handler: %s", r)
	}
	if r := ParseRole("intern"); r != RoleCapturing {
		t.Fatalf("unknown role: %s", r)
	}
}
