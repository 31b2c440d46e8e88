package domain

import (
	"reflect"
	"testing"

	prospectdomain "leadclip/internal/modules/prospect/domain"
)

func TestApplyFieldScalarFields(t *testing.T) {
	t.Parallel()
	draft := prospectdomain.Prospect{ID: "1767225600000"}

	draft, err := ApplyField(draft, "name", "  Ada Lovelace ")
	if err != nil {
		t.Fatalf("apply name: %v", err)
	}
	draft, err = ApplyField(draft, "email", "Ada@Lovelace.DEV")
	if err != nil {
		t.Fatalf("apply email: %v", err)
	}
	if draft.Name != "Ada Lovelace" {
		t.Fatalf("name not trimmed: %q", draft.Name)
	}
	if draft.Email != "ada@lovelace.dev" {
		t.Fatalf("email not lowercased: %q", draft.Email)
	}
}

func TestApplyFieldNormalizesURLs(t *testing.T) {
	t.Parallel()
	draft, err := ApplyField(prospectdomain.Prospect{}, "website_link", "acme.example")
	if err != nil {
		t.Fatalf("apply website: %v", err)
	}
	if draft.WebsiteLink != "https://acme.example" {
		t.Fatalf("scheme not added: %q", draft.WebsiteLink)
	}
	draft, err = ApplyField(draft, "linkedin_url", "https://linkedin.com/in/ada")
	if err != nil {
		t.Fatalf("apply linkedin: %v", err)
	}
	if draft.LinkedInURL != "https://linkedin.com/in/ada" {
		t.Fatalf("existing scheme mangled: %q", draft.LinkedInURL)
	}
}

func TestApplyFieldSkillsIdempotent(t *testing.T) {
	t.Parallel()
	draft := prospectdomain.Prospect{}
	for i := 0; i < 3; i++ {
		var err error
		draft, err = ApplyField(draft, "intent_skills", "golang")
		if err != nil {
			t.Fatalf("apply skill: %v", err)
		}
	}
	draft, _ = ApplyField(draft, "intent_skills", "distributed systems")
	if !reflect.DeepEqual(draft.IntentSkills, []string{"golang", "distributed systems"}) {
		t.Fatalf("skills: %v", draft.IntentSkills)
	}
}

func TestApplyFieldSourceNormalization(t *testing.T) {
	t.Parallel()
	draft, _ := ApplyField(prospectdomain.Prospect{}, "sources", "LinkedIn")
	if draft.Sources != "linkedin" {
		t.Fatalf("known source: %q", draft.Sources)
	}
	draft, _ = ApplyField(draft, "sources", "carrier pigeon")
	if draft.Sources != "others" {
		t.Fatalf("unknown source: %q", draft.Sources)
	}
}

func TestApplyFieldCoversHandlerAndIntentFields(t *testing.T) {
	t.Parallel()
	cases := []struct {
		field string
		value string
		got   func(prospectdomain.Prospect) string
		want  string
	}{
		{"linkedin_state", "Invite", func(p prospectdomain.Prospect) string { return string(p.LinkedInState) }, "invite"},
		{"assigned_lh", "lh-9", func(p prospectdomain.Prospect) string { return p.AssignedLH }, "lh-9"},
		{"pitch_template", "intro-v2", func(p prospectdomain.Prospect) string { return p.PitchTemplate }, "intro-v2"},
		{"follow_up_date", "2026-09-15", func(p prospectdomain.Prospect) string { return p.FollowUpDate }, "2026-09-15"},
		{"intent_category", "hiring", func(p prospectdomain.Prospect) string { return p.IntentCategory }, "hiring"},
		{"intent_proof_link", "acme.example/jobs/42", func(p prospectdomain.Prospect) string { return p.IntentProofLink }, "https://acme.example/jobs/42"},
		{"intent_date", "2026-08-20", func(p prospectdomain.Prospect) string { return p.IntentDate }, "2026-08-20"},
	}
	for _, tc := range cases {
		draft, err := ApplyField(prospectdomain.Prospect{}, tc.field, tc.value)
		if err != nil {
			t.Fatalf("apply %s: %v", tc.field, err)
		}
		if got := tc.got(draft); got != tc.want {
			t.Fatalf("%s = %q, want %q", tc.field, got, tc.want)
		}
	}
}

func TestApplyFieldRejectsUnknownLinkedInState(t *testing.T) {
	t.Parallel()
	if _, err := ApplyField(prospectdomain.Prospect{}, "linkedin_state", "ghosted"); err == nil {
		t.Fatal("expected error for unknown linkedin state")
	}
}

func TestApplyFieldRejectsUnknownFieldAndStatus(t *testing.T) {
	t.Parallel()
	if _, err := ApplyField(prospectdomain.Prospect{}, "shoe_size", "44"); err == nil {
		t.Fatal("expected error for unknown field")
	}
	if _, err := ApplyField(prospectdomain.Prospect{}, "status", "archived"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	draft, err := ApplyField(prospectdomain.Prospect{}, "status", "pitch")
	if err != nil {
		t.Fatalf("apply status: %v", err)
	}
	if draft.Status != prospectdomain.StatusPitch {
		t.Fatalf("status: %s", draft.Status)
	}
}

func TestPanelStateMachine(t *testing.T) {
	t.Parallel()
	var state PanelState

	state = state.Toggle()
	if !state.Visible || state.Collapsed {
		t.Fatalf("after toggle on: %+v", state)
	}
	state = state.Collapse()
	if !state.Collapsed {
		t.Fatalf("after collapse: %+v", state)
	}
	state = state.Toggle().Toggle()
	if !state.Visible || state.Collapsed {
		t.Fatalf("re-show must expand: %+v", state)
	}
	state = state.Collapse().Expand()
	if state.Collapsed || !state.Visible {
		t.Fatalf("after expand: %+v", state)
	}
	state = state.MarkReady()
	if !state.Ready {
		t.Fatalf("after ready: %+v", state)
	}
	if state.Reset().Ready {
		t.Fatal("reset must clear readiness")
	}
}

func TestPanelStateEditNavigation(t *testing.T) {
	t.Parallel()
	state := PanelState{}.SwitchTab("prospects").BeginEdit("prospects")
	if state.ActiveTab != "capture" || state.EditingFrom != "prospects" {
		t.Fatalf("after begin edit: %+v", state)
	}
	state = state.EndEdit()
	if state.ActiveTab != "prospects" || state.EditingFrom != "" {
		t.Fatalf("after end edit: %+v", state)
	}
	// Ending an edit that never began keeps the current tab.
	state = state.SwitchTab("settings").EndEdit()
	if state.ActiveTab != "settings" {
		t.Fatalf("stray end edit moved tabs: %+v", state)
	}
}
