package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"leadclip/internal/modules/draft/domain"
	prospectdomain "leadclip/internal/modules/prospect/domain"
	apperrors "leadclip/internal/platform/errors"
	"leadclip/internal/platform/id"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type memoryDraftStore struct {
	draft  prospectdomain.Prospect
	exists bool
}

func (m *memoryDraftStore) Save(_ context.Context, draft prospectdomain.Prospect) error {
	m.draft, m.exists = draft, true
	return nil
}

func (m *memoryDraftStore) Load(_ context.Context) (prospectdomain.Prospect, error) {
	if !m.exists {
		return prospectdomain.Prospect{}, apperrors.ErrNoActiveDraft
	}
	return m.draft, nil
}

func (m *memoryDraftStore) Clear(_ context.Context) error {
	m.draft, m.exists = prospectdomain.Prospect{}, false
	return nil
}

type memoryPanelStore struct{ state domain.PanelState }

func (m *memoryPanelStore) Save(_ context.Context, state domain.PanelState) error {
	m.state = state
	return nil
}

func (m *memoryPanelStore) Load(_ context.Context) (domain.PanelState, error) {
	return m.state, nil
}

func newService(now time.Time) (*DraftService, *memoryDraftStore) {
	store := &memoryDraftStore{}
	return NewDraftService(&fakeClock{now: now}, store, &memoryPanelStore{}), store
}

func TestApplyCreatesDraftImplicitly(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)
	svc, _ := newService(now)

	draft, err := svc.Apply(context.Background(), "email", "jane@acme.example")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !id.IsLocal(draft.ID) {
		t.Fatalf("implicit draft id not local: %q", draft.ID)
	}
	if draft.Email != "jane@acme.example" {
		t.Fatalf("email: %q", draft.Email)
	}
	if !draft.UpdatedAt.Equal(now) {
		t.Fatalf("updated_at not stamped: %v", draft.UpdatedAt)
	}
}

func TestApplyDuplicateSkillOnlyMovesUpdatedAt(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)}
	store := &memoryDraftStore{}
	svc := NewDraftService(clk, store, &memoryPanelStore{})
	ctx := context.Background()

	first, err := svc.Apply(ctx, "intent_skills", "golang")
	if err != nil {
		t.Fatalf("first apply: %v", err)
	}
	clk.now = clk.now.Add(time.Minute)
	second, err := svc.Apply(ctx, "intent_skills", "golang")
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if len(second.IntentSkills) != 1 {
		t.Fatalf("skills duplicated: %v", second.IntentSkills)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Fatal("updated_at did not advance")
	}
}

func TestSubscribersSeeEveryMutation(t *testing.T) {
	t.Parallel()
	svc, _ := newService(time.Now())
	var seen []string
	svc.Subscribe(func(p prospectdomain.Prospect) { seen = append(seen, p.Name) })

	ctx := context.Background()
	if _, err := svc.Apply(ctx, "name", "Jane Doe"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := svc.Apply(ctx, "name", "Jane A Doe"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(seen) != 2 || seen[1] != "Jane A Doe" {
		t.Fatalf("subscriber calls: %v", seen)
	}
}

func TestReplaceLoadsSavedRecordWholesale(t *testing.T) {
	t.Parallel()
	svc, store := newService(time.Now())
	ctx := context.Background()

	if _, err := svc.Apply(ctx, "name", "Scratch"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	record := prospectdomain.Prospect{ID: "aef5e700-1401-4e3f-bd54-5be9d645df0f", Name: "Saved One", Status: prospectdomain.StatusLNC}
	if _, err := svc.Replace(ctx, record); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if store.draft.Name != "Saved One" || store.draft.Status != prospectdomain.StatusLNC {
		t.Fatalf("replace not wholesale: %+v", store.draft)
	}
	if _, err := svc.Replace(ctx, prospectdomain.Prospect{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestClearDestroysDraft(t *testing.T) {
	t.Parallel()
	svc, store := newService(time.Now())
	ctx := context.Background()
	if _, err := svc.Apply(ctx, "name", "Jane Doe"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := svc.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if store.exists {
		t.Fatal("draft still persisted after clear")
	}
}

func TestUpdatePanelPersistsTransition(t *testing.T) {
	t.Parallel()
	panel := &memoryPanelStore{}
	svc := NewDraftService(&fakeClock{now: time.Now()}, &memoryDraftStore{}, panel)

	state, err := svc.UpdatePanel(context.Background(), domain.PanelState.Toggle)
	if err != nil {
		t.Fatalf("update panel: %v", err)
	}
	if !state.Visible || !panel.state.Visible {
		t.Fatalf("toggle not persisted: %+v / %+v", state, panel.state)
	}
}
