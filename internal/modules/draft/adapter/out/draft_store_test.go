package out

import (
	"context"
	"errors"
	"testing"

	"leadclip/internal/modules/draft/domain"
	prospectdomain "leadclip/internal/modules/prospect/domain"
	apperrors "leadclip/internal/platform/errors"
)

func TestFileDraftStoreRoundTrip(t *testing.T) {
	t.Parallel()
	store := NewFileDraftStore(t.TempDir())
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, apperrors.ErrNoActiveDraft) {
		t.Fatalf("expected ErrNoActiveDraft, got %v", err)
	}

	draft := prospectdomain.Prospect{
		ID:           "1716239022123",
		Name:         "Jane Doe",
		Email:        "jane@acme.example",
		IntentSkills: []string{"golang", "grpc"},
		Status:       prospectdomain.StatusDataRefined,
	}
	if err := store.Save(ctx, draft); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Name != draft.Name || loaded.Status != draft.Status || len(loaded.IntentSkills) != 2 {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, apperrors.ErrNoActiveDraft) {
		t.Fatalf("expected cleared store to be empty, got %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("double clear: %v", err)
	}
}

func TestFilePanelStateStoreRoundTrip(t *testing.T) {
	t.Parallel()
	store := NewFilePanelStateStore(t.TempDir())
	ctx := context.Background()

	state, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if state.Visible || state.Collapsed {
		t.Fatalf("zero state expected, got %+v", state)
	}

	state = domain.PanelState{Visible: true, Collapsed: true, ActiveTab: "prospects"}
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != state {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}
