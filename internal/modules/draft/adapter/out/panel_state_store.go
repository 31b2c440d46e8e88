package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"leadclip/internal/modules/draft/domain"
	draftout "leadclip/internal/modules/draft/port/out"
)

// FilePanelStateStore persists the panel state so visibility, the
// active tab, and the collapse flag survive a panel restart. A missing
// file loads as the zero state.
type FilePanelStateStore struct {
	path string
}

func NewFilePanelStateStore(profileDir string) draftout.PanelStateStore {
	return &FilePanelStateStore{path: filepath.Join(profileDir, "panel-state.json")}
}

func (s *FilePanelStateStore) Save(_ context.Context, state domain.PanelState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal panel state: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write panel state: %w", err)
	}
	return nil
}

func (s *FilePanelStateStore) Load(_ context.Context) (domain.PanelState, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.PanelState{}, nil
		}
		return domain.PanelState{}, fmt.Errorf("read panel state: %w", err)
	}
	state := domain.PanelState{}
	if err := json.Unmarshal(payload, &state); err != nil {
		return domain.PanelState{}, fmt.Errorf("decode panel state: %w", err)
	}
	return state, nil
}
