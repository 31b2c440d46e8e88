package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	draftout "leadclip/internal/modules/draft/port/out"
	prospectdomain "leadclip/internal/modules/prospect/domain"
	apperrors "leadclip/internal/platform/errors"
)

// FileDraftStore mirrors the active draft to a JSON file under the
// profile directory. Writes go through a temp file and rename so a
// watcher on the other side never reads a half-written draft.
type FileDraftStore struct {
	path string
}

func NewFileDraftStore(profileDir string) draftout.DraftStore {
	return &FileDraftStore{path: filepath.Join(profileDir, "draft.json")}
}

func (s *FileDraftStore) Save(_ context.Context, draft prospectdomain.Prospect) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	payload, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace draft: %w", err)
	}
	return nil
}

func (s *FileDraftStore) Load(_ context.Context) (prospectdomain.Prospect, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return prospectdomain.Prospect{}, apperrors.ErrNoActiveDraft
		}
		return prospectdomain.Prospect{}, fmt.Errorf("read draft: %w", err)
	}
	draft := prospectdomain.Prospect{}
	if err := json.Unmarshal(payload, &draft); err != nil {
		return prospectdomain.Prospect{}, fmt.Errorf("decode draft: %w", err)
	}
	if draft.ID == "" {
		return prospectdomain.Prospect{}, apperrors.ErrNoActiveDraft
	}
	return draft, nil
}

func (s *FileDraftStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
