package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"leadclip/internal/modules/auth/domain"
	authout "leadclip/internal/modules/auth/port/out"
	apperrors "leadclip/internal/platform/errors"
)

type FileUserStore struct {
	path string
}

func NewFileUserStore(profileDir string) authout.UserStore {
	return &FileUserStore{path: filepath.Join(profileDir, "user.json")}
}

func (s *FileUserStore) Save(_ context.Context, user domain.User) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	payload, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write user: %w", err)
	}
	return nil
}

func (s *FileUserStore) Load(_ context.Context) (domain.User, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.User{}, apperrors.ErrNotLoggedIn
		}
		return domain.User{}, fmt.Errorf("read user: %w", err)
	}
	user := domain.User{}
	if err := json.Unmarshal(payload, &user); err != nil {
		return domain.User{}, fmt.Errorf("decode user: %w", err)
	}
	if user.ID == "" {
		return domain.User{}, apperrors.ErrNotLoggedIn
	}
	return user, nil
}

func (s *FileUserStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear user: %w", err)
	}
	return nil
}
