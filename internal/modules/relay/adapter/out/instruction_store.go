package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"

	"leadclip/internal/modules/relay/domain"
	relayout "leadclip/internal/modules/relay/port/out"
)

// FileInstructionStore keeps each pending envelope as its own JSON
// file under the profile directory. One file per envelope makes delete
// after apply atomic and lets fsnotify report changes per instruction.
type FileInstructionStore struct {
	dir string
}

func NewFileInstructionStore(profileDir string) relayout.InstructionStore {
	return &FileInstructionStore{dir: filepath.Join(profileDir, "instructions")}
}

func (s *FileInstructionStore) Append(_ context.Context, env domain.Envelope) error {
	if err := env.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create instruction dir: %w", err)
	}
	payload, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal instruction: %w", err)
	}
	path := s.pathFor(env.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write instruction: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("publish instruction: %w", err)
	}
	return nil
}

func (s *FileInstructionStore) List(_ context.Context) ([]domain.Envelope, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read instruction dir: %w", err)
	}
	envelopes := make([]domain.Envelope, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		env := domain.Envelope{}
		if err := json.Unmarshal(raw, &env); err != nil {
			continue
		}
		if env.Validate() != nil {
			continue
		}
		envelopes = append(envelopes, env)
	}
	sort.Slice(envelopes, func(i, j int) bool {
		return envelopes[i].SentAt.Before(envelopes[j].SentAt)
	})
	return envelopes, nil
}

func (s *FileInstructionStore) Delete(_ context.Context, envID string) error {
	if err := os.Remove(s.pathFor(envID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete instruction: %w", err)
	}
	return nil
}

// Watch signals on every instruction file landing or leaving. The
// consumer re-lists the store on each signal, so coalesced or spurious
// events are harmless.
func (s *FileInstructionStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create instruction dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("start instruction watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch instruction dir: %w", err)
	}

	signals := make(chan struct{}, 1)
	go func() {
		defer watcher.Close()
		defer close(signals)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) && !event.Op.Has(fsnotify.Write) {
					continue
				}
				if !strings.HasSuffix(event.Name, ".json") {
					continue
				}
				select {
				case signals <- struct{}{}:
				default:
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return signals, nil
}

func (s *FileInstructionStore) pathFor(envID string) string {
	return filepath.Join(s.dir, envID+".json")
}
