package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	relayout "leadclip/internal/modules/relay/port/out"
)

type FileDaemonStore struct {
	pidPath           string
	socketPath        string
	panelSocketPath   string
	watcherSocketPath string
	logPath           string
}

func NewFileDaemonStore(profileDir string) relayout.DaemonStore {
	base := filepath.Join(profileDir, "relay")
	return &FileDaemonStore{
		pidPath:           filepath.Join(base, "relay.pid"),
		socketPath:        filepath.Join(base, "relay.sock"),
		panelSocketPath:   filepath.Join(base, "panel.sock"),
		watcherSocketPath: filepath.Join(base, "watch.sock"),
		logPath:           filepath.Join(base, "relay.log"),
	}
}

func (s *FileDaemonStore) WritePID(_ context.Context, pid int) error {
	if err := os.MkdirAll(filepath.Dir(s.pidPath), 0o755); err != nil {
		return fmt.Errorf("create relay dir: %w", err)
	}
	return os.WriteFile(s.pidPath, []byte(strconv.Itoa(pid)), 0o644)
}

func (s *FileDaemonStore) ReadPID(_ context.Context) (int, error) {
	raw, err := os.ReadFile(s.pidPath)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("decode relay pid: %w", err)
	}
	return pid, nil
}

func (s *FileDaemonStore) ClearPID(_ context.Context) error {
	if err := os.Remove(s.pidPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove relay pid: %w", err)
	}
	return nil
}

func (s *FileDaemonStore) SocketPath() string {
	return s.socketPath
}

func (s *FileDaemonStore) PanelSocketPath() string {
	return s.panelSocketPath
}

func (s *FileDaemonStore) WatcherSocketPath() string {
	return s.watcherSocketPath
}

func (s *FileDaemonStore) LogPath() string {
	return s.logPath
}
