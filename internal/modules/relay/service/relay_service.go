// Package service runs the relay coordinator. The relay daemon owns
// the panel visibility flag, tracks panel readiness, and fans messages
// out to the panel and watcher sockets over two redundant channels.
package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"leadclip/internal/modules/relay/domain"
	relayout "leadclip/internal/modules/relay/port/out"
	"leadclip/internal/platform/clock"
	apperrors "leadclip/internal/platform/errors"
)

const (
	daemonStartTimeout  = 5 * time.Second
	readinessWait       = 2 * time.Second
	defaultLogTailLines = 50
)

type RelayService struct {
	clock        clock.Clock
	daemon       relayout.DaemonStore
	instructions relayout.InstructionStore
	poster       relayout.Poster
	ipcServer    relayout.IPCServer
	profileDir   string
	readyWait    time.Duration

	mu         sync.RWMutex
	panelReady bool
	readyCh    chan struct{}
	overlay    bool
	delivered  int
	startedAt  time.Time
	cancelRun  context.CancelFunc
	logger     *log.Logger
}

func NewRelayService(clk clock.Clock, daemon relayout.DaemonStore, instructions relayout.InstructionStore, poster relayout.Poster, ipcServer relayout.IPCServer, profileDir string) *RelayService {
	return &RelayService{
		clock:        clk,
		daemon:       daemon,
		instructions: instructions,
		poster:       poster,
		ipcServer:    ipcServer,
		profileDir:   profileDir,
		readyWait:    readinessWait,
		readyCh:      make(chan struct{}),
	}
}

// Deliver is the daemon-side sink for every inbound envelope. Unknown
// kinds fail at the boundary; everything else is routed by kind.
func (s *RelayService) Deliver(ctx context.Context, env domain.Envelope) error {
	if err := env.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.delivered++
	s.mu.Unlock()

	switch env.Kind {
	case domain.KindPanelReady:
		s.markPanelReady()
		return nil
	case domain.KindPanelCollapsed:
		s.forward(ctx, s.daemon.WatcherSocketPath(), env)
		return nil
	case domain.KindExpandRequest, domain.KindCopyDetected:
		s.forward(ctx, s.daemon.PanelSocketPath(), env)
		return nil
	case domain.KindToggleOverlay:
		return s.toggle(ctx, env.SentAt)
	case domain.KindPasteField:
		return s.publishToPanel(ctx, env)
	}
	return fmt.Errorf("no route for message kind %q", env.Kind)
}

// publishToPanel always persists the instruction, then attempts a
// direct post once the panel has announced readiness. No readiness
// within the bounded wait means the direct channel is skipped; the
// panel will pick the instruction up from the store.
func (s *RelayService) publishToPanel(ctx context.Context, env domain.Envelope) error {
	if err := s.instructions.Append(ctx, env); err != nil {
		return fmt.Errorf("persist instruction: %w", err)
	}
	if !s.waitPanelReady(s.readyWait) {
		return nil
	}
	s.forward(ctx, s.daemon.PanelSocketPath(), env)
	return nil
}

// toggle flips the overlay flag and tells the panel its new state.
func (s *RelayService) toggle(ctx context.Context, sentAt time.Time) error {
	s.mu.Lock()
	s.overlay = !s.overlay
	visible := s.overlay
	if !visible {
		// A hidden panel has to announce readiness again.
		s.panelReady = false
		s.readyCh = make(chan struct{})
	}
	s.mu.Unlock()

	env, err := domain.NewEnvelope(uuid.NewString(), domain.KindToggleOverlay, sentAt, domain.ToggleOverlayPayload{Visible: visible})
	if err != nil {
		return err
	}
	s.forward(ctx, s.daemon.PanelSocketPath(), env)
	s.forward(ctx, s.daemon.WatcherSocketPath(), env)
	return nil
}

// forward posts to a sibling socket. A dead or absent target is a
// no-op; the fallback channel or the next handshake covers it.
func (s *RelayService) forward(ctx context.Context, socketPath string, env domain.Envelope) {
	if err := s.poster.Post(ctx, socketPath, env); err != nil {
		s.logf("post %s to %s: %v", env.Kind, filepath.Base(socketPath), err)
		if socketPath == s.daemon.PanelSocketPath() {
			s.mu.Lock()
			s.panelReady = false
			s.readyCh = make(chan struct{})
			s.mu.Unlock()
		}
	}
}

func (s *RelayService) markPanelReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panelReady {
		return
	}
	s.panelReady = true
	close(s.readyCh)
}

func (s *RelayService) waitPanelReady(timeout time.Duration) bool {
	s.mu.RLock()
	ready, ch := s.panelReady, s.readyCh
	s.mu.RUnlock()
	if ready {
		return true
	}
	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (s *RelayService) Status(ctx context.Context) (relayout.RelayStatus, error) {
	pending := 0
	if items, err := s.instructions.List(ctx); err == nil {
		pending = len(items)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return relayout.RelayStatus{
		PanelReady:     s.panelReady,
		OverlayVisible: s.overlay,
		Delivered:      s.delivered,
		Pending:        pending,
		StartedAt:      s.startedAt,
	}, nil
}

func (s *RelayService) Stop(_ context.Context) error {
	s.mu.RLock()
	cancel := s.cancelRun
	s.mu.RUnlock()
	if cancel != nil {
		cancel()
	}
	return nil
}

// RunDaemon serves the relay socket in the foreground until stopped.
func (s *RelayService) RunDaemon(ctx context.Context) error {
	logFile, err := os.OpenFile(s.daemon.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err == nil {
		defer logFile.Close()
		s.mu.Lock()
		s.logger = log.New(logFile, "relay ", log.LstdFlags|log.LUTC)
		s.mu.Unlock()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.mu.Lock()
	s.cancelRun = cancel
	s.startedAt = s.clock.Now()
	s.mu.Unlock()

	if err := s.daemon.WritePID(runCtx, os.Getpid()); err != nil {
		return err
	}
	defer func() {
		_ = s.daemon.ClearPID(context.Background())
		_ = os.Remove(s.daemon.SocketPath())
	}()

	s.logf("relay listening on %s", s.daemon.SocketPath())
	return s.ipcServer.Serve(runCtx, s.daemon.SocketPath(), s)
}

// StartDaemon forks the current executable as the foreground runner.
func (s *RelayService) StartDaemon(ctx context.Context) error {
	status, err := s.DaemonStatus(ctx)
	if err == nil && status.Running {
		if socketReachable(s.daemon.SocketPath()) {
			return nil
		}
		return fmt.Errorf("relay process is alive but socket is unavailable")
	}

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.daemon.LogPath()), 0o755); err != nil {
		return fmt.Errorf("create relay log dir: %w", err)
	}
	if err := os.Remove(s.daemon.SocketPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale relay socket: %w", err)
	}

	logFile, err := os.OpenFile(s.daemon.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open relay log: %w", err)
	}
	defer logFile.Close()

	cmd := exec.Command(execPath, "relay", "run", "--profile", s.profileDir)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.Stdin = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start relay: %w", err)
	}
	if err := s.daemon.WritePID(ctx, cmd.Process.Pid); err != nil {
		return err
	}
	_ = cmd.Process.Release()

	if err := waitForSocket(s.daemon.SocketPath(), daemonStartTimeout); err != nil {
		_ = s.daemon.ClearPID(ctx)
		return fmt.Errorf("relay did not come up: %w", err)
	}
	return nil
}

func (s *RelayService) StopDaemon(ctx context.Context) error {
	s.mu.RLock()
	cancel := s.cancelRun
	s.mu.RUnlock()
	if cancel != nil {
		cancel()
		return nil
	}

	if s.poster != nil {
		_ = s.poster.Stop(ctx, s.daemon.SocketPath())
	}

	pid, err := s.daemon.ReadPID(ctx)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			_ = os.Remove(s.daemon.SocketPath())
			return nil
		}
		return err
	}
	if pid <= 0 || !processAlive(pid) {
		_ = s.daemon.ClearPID(ctx)
		_ = os.Remove(s.daemon.SocketPath())
		return nil
	}
	if err := syscall.Kill(pid, syscall.SIGTERM); err != nil && !errors.Is(err, syscall.ESRCH) {
		return fmt.Errorf("stop relay pid=%d: %w", pid, err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if processAlive(pid) {
		_ = syscall.Kill(pid, syscall.SIGKILL)
	}
	if err := s.daemon.ClearPID(ctx); err != nil {
		return err
	}
	_ = os.Remove(s.daemon.SocketPath())
	return nil
}

func (s *RelayService) DaemonStatus(ctx context.Context) (relayout.RelayRuntimeStatus, error) {
	out := relayout.RelayRuntimeStatus{SocketPath: s.daemon.SocketPath()}
	pid, err := s.daemon.ReadPID(ctx)
	if err == nil {
		out.PID = pid
		out.Running = processAlive(pid)
	}
	if out.Running && s.poster != nil {
		if status, statusErr := s.poster.Status(ctx, s.daemon.SocketPath()); statusErr == nil {
			out.Status = status
		}
	}
	return out, nil
}

func (s *RelayService) DaemonLogs(_ context.Context, tail int) (string, error) {
	if tail <= 0 {
		tail = defaultLogTailLines
	}
	file, err := os.Open(s.daemon.LogPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("open relay log: %w", err)
	}
	defer file.Close()

	lines := make([]string, 0, tail)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if len(lines) < tail {
			lines = append(lines, line)
			continue
		}
		copy(lines, lines[1:])
		lines[len(lines)-1] = line
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("scan relay log: %w", err)
	}
	return strings.Join(lines, "\n"), nil
}

// Publish seals a payload and posts it to the running relay daemon.
func (s *RelayService) Publish(ctx context.Context, kind string, payload any) error {
	env, err := domain.NewEnvelope(uuid.NewString(), domain.Kind(kind), s.clock.Now(), payload)
	if err != nil {
		return err
	}
	if err := env.Validate(); err != nil {
		return err
	}
	if !socketReachable(s.daemon.SocketPath()) {
		return apperrors.ErrRelayNotRunning
	}
	return s.poster.Post(ctx, s.daemon.SocketPath(), env)
}

func (s *RelayService) logf(format string, args ...any) {
	s.mu.RLock()
	logger := s.logger
	s.mu.RUnlock()
	if logger != nil {
		logger.Printf(format, args...)
	}
}

func waitForSocket(path string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if socketReachable(path) {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("socket not ready: %s", path)
}

func socketReachable(path string) bool {
	conn, err := net.DialTimeout("unix", path, 150*time.Millisecond)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}
