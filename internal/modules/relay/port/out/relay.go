package out

import (
	"context"
	"time"

	"leadclip/internal/modules/relay/domain"
)

// Poster posts one envelope to a process socket. A dead target is the
// caller's problem to swallow; the poster only reports it.
type Poster interface {
	Post(ctx context.Context, socketPath string, env domain.Envelope) error
	Status(ctx context.Context, socketPath string) (RelayStatus, error)
	Stop(ctx context.Context, socketPath string) error
}

// IPCServer serves the JSON-RPC message API on a unix socket.
type IPCServer interface {
	Serve(ctx context.Context, socketPath string, handler IPCHandler) error
}

type IPCHandler interface {
	Deliver(ctx context.Context, env domain.Envelope) error
	Status(ctx context.Context) (RelayStatus, error)
	Stop(ctx context.Context) error
}

// InstructionStore is the persisted fallback channel. Appended
// envelopes survive until a consumer applies and deletes them.
type InstructionStore interface {
	Append(ctx context.Context, env domain.Envelope) error
	List(ctx context.Context) ([]domain.Envelope, error)
	Delete(ctx context.Context, envID string) error

	// Watch emits a signal whenever the store content changes. The
	// channel closes when ctx is done.
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// DaemonStore resolves the filesystem artifacts of the three
// cooperating processes.
type DaemonStore interface {
	WritePID(ctx context.Context, pid int) error
	ReadPID(ctx context.Context) (int, error)
	ClearPID(ctx context.Context) error
	SocketPath() string
	PanelSocketPath() string
	WatcherSocketPath() string
	LogPath() string
}

type RelayStatus struct {
	PanelReady     bool      `json:"panel_ready"`
	OverlayVisible bool      `json:"overlay_visible"`
	Delivered      int       `json:"delivered"`
	Pending        int       `json:"pending"`
	StartedAt      time.Time `json:"started_at"`
}

type RelayRuntimeStatus struct {
	Running    bool
	PID        int
	SocketPath string
	Status     RelayStatus
}
