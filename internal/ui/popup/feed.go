package popup

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	relaydomain "leadclip/internal/modules/relay/domain"
	relayout "leadclip/internal/modules/relay/port/out"
)

// Feed serves the watcher socket so the relay can mirror panel state
// changes into the watch process.
type Feed struct {
	server     relayout.IPCServer
	socketPath string
	send       func(tea.Msg)
	startedAt  time.Time

	mu    sync.Mutex
	inbox *relaydomain.Inbox
}

func NewFeed(server relayout.IPCServer, socketPath string, send func(tea.Msg)) *Feed {
	return &Feed{
		server:     server,
		socketPath: socketPath,
		send:       send,
		startedAt:  time.Now(),
		inbox:      relaydomain.NewInbox(),
	}
}

func (f *Feed) Run(ctx context.Context) error {
	go func() {
		_ = f.server.Serve(ctx, f.socketPath, f)
	}()
	return nil
}

func (f *Feed) Deliver(ctx context.Context, env relaydomain.Envelope) error {
	f.mu.Lock()
	fresh, err := f.inbox.Admit(env)
	f.mu.Unlock()
	if err != nil {
		return err
	}
	if !fresh {
		return nil
	}

	switch env.Kind {
	case relaydomain.KindToggleOverlay:
		var payload relaydomain.ToggleOverlayPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			return fmt.Errorf("decode toggle_overlay payload: %w", err)
		}
		f.send(OverlayMsg{Visible: payload.Visible})

	case relaydomain.KindPanelCollapsed:
		var payload relaydomain.PanelCollapsedPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			return fmt.Errorf("decode panel_collapsed payload: %w", err)
		}
		f.send(CollapsedMsg{Collapsed: payload.Collapsed})
	}
	return nil
}

func (f *Feed) Status(ctx context.Context) (relayout.RelayStatus, error) {
	f.mu.Lock()
	applied := f.inbox.Applied()
	f.mu.Unlock()
	return relayout.RelayStatus{Delivered: applied, StartedAt: f.startedAt}, nil
}

func (f *Feed) Stop(ctx context.Context) error {
	f.send(tea.Quit())
	return nil
}
