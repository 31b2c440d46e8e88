package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	draftdto "leadclip/internal/modules/draft/dto"
	relaydomain "leadclip/internal/modules/relay/domain"
	relayout "leadclip/internal/modules/relay/port/out"
)

// Feed is the panel's receiving side. It serves the panel socket for
// direct posts and watches the instruction store for the persisted
// fallback, funneling both through one inbox so a message delivered on
// both channels mutates the draft exactly once.
type Feed struct {
	drafts       draftPort
	instructions relayout.InstructionStore
	server       relayout.IPCServer
	socketPath   string
	send         func(tea.Msg)
	startedAt    time.Time

	mu    sync.Mutex
	inbox *relaydomain.Inbox
}

func NewFeed(drafts draftPort, instructions relayout.InstructionStore, server relayout.IPCServer, socketPath string, send func(tea.Msg)) *Feed {
	return &Feed{
		drafts:       drafts,
		instructions: instructions,
		server:       server,
		socketPath:   socketPath,
		send:         send,
		startedAt:    time.Now(),
		inbox:        relaydomain.NewInbox(),
	}
}

// Run starts the socket server and the instruction watcher. Pending
// instructions are drained immediately so captures sent while the
// panel was down apply on startup.
func (f *Feed) Run(ctx context.Context) error {
	go func() {
		_ = f.server.Serve(ctx, f.socketPath, f)
	}()

	changes, err := f.instructions.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch instructions: %w", err)
	}
	f.drain(ctx)
	go func() {
		for range changes {
			f.drain(ctx)
		}
	}()
	return nil
}

// Deliver implements the socket handler. The relay posts envelopes
// here once the panel announced readiness.
func (f *Feed) Deliver(ctx context.Context, env relaydomain.Envelope) error {
	f.mu.Lock()
	fresh, err := f.inbox.Admit(env)
	f.mu.Unlock()
	if err != nil {
		return err
	}
	if !fresh {
		// Duplicate from the other channel; the instruction copy can go.
		_ = f.instructions.Delete(ctx, env.ID)
		return nil
	}

	if env.Kind == relaydomain.KindPasteField {
		var payload relaydomain.PasteFieldPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			return fmt.Errorf("decode paste_field payload: %w", err)
		}
		if _, err := f.drafts.Apply(ctx, draftdto.ApplyInput{Field: payload.Field, Value: payload.Value}); err != nil {
			return fmt.Errorf("apply %s: %w", payload.Field, err)
		}
	}
	_ = f.instructions.Delete(ctx, env.ID)
	f.send(DeliveredMsg{Env: env})
	return nil
}

func (f *Feed) Status(ctx context.Context) (relayout.RelayStatus, error) {
	f.mu.Lock()
	applied := f.inbox.Applied()
	f.mu.Unlock()
	return relayout.RelayStatus{
		PanelReady: true,
		Delivered:  applied,
		StartedAt:  f.startedAt,
	}, nil
}

func (f *Feed) Stop(ctx context.Context) error {
	f.send(tea.Quit())
	return nil
}

func (f *Feed) drain(ctx context.Context) {
	envs, err := f.instructions.List(ctx)
	if err != nil {
		return
	}
	for _, env := range envs {
		_ = f.Deliver(ctx, env)
	}
}
