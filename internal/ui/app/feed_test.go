package app

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	draftdomain "leadclip/internal/modules/draft/domain"
	draftdto "leadclip/internal/modules/draft/dto"
	prospectdomain "leadclip/internal/modules/prospect/domain"
	relaydomain "leadclip/internal/modules/relay/domain"
	relayout "leadclip/internal/modules/relay/port/out"
)

type fakeDrafts struct {
	mu      sync.Mutex
	applied []draftdto.ApplyInput
}

func (f *fakeDrafts) Apply(_ context.Context, input draftdto.ApplyInput) (draftdto.DraftOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = append(f.applied, input)
	return draftdto.DraftOutput{Exists: true}, nil
}

func (f *fakeDrafts) Current(context.Context) (draftdto.DraftOutput, error)  { return draftdto.DraftOutput{}, nil }
func (f *fakeDrafts) StartNew(context.Context) (draftdto.DraftOutput, error) { return draftdto.DraftOutput{}, nil }
func (f *fakeDrafts) Replace(context.Context, prospectdomain.Prospect) (draftdto.DraftOutput, error) {
	return draftdto.DraftOutput{}, nil
}
func (f *fakeDrafts) Clear(context.Context) error { return nil }
func (f *fakeDrafts) Panel(context.Context) (draftdomain.PanelState, error) {
	return draftdomain.PanelState{}, nil
}
func (f *fakeDrafts) UpdatePanel(_ context.Context, mutate func(draftdomain.PanelState) draftdomain.PanelState) (draftdomain.PanelState, error) {
	return mutate(draftdomain.PanelState{}), nil
}

type memInstructions struct {
	mu      sync.Mutex
	envs    map[string]relaydomain.Envelope
	deleted []string
	changes chan struct{}
}

func newMemInstructions() *memInstructions {
	return &memInstructions{envs: map[string]relaydomain.Envelope{}, changes: make(chan struct{}, 8)}
}

func (m *memInstructions) Append(_ context.Context, env relaydomain.Envelope) error {
	m.mu.Lock()
	m.envs[env.ID] = env
	m.mu.Unlock()
	m.changes <- struct{}{}
	return nil
}

func (m *memInstructions) List(context.Context) ([]relaydomain.Envelope, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []relaydomain.Envelope
	for _, env := range m.envs {
		out = append(out, env)
	}
	return out, nil
}

func (m *memInstructions) Delete(_ context.Context, envID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.envs, envID)
	m.deleted = append(m.deleted, envID)
	return nil
}

func (m *memInstructions) Watch(ctx context.Context) (<-chan struct{}, error) {
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case <-m.changes:
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}

type stubServer struct{}

func (stubServer) Serve(ctx context.Context, _ string, _ relayout.IPCHandler) error {
	<-ctx.Done()
	return ctx.Err()
}

type msgSink struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (s *msgSink) send(msg tea.Msg) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
}

func (s *msgSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.msgs)
}

func pasteEnvelope(t *testing.T, envID, field, value string) relaydomain.Envelope {
	t.Helper()
	env, err := relaydomain.NewEnvelope(envID, relaydomain.KindPasteField, time.Now(),
		relaydomain.PasteFieldPayload{Field: field, Value: value})
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}
	return env
}

func TestFeedAppliesPasteFieldOnce(t *testing.T) {
	t.Parallel()
	drafts := &fakeDrafts{}
	instructions := newMemInstructions()
	sink := &msgSink{}
	feed := NewFeed(drafts, instructions, stubServer{}, "/tmp/panel.sock", sink.send)

	env := pasteEnvelope(t, "env-1", "email", "jane@acme.io")
	if err := feed.Deliver(context.Background(), env); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	// Same envelope arriving over the fallback channel.
	if err := feed.Deliver(context.Background(), env); err != nil {
		t.Fatalf("Deliver duplicate: %v", err)
	}

	if len(drafts.applied) != 1 {
		t.Fatalf("applied %d times, want once", len(drafts.applied))
	}
	if drafts.applied[0].Field != "email" || drafts.applied[0].Value != "jane@acme.io" {
		t.Fatalf("applied %+v", drafts.applied[0])
	}
	if sink.count() != 1 {
		t.Fatalf("sent %d messages, want one", sink.count())
	}
}

func TestFeedDeletesConsumedInstruction(t *testing.T) {
	t.Parallel()
	drafts := &fakeDrafts{}
	instructions := newMemInstructions()
	feed := NewFeed(drafts, instructions, stubServer{}, "/tmp/panel.sock", func(tea.Msg) {})

	env := pasteEnvelope(t, "env-2", "name", "Jane Doe")
	if err := instructions.Append(context.Background(), env); err != nil {
		t.Fatalf("Append: %v", err)
	}
	<-instructions.changes

	if err := feed.Deliver(context.Background(), env); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	left, _ := instructions.List(context.Background())
	if len(left) != 0 {
		t.Fatalf("instruction store still holds %d envelopes", len(left))
	}
}

func TestFeedDrainsBacklogOnRun(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	drafts := &fakeDrafts{}
	instructions := newMemInstructions()
	sink := &msgSink{}
	feed := NewFeed(drafts, instructions, stubServer{}, "/tmp/panel.sock", sink.send)

	for _, env := range []relaydomain.Envelope{
		pasteEnvelope(t, "env-a", "name", "Jane Doe"),
		pasteEnvelope(t, "env-b", "company_name", "Acme Inc"),
	} {
		if err := instructions.Append(ctx, env); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	if err := feed.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for sink.count() < 2 {
		select {
		case <-deadline:
			t.Fatalf("drained %d messages, want 2", sink.count())
		case <-time.After(10 * time.Millisecond):
		}
	}
	if len(drafts.applied) != 2 {
		t.Fatalf("applied %d, want 2", len(drafts.applied))
	}
}

func TestFeedRejectsUnknownKind(t *testing.T) {
	t.Parallel()
	feed := NewFeed(&fakeDrafts{}, newMemInstructions(), stubServer{}, "/tmp/panel.sock", func(tea.Msg) {})

	bad := relaydomain.Envelope{ID: "env-x", Kind: "mystery"}
	if err := feed.Deliver(context.Background(), bad); err == nil {
		t.Fatal("unknown kind accepted")
	}
}
