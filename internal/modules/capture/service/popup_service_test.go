package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"leadclip/internal/modules/capture/domain"
	captureout "leadclip/internal/modules/capture/port/out"
)

type fakeSurface struct {
	mu        sync.Mutex
	shown     []captureout.PopupView
	dismissed int
	callbacks captureout.SurfaceCallbacks
}

func (f *fakeSurface) Show(_ context.Context, view captureout.PopupView, cb captureout.SurfaceCallbacks) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shown = append(f.shown, view)
	f.callbacks = cb
	return nil
}

func (f *fakeSurface) Dismiss(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dismissed++
	return nil
}

func (f *fakeSurface) shownCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.shown)
}

func (f *fakeSurface) lastCallbacks() captureout.SurfaceCallbacks {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.callbacks
}

type fakePublisher struct {
	mu       sync.Mutex
	detected []string
	pastes   []pasted
}

type pasted struct {
	field domain.Field
	value string
}

func (f *fakePublisher) CopyDetected(_ context.Context, text string, _ domain.Field, _ domain.Point) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detected = append(f.detected, text)
	return nil
}

func (f *fakePublisher) PasteField(_ context.Context, field domain.Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pastes = append(f.pastes, pasted{field: field, value: value})
	return nil
}

func (f *fakePublisher) RequestExpand(context.Context) error { return nil }

func (f *fakePublisher) pasted() []pasted {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]pasted, len(f.pastes))
	copy(out, f.pastes)
	return out
}

type staticClipboard struct{ text string }

func (c staticClipboard) Read(context.Context) (string, error) { return c.text, nil }

type staticDraft struct{ values map[domain.Field]string }

func (d staticDraft) FieldValues(context.Context) (map[domain.Field]string, error) {
	return d.values, nil
}

func newPopup(timeout time.Duration) (*PopupService, *fakeSurface, *fakePublisher) {
	surface := &fakeSurface{}
	publisher := &fakePublisher{}
	svc := NewPopupService(surface, publisher, staticClipboard{}, staticDraft{}, timeout, time.Minute)
	return svc, surface, publisher
}

func TestHandleCopyDedupsConsecutiveCaptures(t *testing.T) {
	t.Parallel()
	svc, surface, publisher := newPopup(time.Minute)
	ctx := context.Background()

	if err := svc.HandleCopy(ctx, "jane@acme.example", domain.Point{}); err != nil {
		t.Fatalf("first copy: %v", err)
	}
	if err := svc.HandleCopy(ctx, "jane@acme.example", domain.Point{}); err != nil {
		t.Fatalf("duplicate copy: %v", err)
	}
	if surface.shownCount() != 1 {
		t.Fatalf("popup shown %d times", surface.shownCount())
	}
	if len(publisher.detected) != 1 {
		t.Fatalf("copy detected %d times", len(publisher.detected))
	}
}

func TestHandleCopyCarriesCurrentDraftValues(t *testing.T) {
	t.Parallel()
	surface := &fakeSurface{}
	values := map[domain.Field]string{
		domain.FieldEmail: "old@acme.example",
		domain.FieldName:  "Jane Doe",
	}
	svc := NewPopupService(surface, &fakePublisher{}, staticClipboard{}, staticDraft{values: values}, time.Minute, time.Minute)

	if err := svc.HandleCopy(context.Background(), "jane@acme.example", domain.Point{}); err != nil {
		t.Fatalf("copy: %v", err)
	}
	surface.mu.Lock()
	defer surface.mu.Unlock()
	if got := surface.shown[0].Current[domain.FieldEmail]; got != "old@acme.example" {
		t.Fatalf("current email hint: %q", got)
	}
	if got := surface.shown[0].Current[domain.FieldName]; got != "Jane Doe" {
		t.Fatalf("current name hint: %q", got)
	}
}

func TestHandleCopyIgnoresBlankText(t *testing.T) {
	t.Parallel()
	svc, surface, _ := newPopup(time.Minute)
	if err := svc.HandleCopy(context.Background(), "   ", domain.Point{}); err != nil {
		t.Fatalf("blank copy: %v", err)
	}
	if surface.shownCount() != 0 {
		t.Fatal("blank text raised a popup")
	}
}

func TestNewCaptureReplacesLivePopup(t *testing.T) {
	t.Parallel()
	svc, surface, _ := newPopup(time.Minute)
	ctx := context.Background()

	if err := svc.HandleCopy(ctx, "jane@acme.example", domain.Point{}); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if err := svc.HandleCopy(ctx, "Acme Solutions", domain.Point{}); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if surface.shownCount() != 2 {
		t.Fatalf("popup shown %d times", surface.shownCount())
	}
	if surface.dismissed != 1 {
		t.Fatalf("old popup not dismissed: %d", surface.dismissed)
	}
	if !svc.Active() {
		t.Fatal("replacement popup should be live")
	}
}

func TestSelectionDeliversFullText(t *testing.T) {
	t.Parallel()
	svc, surface, publisher := newPopup(time.Minute)
	long := "This prospect leads platform engineering at a mid-size logistics company in Rotterdam."

	if err := svc.HandleCopy(context.Background(), long, domain.Point{}); err != nil {
		t.Fatalf("copy: %v", err)
	}
	surface.lastCallbacks().OnSelect(domain.FieldAbout)

	pastes := publisher.pasted()
	if len(pastes) != 1 {
		t.Fatalf("pastes: %+v", pastes)
	}
	if pastes[0].field != domain.FieldAbout || pastes[0].value != long {
		t.Fatalf("selection delivered %q, want full text", pastes[0].value)
	}
	if svc.Active() {
		t.Fatal("popup should close after selection")
	}
}

func TestAutoDismissAfterTimeout(t *testing.T) {
	t.Parallel()
	svc, _, publisher := newPopup(80 * time.Millisecond)

	if err := svc.HandleCopy(context.Background(), "jane@acme.example", domain.Point{}); err != nil {
		t.Fatalf("copy: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for svc.Active() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if svc.Active() {
		t.Fatal("popup never auto-dismissed")
	}
	if len(publisher.pasted()) != 0 {
		t.Fatal("auto dismissal must not paste")
	}
}

func TestSelectionBeforeTimeoutStillDelivers(t *testing.T) {
	t.Parallel()
	svc, surface, publisher := newPopup(500 * time.Millisecond)

	if err := svc.HandleCopy(context.Background(), "jane@acme.example", domain.Point{}); err != nil {
		t.Fatalf("copy: %v", err)
	}
	// Interact late in the popup's life, well before expiry.
	time.Sleep(100 * time.Millisecond)
	surface.lastCallbacks().OnSelect(domain.FieldEmail)

	if len(publisher.pasted()) != 1 {
		t.Fatal("late selection dropped")
	}
	// The canceled timer must not fire a second dismissal path.
	time.Sleep(600 * time.Millisecond)
	if got := publisher.pasted(); len(got) != 1 {
		t.Fatalf("pastes after expiry window: %+v", got)
	}
}

func TestStaleCallbacksAreIgnored(t *testing.T) {
	t.Parallel()
	svc, surface, publisher := newPopup(time.Minute)
	ctx := context.Background()

	if err := svc.HandleCopy(ctx, "first text", domain.Point{}); err != nil {
		t.Fatalf("copy: %v", err)
	}
	stale := surface.lastCallbacks()
	if err := svc.HandleCopy(ctx, "second text", domain.Point{}); err != nil {
		t.Fatalf("copy: %v", err)
	}
	stale.OnSelect(domain.FieldName)
	if len(publisher.pasted()) != 0 {
		t.Fatal("stale popup callback pasted")
	}
}
