package out

import (
	"context"

	"leadclip/internal/modules/capture/domain"
)

// Clipboard reads the system clipboard. Implementations shell out to
// the platform tool, so reads can fail when no tool is installed.
type Clipboard interface {
	Read(ctx context.Context) (string, error)
}

// PopupView is everything a surface needs to draw one popup. Current
// holds the draft's non-empty field values so each menu entry can show
// what a selection would overwrite.
type PopupView struct {
	Preview       string
	Suggested     domain.FieldInfo
	HasSuggestion bool
	Fields        []domain.FieldInfo
	Current       map[domain.Field]string
	Position      domain.Point
}

// DraftReader exposes the active draft's field values to the popup.
type DraftReader interface {
	FieldValues(ctx context.Context) (map[domain.Field]string, error)
}

// SurfaceCallbacks route user interaction back into the service.
type SurfaceCallbacks struct {
	OnSelect  func(field domain.Field)
	OnDismiss func()
}

// Surface renders the suggestion popup. The terminal adapter draws it
// in production; tests use an in-memory fake.
type Surface interface {
	Show(ctx context.Context, view PopupView, callbacks SurfaceCallbacks) error
	Dismiss(ctx context.Context) error
}

// Publisher hands capture events to the relay.
type Publisher interface {
	CopyDetected(ctx context.Context, text string, field domain.Field, at domain.Point) error
	PasteField(ctx context.Context, field domain.Field, value string) error
	RequestExpand(ctx context.Context) error
}
