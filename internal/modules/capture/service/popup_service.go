// Package service drives the suggestion popup lifecycle: one live
// popup at a time, consecutive duplicate captures ignored, auto
// dismissal after a quiet period.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"leadclip/internal/modules/capture/domain"
	captureout "leadclip/internal/modules/capture/port/out"
)

const defaultTimeout = 5 * time.Second

type PopupService struct {
	surface   captureout.Surface
	publisher captureout.Publisher
	clipboard captureout.Clipboard
	drafts    captureout.DraftReader
	timeout   time.Duration
	pollEvery time.Duration

	mu       sync.Mutex
	lastText string
	active   bool
	text     string
	gen      int
	timer    *time.Timer
}

func NewPopupService(surface captureout.Surface, publisher captureout.Publisher, clipboard captureout.Clipboard, drafts captureout.DraftReader, timeout, pollEvery time.Duration) *PopupService {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &PopupService{
		surface:   surface,
		publisher: publisher,
		clipboard: clipboard,
		drafts:    drafts,
		timeout:   timeout,
		pollEvery: pollEvery,
	}
}

// Run polls the clipboard until the context ends, feeding every fresh
// capture to HandleCopy. Read failures are skipped; the next tick
// retries.
func (s *PopupService) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.pollEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			text, err := s.clipboard.Read(ctx)
			if err != nil {
				continue
			}
			_ = s.HandleCopy(ctx, text, domain.Point{})
		}
	}
}

// HandleCopy reacts to one captured text. Identical consecutive
// captures are ignored so polling the unchanged clipboard stays quiet.
func (s *PopupService) HandleCopy(ctx context.Context, text string, at domain.Point) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	s.mu.Lock()
	if text == s.lastText {
		s.mu.Unlock()
		return nil
	}
	s.lastText = text
	s.mu.Unlock()

	field, hasSuggestion := domain.Classify(text)
	_ = s.publisher.CopyDetected(ctx, text, field, at)

	// Current values are best effort; a missing or unreadable draft
	// only drops the overwrite hints.
	var current map[domain.Field]string
	if s.drafts != nil {
		current, _ = s.drafts.FieldValues(ctx)
	}

	view := captureout.PopupView{
		Preview:       domain.Preview(text),
		Suggested:     domain.InfoFor(field),
		HasSuggestion: hasSuggestion,
		Fields:        domain.AssignableFields,
		Current:       current,
		Position:      at,
	}

	s.mu.Lock()
	// A new capture replaces any live popup.
	if s.active {
		s.stopTimerLocked()
		_ = s.surface.Dismiss(ctx)
	}
	s.active = true
	s.text = text
	s.gen++
	gen := s.gen
	s.timer = time.AfterFunc(s.timeout, func() { s.expire(gen) })
	s.mu.Unlock()

	return s.surface.Show(ctx, view, captureout.SurfaceCallbacks{
		OnSelect:  func(f domain.Field) { s.selectField(gen, f) },
		OnDismiss: func() { s.dismiss(gen) },
	})
}

// selectField delivers the FULL captured text for the chosen field,
// never the truncated preview.
func (s *PopupService) selectField(gen int, field domain.Field) {
	s.mu.Lock()
	if !s.active || gen != s.gen {
		s.mu.Unlock()
		return
	}
	text := s.text
	s.stopTimerLocked()
	s.active = false
	s.mu.Unlock()

	ctx := context.Background()
	_ = s.publisher.PasteField(ctx, field, text)
	_ = s.surface.Dismiss(ctx)
}

func (s *PopupService) dismiss(gen int) {
	s.mu.Lock()
	if !s.active || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.stopTimerLocked()
	s.active = false
	s.mu.Unlock()
	_ = s.surface.Dismiss(context.Background())
}

func (s *PopupService) expire(gen int) {
	s.dismiss(gen)
}

// Active reports whether a popup is currently live.
func (s *PopupService) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *PopupService) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
