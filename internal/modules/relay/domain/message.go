// Package domain defines the cross-process message envelope and the
// idempotent inbox that consumes it. Messages travel over two channels
// at once, a direct socket post and a persisted instruction file, so a
// receiver may see the same envelope twice and must apply it once.
package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type Kind string

const (
	KindCopyDetected   Kind = "copy_detected"
	KindToggleOverlay  Kind = "toggle_overlay"
	KindPasteField     Kind = "paste_field"
	KindPanelReady     Kind = "panel_ready"
	KindPanelCollapsed Kind = "panel_collapsed"
	KindExpandRequest  Kind = "expand_request"
)

// Envelope wraps one message for delivery. The ID is unique per send
// and is the idempotency key on the receiving side.
type Envelope struct {
	ID      string          `json:"id"`
	Kind    Kind            `json:"kind"`
	SentAt  time.Time       `json:"sent_at"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// CopyDetectedPayload announces a fresh clipboard capture. Text is the
// full captured text, never the truncated preview.
type CopyDetectedPayload struct {
	Text  string `json:"text"`
	Field string `json:"field"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

// ToggleOverlayPayload shows or hides the panel.
type ToggleOverlayPayload struct {
	Visible bool `json:"visible"`
}

// PasteFieldPayload assigns captured text into a named draft field.
type PasteFieldPayload struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// PanelCollapsedPayload reports the panel's collapsed state so the
// watcher can adjust its own rendering.
type PanelCollapsedPayload struct {
	Collapsed bool `json:"collapsed"`
}

// NewEnvelope seals a payload into an envelope. Handshake kinds carry
// no payload and accept a nil value.
func NewEnvelope(envID string, kind Kind, sentAt time.Time, payload any) (Envelope, error) {
	env := Envelope{ID: envID, Kind: kind, SentAt: sentAt}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return Envelope{}, fmt.Errorf("encode %s payload: %w", kind, err)
		}
		env.Payload = raw
	}
	return env, nil
}

func (e Envelope) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("envelope missing id")
	}
	switch e.Kind {
	case KindCopyDetected, KindToggleOverlay, KindPasteField,
		KindPanelReady, KindPanelCollapsed, KindExpandRequest:
		return nil
	}
	return fmt.Errorf("unknown message kind %q", e.Kind)
}

// Inbox tracks which envelope ids have already been applied. Receivers
// funnel both delivery channels through one inbox so duplicates from
// the fallback path are dropped.
type Inbox struct {
	consumed map[string]struct{}
	applied  int
}

func NewInbox() *Inbox {
	return &Inbox{consumed: map[string]struct{}{}}
}

// Admit reports whether the envelope is new and records it as consumed.
// A second call with the same id returns false.
func (in *Inbox) Admit(env Envelope) (bool, error) {
	if err := env.Validate(); err != nil {
		return false, err
	}
	if _, seen := in.consumed[env.ID]; seen {
		return false, nil
	}
	in.consumed[env.ID] = struct{}{}
	in.applied++
	return true, nil
}

// Applied returns how many distinct envelopes this inbox admitted.
func (in *Inbox) Applied() int {
	return in.applied
}
