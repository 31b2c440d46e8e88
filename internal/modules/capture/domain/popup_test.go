package domain

import (
	"strings"
	"testing"
)

func TestPlaceNearAnchor(t *testing.T) {
	t.Parallel()
	pos := Place(Point{X: 10, Y: 5}, Size{Width: 100, Height: 40}, Size{Width: 24, Height: 6}, 1)
	if pos.X != 11 || pos.Y != 6 {
		t.Fatalf("expected offset anchor, got %+v", pos)
	}
}

func TestPlaceClampsToViewport(t *testing.T) {
	t.Parallel()
	// Anchor in the bottom-right corner of a 1000x800 viewport.
	viewport := Size{Width: 1000, Height: 800}
	popup := Size{Width: 30, Height: 8}
	pos := Place(Point{X: 990, Y: 790}, viewport, popup, 2)
	if pos.X+popup.Width+2 > viewport.Width {
		t.Fatalf("popup overflows right edge at %+v", pos)
	}
	if pos.Y+popup.Height+2 > viewport.Height {
		t.Fatalf("popup overflows bottom edge at %+v", pos)
	}
}

func TestPlaceNeverNegative(t *testing.T) {
	t.Parallel()
	pos := Place(Point{X: 0, Y: 0}, Size{Width: 20, Height: 5}, Size{Width: 30, Height: 8}, 1)
	if pos.X < 1 || pos.Y < 1 {
		t.Fatalf("popup escaped viewport at %+v", pos)
	}
}

func TestPreviewTruncatesAtFiftyRunes(t *testing.T) {
	t.Parallel()
	short := "Ada Lovelace"
	if got := Preview(short); got != short {
		t.Fatalf("short text altered: %q", got)
	}
	long := strings.Repeat("é", 60)
	got := Preview(long)
	if got != strings.Repeat("é", 50)+"..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
