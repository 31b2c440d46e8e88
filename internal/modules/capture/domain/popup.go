package domain

import "unicode/utf8"

// Point is a cell position in the terminal viewport.
type Point struct {
	X int
	Y int
}

// Size is a width and height in cells.
type Size struct {
	Width  int
	Height int
}

// Place positions a popup of the given size near the anchor point,
// clamped so the whole popup stays inside the viewport with pad cells
// of margin. The anchor is where the copy happened; the popup opens
// below and to the right of it when room allows.
func Place(anchor Point, viewport Size, popup Size, pad int) Point {
	pos := Point{X: anchor.X + 1, Y: anchor.Y + 1}
	maxX := viewport.Width - popup.Width - pad
	maxY := viewport.Height - popup.Height - pad
	if pos.X > maxX {
		pos.X = maxX
	}
	if pos.Y > maxY {
		pos.Y = maxY
	}
	if pos.X < pad {
		pos.X = pad
	}
	if pos.Y < pad {
		pos.Y = pad
	}
	return pos
}

// PreviewLimit is the longest preview the popup renders before
// truncating with an ellipsis.
const PreviewLimit = 50

// Preview shortens captured text for display. The full text is
// delivered on selection regardless of what the preview shows.
func Preview(text string) string {
	if utf8.RuneCountInString(text) <= PreviewLimit {
		return text
	}
	runes := []rune(text)
	return string(runes[:PreviewLimit]) + "..."
}

// Suggestion is one pending popup: the captured text, its classified
// field, and where the popup should render.
type Suggestion struct {
	Text     string
	Field    Field
	Position Point
}
