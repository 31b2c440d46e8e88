package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	capturedomain "leadclip/internal/modules/capture/domain"
	"leadclip/internal/ui/theme"
)

// FieldChosenMsg is emitted when the user confirms a field entry.
type FieldChosenMsg struct{ Field capturedomain.Field }

// FieldMenuDismissMsg is emitted when the user presses esc.
type FieldMenuDismissMsg struct{}

const fieldMenuColumns = 3

var (
	menuFrame = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	menuEntry = lipgloss.NewStyle().
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	menuEntryFocused = lipgloss.NewStyle().
				Background(theme.Surface1).
				Foreground(theme.Lavender).
				Bold(true).
				Padding(0, 1)

	menuSuggested = menuEntry.Foreground(theme.Peach)
)

// FieldMenu is the popup's field picker: the suggested field as a
// full-width top row, then every other assignable field in a grid.
// Entry 0 is always the suggested row when a suggestion exists.
type FieldMenu struct {
	preview   string
	suggested capturedomain.FieldInfo
	hasSugg   bool
	grid      []capturedomain.FieldInfo
	current   map[capturedomain.Field]string
	cursor    int
	width     int
}

// NewFieldMenu builds an empty menu. SetCandidate must run before the
// first render.
func NewFieldMenu() FieldMenu {
	return FieldMenu{width: 46}
}

// SetCandidate loads a fresh capture into the menu and resets focus to
// the suggested entry. Focus never survives a candidate change. The
// current map annotates entries with the draft value a selection would
// overwrite.
func (m *FieldMenu) SetCandidate(preview string, suggested capturedomain.FieldInfo, hasSuggestion bool, current map[capturedomain.Field]string) {
	m.preview = preview
	m.suggested = suggested
	m.hasSugg = hasSuggestion
	m.current = current
	m.cursor = 0
	m.grid = m.grid[:0]
	for _, info := range capturedomain.AssignableFields {
		if hasSuggestion && info.Field == suggested.Field {
			continue
		}
		m.grid = append(m.grid, info)
	}
}

// SetWidth sets the render width for the overlay.
func (m *FieldMenu) SetWidth(w int) { m.width = w }

func (m FieldMenu) entryCount() int {
	n := len(m.grid)
	if m.hasSugg {
		n++
	}
	return n
}

// entryAt maps a linear cursor to a field entry.
func (m FieldMenu) entryAt(i int) capturedomain.FieldInfo {
	if m.hasSugg {
		if i == 0 {
			return m.suggested
		}
		return m.grid[i-1]
	}
	return m.grid[i]
}

func (m FieldMenu) Update(msg tea.Msg) (FieldMenu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	total := m.entryCount()
	if total == 0 {
		return m, nil
	}
	switch key.String() {
	case "esc":
		return m, func() tea.Msg { return FieldMenuDismissMsg{} }
	case "enter":
		chosen := m.entryAt(m.cursor).Field
		return m, func() tea.Msg { return FieldChosenMsg{Field: chosen} }
	case "left", "h":
		m.cursor = (m.cursor + total - 1) % total
	case "right", "l", "tab":
		m.cursor = (m.cursor + 1) % total
	case "down", "j":
		m.cursor = m.step(1)
	case "up", "k":
		m.cursor = m.step(-1)
	}
	return m, nil
}

// step moves the cursor one row up or down. The suggested entry counts
// as its own row; vertical movement wraps from the last grid row back
// to the top.
func (m FieldMenu) step(dir int) int {
	rows := m.rowOffsets()
	row, col := m.rowColOf(m.cursor, rows)
	row = (row + dir + len(rows)) % len(rows)
	start := rows[row]
	end := m.entryCount()
	if row+1 < len(rows) {
		end = rows[row+1]
	}
	next := start + col
	if next >= end {
		next = end - 1
	}
	return next
}

// rowOffsets returns the linear index where each visual row starts.
func (m FieldMenu) rowOffsets() []int {
	var rows []int
	if m.hasSugg {
		rows = append(rows, 0)
	}
	base := 0
	if m.hasSugg {
		base = 1
	}
	for i := 0; i < len(m.grid); i += fieldMenuColumns {
		rows = append(rows, base+i)
	}
	return rows
}

func (m FieldMenu) rowColOf(cursor int, rows []int) (int, int) {
	for r := len(rows) - 1; r >= 0; r-- {
		if cursor >= rows[r] {
			return r, cursor - rows[r]
		}
	}
	return 0, 0
}

func (m FieldMenu) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Muted.Render(m.preview) + "\n\n")

	idx := 0
	if m.hasSugg {
		label := m.suggested.Icon + " " + m.suggested.Label + "  (suggested)"
		label = m.withValue(label, m.suggested.Field, m.width-4)
		style := menuSuggested
		if m.cursor == 0 {
			style = menuEntryFocused
		}
		sb.WriteString(style.Width(m.width - 4).Render(label) + "\n")
		idx = 1
	}

	cellW := (m.width - 4) / fieldMenuColumns
	for i, info := range m.grid {
		style := menuEntry
		if m.cursor == idx+i {
			style = menuEntryFocused
		}
		label := m.withValue(info.Icon+" "+info.Label, info.Field, cellW-2)
		sb.WriteString(style.Width(cellW).Render(label))
		if (i+1)%fieldMenuColumns == 0 {
			sb.WriteString("\n")
		}
	}
	if len(m.grid)%fieldMenuColumns != 0 {
		sb.WriteString("\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: assign  esc: dismiss"))

	return menuFrame.Width(m.width - 2).Render(sb.String())
}

// withValue appends the draft's current value for the field so the
// user sees what assigning would overwrite. The value is truncated to
// keep the entry on one line.
func (m FieldMenu) withValue(label string, field capturedomain.Field, max int) string {
	v, ok := m.current[field]
	if !ok || v == "" {
		return label
	}
	room := max - lipgloss.Width(label) - 2
	if room < 2 {
		return label
	}
	runes := []rune(v)
	if len(runes) > room {
		v = string(runes[:room-1]) + "…"
	}
	return label + " ·" + v
}

// Focused returns the field currently under the cursor.
func (m FieldMenu) Focused() (capturedomain.Field, bool) {
	if m.entryCount() == 0 {
		return capturedomain.FieldNone, false
	}
	return m.entryAt(m.cursor).Field, true
}
