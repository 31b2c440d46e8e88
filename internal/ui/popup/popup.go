// Package popup is the watcher's terminal surface: a one-line status
// strip plus the floating field menu rendered near the copy anchor.
package popup

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	capturedomain "leadclip/internal/modules/capture/domain"
	captureout "leadclip/internal/modules/capture/port/out"
	"leadclip/internal/ui/components"
	"leadclip/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

// ShowMsg carries a popup view from the capture service into the
// program loop.
type ShowMsg struct {
	View      captureout.PopupView
	Callbacks captureout.SurfaceCallbacks
}

// HideMsg dismisses the current popup without firing OnDismiss; the
// service already knows.
type HideMsg struct{}

// OverlayMsg mirrors the panel's visibility as reported by the relay.
type OverlayMsg struct{ Visible bool }

// CollapsedMsg mirrors the panel's collapsed state.
type CollapsedMsg struct{ Collapsed bool }

type selectionSentMsg struct{ field capturedomain.Field }

type expandRequestedMsg struct{ err error }

// expandRequester is the slice of the capture publisher the status
// strip needs to ask a collapsed panel to open up.
type expandRequester interface {
	RequestExpand(ctx context.Context) error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	menu      components.FieldMenu
	publisher expandRequester
	callbacks captureout.SurfaceCallbacks
	anchor    capturedomain.Point
	showing   bool

	panelVisible   bool
	panelCollapsed bool
	lastAction     string
	width          int
	height         int
}

func NewModel(publisher expandRequester) Model {
	return Model{menu: components.NewFieldMenu(), publisher: publisher, panelVisible: true}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ShowMsg:
		m.menu.SetCandidate(msg.View.Preview, msg.View.Suggested, msg.View.HasSuggestion, msg.View.Current)
		m.callbacks = msg.Callbacks
		m.anchor = msg.View.Position
		m.showing = true
		return m, nil

	case HideMsg:
		m.showing = false
		return m, nil

	case OverlayMsg:
		m.panelVisible = msg.Visible
		return m, nil

	case CollapsedMsg:
		m.panelCollapsed = msg.Collapsed
		return m, nil

	case components.FieldChosenMsg:
		if !m.showing {
			return m, nil
		}
		m.showing = false
		onSelect := m.callbacks.OnSelect
		field := msg.Field
		return m, func() tea.Msg {
			if onSelect != nil {
				onSelect(field)
			}
			return selectionSentMsg{field: field}
		}

	case components.FieldMenuDismissMsg:
		if !m.showing {
			return m, nil
		}
		m.showing = false
		if m.callbacks.OnDismiss != nil {
			go m.callbacks.OnDismiss()
		}
		m.lastAction = "dismissed"
		return m, nil

	case selectionSentMsg:
		m.lastAction = "assigned to " + string(msg.field)
		return m, nil

	case expandRequestedMsg:
		if msg.err != nil {
			m.lastAction = "expand request failed: " + msg.err.Error()
		} else {
			m.lastAction = "asked panel to expand"
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
		if m.showing {
			var cmd tea.Cmd
			m.menu, cmd = m.menu.Update(msg)
			return m, cmd
		}
		if msg.String() == "e" && m.panelCollapsed && m.publisher != nil {
			pub := m.publisher
			return m, func() tea.Msg {
				return expandRequestedMsg{err: pub.RequestExpand(context.Background())}
			}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	status := m.statusLine()
	if !m.showing {
		return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Bottom, status)
	}

	menu := m.menu.View()
	popupSize := capturedomain.Size{
		Width:  lipgloss.Width(menu),
		Height: lipgloss.Height(menu),
	}
	pos := capturedomain.Place(m.anchor, capturedomain.Size{Width: m.width, Height: m.height - 1}, popupSize, 1)

	var sb strings.Builder
	sb.WriteString(strings.Repeat("\n", pos.Y))
	pad := strings.Repeat(" ", pos.X)
	for _, line := range strings.Split(menu, "\n") {
		sb.WriteString(pad + line + "\n")
	}
	body := sb.String()
	fill := m.height - 1 - lipgloss.Height(body)
	if fill > 0 {
		body += strings.Repeat("\n", fill)
	}
	return body + status
}

func (m Model) statusLine() string {
	parts := []string{theme.Hot.Render("leadclip watch")}
	if m.panelVisible {
		if m.panelCollapsed {
			parts = append(parts, theme.Muted.Render("panel: collapsed (e to expand)"))
		} else {
			parts = append(parts, theme.Muted.Render("panel: open"))
		}
	} else {
		parts = append(parts, theme.Muted.Render("panel: hidden"))
	}
	if m.lastAction != "" {
		parts = append(parts, theme.Muted.Render(m.lastAction))
	}
	return strings.Join(parts, "  ")
}

// ─── surface adapter ─────────────────────────────────────────────────────────

// Surface renders popups by sending messages into a running program.
// It satisfies the capture service's surface port.
type Surface struct {
	program *tea.Program
}

func NewSurface(program *tea.Program) *Surface {
	return &Surface{program: program}
}

func (s *Surface) Show(ctx context.Context, view captureout.PopupView, callbacks captureout.SurfaceCallbacks) error {
	s.program.Send(ShowMsg{View: view, Callbacks: callbacks})
	return nil
}

func (s *Surface) Dismiss(ctx context.Context) error {
	s.program.Send(HideMsg{})
	return nil
}
