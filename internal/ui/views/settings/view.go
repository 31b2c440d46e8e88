package settings

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"

	authdto "leadclip/internal/modules/auth/dto"
	"leadclip/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type AuthPort interface {
	Current(ctx context.Context) (authdto.SessionOutput, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	Logout(ctx context.Context) error
}

// ─── messages ────────────────────────────────────────────────────────────────

type PasswordChangedMsg struct{ Err error }

// LoggedOutMsg bubbles to the app so it can drop to the login view.
type LoggedOutMsg struct{ Err error }

type dashboardOpenedMsg struct{ err error }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port         AuthPort
	dashboardURL string
	session      authdto.SessionOutput
	current      textinput.Model
	next         textinput.Model
	focus        int
	editing      bool
	statusLine   string
	width        int
	height       int
}

func New(port AuthPort, dashboardURL string) Model {
	current := textinput.New()
	current.Placeholder = "current password"
	current.EchoMode = textinput.EchoPassword
	current.EchoCharacter = '•'

	next := textinput.New()
	next.Placeholder = "new password"
	next.EchoMode = textinput.EchoPassword
	next.EchoCharacter = '•'

	return Model{port: port, dashboardURL: dashboardURL, current: current, next: next}
}

// SetSession installs the signed-in session for display.
func (m *Model) SetSession(s authdto.SessionOutput) { m.session = s }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case PasswordChangedMsg:
		if msg.Err != nil {
			m.statusLine = "change password: " + msg.Err.Error()
		} else {
			m.statusLine = "password changed"
			m.editing = false
			m.current.SetValue("")
			m.next.SetValue("")
		}
		return m, nil

	case dashboardOpenedMsg:
		if msg.err != nil {
			m.statusLine = "dashboard: " + msg.err.Error()
		} else {
			m.statusLine = "dashboard opened in browser"
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		switch msg.String() {
		case "p":
			m.editing = true
			m.focus = 0
			m.current.Focus()
			m.next.Blur()
			return m, textinput.Blink
		case "d":
			return m, m.openDashboardCmd()
		case "L":
			return m, m.logoutCmd()
		}
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.current.Blur()
		m.next.Blur()
		return m, nil
	case "tab", "down", "shift+tab", "up":
		m.focus = 1 - m.focus
		if m.focus == 0 {
			m.current.Focus()
			m.next.Blur()
		} else {
			m.next.Focus()
			m.current.Blur()
		}
		return m, nil
	case "enter":
		current, next := m.current.Value(), m.next.Value()
		if current == "" || next == "" {
			m.statusLine = "both passwords are required"
			return m, nil
		}
		return m, m.changePasswordCmd(current, next)
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.current, cmd = m.current.Update(msg)
	} else {
		m.next, cmd = m.next.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Settings") + "\n\n")
	sb.WriteString(theme.Muted.Render("signed in:  ") + m.session.Name + " <" + m.session.Email + ">\n")
	sb.WriteString(theme.Muted.Render("role:       ") + m.session.Role + "\n")
	if !m.session.ExpiresAt.IsZero() {
		sb.WriteString(theme.Muted.Render("expires:    ") + m.session.ExpiresAt.Format("2006-01-02 15:04") + "\n")
	}
	sb.WriteString(theme.Muted.Render("dashboard:  ") + m.dashboardURL + "\n")

	if m.editing {
		sb.WriteString("\n" + theme.Hot.Render("Change password") + "\n")
		sb.WriteString("  " + m.current.View() + "\n")
		sb.WriteString("  " + m.next.View() + "\n")
		sb.WriteString(theme.Muted.Render("  enter: submit  esc: cancel") + "\n")
	}

	if m.statusLine != "" {
		sb.WriteString("\n" + theme.Muted.Render(m.statusLine) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("p: change password  d: open dashboard  L: log out"))
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

// Filtering reports whether the password inputs own the keyboard.
func (m Model) Filtering() bool { return m.editing }

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) changePasswordCmd(current, next string) tea.Cmd {
	return func() tea.Msg {
		return PasswordChangedMsg{Err: m.port.ChangePassword(context.Background(), current, next)}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return LoggedOutMsg{Err: m.port.Logout(context.Background())}
	}
}

func (m Model) openDashboardCmd() tea.Cmd {
	url := m.dashboardURL
	return func() tea.Msg {
		return dashboardOpenedMsg{err: browser.OpenURL(url)}
	}
}
