package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "leadclip/internal/modules/auth/dto"
	"leadclip/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type AuthPort interface {
	Login(ctx context.Context, input authdto.LoginInput) (authdto.SessionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// LoggedInMsg bubbles to the app so it can load the role strategy.
type LoggedInMsg struct {
	Session authdto.SessionOutput
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port      AuthPort
	email     textinput.Model
	password  textinput.Model
	dashboard bool
	focus     int
	busy      bool
	errLine   string
	width     int
	height    int
}

func New(port AuthPort) Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return Model{port: port, email: email, password: password}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case LoggedInMsg:
		m.busy = false
		if msg.Err != nil {
			m.errLine = msg.Err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % 3)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + 2) % 3)
			return m, nil
		case " ":
			if m.focus == 2 {
				m.dashboard = !m.dashboard
				return m, nil
			}
		case "enter":
			email := strings.TrimSpace(m.email.Value())
			password := m.password.Value()
			if email == "" || password == "" {
				m.errLine = "email and password are required"
				return m, nil
			}
			m.busy = true
			m.errLine = ""
			return m, m.loginCmd(email, password)
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case 0:
		m.email, cmd = m.email.Update(msg)
	case 1:
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("leadclip") + "\n\n")
	sb.WriteString(label("email", m.focus == 0) + m.email.View() + "\n")
	sb.WriteString(label("password", m.focus == 1) + m.password.View() + "\n")

	check := "[ ]"
	if m.dashboard {
		check = "[x]"
	}
	sb.WriteString(label("dashboard", m.focus == 2) + check + " dashboard session\n")

	if m.busy {
		sb.WriteString("\n" + theme.Muted.Render("signing in…"))
	}
	if m.errLine != "" {
		sb.WriteString("\n" + theme.Bad.Render(m.errLine))
	}
	sb.WriteString("\n\n" + theme.Muted.Render("enter: sign in  tab: next field  space: toggle"))

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Padding(1, 2).
		Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) setFocus(i int) {
	m.focus = i
	m.email.Blur()
	m.password.Blur()
	switch i {
	case 0:
		m.email.Focus()
	case 1:
		m.password.Focus()
	}
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	dashboard := m.dashboard
	return func() tea.Msg {
		session, err := m.port.Login(context.Background(), authdto.LoginInput{
			Email:     email,
			Password:  password,
			Dashboard: dashboard,
		})
		return LoggedInMsg{Session: session, Err: err}
	}
}

func label(name string, focused bool) string {
	const w = 12
	padded := name + strings.Repeat(" ", w-len(name))
	if focused {
		return theme.Hot.Render("▸ " + padded)
	}
	return theme.Muted.Render("  " + padded)
}
