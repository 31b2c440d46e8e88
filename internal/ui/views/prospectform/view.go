package prospectform

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	draftdto "leadclip/internal/modules/draft/dto"
	prospectdomain "leadclip/internal/modules/prospect/domain"
	prospectdto "leadclip/internal/modules/prospect/dto"
	"leadclip/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type FormPort interface {
	Current(ctx context.Context) (draftdto.DraftOutput, error)
	Apply(ctx context.Context, input draftdto.ApplyInput) (draftdto.DraftOutput, error)
	StartNew(ctx context.Context) (draftdto.DraftOutput, error)
	Clear(ctx context.Context) error
	Save(ctx context.Context, input prospectdto.SaveInput) (prospectdto.SaveOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type DraftLoadedMsg struct {
	Draft draftdto.DraftOutput
	Err   error
}

type AppliedMsg struct {
	Draft draftdto.DraftOutput
	Err   error
}

// SavedMsg bubbles to the app model so it can update the status bar
// and, on a plain save, navigate away from the form.
type SavedMsg struct {
	Out  prospectdto.SaveOutput
	Stay bool
	Err  error
}

// CloseMsg asks the app to leave the form, returning to the tab an
// edit session started from.
type CloseMsg struct{}

// ─── field layout ────────────────────────────────────────────────────────────

type formField struct {
	name  string
	label string
}

// fieldsFor returns the editable fields for a workflow tab. The
// capture form carries the full draft surface; outreach and follow-up
// expose only what their save transitions read.
func fieldsFor(mode string) []formField {
	switch mode {
	case "outreach":
		return []formField{
			{"name", "Name"},
			{"pitch_template", "Pitch template"},
			{"linkedin_state", "LinkedIn state"},
			{"assigned_lh", "Assigned handler"},
			{"status", "Status"},
		}
	case "followup":
		return []formField{
			{"name", "Name"},
			{"follow_up_date", "Follow-up date"},
			{"status", "Status"},
		}
	default:
		return []formField{
			{"name", "Name"},
			{"email", "Email"},
			{"number", "Phone"},
			{"company_name", "Company"},
			{"website_link", "Website"},
			{"linkedin_url", "LinkedIn"},
			{"category", "Category"},
			{"sources", "Source"},
			{"status", "Status"},
			{"about_prospect", "About"},
			{"intent_category", "Intent category"},
			{"intent_proof_link", "Intent proof"},
			{"intent_date", "Intent date"},
			{"intent_skills", "Skill"},
		}
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     FormPort
	mode     string
	fields   []formField
	inputs   []textinput.Model
	focus    int
	draft    prospectdomain.Prospect
	exists   bool
	strategy prospectdomain.Strategy
	errLine  string
	width    int
	height   int
}

func New(port FormPort, mode string) Model {
	fields := fieldsFor(mode)
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.label
		ti.CharLimit = 512
		ti.Prompt = ""
		inputs[i] = ti
	}
	m := Model{port: port, mode: mode, fields: fields, inputs: inputs}
	m.setFocus(0)
	return m
}

// SetStrategy installs the role strategy used for the validation
// summary line.
func (m *Model) SetStrategy(s prospectdomain.Strategy) { m.strategy = s }

func (m Model) Init() tea.Cmd {
	return m.loadDraftCmd()
}

// Reload re-reads the draft, used after a relay delivery mutates it
// outside this view.
func (m Model) Reload() tea.Cmd {
	return m.loadDraftCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.inputs {
			m.inputs[i].Width = min(m.width-24, 72)
		}
		return m, nil

	case DraftLoadedMsg, AppliedMsg:
		var out draftdto.DraftOutput
		var err error
		switch msg := msg.(type) {
		case DraftLoadedMsg:
			out, err = msg.Draft, msg.Err
		case AppliedMsg:
			out, err = msg.Draft, msg.Err
		}
		if err != nil {
			m.errLine = err.Error()
			return m, nil
		}
		m.errLine = ""
		m.draft = out.Draft
		m.exists = out.Exists
		m.syncInputs()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return CloseMsg{} }
		case "tab", "down":
			cmd := m.applyFocused()
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, cmd
		case "shift+tab", "up":
			cmd := m.applyFocused()
			m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, cmd
		case "enter":
			return m, m.applyFocused()
		case "ctrl+s":
			return m, tea.Sequence(m.applyFocused(), m.saveCmd(false))
		case "ctrl+o":
			return m, tea.Sequence(m.applyFocused(), m.saveCmd(true))
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	title := "New prospect"
	if m.exists && m.draft.Name != "" {
		title = m.draft.Name
	}
	sb.WriteString(theme.Title.Render(title))
	if m.exists {
		sb.WriteString("  " + theme.Muted.Render(string(m.draft.Status)))
		if m.draft.IsPersisted() {
			sb.WriteString(" " + theme.Muted.Render("· synced"))
		}
	}
	sb.WriteString("\n\n")

	for i, f := range m.fields {
		label := f.label
		if i == m.focus {
			sb.WriteString(theme.Hot.Render("▸ "+pad(label)) + m.inputs[i].View() + "\n")
		} else {
			sb.WriteString(theme.Muted.Render("  "+pad(label)) + m.inputs[i].View() + "\n")
		}
	}

	if skills := m.draft.IntentSkills; len(skills) > 0 {
		sb.WriteString("\n" + theme.Muted.Render("skills: ") + strings.Join(skills, ", ") + "\n")
	}

	if missing := m.strategy.Missing(m.draft, time.Now()); m.exists && len(missing) > 0 {
		sb.WriteString("\n" + theme.Bad.Render("missing: "+strings.Join(missing, ", ")) + "\n")
	}
	if m.errLine != "" {
		sb.WriteString("\n" + theme.Bad.Render(m.errLine) + "\n")
	}

	sb.WriteString("\n" + theme.Muted.Render("enter: apply  ctrl+s: save  ctrl+o: save+stay  esc: back"))
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

// Filtering reports whether free typing owns the keyboard. The form
// always does, except that the app still handles its reserved keys.
func (m Model) Filtering() bool { return true }

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) setFocus(i int) {
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	m.focus = i
}

// syncInputs copies draft values into the inputs without disturbing
// the one being typed in.
func (m *Model) syncInputs() {
	for i, f := range m.fields {
		if i == m.focus && m.inputs[i].Value() != "" {
			continue
		}
		m.inputs[i].SetValue(valueOf(m.draft, f.name))
	}
}

func (m Model) applyFocused() tea.Cmd {
	field := m.fields[m.focus].name
	value := strings.TrimSpace(m.inputs[m.focus].Value())
	if value == "" || value == valueOf(m.draft, field) {
		return nil
	}
	return func() tea.Msg {
		out, err := m.port.Apply(context.Background(), draftdto.ApplyInput{Field: field, Value: value})
		return AppliedMsg{Draft: out, Err: err}
	}
}

func (m Model) saveCmd(stay bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Save(context.Background(), prospectdto.SaveInput{Stay: stay})
		return SavedMsg{Out: out, Stay: stay, Err: err}
	}
}

func (m Model) loadDraftCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Current(context.Background())
		return DraftLoadedMsg{Draft: out, Err: err}
	}
}

func valueOf(p prospectdomain.Prospect, field string) string {
	switch field {
	case "name":
		return p.Name
	case "email":
		return p.Email
	case "number":
		return p.Number
	case "company_name":
		return p.CompanyName
	case "website_link":
		return p.WebsiteLink
	case "linkedin_url":
		return p.LinkedInURL
	case "linkedin_state":
		return string(p.LinkedInState)
	case "category":
		return string(p.Category)
	case "sources":
		return p.Sources
	case "status":
		return string(p.Status)
	case "about_prospect":
		return p.AboutProspect
	case "assigned_lh":
		return p.AssignedLH
	case "follow_up_date":
		return p.FollowUpDate
	case "pitch_template":
		return p.PitchTemplate
	case "intent_category":
		return p.IntentCategory
	case "intent_proof_link":
		return p.IntentProofLink
	case "intent_date":
		return p.IntentDate
	case "intent_skills":
		// The input appends one skill at a time; the accumulated list
		// renders below the form.
		return ""
	}
	return ""
}

func pad(label string) string {
	const w = 18
	if len(label) >= w {
		return label + " "
	}
	return label + strings.Repeat(" ", w-len(label))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
