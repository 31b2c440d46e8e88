package prospects

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	prospectdomain "leadclip/internal/modules/prospect/domain"
	prospectdto "leadclip/internal/modules/prospect/dto"
	"leadclip/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ProspectPort interface {
	List(ctx context.Context, input prospectdto.ListInput) ([]prospectdomain.Prospect, error)
	ChangeStatus(ctx context.Context, prospectID, to string) (prospectdomain.Prospect, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Records []prospectdomain.Prospect
	Err     error
}

type StatusChangedMsg struct {
	Record prospectdomain.Prospect
	Err    error
}

// EditRequestMsg asks the app to load the selected record into the
// draft and open the capture form.
type EditRequestMsg struct {
	Record prospectdomain.Prospect
}

// statusFilters cycles through with the f key. Empty means all.
var statusFilters = [][]string{
	nil,
	{"new", "data_refined", "use_in_campaign", "pitch"},
	{"LNC", "B_LNC", "LC", "B_LC"},
	{"COMMUNICATION"},
	{"TRASH"},
}

var filterLabels = []string{"all", "capture", "outreach", "communication", "trash"}

// ─── list item ───────────────────────────────────────────────────────────────

type prospectItem struct {
	record prospectdomain.Prospect
}

func (i prospectItem) Title() string {
	name := i.record.Name
	if name == "" {
		name = "(unnamed)"
	}
	return name
}

func (i prospectItem) Description() string {
	parts := []string{string(i.record.Status)}
	if i.record.CompanyName != "" {
		parts = append(parts, i.record.CompanyName)
	}
	if i.record.Email != "" {
		parts = append(parts, i.record.Email)
	}
	return strings.Join(parts, "  ")
}

func (i prospectItem) FilterValue() string {
	return i.record.Name + " " + i.record.CompanyName + " " + i.record.Email
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port      ProspectPort
	list      list.Model
	spinner   spinner.Model
	loading   bool
	filterIdx int
	errLine   string
	width     int
	height    int
}

func New(port ProspectPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Prospects"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(false), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height-1)

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errLine = msg.Err.Error()
			return m, nil
		}
		m.errLine = ""
		items := make([]list.Item, len(msg.Records))
		for i, r := range msg.Records {
			items[i] = prospectItem{record: r}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case StatusChangedMsg:
		if msg.Err != nil {
			m.errLine = msg.Err.Error()
			return m, nil
		}
		m.errLine = ""
		cmds = append(cmds, m.loadCmd(false))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch msg.String() {
		case "r":
			m.loading = true
			return m, tea.Batch(m.loadCmd(true), m.spinner.Tick)
		case "f":
			m.filterIdx = (m.filterIdx + 1) % len(statusFilters)
			m.list.Title = "Prospects · " + filterLabels[m.filterIdx]
			m.loading = true
			return m, tea.Batch(m.loadCmd(false), m.spinner.Tick)
		case "e", "enter":
			if item, ok := m.list.SelectedItem().(prospectItem); ok {
				record := item.record
				return m, func() tea.Msg { return EditRequestMsg{Record: record} }
			}
		case "x":
			if item, ok := m.list.SelectedItem().(prospectItem); ok {
				return m, m.changeStatusCmd(item.record.ID, string(prospectdomain.StatusTrash))
			}
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading prospects…")
	}
	footer := theme.Muted.Render("enter: edit  r: refresh  f: filter  x: trash  /: search")
	if m.errLine != "" {
		footer = theme.Bad.Render(m.errLine)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), footer)
}

// Filtering reports whether the list's search filter is active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Refresh reloads the cached records. The app calls this after a save
// so a new record appears without a manual refresh.
func (m Model) Refresh() tea.Cmd {
	return m.loadCmd(false)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) loadCmd(refresh bool) tea.Cmd {
	statuses := statusFilters[m.filterIdx]
	return func() tea.Msg {
		records, err := m.port.List(context.Background(), prospectdto.ListInput{
			Statuses: statuses,
			Refresh:  refresh,
		})
		return LoadedMsg{Records: records, Err: err}
	}
}

func (m Model) changeStatusCmd(id, to string) tea.Cmd {
	return func() tea.Msg {
		record, err := m.port.ChangeStatus(context.Background(), id, to)
		if err == nil {
			return StatusChangedMsg{Record: record}
		}
		return StatusChangedMsg{Err: fmt.Errorf("change status: %w", err)}
	}
}
