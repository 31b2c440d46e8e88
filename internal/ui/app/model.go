package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	authdto "leadclip/internal/modules/auth/dto"
	draftdomain "leadclip/internal/modules/draft/domain"
	draftdto "leadclip/internal/modules/draft/dto"
	prospectdomain "leadclip/internal/modules/prospect/domain"
	prospectdto "leadclip/internal/modules/prospect/dto"
	relaydomain "leadclip/internal/modules/relay/domain"
	relaydto "leadclip/internal/modules/relay/dto"
	apperrors "leadclip/internal/platform/errors"
	"leadclip/internal/ui/components"
	"leadclip/internal/ui/theme"
	loginview "leadclip/internal/ui/views/login"
	prospectformview "leadclip/internal/ui/views/prospectform"
	prospectsview "leadclip/internal/ui/views/prospects"
	settingsview "leadclip/internal/ui/views/settings"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type authPort interface {
	Login(ctx context.Context, input authdto.LoginInput) (authdto.SessionOutput, error)
	Current(ctx context.Context) (authdto.SessionOutput, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	Logout(ctx context.Context) error
}

type draftPort interface {
	Current(ctx context.Context) (draftdto.DraftOutput, error)
	StartNew(ctx context.Context) (draftdto.DraftOutput, error)
	Apply(ctx context.Context, input draftdto.ApplyInput) (draftdto.DraftOutput, error)
	Replace(ctx context.Context, record prospectdomain.Prospect) (draftdto.DraftOutput, error)
	Clear(ctx context.Context) error
	Panel(ctx context.Context) (draftdomain.PanelState, error)
	UpdatePanel(ctx context.Context, mutate func(draftdomain.PanelState) draftdomain.PanelState) (draftdomain.PanelState, error)
}

type prospectPort interface {
	Save(ctx context.Context, input prospectdto.SaveInput) (prospectdto.SaveOutput, error)
	ChangeStatus(ctx context.Context, prospectID, to string) (prospectdomain.Prospect, error)
	List(ctx context.Context, input prospectdto.ListInput) ([]prospectdomain.Prospect, error)
	Skills(ctx context.Context) ([]string, error)
	Strategy(ctx context.Context) (prospectdomain.Strategy, error)
}

type relayPort interface {
	Publish(ctx context.Context, input relaydto.PublishInput) error
}

// ─── async messages ───────────────────────────────────────────────────────────

type sessionLoadedMsg struct {
	session authdto.SessionOutput
	err     error
}

type strategyLoadedMsg struct {
	strategy prospectdomain.Strategy
	err      error
}

type panelStateMsg struct {
	state draftdomain.PanelState
	err   error
}

type readyAnnouncedMsg struct{ err error }

type skillsLoadedMsg struct {
	skills []string
	err    error
}

// DeliveredMsg carries one relay envelope into the update loop. The
// feed sends it after the envelope passed the inbox and any draft
// mutation already happened.
type DeliveredMsg struct{ Env relaydomain.Envelope }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Collapse key.Binding
	Quit     key.Binding
	Save     key.Binding
	SaveStay key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next tab")),
		Help:     key.NewBinding(key.WithKeys("ctrl+h"), key.WithHelp("ctrl+h", "help")),
		Palette:  key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "palette")),
		Collapse: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "collapse")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		SaveStay: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "save+stay")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Palette, k.Collapse, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Save, k.SaveStay},
		{k.Help, k.Palette, k.Collapse, k.Quit},
	}
}

var tabTitles = map[prospectdomain.Tab]string{
	prospectdomain.TabCapture:   "Capture",
	prospectdomain.TabOutreach:  "Outreach",
	prospectdomain.TabFollowUp:  "Follow-up",
	prospectdomain.TabProspects: "Prospects",
	prospectdomain.TabSettings:  "Settings",
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root panel model. It owns the role-scoped tab bar, the
// collapsed bubble, the login gate, and the command palette. Business
// logic is delegated to port interfaces; rendering to sub-views.
type Model struct {
	auth      authPort
	drafts    draftPort
	prospects prospectPort
	relay     relayPort

	// sub-views
	loginView    loginview.Model
	captureForm  prospectformview.Model
	outreachForm prospectformview.Model
	followupForm prospectformview.Model
	listView     prospectsview.Model
	settingsView settingsview.Model

	// global UI state
	session   authdto.SessionOutput
	loggedIn  bool
	strategy  prospectdomain.Strategy
	activeTab prospectdomain.Tab
	panel     draftdomain.PanelState
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(auth authPort, drafts draftPort, prospects prospectPort, relay relayPort, dashboardURL string) Model {
	form := formBridge{drafts: drafts, prospects: prospects}
	return Model{
		auth:         auth,
		drafts:       drafts,
		prospects:    prospects,
		relay:        relay,
		loginView:    loginview.New(auth),
		captureForm:  prospectformview.New(form, "capture"),
		outreachForm: prospectformview.New(form, "outreach"),
		followupForm: prospectformview.New(form, "followup"),
		listView:     prospectsview.New(prospects),
		settingsView: settingsview.New(auth, dashboardURL),
		activeTab:    prospectdomain.TabCapture,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loginView.Init(), m.loadSessionCmd())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case sessionLoadedMsg:
		if msg.err != nil {
			m.loggedIn = false
			if msg.err != apperrors.ErrNotLoggedIn {
				m.status = "session check: " + msg.err.Error()
			}
			return m, nil
		}
		return m.enterSession(msg.session)

	case loginview.LoggedInMsg:
		if msg.Err != nil {
			var cmd tea.Cmd
			m.loginView, cmd = m.loginView.Update(msg)
			return m, cmd
		}
		return m.enterSession(msg.Session)

	case strategyLoadedMsg:
		if msg.err != nil {
			m.status = "strategy: " + msg.err.Error()
			return m, nil
		}
		m.strategy = msg.strategy
		m.captureForm.SetStrategy(msg.strategy)
		m.outreachForm.SetStrategy(msg.strategy)
		m.followupForm.SetStrategy(msg.strategy)
		if !m.strategy.Allows(m.activeTab) {
			m.activeTab = m.strategy.Tabs[0]
		}
		cmds = append(cmds,
			m.loadPanelCmd(),
			m.announceReadyCmd(),
			m.captureForm.Init(),
			m.outreachForm.Init(),
			m.followupForm.Init(),
			m.listView.Init(),
		)
		m.propagateSize()

	case panelStateMsg:
		if msg.err != nil {
			m.status = "panel state: " + msg.err.Error()
			return m, nil
		}
		m.panel = msg.state
		if tab := prospectdomain.Tab(msg.state.ActiveTab); tab != "" && m.strategy.Allows(tab) {
			m.activeTab = tab
		}

	case readyAnnouncedMsg:
		if msg.err != nil && msg.err != apperrors.ErrRelayNotRunning {
			m.status = "relay: " + msg.err.Error()
		}

	case skillsLoadedMsg:
		if msg.err != nil {
			m.status = "skills: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("%d known skills: %s", len(msg.skills), strings.Join(firstN(msg.skills, 5), ", "))
		}

	case DeliveredMsg:
		return m.handleDelivery(msg.Env)

	// Draft messages fan out to every form so an off-tab form is
	// current when the user switches to it.
	case prospectformview.DraftLoadedMsg, prospectformview.AppliedMsg:
		var c1, c2, c3 tea.Cmd
		m.captureForm, c1 = m.captureForm.Update(msg)
		m.outreachForm, c2 = m.outreachForm.Update(msg)
		m.followupForm, c3 = m.followupForm.Update(msg)
		return m, tea.Batch(c1, c2, c3)

	case prospectsview.LoadedMsg, prospectsview.StatusChangedMsg:
		var cmd tea.Cmd
		m.listView, cmd = m.listView.Update(msg)
		return m, cmd

	case prospectformview.SavedMsg:
		return m.handleSaved(msg)

	case prospectformview.CloseMsg:
		return m, m.endEditCmd()

	case prospectsview.EditRequestMsg:
		return m, m.beginEditCmd(msg.Record)

	case settingsview.LoggedOutMsg:
		if msg.Err != nil {
			m.status = "logout: " + msg.Err.Error()
			return m, nil
		}
		m.loggedIn = false
		m.session = authdto.SessionOutput{}
		m.loginView = loginview.New(m.auth)
		m.status = "signed out"
		m.propagateSize()
		return m, m.loginView.Init()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if !m.loggedIn {
			break
		}
		if m.showHelp {
			if msg.String() == "ctrl+h" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.panel.Collapsed {
			switch msg.String() {
			case "ctrl+b", "enter":
				return m, m.setCollapsedCmd(false)
			case "ctrl+c":
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+n":
			m.activeTab = m.nextTab(1)
		case "ctrl+h":
			m.showHelp = !m.showHelp
		case "ctrl+p":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "ctrl+b":
			return m, m.setCollapsedCmd(true)
		}
	}

	// Propagate the message to the active sub-view.
	if !m.loggedIn {
		var cmd tea.Cmd
		m.loginView, cmd = m.loginView.Update(msg)
		return m, tea.Batch(append(cmds, cmd)...)
	}
	var tabCmd tea.Cmd
	switch m.activeTab {
	case prospectdomain.TabCapture:
		m.captureForm, tabCmd = m.captureForm.Update(msg)
	case prospectdomain.TabOutreach:
		m.outreachForm, tabCmd = m.outreachForm.Update(msg)
	case prospectdomain.TabFollowUp:
		m.followupForm, tabCmd = m.followupForm.Update(msg)
	case prospectdomain.TabProspects:
		m.listView, tabCmd = m.listView.Update(msg)
	case prospectdomain.TabSettings:
		m.settingsView, tabCmd = m.settingsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// enterSession installs a signed-in session and kicks off the strategy
// load that decides the tab set.
func (m Model) enterSession(session authdto.SessionOutput) (tea.Model, tea.Cmd) {
	m.session = session
	m.loggedIn = true
	m.settingsView.SetSession(session)
	m.status = "signed in as " + session.Email
	return m, m.loadStrategyCmd()
}

// handleDelivery reacts to a relay envelope. Draft mutations already
// happened on the feed goroutine; here we only refresh views.
func (m Model) handleDelivery(env relaydomain.Envelope) (tea.Model, tea.Cmd) {
	switch env.Kind {
	case relaydomain.KindPasteField:
		var payload relaydomain.PasteFieldPayload
		if err := json.Unmarshal(env.Payload, &payload); err == nil {
			m.status = "captured " + payload.Field
		}
		return m, tea.Batch(m.captureForm.Reload(), m.outreachForm.Reload(), m.followupForm.Reload())

	case relaydomain.KindToggleOverlay:
		var payload relaydomain.ToggleOverlayPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			return m, nil
		}
		return m, m.updatePanelCmd(func(s draftdomain.PanelState) draftdomain.PanelState {
			if payload.Visible {
				return s.Expand()
			}
			s.Visible = false
			return s
		})

	case relaydomain.KindExpandRequest:
		return m, m.setCollapsedCmd(false)

	case relaydomain.KindCopyDetected:
		var payload relaydomain.CopyDetectedPayload
		if err := json.Unmarshal(env.Payload, &payload); err == nil && payload.Field != "" {
			m.status = "copy detected, looks like " + payload.Field
		}
	}
	return m, nil
}

func (m Model) handleSaved(msg prospectformview.SavedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.status = "save failed: " + msg.Err.Error()
		return m, nil
	}
	verb := "updated"
	if msg.Out.Created {
		verb = "created"
	}
	m.status = fmt.Sprintf("%s %s (%s)", verb, msg.Out.Prospect.Name, msg.Out.Prospect.Status)
	cmds := []tea.Cmd{
		m.captureForm.Reload(),
		m.outreachForm.Reload(),
		m.followupForm.Reload(),
		m.listView.Refresh(),
	}
	if !msg.Stay {
		cmds = append(cmds, m.endEditCmd())
	}
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if !m.loggedIn {
		return m.loginView.View()
	}
	if m.panel.Collapsed {
		bubble := theme.Hot.Render(" ◉ leadclip ") + theme.Muted.Render(" ctrl+b to expand")
		return lipgloss.Place(m.width, m.height, lipgloss.Right, lipgloss.Bottom, bubble)
	}

	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case prospectdomain.TabCapture:
		return m.captureForm.View()
	case prospectdomain.TabOutreach:
		return m.outreachForm.View()
	case prospectdomain.TabFollowUp:
		return m.followupForm.View()
	case prospectdomain.TabProspects:
		return m.listView.View()
	case prospectdomain.TabSettings:
		return m.settingsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, len(m.strategy.Tabs))
	for i, tab := range m.strategy.Tabs {
		label := tabTitles[tab]
		if tab == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "leadclip  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.session.Role != "" {
		left = theme.Hot.Render("● "+m.session.Role) + "  " + left
	}
	right := theme.Muted.Render("ctrl+h:help  ctrl+n:tab  ctrl+p:palette  ctrl+b:collapse")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "save":
		return m, m.saveCmd(false)

	case "save:stay":
		return m, m.saveCmd(true)

	case "draft:new":
		return m, func() tea.Msg {
			_, err := m.drafts.StartNew(context.Background())
			if err != nil {
				return prospectformview.DraftLoadedMsg{Err: err}
			}
			out, err := m.drafts.Current(context.Background())
			return prospectformview.DraftLoadedMsg{Draft: out, Err: err}
		}

	case "draft:clear":
		return m, func() tea.Msg {
			if err := m.drafts.Clear(context.Background()); err != nil {
				return prospectformview.DraftLoadedMsg{Err: err}
			}
			out, err := m.drafts.Current(context.Background())
			if err == apperrors.ErrNoActiveDraft {
				err = nil
			}
			return prospectformview.DraftLoadedMsg{Draft: out, Err: err}
		}

	case "status:set":
		if len(parts) < 3 {
			m.status = "usage: status:set <id> <status>"
			return m, nil
		}
		return m, func() tea.Msg {
			record, err := m.prospects.ChangeStatus(context.Background(), parts[1], parts[2])
			return prospectsview.StatusChangedMsg{Record: record, Err: err}
		}

	case "prospects:refresh":
		m.activeTab = prospectdomain.TabProspects
		return m, func() tea.Msg {
			records, err := m.prospects.List(context.Background(), prospectdto.ListInput{Refresh: true})
			return prospectsview.LoadedMsg{Records: records, Err: err}
		}

	case "field:set":
		if len(parts) < 3 {
			m.status = "usage: field:set <field> <value>"
			return m, nil
		}
		value := strings.TrimSpace(strings.TrimPrefix(input, parts[0]+" "+parts[1]))
		return m, func() tea.Msg {
			out, err := m.drafts.Apply(context.Background(), draftdto.ApplyInput{Field: parts[1], Value: value})
			return prospectformview.AppliedMsg{Draft: out, Err: err}
		}

	case "skills":
		return m, func() tea.Msg {
			skills, err := m.prospects.Skills(context.Background())
			return skillsLoadedMsg{skills: skills, err: err}
		}

	case "collapse":
		return m, m.setCollapsedCmd(true)

	case "logout":
		return m, func() tea.Msg {
			return settingsview.LoggedOutMsg{Err: m.auth.Logout(context.Background())}
		}

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) nextTab(dir int) prospectdomain.Tab {
	tabs := m.strategy.Tabs
	if len(tabs) == 0 {
		return m.activeTab
	}
	idx := lo.IndexOf(tabs, m.activeTab)
	if idx < 0 {
		return tabs[0]
	}
	return tabs[(idx+dir+len(tabs))%len(tabs)]
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.loginView, _ = m.loginView.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	m.captureForm, _ = m.captureForm.Update(sz)
	m.outreachForm, _ = m.outreachForm.Update(sz)
	m.followupForm, _ = m.followupForm.Update(sz)
	m.listView, _ = m.listView.Update(sz)
	m.settingsView, _ = m.settingsView.Update(sz)
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadSessionCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := m.auth.Current(context.Background())
		return sessionLoadedMsg{session: session, err: err}
	}
}

func (m Model) loadStrategyCmd() tea.Cmd {
	return func() tea.Msg {
		strategy, err := m.prospects.Strategy(context.Background())
		return strategyLoadedMsg{strategy: strategy, err: err}
	}
}

func (m Model) loadPanelCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.drafts.Panel(context.Background())
		return panelStateMsg{state: state, err: err}
	}
}

func (m Model) updatePanelCmd(mutate func(draftdomain.PanelState) draftdomain.PanelState) tea.Cmd {
	return func() tea.Msg {
		state, err := m.drafts.UpdatePanel(context.Background(), mutate)
		return panelStateMsg{state: state, err: err}
	}
}

// announceReadyCmd marks the panel ready locally and tells the relay,
// which unlocks direct socket delivery. A stopped relay is fine; the
// instruction watcher still feeds us.
func (m Model) announceReadyCmd() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.drafts.UpdatePanel(context.Background(), draftdomain.PanelState.MarkReady); err != nil {
			return readyAnnouncedMsg{err: err}
		}
		err := m.relay.Publish(context.Background(), relaydto.PublishInput{Kind: string(relaydomain.KindPanelReady)})
		return readyAnnouncedMsg{err: err}
	}
}

// setCollapsedCmd flips the collapsed state and reports it to the
// relay so the watcher can mirror it.
func (m Model) setCollapsedCmd(collapsed bool) tea.Cmd {
	return func() tea.Msg {
		state, err := m.drafts.UpdatePanel(context.Background(), func(s draftdomain.PanelState) draftdomain.PanelState {
			if collapsed {
				return s.Collapse()
			}
			return s.Expand()
		})
		if err != nil {
			return panelStateMsg{err: err}
		}
		pubErr := m.relay.Publish(context.Background(), relaydto.PublishInput{
			Kind:    string(relaydomain.KindPanelCollapsed),
			Payload: relaydomain.PanelCollapsedPayload{Collapsed: collapsed},
		})
		if pubErr != nil && pubErr != apperrors.ErrRelayNotRunning {
			return panelStateMsg{state: state, err: pubErr}
		}
		return panelStateMsg{state: state}
	}
}

func (m Model) saveCmd(stay bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.prospects.Save(context.Background(), prospectdto.SaveInput{Stay: stay})
		return prospectformview.SavedMsg{Out: out, Stay: stay, Err: err}
	}
}

// beginEditCmd loads a stored record into the draft and opens the
// editing form, remembering which tab to return to.
func (m Model) beginEditCmd(record prospectdomain.Prospect) tea.Cmd {
	from := string(m.activeTab)
	editTab := prospectdomain.TabCapture
	if !m.strategy.Allows(editTab) {
		editTab = prospectdomain.TabOutreach
	}
	return func() tea.Msg {
		if _, err := m.drafts.Replace(context.Background(), record); err != nil {
			return panelStateMsg{err: err}
		}
		state, err := m.drafts.UpdatePanel(context.Background(), func(s draftdomain.PanelState) draftdomain.PanelState {
			return s.BeginEdit(from).SwitchTab(string(editTab))
		})
		return panelStateMsg{state: state, err: err}
	}
}

func (m Model) endEditCmd() tea.Cmd {
	return m.updatePanelCmd(draftdomain.PanelState.EndEdit)
}

// ─── form bridge ──────────────────────────────────────────────────────────────
// formBridge narrows the draft and prospect ports to what the form
// view needs, keeping the view free of knowledge about wider surfaces.

type formBridge struct {
	drafts    draftPort
	prospects prospectPort
}

func (b formBridge) Current(ctx context.Context) (draftdto.DraftOutput, error) {
	out, err := b.drafts.Current(ctx)
	if err == apperrors.ErrNoActiveDraft {
		return draftdto.DraftOutput{}, nil
	}
	return out, err
}

func (b formBridge) Apply(ctx context.Context, input draftdto.ApplyInput) (draftdto.DraftOutput, error) {
	return b.drafts.Apply(ctx, input)
}

func (b formBridge) StartNew(ctx context.Context) (draftdto.DraftOutput, error) {
	return b.drafts.StartNew(ctx)
}

func (b formBridge) Clear(ctx context.Context) error {
	return b.drafts.Clear(ctx)
}

func (b formBridge) Save(ctx context.Context, input prospectdto.SaveInput) (prospectdto.SaveOutput, error) {
	return b.prospects.Save(ctx, input)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
