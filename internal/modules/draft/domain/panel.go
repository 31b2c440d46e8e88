package domain

// PanelState tracks the panel as seen by every process. Ready flips
// once the panel process has finished its first render and can accept
// direct posts; until then senders must use the persisted instruction
// channel. The state is persisted on every transition so a restarted
// panel resumes on the same tab.
type PanelState struct {
	Visible     bool   `json:"visible"`
	Collapsed   bool   `json:"collapsed"`
	Ready       bool   `json:"ready"`
	ActiveTab   string `json:"active_tab,omitempty"`
	EditingFrom string `json:"editing_from,omitempty"`
}

// SwitchTab records the new active tab. EditingFrom remembers where an
// edit session started so closing the form can navigate back.
func (s PanelState) SwitchTab(tab string) PanelState {
	s.ActiveTab = tab
	return s
}

// BeginEdit notes the tab the user came from before opening the form.
func (s PanelState) BeginEdit(fromTab string) PanelState {
	s.EditingFrom = fromTab
	s.ActiveTab = "capture"
	return s
}

// EndEdit returns to the tab the edit started from.
func (s PanelState) EndEdit() PanelState {
	if s.EditingFrom != "" {
		s.ActiveTab = s.EditingFrom
		s.EditingFrom = ""
	}
	return s
}

// Toggle flips visibility. Showing the panel always expands it so a
// re-opened panel never comes back as a stray collapsed bubble.
func (s PanelState) Toggle() PanelState {
	s.Visible = !s.Visible
	if s.Visible {
		s.Collapsed = false
	}
	return s
}

func (s PanelState) Collapse() PanelState {
	s.Collapsed = true
	return s
}

// Expand restores a collapsed panel and makes it visible.
func (s PanelState) Expand() PanelState {
	s.Visible = true
	s.Collapsed = false
	return s
}

func (s PanelState) MarkReady() PanelState {
	s.Ready = true
	return s
}

// Reset clears readiness, used when the panel process exits so senders
// fall back to the persisted channel.
func (s PanelState) Reset() PanelState {
	s.Ready = false
	return s
}
