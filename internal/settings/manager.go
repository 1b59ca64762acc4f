package settings

// TUIState is the part of the TUI model that is persisted. The DTO keeps
// the TUI packages from depending on the file format.
type TUIState struct {
	ActiveView        string
	NotificationsOpen bool
	UnreadOnly        bool
}

// FromSettings converts Settings to TUIState.
func FromSettings(s *Settings) TUIState {
	if s == nil {
		return TUIState{ActiveView: DefaultView}
	}
	return TUIState{
		ActiveView:        NormalizeView(s.ActiveView),
		NotificationsOpen: s.NotificationsOpen,
		UnreadOnly:        s.UnreadOnly,
	}
}

// Apply copies the TUI state onto s, leaving CLI preferences untouched.
func (t TUIState) Apply(s *Settings) *Settings {
	if s == nil {
		s = DefaultSettings()
	}
	out := *s
	out.ActiveView = NormalizeView(t.ActiveView)
	out.NotificationsOpen = t.NotificationsOpen
	out.UnreadOnly = t.UnreadOnly
	return &out
}
