package state

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/cristianoliveira/booknet/internal/library"
	"github.com/cristianoliveira/booknet/internal/logging"
	"github.com/cristianoliveira/booknet/internal/notify"
	"github.com/cristianoliveira/booknet/internal/query"
	"github.com/cristianoliveira/booknet/internal/session"
	"github.com/cristianoliveira/booknet/internal/settings"
	"github.com/cristianoliveira/booknet/internal/tui/render"
)

const (
	defaultViewportWidth  = 80
	defaultViewportHeight = 24
	// tabs, search, header, pager, feedback, status and footer lines
	chromeLines         = 7
	panelRows           = 6
	statusClearDuration = 5 * time.Second
)

// NotificationSource is the notification manager as seen by the TUI.
// *notify.Manager implements it.
type NotificationSource interface {
	Activate(ctx context.Context) error
	Deactivate() error
	Notifications() []domain.Notification
	Unread() int
	State() notify.State
	OnEvent(fn func(notify.Event)) (cancel func())
	MarkAsRead(ctx context.Context, n domain.Notification) error
	MarkAllAsRead(ctx context.Context) error
}

// Options holds the collaborators of the model.
type Options struct {
	Context       context.Context
	Sections      []library.Section
	Notifications NotificationSource
	Broadcaster   *query.Broadcaster
	// Alerts must be the presenter given to the sections and the
	// notification source, with a callback notifying Signal.
	Alerts       *alert.Log
	Signal       Signal
	Session      session.Source
	Settings     settings.TUIState
	SaveSettings func(settings.TUIState) error
	Logger       logging.Logger
	Now          func() time.Time
}

// Model represents the TUI model for bubbletea.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	ui     *UIState

	sections    []library.Section
	active      int
	unbind      func()
	stopChanges func()

	notifications NotificationSource
	stopEvents    func()
	broadcaster   *query.Broadcaster
	alerts        *alert.Log
	signal        Signal
	session       session.Source
	saveSettings  func(settings.TUIState) error
	logger        logging.Logger
	now           func() time.Time

	statusStamp   time.Time
	statusVisible bool
	quitting      bool
}

// NewModel creates a new TUI model.
func NewModel(opts Options) (*Model, error) {
	if len(opts.Sections) == 0 {
		return nil, errors.New("tui: at least one section is required")
	}
	if opts.Notifications == nil {
		return nil, errors.New("tui: notification source is required")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	m := &Model{
		ctx:           ctx,
		cancel:        cancel,
		ui:            NewUIState(),
		sections:      opts.Sections,
		notifications: opts.Notifications,
		broadcaster:   opts.Broadcaster,
		alerts:        opts.Alerts,
		signal:        opts.Signal,
		session:       opts.Session,
		saveSettings:  opts.SaveSettings,
		logger:        opts.Logger,
		now:           opts.Now,
	}
	if m.broadcaster == nil {
		m.broadcaster = query.NewBroadcaster()
	}
	if m.signal == nil {
		m.signal = NewSignal()
	}
	if m.alerts == nil {
		m.alerts = alert.NewLog(100, func(alert.Alert) { m.signal.Notify() })
	}
	if m.session == nil {
		m.session = session.Anonymous()
	}
	if m.logger == nil {
		m.logger = logging.GetGlobal()
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.FromState(opts.Settings)
	return m, nil
}

// FromState applies persisted TUI state. Only valid before Init.
func (m *Model) FromState(s settings.TUIState) {
	for i, sec := range m.sections {
		if sec.ID() == s.ActiveView {
			m.active = i
		}
	}
	if m.ui.panelOpen != s.NotificationsOpen {
		m.ui.TogglePanel()
	}
	m.ui.unreadOnly = s.UnreadOnly
}

// ToState returns the state to persist.
func (m *Model) ToState() settings.TUIState {
	return settings.TUIState{
		ActiveView:        m.current().ID(),
		NotificationsOpen: m.ui.panelOpen,
		UnreadOnly:        m.ui.unreadOnly,
	}
}

// Init mounts the initial section and activates the notification source.
func (m *Model) Init() tea.Cmd {
	m.stopEvents = m.notifications.OnEvent(func(notify.Event) { m.signal.Notify() })
	return tea.Batch(m.signal.wait(), m.mount(m.active), m.activateNotifications())
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case refreshMsg:
		return m, tea.Batch(m.signal.wait(), m.refresh())
	case sectionActivatedMsg:
		return m.handleSectionActivated(msg)
	case actionDoneMsg:
		if msg.Err != nil {
			m.logger.Debug("tui operation failed", "op", msg.Op, "error", msg.Err)
		}
		return m, m.refresh()
	case clearStatusMsg:
		if msg.Stamp.Equal(m.statusStamp) {
			m.statusVisible = false
		}
		return m, nil
	case teardownDoneMsg:
		if msg.Err != nil {
			m.logger.Warn("notification teardown failed", "error", msg.Err)
		}
		return m, tea.Quit
	case saveSettingsSuccessMsg:
		m.logger.Debug("tui settings saved")
		return m, nil
	case saveSettingsFailedMsg:
		m.logger.Warn("failed to save tui settings", "error", msg.err)
		return m, nil
	}
	return m.updateInput(msg)
}

// updateInput forwards non-key messages such as cursor blinks to the
// focused text input.
func (m *Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.ui.mode {
	case modeSearch:
		m.ui.search, cmd = m.ui.search.Update(msg)
	case modeFeedback:
		m.ui.feedback, cmd = m.ui.feedback.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleSectionActivated(msg sectionActivatedMsg) (tea.Model, tea.Cmd) {
	if msg.ID != m.current().ID() {
		// The user switched away while the load was running.
		if s, ok := library.Find(m.sections, msg.ID); ok {
			s.Deactivate()
		}
		return m, nil
	}
	if msg.Err != nil {
		m.logger.Warn("section activation failed", "view", msg.ID, "error", msg.Err)
	}
	return m, m.refresh()
}

// refresh clamps cursors to the current data and schedules hiding of a
// new alert.
func (m *Model) refresh() tea.Cmd {
	m.ui.ClampCursor(len(m.current().View().Rows))
	m.ui.clampPanel(len(m.panelNotifications()))

	latest, ok := m.alerts.Latest()
	if !ok || !latest.Timestamp.After(m.statusStamp) {
		return nil
	}
	m.statusStamp = latest.Timestamp
	m.statusVisible = true
	return clearStatusAfter(statusClearDuration, latest.Timestamp)
}

func (m *Model) current() library.Section {
	return m.sections[m.active]
}

// CurrentView returns the identifier of the mounted section.
func (m *Model) CurrentView() string {
	return m.current().ID()
}

func (m *Model) panelNotifications() []domain.Notification {
	all := m.notifications.Notifications()
	if m.ui.unreadOnly {
		return domain.FilterByReadStatus(all, domain.ReadFilterUnread)
	}
	return all
}

// View renders the TUI.
func (m *Model) View() string {
	width := m.ui.GetWidth()
	view := m.current().View()

	titles := make([]string, len(m.sections))
	for i, s := range m.sections {
		titles[i] = s.Title()
	}
	user, _ := m.session.DisplayName()
	connection := ""
	if m.session.Valid() {
		connection = m.notifications.State().String()
	}

	var s strings.Builder
	s.WriteString(render.Tabs(render.TabsState{
		Titles:     titles,
		Active:     m.active,
		Unread:     m.notifications.Unread(),
		User:       user,
		Connection: connection,
		Width:      width,
	}))
	s.WriteString("\n")
	s.WriteString(render.SearchLine(m.ui.mode == modeSearch, m.ui.search.View(), m.broadcaster.Current()))
	s.WriteString("\n")
	s.WriteString(render.Header(view.Columns, width))
	s.WriteString("\n")

	vp := m.ui.GetViewport()
	vp.SetContent(render.Body(view, m.ui.GetCursor(), width))
	s.WriteString(vp.View())
	s.WriteString("\n")
	s.WriteString(render.Pager(view))
	s.WriteString("\n")

	if m.ui.panelOpen {
		s.WriteString(render.Panel(m.panelNotifications(), m.ui.panelCursor, width, panelRows, true, m.now()))
		s.WriteString("\n")
	}
	if m.ui.mode == modeFeedback {
		s.WriteString(m.ui.feedback.View())
	}
	s.WriteString("\n")

	latest, _ := m.alerts.Latest()
	s.WriteString(render.Status(latest, m.statusVisible))
	s.WriteString("\n")

	_, feedback := m.current().(library.FeedbackSection)
	s.WriteString(render.Footer(render.FooterState{
		SearchMode:   m.ui.mode == modeSearch,
		FeedbackMode: m.ui.mode == modeFeedback,
		PanelFocused: m.ui.panelOpen,
		Actions:      m.current().Actions(),
		Feedback:     feedback,
	}))
	return s.String()
}
