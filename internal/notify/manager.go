// Package notify keeps a live view of the current user's notifications:
// the backlog loaded from the directory service merged with events pushed
// over the notification channel.
package notify

import (
	"context"
	"errors"
	"sync"

	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/api"
	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/cristianoliveira/booknet/internal/logging"
	"github.com/cristianoliveira/booknet/internal/session"
	jsoniter "github.com/json-iterator/go"
)

// ErrAlreadyActive is returned by Activate on an active manager.
var ErrAlreadyActive = errors.New("notification manager already active")

// State is the channel connection state.
type State int

const (
	StateIdle State = iota
	StateConnecting
	StateConnected
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	default:
		return "idle"
	}
}

// EventKind identifies what changed.
type EventKind int

const (
	EventLoaded EventKind = iota
	EventReceived
	EventRead
	EventAllRead
	EventStateChanged
)

// Event is published to listeners after every change.
type Event struct {
	Kind         EventKind
	Notification domain.Notification
	Unread       int
	State        State
}

// Options configures a Manager.
type Options struct {
	Directory Directory
	Dialer    Dialer
	Session   session.Source
	Presenter alert.Presenter
	Logger    logging.Logger
}

// Manager is the notification channel manager. It is safe for concurrent use.
type Manager struct {
	directory Directory
	dialer    Dialer
	session   session.Source
	presenter alert.Presenter
	logger    logging.Logger

	mu            sync.Mutex
	active        bool
	state         State
	notifications []domain.Notification
	unread        int
	inflight      map[int]bool
	channel       Channel
	subscription  Subscription

	listenersMu sync.RWMutex
	listeners   map[int]func(Event)
	nextID      int
}

// NewManager creates a Manager. A nil Dialer or Session makes the manager a
// backlog-only source that never connects.
func NewManager(opts Options) *Manager {
	if opts.Directory == nil {
		panic("NewManager: directory dependency cannot be nil")
	}
	presenter := opts.Presenter
	if presenter == nil {
		presenter = alert.Discard()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetGlobal()
	}
	return &Manager{
		directory: opts.Directory,
		dialer:    opts.Dialer,
		session:   opts.Session,
		presenter: presenter,
		logger:    logger.With("component", "notify"),
		inflight:  make(map[int]bool),
		listeners: make(map[int]func(Event)),
	}
}

// OnEvent registers fn for every subsequent event and returns a function
// removing it.
func (m *Manager) OnEvent(fn func(Event)) (cancel func()) {
	m.listenersMu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.listenersMu.Unlock()
	return func() {
		m.listenersMu.Lock()
		delete(m.listeners, id)
		m.listenersMu.Unlock()
	}
}

func (m *Manager) emit(ev Event) {
	m.listenersMu.RLock()
	fns := make([]func(Event), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.listenersMu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// Notifications returns a copy of the list, newest first.
func (m *Manager) Notifications() []domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Notification, len(m.notifications))
	copy(out, m.notifications)
	return out
}

// Unread returns the unread count.
func (m *Manager) Unread() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unread
}

// State returns the channel state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Active reports whether the manager is between Activate and Deactivate.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	unread := m.unread
	m.mu.Unlock()
	m.emit(Event{Kind: EventStateChanged, State: s, Unread: unread})
}

// Activate loads the backlog and, when the session carries a valid
// credential, connects the channel and subscribes to the user's topic.
// Load and connection failures are reported through the presenter and never
// returned; the only error is ErrAlreadyActive.
func (m *Manager) Activate(ctx context.Context) error {
	m.mu.Lock()
	if m.active {
		m.mu.Unlock()
		return ErrAlreadyActive
	}
	m.active = true
	m.state = StateIdle
	m.mu.Unlock()

	m.load(ctx)
	m.connect(ctx)
	return nil
}

func (m *Manager) load(ctx context.Context) {
	list, err := m.directory.GetUserNotifications(ctx)
	if err != nil {
		m.logger.Warn("failed to load notifications", "error", err)
		m.presenter.Show(alert.Error, "Notifications unavailable", api.Message(err))
		return
	}
	m.mu.Lock()
	m.notifications = append([]domain.Notification(nil), list...)
	m.unread = domain.CountUnread(m.notifications)
	unread := m.unread
	m.mu.Unlock()
	m.logger.Debug("notifications loaded", "count", len(list), "unread", unread)
	m.emit(Event{Kind: EventLoaded, Unread: unread})
}

func (m *Manager) connect(ctx context.Context) {
	if m.dialer == nil || m.session == nil || !m.session.Valid() {
		m.logger.Debug("no valid session, skipping channel")
		return
	}
	userID, ok := m.session.UserID()
	if !ok {
		m.logger.Debug("session has no user id, skipping channel")
		return
	}

	m.setState(StateConnecting)
	ch, err := m.dialer.Connect(ctx, m.session.Token())
	if err != nil {
		m.connectFailed(err)
		return
	}

	topic := Topic(userID)
	sub, err := ch.Subscribe(topic, m.receive)
	if err != nil {
		ch.Disconnect()
		m.connectFailed(err)
		return
	}

	m.mu.Lock()
	if !m.active {
		// Deactivated while the handshake was in flight.
		m.mu.Unlock()
		sub.Unsubscribe()
		ch.Disconnect()
		return
	}
	m.channel = ch
	m.subscription = sub
	m.mu.Unlock()
	m.logger.Info("notification channel connected", "topic", topic)
	m.setState(StateConnected)

	if cn, ok := ch.(closeNotifier); ok {
		go m.watch(ch, cn.Done())
	}
}

func (m *Manager) connectFailed(err error) {
	m.logger.Warn("notification channel failed", "error", err)
	m.setState(StateDisconnected)
	if m.Active() {
		m.presenter.Show(alert.Error, "Connection failed", "Live notifications are unavailable")
	}
}

// watch marks the manager disconnected when the transport drops on its own.
func (m *Manager) watch(ch Channel, done <-chan struct{}) {
	<-done
	m.mu.Lock()
	if !m.active || m.channel != ch {
		m.mu.Unlock()
		return
	}
	m.channel = nil
	m.subscription = nil
	m.mu.Unlock()
	m.logger.Warn("notification channel lost")
	m.presenter.Show(alert.Warning, "Connection lost", "Live notifications stopped; reload to reconnect")
	m.setState(StateDisconnected)
}

// receive handles one pushed message. Messages arriving after Deactivate are
// dropped.
func (m *Manager) receive(payload []byte) {
	var n domain.Notification
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(payload, &n); err != nil {
		m.logger.Warn("dropping undecodable notification", "error", err)
		return
	}
	m.mu.Lock()
	if !m.active {
		m.mu.Unlock()
		return
	}
	m.notifications = append([]domain.Notification{n}, m.notifications...)
	m.unread++
	unread := m.unread
	m.mu.Unlock()

	tone, title := AlertFor(n.Status)
	m.presenter.Show(tone, title, n.Message)
	m.emit(Event{Kind: EventReceived, Notification: n, Unread: unread})
}

func (m *Manager) indexOf(id int) int {
	for i, n := range m.notifications {
		if n.HasID() && n.IDValue() == id {
			return i
		}
	}
	return -1
}

// MarkAsRead marks one notification read on the server and then locally.
// It is a no-op when the notification has no id, is unknown, is already read,
// or already has a request in flight.
func (m *Manager) MarkAsRead(ctx context.Context, n domain.Notification) error {
	if !n.HasID() {
		return nil
	}
	id := n.IDValue()

	m.mu.Lock()
	i := m.indexOf(id)
	if i < 0 || m.notifications[i].Read || m.inflight[id] {
		m.mu.Unlock()
		return nil
	}
	m.inflight[id] = true
	m.mu.Unlock()

	_, err := m.directory.MarkNotificationAsRead(ctx, id)

	m.mu.Lock()
	delete(m.inflight, id)
	if err != nil {
		m.mu.Unlock()
		m.logger.Warn("mark as read failed", "id", id, "error", err)
		m.presenter.Show(alert.Error, "Could not mark as read", api.Message(err))
		return err
	}
	var updated domain.Notification
	if i = m.indexOf(id); i >= 0 {
		m.notifications[i].Read = true
		updated = m.notifications[i]
	}
	m.unread = domain.CountUnread(m.notifications)
	unread := m.unread
	m.mu.Unlock()

	m.emit(Event{Kind: EventRead, Notification: updated, Unread: unread})
	return nil
}

// MarkAllAsRead marks every notification read on the server and then locally.
func (m *Manager) MarkAllAsRead(ctx context.Context) error {
	if err := m.directory.MarkAllNotificationsAsRead(ctx); err != nil {
		m.logger.Warn("mark all as read failed", "error", err)
		m.presenter.Show(alert.Error, "Could not mark all as read", api.Message(err))
		return err
	}
	m.mu.Lock()
	for i := range m.notifications {
		m.notifications[i].Read = true
	}
	m.unread = domain.CountUnread(m.notifications)
	unread := m.unread
	m.mu.Unlock()

	m.emit(Event{Kind: EventAllRead, Unread: unread})
	return nil
}

// Deactivate tears the channel down: the topic subscription is released
// before the transport disconnects. It is safe to call on an inactive manager.
func (m *Manager) Deactivate() error {
	m.mu.Lock()
	if !m.active {
		m.mu.Unlock()
		return nil
	}
	m.active = false
	ch, sub := m.channel, m.subscription
	m.channel, m.subscription = nil, nil
	m.state = StateIdle
	m.mu.Unlock()

	var errs []error
	if sub != nil {
		if err := sub.Unsubscribe(); err != nil {
			errs = append(errs, err)
		}
	}
	if ch != nil {
		if err := ch.Disconnect(); err != nil {
			errs = append(errs, err)
		}
		m.logger.Info("notification channel closed")
	}
	return errors.Join(errs...)
}
