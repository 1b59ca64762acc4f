package state

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/cristianoliveira/booknet/internal/library"
)

// mount makes section i current: it subscribes to the section's changes and
// to the shared query, then activates it in the background.
func (m *Model) mount(i int) tea.Cmd {
	s := m.sections[i]
	m.active = i
	m.stopChanges = s.OnChange(m.signal.Notify)
	m.unbind = s.Bind(m.broadcaster)
	m.ui.ResetCursor()

	ctx := m.ctx
	return func() tea.Msg {
		return sectionActivatedMsg{ID: s.ID(), Err: s.Activate(ctx)}
	}
}

// unmount releases the current section.
func (m *Model) unmount() {
	if m.unbind != nil {
		m.unbind()
		m.unbind = nil
	}
	if m.stopChanges != nil {
		m.stopChanges()
		m.stopChanges = nil
	}
	m.current().Deactivate()
}

func (m *Model) switchTo(i int) tea.Cmd {
	if i == m.active || i < 0 || i >= len(m.sections) {
		return nil
	}
	m.unmount()
	return tea.Batch(m.mount(i), m.persist())
}

func (m *Model) activateNotifications() tea.Cmd {
	ctx := m.ctx
	src := m.notifications
	return func() tea.Msg {
		return actionDoneMsg{Op: "notifications", Err: src.Activate(ctx)}
	}
}

// run executes fn in the background and reports it as op.
func (m *Model) run(op string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionDoneMsg{Op: op, Err: fn(ctx)}
	}
}

func (m *Model) navigate(op string, fn func(library.Section, context.Context) error) tea.Cmd {
	s := m.current()
	m.ui.ResetCursor()
	return m.run(op, func(ctx context.Context) error { return fn(s, ctx) })
}

func (m *Model) perform(key string) tea.Cmd {
	s := m.current()
	index := m.ui.GetCursor()
	return m.run(key, func(ctx context.Context) error {
		_, err := s.Perform(ctx, key, index)
		return err
	})
}

func (m *Model) returnWithFeedback(s library.FeedbackSection, note float64, comment string) tea.Cmd {
	index := m.ui.GetCursor()
	return m.run("return", func(ctx context.Context) error {
		_, err := s.ReturnWithFeedback(ctx, index, note, comment)
		return err
	})
}

func (m *Model) markAsRead(n domain.Notification) tea.Cmd {
	src := m.notifications
	return m.run("mark-read", func(ctx context.Context) error {
		return src.MarkAsRead(ctx, n)
	})
}

func (m *Model) markAllAsRead() tea.Cmd {
	src := m.notifications
	return m.run("mark-all-read", src.MarkAllAsRead)
}

// persist saves the TUI state when a saver is configured.
func (m *Model) persist() tea.Cmd {
	if m.saveSettings == nil {
		return nil
	}
	state := m.ToState()
	save := m.saveSettings
	return SaveSettingsCmd(func() error { return save(state) })
}

// quit tears every source down, saves the state and exits.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	m.quitting = true
	cmd := m.persist()
	m.unmount()
	return m, tea.Sequence(cmd, m.teardown())
}

func (m *Model) teardown() tea.Cmd {
	return func() tea.Msg {
		if m.stopEvents != nil {
			m.stopEvents()
		}
		err := m.notifications.Deactivate()
		m.cancel()
		return teardownDoneMsg{Err: err}
	}
}
