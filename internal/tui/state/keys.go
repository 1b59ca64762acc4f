package state

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/library"
)

var errFeedbackFormat = errors.New("expected a note from 0 to 5 followed by a comment")

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	switch m.ui.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeFeedback:
		return m.handleFeedbackKey(msg)
	}

	key := msg.String()
	if m.ui.panelOpen {
		if cmd, ok := m.handlePanelKey(key); ok {
			return m, cmd
		}
	}

	switch key {
	case "q":
		return m.quit()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return m, m.switchTo(int(key[0] - '1'))
	case "tab":
		return m, m.switchTo((m.active + 1) % len(m.sections))
	case "shift+tab":
		return m, m.switchTo((m.active + len(m.sections) - 1) % len(m.sections))
	case "/":
		m.ui.mode = modeSearch
		m.ui.search.SetValue(m.broadcaster.Current())
		m.ui.search.CursorEnd()
		return m, m.ui.search.Focus()
	case "esc", "ctrl+u":
		m.clearSearch()
		return m, nil
	case "j", "down":
		m.ui.MoveCursor(1, len(m.current().View().Rows))
		return m, nil
	case "k", "up":
		m.ui.MoveCursor(-1, len(m.current().View().Rows))
		return m, nil
	case "h", "left":
		return m, m.navigate("previous", library.Section.Previous)
	case "l", "right":
		return m, m.navigate("next", library.Section.Next)
	case "g":
		return m, m.navigate("first", library.Section.First)
	case "G":
		return m, m.navigate("last", library.Section.Last)
	case "r":
		return m, m.navigate("reload", library.Section.Reload)
	case "n":
		m.ui.TogglePanel()
		return m, m.persist()
	case "f":
		return m, m.openFeedback()
	}

	for _, a := range m.current().Actions() {
		if a.Shortcut == key {
			return m, m.perform(a.Key)
		}
	}
	return m, nil
}

// handlePanelKey handles keys owned by the open notification panel.
func (m *Model) handlePanelKey(key string) (tea.Cmd, bool) {
	list := m.panelNotifications()
	switch key {
	case "j", "down":
		m.ui.MovePanelCursor(1, len(list))
	case "k", "up":
		m.ui.MovePanelCursor(-1, len(list))
	case "m":
		if m.ui.panelCursor < len(list) {
			return m.markAsRead(list[m.ui.panelCursor]), true
		}
	case "M":
		return m.markAllAsRead(), true
	case "u":
		m.ui.unreadOnly = !m.ui.unreadOnly
		m.ui.panelCursor = 0
		return m.persist(), true
	case "n", "esc":
		m.ui.TogglePanel()
		return m.persist(), true
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.ui.mode = modeNormal
		m.ui.search.Blur()
		return m, nil
	case "ctrl+u":
		m.clearSearch()
		return m, nil
	}
	var cmd tea.Cmd
	before := m.ui.search.Value()
	m.ui.search, cmd = m.ui.search.Update(msg)
	if value := m.ui.search.Value(); value != before {
		m.broadcaster.Update(value)
		m.ui.ResetCursor()
	}
	return m, cmd
}

func (m *Model) clearSearch() {
	m.ui.search.SetValue("")
	m.broadcaster.Clear()
	m.ui.ResetCursor()
}

// openFeedback enters feedback mode when the current section supports it and
// the selected book can be returned.
func (m *Model) openFeedback() tea.Cmd {
	s := m.current()
	if _, ok := s.(library.FeedbackSection); !ok {
		return nil
	}
	returnable := false
	for _, a := range s.Available(m.ui.GetCursor()) {
		if a.Key == library.ActionReturn {
			returnable = true
		}
	}
	if !returnable {
		return nil
	}
	m.ui.mode = modeFeedback
	m.ui.feedback.SetValue("")
	return m.ui.feedback.Focus()
}

func (m *Model) handleFeedbackKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ui.mode = modeNormal
		m.ui.feedback.Blur()
		return m, nil
	case "enter":
		m.ui.mode = modeNormal
		m.ui.feedback.Blur()
		note, comment, err := parseFeedback(m.ui.feedback.Value())
		if err != nil {
			m.alerts.Show(alert.Error, "Feedback", err.Error())
			return m, m.refresh()
		}
		s, ok := m.current().(library.FeedbackSection)
		if !ok {
			return m, nil
		}
		return m, m.returnWithFeedback(s, note, comment)
	}
	var cmd tea.Cmd
	m.ui.feedback, cmd = m.ui.feedback.Update(msg)
	return m, cmd
}

// parseFeedback splits "note comment..." input.
func parseFeedback(input string) (float64, string, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return 0, "", errFeedbackFormat
	}
	note, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, "", errFeedbackFormat
	}
	return note, strings.Join(fields[1:], " "), nil
}
