// Package state provides the bubbletea model of the booknet TUI.
package state

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// refreshMsg is delivered after a Signal; the model re-reads its sources.
type refreshMsg struct{}

// sectionActivatedMsg is sent when a section finished its initial load.
type sectionActivatedMsg struct {
	ID  string
	Err error
}

// actionDoneMsg is sent when a blocking operation returns. Failures were
// already alerted by the core; the model only logs them.
type actionDoneMsg struct {
	Op  string
	Err error
}

// clearStatusMsg hides the status line if the alert at Stamp is still the
// latest one.
type clearStatusMsg struct {
	Stamp time.Time
}

// teardownDoneMsg is sent once every source is deactivated.
type teardownDoneMsg struct {
	Err error
}

// saveSettingsSuccessMsg is sent when settings are saved successfully.
type saveSettingsSuccessMsg struct{}

// saveSettingsFailedMsg is sent when settings save fails.
type saveSettingsFailedMsg struct {
	err error
}

// SaveSettingsCmd returns a command to save settings.
func SaveSettingsCmd(saveFn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := saveFn(); err != nil {
			return saveSettingsFailedMsg{err: err}
		}
		return saveSettingsSuccessMsg{}
	}
}

func clearStatusAfter(d time.Duration, stamp time.Time) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{Stamp: stamp}
	})
}
