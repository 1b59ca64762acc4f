package state

import tea "github.com/charmbracelet/bubbletea"

// Signal wakes the program when core state changes. Sends coalesce: the
// model re-reads every snapshot on wake-up, so one pending signal is enough.
type Signal chan struct{}

// NewSignal creates a Signal.
func NewSignal() Signal {
	return make(Signal, 1)
}

// Notify schedules a refresh. It never blocks and is safe from any goroutine.
func (s Signal) Notify() {
	select {
	case s <- struct{}{}:
	default:
	}
}

// wait returns a command that resolves on the next signal.
func (s Signal) wait() tea.Cmd {
	return func() tea.Msg {
		<-s
		return refreshMsg{}
	}
}
