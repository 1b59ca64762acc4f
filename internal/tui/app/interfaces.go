// Package app provides TUI application adapters for command wiring.
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/library"
	"github.com/cristianoliveira/booknet/internal/notify"
	"github.com/cristianoliveira/booknet/internal/session"
	"github.com/cristianoliveira/booknet/internal/settings"
)

// ProgramRunner defines the interface for running a bubbletea program.
// This abstraction allows for easier testing and swapping of implementations.
type ProgramRunner interface {
	// Run starts the bubbletea program with the given model.
	Run(model tea.Model) error
}

// DefaultProgramRunner is the default implementation of ProgramRunner
// that wraps tea.NewProgram with standard options.
type DefaultProgramRunner struct{}

// NewDefaultProgramRunner creates a new DefaultProgramRunner.
func NewDefaultProgramRunner() *DefaultProgramRunner {
	return &DefaultProgramRunner{}
}

// Run starts a bubbletea program with the given model on the alternate screen.
func (r *DefaultProgramRunner) Run(model tea.Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// SettingsStore loads and saves the persisted preferences.
type SettingsStore interface {
	LoadSettings() (*settings.Settings, error)
	SaveSettings(s *settings.Settings) error
}

// Backend builds the collaborators of one TUI session. *core.Core
// implements it.
type Backend interface {
	SettingsStore
	Session() (session.Source, error)
	NewManager(presenter alert.Presenter) (*notify.Manager, error)
	LibraryOptions(presenter alert.Presenter) library.Options
}
