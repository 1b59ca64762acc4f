package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/colors"
	"github.com/cristianoliveira/booknet/internal/library"
	"github.com/cristianoliveira/booknet/internal/logging"
	"github.com/cristianoliveira/booknet/internal/query"
	"github.com/cristianoliveira/booknet/internal/settings"
	"github.com/cristianoliveira/booknet/internal/tui/state"
)

// alertHistory bounds the alerts kept for the status line.
const alertHistory = 100

// Model defines the narrow TUI model surface used by command wiring.
type Model interface {
	tea.Model
	FromState(settingsState settings.TUIState)
	ToState() settings.TUIState
}

// Client defines dependencies needed by the tui command.
type Client interface {
	LoadSettings() (*settings.Settings, error)
	CreateModel(ctx context.Context, loaded *settings.Settings) (Model, error)
	RunProgram(model Model) error
}

// DefaultClient is the default adapter-based implementation used by CLI wiring.
type DefaultClient struct {
	backend       Backend
	programRunner ProgramRunner
	logger        logging.Logger
}

// NewDefaultClient creates a default TUI client adapter.
// If programRunner is nil, a DefaultProgramRunner will be used.
func NewDefaultClient(backend Backend, programRunner ProgramRunner) *DefaultClient {
	if backend == nil {
		panic("NewDefaultClient: backend dependency cannot be nil")
	}
	if programRunner == nil {
		programRunner = NewDefaultProgramRunner()
	}
	return &DefaultClient{
		backend:       backend,
		programRunner: programRunner,
		logger:        logging.GetGlobal(),
	}
}

// LoadSettings loads persisted settings from the backend.
func (d *DefaultClient) LoadSettings() (*settings.Settings, error) {
	return d.backend.LoadSettings()
}

// CreateModel builds one TUI session: a signal waking the program, the
// alert log feeding the status line, the five sections sharing one query
// broadcaster and the notification manager.
func (d *DefaultClient) CreateModel(ctx context.Context, loaded *settings.Settings) (Model, error) {
	if loaded == nil {
		loaded = settings.DefaultSettings()
	}
	src, err := d.backend.Session()
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}

	signal := state.NewSignal()
	alerts := alert.NewLog(alertHistory, func(alert.Alert) { signal.Notify() })

	manager, err := d.backend.NewManager(alerts)
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	sections := library.New(d.backend.LibraryOptions(alerts))

	model, err := state.NewModel(state.Options{
		Context:       ctx,
		Sections:      sections,
		Notifications: manager,
		Broadcaster:   query.NewBroadcaster(),
		Alerts:        alerts,
		Signal:        signal,
		Session:       src,
		Settings:      settings.FromSettings(loaded),
		SaveSettings:  d.saver(loaded),
		Logger:        d.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	return model, nil
}

// saver persists TUI state on top of the loaded settings, keeping the CLI
// preferences untouched.
func (d *DefaultClient) saver(loaded *settings.Settings) func(settings.TUIState) error {
	current := loaded
	return func(s settings.TUIState) error {
		next := s.Apply(current)
		if err := d.backend.SaveSettings(next); err != nil {
			return err
		}
		current = next
		return nil
	}
}

// RunProgram starts the bubbletea program using the configured ProgramRunner.
func (d *DefaultClient) RunProgram(model Model) error {
	if model == nil {
		return errors.New("tui: model is nil")
	}
	err := d.programRunner.Run(model)
	if err != nil {
		colors.Error(fmt.Sprintf("Error running TUI: %v", err))
		return err
	}
	return nil
}
