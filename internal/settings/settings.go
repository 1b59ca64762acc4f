package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds user preferences persisted between sessions.
//
// Settings are stored at {state_dir}/settings.toml:
//
//	active_view = "borrowed"
//	notifications_open = true
//	unread_only = false
//	format = "table"
type Settings struct {
	// ActiveView is the view shown when the TUI starts.
	ActiveView string `toml:"active_view"`

	// NotificationsOpen keeps the notification panel visible.
	NotificationsOpen bool `toml:"notifications_open"`

	// UnreadOnly limits the notification panel to unread notifications.
	UnreadOnly bool `toml:"unread_only"`

	// Format is the default output format of CLI listings.
	Format string `toml:"format"`
}

// DefaultSettings returns settings with all default values.
func DefaultSettings() *Settings {
	return &Settings{
		ActiveView: DefaultView,
		Format:     FormatSimple,
	}
}

// Load reads settings from the state directory.
// If the settings file does not exist, returns default settings.
func Load() (*Settings, error) {
	return LoadFrom(Path())
}

// LoadFrom reads settings from path. Missing fields keep their defaults.
func LoadFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	settings := DefaultSettings()
	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	if err := Validate(settings); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// Save writes settings to the state directory.
func Save(settings *Settings) error {
	return SaveTo(Path(), settings)
}

// SaveTo writes settings to path, creating its directory if needed.
func SaveTo(path string, settings *Settings) error {
	if err := Validate(settings); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), FileModeDir); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, FileModeFile); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// NormalizeView converts arbitrary persisted input to a valid view.
// Missing or invalid values resolve to DefaultView.
func NormalizeView(raw string) string {
	view := strings.ToLower(strings.TrimSpace(raw))
	if isView(view) {
		return view
	}
	return DefaultView
}

func isView(v string) bool {
	for _, known := range Views {
		if v == known {
			return true
		}
	}
	return false
}
