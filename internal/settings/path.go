package settings

import (
	"os"
	"path/filepath"

	"github.com/cristianoliveira/booknet/internal/config"
)

// Path returns the filesystem path of the settings file.
func Path() string {
	return filepath.Join(resolveStateDir(), settingsFilename)
}

// resolveStateDir returns the configured state directory, falling back to
// the XDG default when config was not loaded.
func resolveStateDir() string {
	if dir := config.Get("state_dir", ""); dir != "" {
		return dir
	}
	xdgStateHome := os.Getenv("XDG_STATE_HOME")
	if xdgStateHome == "" {
		home, _ := os.UserHomeDir()
		xdgStateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(xdgStateHome, "booknet")
}
