// Package settings provides TUI user preferences persistence.
package settings

import "os"

// File permission constants
const (
	// FileModeDir is the permission for directories (rwxr-xr-x)
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for data files (rw-r--r--)
	FileModeFile os.FileMode = 0644

	// FileExtTOML is the file extension for TOML files.
	FileExtTOML = ".toml"

	settingsFilename = "settings" + FileExtTOML
)

// Output format constants for CLI listings.
const (
	FormatSimple  = "simple"
	FormatTable   = "table"
	FormatCompact = "compact"
	FormatJSON    = "json"
)

// View identifiers accepted for ActiveView. They match the TUI tabs.
var Views = []string{"catalog", "my-books", "borrowed", "returned", "reservations"}

// DefaultView is used when no view was persisted or the value is unknown.
const DefaultView = "catalog"
