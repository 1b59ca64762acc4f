package main

import (
	"github.com/cristianoliveira/booknet/internal/settings"
	"github.com/spf13/cobra"
)

type settingsLoader interface {
	LoadSettings() (*settings.Settings, error)
}

// outputFormat returns the --format flag when given, otherwise the format
// saved in the settings file.
func outputFormat(cmd *cobra.Command, client settingsLoader, flag string) string {
	if cmd.Flags().Changed("format") {
		return flag
	}
	if s, err := client.LoadSettings(); err == nil && s.Format != "" {
		return s.Format
	}
	return flag
}
