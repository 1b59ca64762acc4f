package main

import (
	"os"

	"github.com/cristianoliveira/booknet/cmd"
	"github.com/cristianoliveira/booknet/internal/app"
	"github.com/spf13/cobra"
)

const (
	settingsCommandLong = `Manage TUI and output preferences.

USAGE:
    booknet settings <subcommand>

SUBCOMMANDS:
    reset    Reset settings to defaults
    show     Display current settings

EXAMPLES:
    # Reset settings with confirmation
    booknet settings reset

    # Reset settings without confirmation
    booknet settings reset --force

    # Show current settings
    booknet settings show`
	resetCommandLong = `Reset preferences to defaults. The view shown on start becomes the
configured default_view.

USAGE:
    booknet settings reset [OPTIONS]

OPTIONS:
    --force    Reset without confirmation
    -h, --help Show this help`
	showCommandLong = `Display current preferences in TOML format.

USAGE:
    booknet settings show`
)

// NewSettingsCmd creates the settings command with explicit dependencies.
func NewSettingsCmd(client app.SettingsClient) *cobra.Command {
	if client == nil {
		panic("NewSettingsCmd: client dependency cannot be nil")
	}

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage preferences",
		Long:  settingsCommandLong,
	}
	settingsCmd.AddCommand(newResetCmd(client))
	settingsCmd.AddCommand(newShowCmd(client))
	return settingsCmd
}

// newResetCmd creates the reset subcommand.
func newResetCmd(client app.SettingsClient) *cobra.Command {
	var resetForce bool
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset settings to defaults",
		Long:  resetCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewSettingsUseCase(client).Reset(app.ResetSettingsInput{
				Force:     resetForce,
				GetEnv:    os.Getenv,
				ConfirmFn: func() bool { return confirm("Are you sure you want to reset all settings to defaults?") },
			})
		},
	}
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Reset without confirmation")
	return resetCmd
}

// newShowCmd creates the show subcommand.
func newShowCmd(client app.SettingsClient) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current settings",
		Long:  showCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewSettingsUseCase(client).Show(cmd.OutOrStdout())
		},
	}
}

var settingsCmd = NewSettingsCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(settingsCmd)
}
