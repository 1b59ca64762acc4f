// Package cmd owns the root command shared by the booknet binary.
package cmd

import (
	"github.com/cristianoliveira/booknet/internal/colors"
	"github.com/cristianoliveira/booknet/internal/config"
	"github.com/cristianoliveira/booknet/internal/logging"
	"github.com/cristianoliveira/booknet/internal/version"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
// Subcommands register themselves in init.
var RootCmd = &cobra.Command{
	Use:   "booknet",
	Short: "A terminal client for the book lending network.",
	Long:  `A terminal client for the book lending network.`,
	// Errors are reported once, by main.
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.ShutdownGlobal()
	},
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

// setup loads configuration and starts file logging before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	config.Load()
	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))
	if err := logging.InitGlobal(); err != nil {
		colors.Warning("file logging disabled:", err.Error())
	}
	logging.Debug("command started", "command", cmd.CommandPath())
	return nil
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true
}
