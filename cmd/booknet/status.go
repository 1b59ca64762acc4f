package main

import (
	"os"

	"github.com/cristianoliveira/booknet/cmd"
	"github.com/cristianoliveira/booknet/internal/app"
	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command with explicit dependencies.
func NewStatusCmd(client app.StatusClient) *cobra.Command {
	if client == nil {
		panic("NewStatusCmd: client dependency cannot be nil")
	}

	var formatFlag string

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show notification status summary",
		Long: `Show a summary of the notification inbox.

USAGE:
    booknet status [OPTIONS]

OPTIONS:
    --format=<format>    Output format: summary (default), statuses, json

ENVIRONMENT:
    BOOKNET_STATUS_FORMAT  Default format when --format is not given

EXAMPLES:
    booknet status                    # 2 unread of 5 notifications
    booknet status --format=statuses  # counts per notification status
    booknet status --format=json      # {"total":5,"unread":2,...}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := app.DetermineStatusFormat(formatFlag, os.Getenv("BOOKNET_STATUS_FORMAT"), cmd.Flags().Changed("format"))
			if err := app.ValidateStatusFormat(format); err != nil {
				return err
			}
			return app.NewStatusUseCase(client).Execute(cmd.Context(), format, cmd.OutOrStdout())
		},
	}
	statusCmd.Flags().StringVar(&formatFlag, "format", "summary", "Output format: summary, statuses, json")
	return statusCmd
}

var statusCmd = NewStatusCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(statusCmd)
}
