package main

import (
	"github.com/cristianoliveira/booknet/cmd"
	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/app"
	"github.com/cristianoliveira/booknet/internal/logging"
	"github.com/cristianoliveira/booknet/internal/notify"
	"github.com/spf13/cobra"
)

type followClient interface {
	NewManager(presenter alert.Presenter) (*notify.Manager, error)
}

// NewFollowCmd creates the follow command with explicit dependencies.
func NewFollowCmd(client followClient) *cobra.Command {
	if client == nil {
		panic("NewFollowCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "follow",
		Short: "Print live notifications as they arrive",
		Long: `Print live notifications as they arrive.

Connects the push channel with the stored session and prints every
notification pushed to the signed-in user until interrupted. The command
stops when the channel drops; it does not reconnect.

USAGE:
    booknet follow`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Received notifications are printed by the use case; the
			// channel's own alerts would repeat them.
			manager, err := client.NewManager(alert.Discard())
			if err != nil {
				return err
			}
			return app.NewFollowUseCase(manager).Execute(cmd.Context(), app.FollowOptions{
				Output: cmd.OutOrStdout(),
				Logger: logging.GetGlobal(),
			})
		},
	}
}

var followCmd = NewFollowCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(followCmd)
}
