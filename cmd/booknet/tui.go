package main

import (
	"fmt"

	"github.com/cristianoliveira/booknet/cmd"
	"github.com/cristianoliveira/booknet/internal/colors"
	"github.com/cristianoliveira/booknet/internal/settings"
	tuiapp "github.com/cristianoliveira/booknet/internal/tui/app"
	"github.com/spf13/cobra"
)

const tuiCommandLong = `Browse the book network interactively.

USAGE:
    booknet tui

KEYS:
    1-5, tab       Switch view (catalog, my books, borrowed, returned, reservations)
    /              Edit the search query (shared by every view)
    esc, ctrl+u    Clear the search query
    j/k            Move the cursor
    h/l            Previous/next page
    g/G            First/last page
    r              Reload the view
    b/s            Borrow/reserve (catalog)
    a/s            Archive/share (my books)
    t              Return (borrowed)
    a              Approve return (returned)
    x              Cancel reservation (reservations)
    f              Return the selected book with feedback ("4 great read")
    n              Toggle the notification panel
    m/M            Mark the selected/all notifications read (panel open)
    u              Show only unread notifications (panel open)
    q, ctrl+c      Quit

Preferences (last view, notification panel) are kept in {state_dir}/settings.toml.`

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(client tuiapp.Client) *cobra.Command {
	if client == nil {
		panic("NewTUICmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "tui",
		Short: "Browse books and notifications interactively",
		Long:  tuiCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := client.LoadSettings()
			if err != nil {
				colors.Warning(fmt.Sprintf("Using default settings: %v", err))
				loaded = settings.DefaultSettings()
			}
			model, err := client.CreateModel(cmd.Context(), loaded)
			if err != nil {
				return err
			}
			return client.RunProgram(model)
		},
	}
}

var tuiCmd = NewTUICmd(tuiapp.NewDefaultClient(coreClient, nil))

func init() {
	cmd.RootCmd.AddCommand(tuiCmd)
	// A bare invocation opens the TUI.
	cmd.RootCmd.Args = cobra.NoArgs
	cmd.RootCmd.RunE = tuiCmd.RunE
}
