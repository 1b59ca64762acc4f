package main

import (
	"fmt"
	"strconv"

	"github.com/cristianoliveira/booknet/cmd"
	"github.com/cristianoliveira/booknet/internal/app"
	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/spf13/cobra"
)

type notificationsClient interface {
	app.ListClient
	app.MarkReadClient
	settingsLoader
}

const (
	notificationsCommandLong = `List notifications and mark them read.

USAGE:
    booknet notifications <subcommand>

SUBCOMMANDS:
    list        List notifications, unread first
    read <id>   Mark one notification as read
    read-all    Mark every notification as read`
	notificationsListLong = `List notifications with filters and formats.

USAGE:
    booknet notifications list [OPTIONS]

OPTIONS:
    --unread             Show only unread notifications
    --read               Show only read notifications
    --status <status>    Filter by status: BORROWED, RETURNED, RETURN_APPROVED, unspecified
    --search <text>      Search messages and book titles (substring match)
    --format=<format>    Output format: simple (default), table, compact, json

ORDERING:
    Unread notifications are listed first, then read notifications.
    Relative order remains unchanged within each group.`
)

// NewNotificationsCmd creates the notifications command with explicit dependencies.
func NewNotificationsCmd(client notificationsClient) *cobra.Command {
	if client == nil {
		panic("NewNotificationsCmd: client dependency cannot be nil")
	}

	notificationsCmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"n"},
		Short:   "List notifications and mark them read",
		Long:    notificationsCommandLong,
	}
	notificationsCmd.AddCommand(newNotificationsListCmd(client))
	notificationsCmd.AddCommand(newMarkReadCmd(client))
	notificationsCmd.AddCommand(newMarkAllReadCmd(client))
	return notificationsCmd
}

func newNotificationsListCmd(client notificationsClient) *cobra.Command {
	var (
		unread bool
		read   bool
		status string
		search string
		format string
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		Long:  notificationsListLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if unread && read {
				return fmt.Errorf("list: --unread and --read are mutually exclusive")
			}
			readFilter := ""
			switch {
			case unread:
				readFilter = domain.ReadFilterUnread
			case read:
				readFilter = domain.ReadFilterRead
			}
			return app.NewListUseCase(client).Execute(cmd.Context(), app.ListOptions{
				Status:     status,
				ReadFilter: readFilter,
				Search:     search,
				Format:     outputFormat(cmd, client, format),
			}, cmd.OutOrStdout())
		},
	}
	listCmd.Flags().BoolVar(&unread, "unread", false, "Show only unread notifications")
	listCmd.Flags().BoolVar(&read, "read", false, "Show only read notifications")
	listCmd.Flags().StringVar(&status, "status", "", "Filter by status")
	listCmd.Flags().StringVar(&search, "search", "", "Search messages and book titles")
	listCmd.Flags().StringVar(&format, "format", "simple", "Output format: simple, table, compact, json")
	return listCmd
}

func newMarkReadCmd(client notificationsClient) *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark a notification as read",
		Long: `Mark a notification as read by ID.

USAGE:
    booknet notifications read <id>`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("mark-read: invalid notification id %q", args[0])
			}
			return app.NewMarkReadUseCase(client).Execute(cmd.Context(), id)
		},
	}
}

func newMarkAllReadCmd(client notificationsClient) *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		Long: `Mark every notification of the signed-in user as read.

USAGE:
    booknet notifications read-all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewMarkReadUseCase(client).ExecuteAll(cmd.Context())
		},
	}
}

var notificationsCmd = NewNotificationsCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(notificationsCmd)
}
