package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cristianoliveira/booknet/cmd"
	"github.com/cristianoliveira/booknet/internal/app"
	"github.com/cristianoliveira/booknet/internal/session"
	"github.com/spf13/cobra"
)

type sessionClient interface {
	SessionStore() *session.Store
	ConfiguredToken() string
}

const (
	sessionCommandLong = `Manage the session token used against the backend.

USAGE:
    booknet session <subcommand>

SUBCOMMANDS:
    set <token>   Store a token (use - to read it from stdin)
    show          Describe the active session
    clear         Remove the stored token

A token set in the configuration (token, BOOKNET_TOKEN) takes precedence
over the stored one.`
	sessionClearLong = `Remove the stored session token.

USAGE:
    booknet session clear [OPTIONS]

OPTIONS:
    --force    Clear without confirmation
    -h, --help Show this help`
)

// NewSessionCmd creates the session command with explicit dependencies.
func NewSessionCmd(client sessionClient) *cobra.Command {
	if client == nil {
		panic("NewSessionCmd: client dependency cannot be nil")
	}

	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the session token",
		Long:  sessionCommandLong,
	}
	sessionCmd.AddCommand(newSessionSetCmd(client))
	sessionCmd.AddCommand(newSessionShowCmd(client))
	sessionCmd.AddCommand(newSessionClearCmd(client))
	return sessionCmd
}

func newSessionSetCmd(client sessionClient) *cobra.Command {
	return &cobra.Command{
		Use:   "set <token>",
		Short: "Store a session token",
		Long: `Store a session token issued by the backend.

USAGE:
    booknet session set <token>
    booknet session set - < token.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := args[0]
			if token == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("session: read token: %w", err)
				}
				token = strings.TrimSpace(string(data))
			}
			return app.NewSessionUseCase(client.SessionStore()).Set(token)
		},
	}
}

func newSessionShowCmd(client sessionClient) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Describe the active session",
		Long: `Describe the active session: user, roles, expiry and where the token comes from.

USAGE:
    booknet session show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewSessionUseCase(client.SessionStore()).Show(client.ConfiguredToken(), cmd.OutOrStdout())
		},
	}
}

func newSessionClearCmd(client sessionClient) *cobra.Command {
	var force bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored token",
		Long:  sessionClearLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewSessionUseCase(client.SessionStore()).Clear(app.ClearSessionInput{
				Force:     force,
				GetEnv:    os.Getenv,
				ConfirmFn: func() bool { return confirm("Are you sure you want to sign out?") },
			})
		},
	}
	clearCmd.Flags().BoolVar(&force, "force", false, "Clear without confirmation")
	return clearCmd
}

var sessionCmd = NewSessionCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(sessionCmd)
}
