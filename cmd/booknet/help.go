package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/booknet/cmd"
	"github.com/cristianoliveira/booknet/internal/colors"
	"github.com/spf13/cobra"
)

// commandOrder is the order commands are listed in the help text.
var commandOrder = []string{
	"tui",
	"books",
	"notifications",
	"follow",
	"status",
	"session",
	"settings",
	"help",
	"version",
}

// PrintHelp prints the help information for the given root command.
func PrintHelp(cmd *cobra.Command) {
	printHelp(cmd, cmd.OutOrStdout())
}

func printHelp(cmd *cobra.Command, w io.Writer) {
	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %s%-16s%s %s%s%s", colors.Cyan, found.Name(), colors.Reset, colors.Green, found.Short, colors.Reset))
	}

	versionStr := cmd.Version
	if versionStr == "" {
		versionStr = "0.0.0"
	}
	header := colors.Blue
	reset := colors.Reset

	helpText := fmt.Sprintf(`%sbooknet v%s%s

%sA terminal client for the book lending network.%s

%sUSAGE:%s
    booknet [COMMAND] [OPTIONS]

    Without a command the interactive TUI starts.

%sCOMMANDS:%s
%s

%sOPTIONS:%s
    -h, --help      Show help message
`, header, versionStr, reset, colors.Cyan, reset, header, reset, header, reset, strings.Join(cmdLines, "\n"), header, reset)
	_, _ = fmt.Fprint(w, helpText)
}

// NewHelpCmd creates the help command.
func NewHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help [command]",
		Short: "Show this help message",
		Long:  `Show this help message.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				PrintHelp(cmd.Root())
				return nil
			}
			targetCmd, _, err := cmd.Root().Find(args)
			if err != nil || targetCmd == nil || targetCmd == cmd.Root() {
				PrintHelp(cmd.Root())
				return nil
			}
			return targetCmd.Help()
		},
	}
}

var helpCmd = NewHelpCmd()

func init() {
	cmd.RootCmd.SetHelpCommand(helpCmd)
	cmd.RootCmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		if c == c.Root() {
			PrintHelp(c)
			return
		}
		text := c.Long
		if text == "" {
			text = c.Short
		}
		_, _ = fmt.Fprintln(c.OutOrStdout(), strings.TrimRight(text, "\n"))
	})
}
