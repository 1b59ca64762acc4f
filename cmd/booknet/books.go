package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cristianoliveira/booknet/cmd"
	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/app"
	"github.com/cristianoliveira/booknet/internal/library"
	"github.com/spf13/cobra"
)

type booksClient interface {
	app.BooksClient
	settingsLoader
	LibraryOptions(presenter alert.Presenter) library.Options
}

const (
	booksCommandLong = `Browse the book views and act on books.

USAGE:
    booknet books <subcommand>

SUBCOMMANDS:
    list <view>      List one page of a view
    show <id>        Show the details of a book
    borrow <id>      Borrow a book
    reserve <id>     Reserve a book
    cancel <id>      Cancel a reservation
    return <id>      Return a borrowed book, optionally with feedback
    approve <id>     Approve the return of a lent book
    archive <id>     Toggle the archived flag of an owned book
    share <id>       Toggle the shareable flag of an owned book`
	booksListLong = `List one page of a view.

USAGE:
    booknet books list <view> [OPTIONS]

VIEWS:
    catalog, my-books, borrowed, returned, reservations

OPTIONS:
    --page <n>           Page to show, starting at 1 (default 1)
    --search <text>      Filter the whole view by title, synopsis or author;
                         results are paged locally
    --format=<format>    Output format: simple (default), table, compact, json`
)

// NewBooksCmd creates the books command with explicit dependencies.
func NewBooksCmd(client booksClient) *cobra.Command {
	if client == nil {
		panic("NewBooksCmd: client dependency cannot be nil")
	}

	booksCmd := &cobra.Command{
		Use:     "books",
		Aliases: []string{"b"},
		Short:   "Browse book views and act on books",
		Long:    booksCommandLong,
	}
	booksCmd.AddCommand(newBooksListCmd(client))
	booksCmd.AddCommand(newBooksShowCmd(client))
	for _, key := range library.ActionKeys() {
		booksCmd.AddCommand(newBookActionCmd(client, key))
	}
	return booksCmd
}

func booksUseCase(client booksClient) *app.BooksUseCase {
	return app.NewBooksUseCase(client, client.LibraryOptions(alert.NewDefaultConsole()))
}

func newBooksListCmd(client booksClient) *cobra.Command {
	var (
		page   int
		search string
		format string
	)
	listCmd := &cobra.Command{
		Use:       "list <view>",
		Short:     "List one page of a view",
		Long:      booksListLong,
		Args:      cobra.ExactArgs(1),
		ValidArgs: library.IDs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return booksUseCase(client).List(cmd.Context(), app.BooksListOptions{
				View:   args[0],
				Page:   page,
				Search: search,
				Format: outputFormat(cmd, client, format),
			}, cmd.OutOrStdout())
		},
	}
	listCmd.Flags().IntVar(&page, "page", 1, "Page to show, starting at 1")
	listCmd.Flags().StringVar(&search, "search", "", "Filter the whole view")
	listCmd.Flags().StringVar(&format, "format", "simple", "Output format: simple, table, compact, json")
	return listCmd
}

func newBooksShowCmd(client booksClient) *cobra.Command {
	var format string
	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the details of a book",
		Long: `Show the details of a book.

USAGE:
    booknet books show <id> [--format=<format>]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBookID(args[0])
			if err != nil {
				return err
			}
			return booksUseCase(client).Show(cmd.Context(), id, outputFormat(cmd, client, format), cmd.OutOrStdout())
		},
	}
	showCmd.Flags().StringVar(&format, "format", "simple", "Output format: simple, table, compact, json")
	return showCmd
}

var actionShort = map[string]string{
	library.ActionBorrow:  "Borrow a book",
	library.ActionReserve: "Reserve a book",
	library.ActionCancel:  "Cancel a reservation",
	library.ActionReturn:  "Return a borrowed book",
	library.ActionApprove: "Approve the return of a lent book",
	library.ActionArchive: "Toggle the archived flag of an owned book",
	library.ActionShare:   "Toggle the shareable flag of an owned book",
}

func newBookActionCmd(client booksClient, key string) *cobra.Command {
	var (
		note    float64
		comment string
	)
	long := fmt.Sprintf("%s.\n\nUSAGE:\n    booknet books %s <id>", actionShort[key], key)
	if key == library.ActionReturn {
		long += ` [--note <0-5> [--comment <text>]]

OPTIONS:
    --note <n>        Rate the book from 0 to 5 and send it as feedback
    --comment <text>  Feedback comment, sent with --note

The feedback is only sent once the return succeeded. A rejected feedback
does not undo the return.`
	}

	actionCmd := &cobra.Command{
		Use:   key + " <id>",
		Short: actionShort[key],
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBookID(args[0])
			if err != nil {
				return err
			}
			var fb *library.Feedback
			if key == library.ActionReturn && cmd.Flags().Changed("note") {
				fb = &library.Feedback{Note: note, Comment: strings.TrimSpace(comment)}
			} else if cmd.Flags().Changed("comment") {
				return fmt.Errorf("books: --comment requires --note")
			}
			if err := booksUseCase(client).Act(cmd.Context(), key, id, fb); err != nil {
				return reportedError{err}
			}
			return nil
		},
	}
	if key == library.ActionReturn {
		actionCmd.Flags().Float64Var(&note, "note", 0, "Rate the book from 0 to 5")
		actionCmd.Flags().StringVar(&comment, "comment", "", "Feedback comment")
	}
	return actionCmd
}

func parseBookID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("books: invalid book id %q", raw)
	}
	return id, nil
}

var booksCmd = NewBooksCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(booksCmd)
}
