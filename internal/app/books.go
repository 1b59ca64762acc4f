package app

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/cristianoliveira/booknet/internal/format"
	"github.com/cristianoliveira/booknet/internal/library"
	"github.com/cristianoliveira/booknet/internal/query"
)

// BooksClient defines dependencies required by the book commands.
type BooksClient interface {
	library.Service
	FindBookByID(ctx context.Context, id int) (domain.Book, error)
}

// BooksListOptions holds the parameters of a view listing.
type BooksListOptions struct {
	View   string
	Page   int // 1-based; 0 means the first page
	Search string
	Format string
}

// BooksUseCase coordinates book listing, details and actions.
type BooksUseCase struct {
	client  BooksClient
	options library.Options
}

// NewBooksUseCase creates a books use-case. opts supplies page sizes, the
// presenter and the logger; its Service is replaced by client.
func NewBooksUseCase(client BooksClient, opts library.Options) *BooksUseCase {
	if client == nil {
		panic("NewBooksUseCase: client dependency cannot be nil")
	}
	opts.Service = client
	if opts.Presenter == nil {
		opts.Presenter = alert.Discard()
	}
	return &BooksUseCase{client: client, options: opts}
}

// errorCounter forwards alerts and counts the errors among them.
type errorCounter struct {
	next   alert.Presenter
	errors atomic.Int32
}

func (c *errorCounter) Show(tone alert.Tone, title, message string) {
	if tone == alert.Error {
		c.errors.Add(1)
	}
	c.next.Show(tone, title, message)
}

// List loads one view the way the TUI does, optionally moves to a page and
// applies a search, then prints the rendered rows.
func (u *BooksUseCase) List(ctx context.Context, opts BooksListOptions, w io.Writer) error {
	formatterType, err := parseFormat(opts.Format)
	if err != nil {
		return err
	}
	if opts.Page < 0 {
		return fmt.Errorf("books: invalid page %d", opts.Page)
	}

	counter := &errorCounter{next: u.options.Presenter}
	libOpts := u.options
	libOpts.Presenter = counter
	section, err := library.NewSection(opts.View, libOpts)
	if err != nil {
		return err
	}
	defer section.Deactivate()

	if err := section.Activate(ctx); err != nil {
		return fmt.Errorf("books: %w", err)
	}
	if opts.Page > 1 {
		if err := section.GoTo(ctx, opts.Page-1); err != nil {
			return fmt.Errorf("books: %w", err)
		}
	}
	if opts.Search != "" {
		b := query.NewBroadcaster()
		unbind := section.Bind(b)
		defer unbind()
		b.Update(opts.Search)
	}
	if n := counter.errors.Load(); n > 0 {
		return fmt.Errorf("books: failed to load %s", opts.View)
	}

	return format.NewFormatter(formatterType).FormatView(section.View(), w)
}

// Show prints the details of one book.
func (u *BooksUseCase) Show(ctx context.Context, id int, formatName string, w io.Writer) error {
	formatterType, err := parseFormat(formatName)
	if err != nil {
		return err
	}
	book, err := u.client.FindBookByID(ctx, id)
	if err != nil {
		return fmt.Errorf("books: %w", err)
	}
	return format.NewFormatter(formatterType).FormatBook(book, w)
}

// Act runs action on the book with id. fb is only used by the return action.
func (u *BooksUseCase) Act(ctx context.Context, action string, id int, fb *library.Feedback) error {
	if id <= 0 {
		return fmt.Errorf("books: invalid book id %d", id)
	}
	if fb != nil && action != library.ActionReturn {
		return fmt.Errorf("books: feedback only applies to %s", library.ActionReturn)
	}
	return library.Act(ctx, u.client, u.options.Presenter, action, id, fb)
}
