package library

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/cristianoliveira/booknet/internal/logging"
	"github.com/cristianoliveira/booknet/internal/paged"
	"github.com/cristianoliveira/booknet/internal/search"
)

// View identifiers, in tab order.
const (
	Catalog      = "catalog"
	MyBooks      = "my-books"
	Borrowed     = "borrowed"
	Returned     = "returned"
	Reservations = "reservations"
)

const (
	borrowedMessage  = "Book successfully added to your list"
	reservedMessage  = "Book reserved successfully"
	approvedMessage  = "Book return approved"
	cancelledMessage = "Reservation cancelled successfully"
)

// ErrUnknownView is returned for a view identifier outside IDs.
var ErrUnknownView = errors.New("unknown view")

// IDs returns every view identifier in tab order.
func IDs() []string {
	return []string{Catalog, MyBooks, Borrowed, Returned, Reservations}
}

// Options configures the sections.
type Options struct {
	Service         Service
	PageSize        int
	MyBooksPageSize int
	FetchAllSize    int
	Provider        search.Provider
	Presenter       alert.Presenter
	Logger          logging.Logger
}

func (o Options) withDefaults() Options {
	if o.Service == nil {
		panic("library: Service is required")
	}
	if o.Presenter == nil {
		o.Presenter = alert.Discard()
	}
	if o.Logger == nil {
		o.Logger = logging.GetGlobal()
	}
	if o.MyBooksPageSize <= 0 {
		o.MyBooksPageSize = 3
	}
	return o
}

// New builds all five sections in tab order.
func New(opts Options) []Section {
	out := make([]Section, 0, len(IDs()))
	for _, id := range IDs() {
		s, _ := NewSection(id, opts)
		out = append(out, s)
	}
	return out
}

// NewSection builds the section with id.
func NewSection(id string, opts Options) (Section, error) {
	opts = opts.withDefaults()
	switch id {
	case Catalog:
		return newCatalog(opts), nil
	case MyBooks:
		return newMyBooks(opts), nil
	case Borrowed:
		return newBorrowed(opts), nil
	case Returned:
		return newReturned(opts), nil
	case Reservations:
		return newReservations(opts), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownView, id)
}

// Find returns the section with id.
func Find(sections []Section, id string) (Section, bool) {
	for _, s := range sections {
		if s.ID() == id {
			return s, true
		}
	}
	return nil, false
}

func bookID(b domain.Book) int             { return b.ID }
func borrowedID(b domain.BorrowedBook) int { return b.ID }

func titleSynopsis(b domain.Book) []string       { return []string{b.Title, b.Synopsis} }
func titleAuthor(b domain.BorrowedBook) []string { return []string{b.Title, b.AuthorName} }

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func rate(r float64) string { return strconv.FormatFloat(r, 'f', 1, 64) }

func listConfig[T any](o Options, name, noun string, size int, fetch paged.FetchFunc[T], fields func(T) []string, id func(T) int) paged.Config[T] {
	return paged.Config[T]{
		Name:         name,
		Noun:         noun,
		PageSize:     size,
		FetchAllSize: o.FetchAllSize,
		Fetch:        fetch,
		Fields:       fields,
		ID:           id,
		Provider:     o.Provider,
		Presenter:    o.Presenter,
		Logger:       o.Logger,
	}
}

// byID adapts a mutation taking an item id to an action body.
func byID[T any](id func(T) int, fn func(context.Context, int) (int, error)) func(context.Context, T) error {
	return func(ctx context.Context, item T) error {
		_, err := fn(ctx, id(item))
		return err
	}
}

func newCatalog(o Options) *section[domain.Book] {
	return &section[domain.Book]{
		List:    paged.New(listConfig[domain.Book](o, Catalog, "books", o.PageSize, o.Service.FindAllBooks, titleSynopsis, bookID)),
		id:      Catalog,
		title:   "Catalog",
		columns: []string{"ID", "Title", "Author", "Owner", "Rate"},
		row: func(b domain.Book) []string {
			return []string{strconv.Itoa(b.ID), b.Title, b.AuthorName, b.Owner, rate(b.Rate)}
		},
		rowID: bookID,
		actions: []paged.Action[domain.Book]{
			{
				Key:     ActionBorrow,
				Label:   "Borrow",
				Policy:  paged.Reload,
				Success: borrowedMessage,
				Do:      byID(bookID, o.Service.BorrowBook),
			},
			{
				Key:     ActionReserve,
				Label:   "Reserve",
				Policy:  paged.Reload,
				Success: reservedMessage,
				Do:      byID(bookID, o.Service.ReserveBook),
			},
		},
		keys: map[string]string{ActionBorrow: "b", ActionReserve: "s"},
	}
}

// My books toggles flags in place: archiving or sharing does not change
// which books the owner has, so pagination is unaffected.
func newMyBooks(o Options) *section[domain.Book] {
	return &section[domain.Book]{
		List:    paged.New(listConfig[domain.Book](o, MyBooks, "books", o.MyBooksPageSize, o.Service.FindAllBooksByOwner, titleSynopsis, bookID)),
		id:      MyBooks,
		title:   "My books",
		columns: []string{"ID", "Title", "Author", "Shareable", "Archived"},
		row: func(b domain.Book) []string {
			return []string{strconv.Itoa(b.ID), b.Title, b.AuthorName, yesNo(b.Shareable), yesNo(b.Archived)}
		},
		rowID: bookID,
		actions: []paged.Action[domain.Book]{
			{
				Key:    ActionArchive,
				Label:  "Archive",
				Policy: paged.Patch,
				Do:     byID(bookID, o.Service.UpdateArchivedStatus),
				Patch: func(b domain.Book) domain.Book {
					b.Archived = !b.Archived
					return b
				},
			},
			{
				Key:    ActionShare,
				Label:  "Share",
				Policy: paged.Patch,
				Do:     byID(bookID, o.Service.UpdateShareableStatus),
				Patch: func(b domain.Book) domain.Book {
					b.Shareable = !b.Shareable
					return b
				},
			},
		},
		keys: map[string]string{ActionArchive: "a", ActionShare: "s"},
	}
}

func borrowedColumns() []string {
	return []string{"ID", "Title", "Author", "Rate", "Returned", "Approved"}
}

func borrowedRow(b domain.BorrowedBook) []string {
	return []string{strconv.Itoa(b.ID), b.Title, b.AuthorName, rate(b.Rate), yesNo(b.Returned), yesNo(b.ReturnApproved)}
}

func newReturned(o Options) *section[domain.BorrowedBook] {
	return &section[domain.BorrowedBook]{
		List:    paged.New(listConfig[domain.BorrowedBook](o, Returned, "returned books", o.PageSize, o.Service.FindAllReturnedBooks, titleAuthor, borrowedID)),
		id:      Returned,
		title:   "Returned",
		columns: borrowedColumns(),
		row:     borrowedRow,
		rowID:   borrowedID,
		actions: []paged.Action[domain.BorrowedBook]{{
			Key:     ActionApprove,
			Label:   "Approve return",
			Guard:   func(b domain.BorrowedBook) bool { return b.Returned },
			Policy:  paged.Reload,
			Success: approvedMessage,
			Do:      byID(borrowedID, o.Service.ApproveReturnBorrowedBook),
		}},
		keys: map[string]string{ActionApprove: "a"},
	}
}

func newReservations(o Options) *section[domain.Book] {
	return &section[domain.Book]{
		List:    paged.New(listConfig[domain.Book](o, Reservations, "reserved books", o.PageSize, o.Service.FindAllReservedBooks, titleSynopsis, bookID)),
		id:      Reservations,
		title:   "Reservations",
		columns: []string{"ID", "Title", "Author", "Owner"},
		row: func(b domain.Book) []string {
			return []string{strconv.Itoa(b.ID), b.Title, b.AuthorName, b.Owner}
		},
		rowID: bookID,
		actions: []paged.Action[domain.Book]{{
			Key:     ActionCancel,
			Label:   "Cancel reservation",
			Policy:  paged.Reload,
			Success: cancelledMessage,
			Do: func(ctx context.Context, b domain.Book) error {
				return o.Service.CancelReservation(ctx, b.ID)
			},
		}},
		keys: map[string]string{ActionCancel: "x"},
	}
}
