package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cristianoliveira/booknet/internal/domain"
)

// FindAllBooks pages through shareable books owned by other users.
func (c *Client) FindAllBooks(ctx context.Context, page, size int) (domain.Page[domain.Book], error) {
	var out domain.Page[domain.Book]
	err := c.do(ctx, http.MethodGet, "books", pageQuery(page, size), nil, &out)
	return out, err
}

// FindAllBooksByOwner pages through the current user's own books.
func (c *Client) FindAllBooksByOwner(ctx context.Context, page, size int) (domain.Page[domain.Book], error) {
	var out domain.Page[domain.Book]
	err := c.do(ctx, http.MethodGet, "books/owner", pageQuery(page, size), nil, &out)
	return out, err
}

// FindAllBorrowedBooks pages through books the user currently borrows.
func (c *Client) FindAllBorrowedBooks(ctx context.Context, page, size int) (domain.Page[domain.BorrowedBook], error) {
	var out domain.Page[domain.BorrowedBook]
	err := c.do(ctx, http.MethodGet, "books/borrowed", pageQuery(page, size), nil, &out)
	return out, err
}

// FindAllReturnedBooks pages through the user's books that borrowers returned.
func (c *Client) FindAllReturnedBooks(ctx context.Context, page, size int) (domain.Page[domain.BorrowedBook], error) {
	var out domain.Page[domain.BorrowedBook]
	err := c.do(ctx, http.MethodGet, "books/returned", pageQuery(page, size), nil, &out)
	return out, err
}

// FindAllReservedBooks pages through the user's reservations.
func (c *Client) FindAllReservedBooks(ctx context.Context, page, size int) (domain.Page[domain.Book], error) {
	var out domain.Page[domain.Book]
	err := c.do(ctx, http.MethodGet, "books/reservations", pageQuery(page, size), nil, &out)
	return out, err
}

// FindBookByID fetches a single book.
func (c *Client) FindBookByID(ctx context.Context, id int) (domain.Book, error) {
	var out domain.Book
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("books/%d", id), nil, nil, &out)
	return out, err
}

// BorrowBook borrows a book and returns the borrow record id.
func (c *Client) BorrowBook(ctx context.Context, id int) (int, error) {
	return c.mutate(ctx, http.MethodPost, fmt.Sprintf("books/borrow/%d", id))
}

// ReturnBorrowedBook hands a borrowed book back.
func (c *Client) ReturnBorrowedBook(ctx context.Context, id int) (int, error) {
	return c.mutate(ctx, http.MethodPatch, fmt.Sprintf("books/borrow/return/%d", id))
}

// ApproveReturnBorrowedBook confirms a borrower's return as the owner.
func (c *Client) ApproveReturnBorrowedBook(ctx context.Context, id int) (int, error) {
	return c.mutate(ctx, http.MethodPatch, fmt.Sprintf("books/borrow/return/approve/%d", id))
}

// UpdateShareableStatus toggles whether an owned book is listed for others.
func (c *Client) UpdateShareableStatus(ctx context.Context, id int) (int, error) {
	return c.mutate(ctx, http.MethodPatch, fmt.Sprintf("books/shareable/%d", id))
}

// UpdateArchivedStatus toggles whether an owned book is archived.
func (c *Client) UpdateArchivedStatus(ctx context.Context, id int) (int, error) {
	return c.mutate(ctx, http.MethodPatch, fmt.Sprintf("books/archived/%d", id))
}

// ReserveBook queues the user for a book that is currently borrowed.
func (c *Client) ReserveBook(ctx context.Context, id int) (int, error) {
	return c.mutate(ctx, http.MethodPost, fmt.Sprintf("books/reservations/%d", id))
}

// CancelReservation withdraws a reservation.
func (c *Client) CancelReservation(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("books/reservations/%d", id), nil, nil, nil)
}

// mutate performs a body-less state change returning an entity id.
func (c *Client) mutate(ctx context.Context, method, path string) (int, error) {
	var id int
	err := c.do(ctx, method, path, nil, nil, &id)
	return id, err
}
