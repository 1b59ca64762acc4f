// Package library instantiates the paged list for the five book views and
// exposes them through one non-generic Section interface.
package library

import (
	"context"

	"github.com/cristianoliveira/booknet/internal/domain"
)

// Service is the part of the REST client the views need. *api.Client
// implements it.
type Service interface {
	FindAllBooks(ctx context.Context, page, size int) (domain.Page[domain.Book], error)
	FindAllBooksByOwner(ctx context.Context, page, size int) (domain.Page[domain.Book], error)
	FindAllBorrowedBooks(ctx context.Context, page, size int) (domain.Page[domain.BorrowedBook], error)
	FindAllReturnedBooks(ctx context.Context, page, size int) (domain.Page[domain.BorrowedBook], error)
	FindAllReservedBooks(ctx context.Context, page, size int) (domain.Page[domain.Book], error)

	BorrowBook(ctx context.Context, id int) (int, error)
	ReserveBook(ctx context.Context, id int) (int, error)
	CancelReservation(ctx context.Context, id int) error
	ReturnBorrowedBook(ctx context.Context, id int) (int, error)
	ApproveReturnBorrowedBook(ctx context.Context, id int) (int, error)
	UpdateShareableStatus(ctx context.Context, id int) (int, error)
	UpdateArchivedStatus(ctx context.Context, id int) (int, error)
	SaveFeedback(ctx context.Context, req domain.FeedbackRequest) (int, error)
}
