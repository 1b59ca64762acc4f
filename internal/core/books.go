package core

import (
	"context"

	"github.com/cristianoliveira/booknet/internal/domain"
)

// FindBookByID returns the details of one book.
func (c *Core) FindBookByID(ctx context.Context, id int) (domain.Book, error) {
	client, err := c.api()
	if err != nil {
		return domain.Book{}, err
	}
	return client.FindBookByID(ctx, id)
}

func (c *Core) FindAllBooks(ctx context.Context, page, size int) (domain.Page[domain.Book], error) {
	client, err := c.api()
	if err != nil {
		return domain.Page[domain.Book]{}, err
	}
	return client.FindAllBooks(ctx, page, size)
}

func (c *Core) FindAllBooksByOwner(ctx context.Context, page, size int) (domain.Page[domain.Book], error) {
	client, err := c.api()
	if err != nil {
		return domain.Page[domain.Book]{}, err
	}
	return client.FindAllBooksByOwner(ctx, page, size)
}

func (c *Core) FindAllBorrowedBooks(ctx context.Context, page, size int) (domain.Page[domain.BorrowedBook], error) {
	client, err := c.api()
	if err != nil {
		return domain.Page[domain.BorrowedBook]{}, err
	}
	return client.FindAllBorrowedBooks(ctx, page, size)
}

func (c *Core) FindAllReturnedBooks(ctx context.Context, page, size int) (domain.Page[domain.BorrowedBook], error) {
	client, err := c.api()
	if err != nil {
		return domain.Page[domain.BorrowedBook]{}, err
	}
	return client.FindAllReturnedBooks(ctx, page, size)
}

func (c *Core) FindAllReservedBooks(ctx context.Context, page, size int) (domain.Page[domain.Book], error) {
	client, err := c.api()
	if err != nil {
		return domain.Page[domain.Book]{}, err
	}
	return client.FindAllReservedBooks(ctx, page, size)
}

// mutate runs a mutation returning the affected id.
func (c *Core) mutate(ctx context.Context, id int, fn func(context.Context, int) (int, error)) (int, error) {
	if _, err := c.api(); err != nil {
		return 0, err
	}
	return fn(ctx, id)
}

func (c *Core) BorrowBook(ctx context.Context, id int) (int, error) {
	return c.mutate(ctx, id, func(ctx context.Context, id int) (int, error) { return c.client.BorrowBook(ctx, id) })
}

func (c *Core) ReserveBook(ctx context.Context, id int) (int, error) {
	return c.mutate(ctx, id, func(ctx context.Context, id int) (int, error) { return c.client.ReserveBook(ctx, id) })
}

func (c *Core) CancelReservation(ctx context.Context, id int) error {
	client, err := c.api()
	if err != nil {
		return err
	}
	return client.CancelReservation(ctx, id)
}

func (c *Core) ReturnBorrowedBook(ctx context.Context, id int) (int, error) {
	return c.mutate(ctx, id, func(ctx context.Context, id int) (int, error) { return c.client.ReturnBorrowedBook(ctx, id) })
}

func (c *Core) ApproveReturnBorrowedBook(ctx context.Context, id int) (int, error) {
	return c.mutate(ctx, id, func(ctx context.Context, id int) (int, error) { return c.client.ApproveReturnBorrowedBook(ctx, id) })
}

func (c *Core) UpdateShareableStatus(ctx context.Context, id int) (int, error) {
	return c.mutate(ctx, id, func(ctx context.Context, id int) (int, error) { return c.client.UpdateShareableStatus(ctx, id) })
}

func (c *Core) UpdateArchivedStatus(ctx context.Context, id int) (int, error) {
	return c.mutate(ctx, id, func(ctx context.Context, id int) (int, error) { return c.client.UpdateArchivedStatus(ctx, id) })
}

func (c *Core) SaveFeedback(ctx context.Context, req domain.FeedbackRequest) (int, error) {
	client, err := c.api()
	if err != nil {
		return 0, err
	}
	return client.SaveFeedback(ctx, req)
}
