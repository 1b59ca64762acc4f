package library

import (
	"context"

	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockService struct {
	mock.Mock
}

var _ Service = (*mockService)(nil)

func (m *mockService) FindAllBooks(ctx context.Context, page, size int) (domain.Page[domain.Book], error) {
	args := m.Called(ctx, page, size)
	return args.Get(0).(domain.Page[domain.Book]), args.Error(1)
}

func (m *mockService) FindAllBooksByOwner(ctx context.Context, page, size int) (domain.Page[domain.Book], error) {
	args := m.Called(ctx, page, size)
	return args.Get(0).(domain.Page[domain.Book]), args.Error(1)
}

func (m *mockService) FindAllBorrowedBooks(ctx context.Context, page, size int) (domain.Page[domain.BorrowedBook], error) {
	args := m.Called(ctx, page, size)
	return args.Get(0).(domain.Page[domain.BorrowedBook]), args.Error(1)
}

func (m *mockService) FindAllReturnedBooks(ctx context.Context, page, size int) (domain.Page[domain.BorrowedBook], error) {
	args := m.Called(ctx, page, size)
	return args.Get(0).(domain.Page[domain.BorrowedBook]), args.Error(1)
}

func (m *mockService) FindAllReservedBooks(ctx context.Context, page, size int) (domain.Page[domain.Book], error) {
	args := m.Called(ctx, page, size)
	return args.Get(0).(domain.Page[domain.Book]), args.Error(1)
}

func (m *mockService) BorrowBook(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *mockService) ReserveBook(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *mockService) CancelReservation(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockService) ReturnBorrowedBook(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *mockService) ApproveReturnBorrowedBook(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *mockService) UpdateShareableStatus(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *mockService) UpdateArchivedStatus(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *mockService) SaveFeedback(ctx context.Context, req domain.FeedbackRequest) (int, error) {
	args := m.Called(ctx, req)
	return args.Int(0), args.Error(1)
}

func bookPage(items ...domain.Book) domain.Page[domain.Book] {
	return domain.Page[domain.Book]{Content: items, TotalElements: len(items), TotalPages: 1}
}

func borrowedPage(items ...domain.BorrowedBook) domain.Page[domain.BorrowedBook] {
	return domain.Page[domain.BorrowedBook]{Content: items, TotalElements: len(items), TotalPages: 1}
}
