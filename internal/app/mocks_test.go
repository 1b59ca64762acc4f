package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/cristianoliveira/booknet/internal/colors"
	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) GetUserNotifications(ctx context.Context) ([]domain.Notification, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]domain.Notification)
	return list, args.Error(1)
}

func (m *mockClient) MarkNotificationAsRead(ctx context.Context, id int) (domain.Notification, error) {
	args := m.Called(ctx, id)
	return domain.Notification{ID: &id, Read: true}, args.Error(0)
}

func (m *mockClient) MarkAllNotificationsAsRead(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockClient) FindBookByID(ctx context.Context, id int) (domain.Book, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Book), args.Error(1)
}

func (m *mockClient) FindAllBooks(ctx context.Context, page, size int) (domain.Page[domain.Book], error) {
	args := m.Called(ctx, page, size)
	return args.Get(0).(domain.Page[domain.Book]), args.Error(1)
}

func (m *mockClient) FindAllBooksByOwner(ctx context.Context, page, size int) (domain.Page[domain.Book], error) {
	args := m.Called(ctx, page, size)
	return args.Get(0).(domain.Page[domain.Book]), args.Error(1)
}

func (m *mockClient) FindAllBorrowedBooks(ctx context.Context, page, size int) (domain.Page[domain.BorrowedBook], error) {
	args := m.Called(ctx, page, size)
	return args.Get(0).(domain.Page[domain.BorrowedBook]), args.Error(1)
}

func (m *mockClient) FindAllReturnedBooks(ctx context.Context, page, size int) (domain.Page[domain.BorrowedBook], error) {
	args := m.Called(ctx, page, size)
	return args.Get(0).(domain.Page[domain.BorrowedBook]), args.Error(1)
}

func (m *mockClient) FindAllReservedBooks(ctx context.Context, page, size int) (domain.Page[domain.Book], error) {
	args := m.Called(ctx, page, size)
	return args.Get(0).(domain.Page[domain.Book]), args.Error(1)
}

func (m *mockClient) BorrowBook(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *mockClient) ReserveBook(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *mockClient) CancelReservation(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockClient) ReturnBorrowedBook(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *mockClient) ApproveReturnBorrowedBook(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *mockClient) UpdateShareableStatus(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *mockClient) UpdateArchivedStatus(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *mockClient) SaveFeedback(ctx context.Context, req domain.FeedbackRequest) (int, error) {
	args := m.Called(ctx, req)
	return args.Int(0), args.Error(1)
}

// captureConsole redirects colors output for the duration of the test.
func captureConsole(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	restore := colors.SetOutput(&out, &errOut)
	t.Cleanup(restore)
	return &out, &errOut
}

func note(id int, status domain.NotificationStatus, read bool, msg string) domain.Notification {
	return domain.Notification{ID: domain.IntPtr(id), Status: status, Read: read, Message: msg}
}
