package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/colors"
	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/cristianoliveira/booknet/internal/library"
	"github.com/cristianoliveira/booknet/internal/logging"
	"github.com/cristianoliveira/booknet/internal/settings"
)

// fakeClient backs every command. The embedded Service is nil: only the
// methods below may be reached.
type fakeClient struct {
	library.Service

	notifications []domain.Notification
	marked        []int
	allRead       bool
	settings      *settings.Settings
	resets        int
	books         []domain.Book
	borrowed      []int
	returned      []int
	feedback      []domain.FeedbackRequest
	borrowErr     error
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		settings: settings.DefaultSettings(),
		books: []domain.Book{
			{ID: 1, Title: "Dune", AuthorName: "Frank Herbert"},
			{ID: 2, Title: "Foundation", AuthorName: "Isaac Asimov"},
		},
	}
}

func (f *fakeClient) GetUserNotifications(context.Context) ([]domain.Notification, error) {
	return f.notifications, nil
}

func (f *fakeClient) MarkNotificationAsRead(_ context.Context, id int) (domain.Notification, error) {
	f.marked = append(f.marked, id)
	return domain.Notification{ID: domain.IntPtr(id), Read: true}, nil
}

func (f *fakeClient) MarkAllNotificationsAsRead(context.Context) error {
	f.allRead = true
	return nil
}

func (f *fakeClient) LoadSettings() (*settings.Settings, error) { return f.settings, nil }

func (f *fakeClient) ResetSettings() (*settings.Settings, error) {
	f.resets++
	f.settings = settings.DefaultSettings()
	return f.settings, nil
}

func (f *fakeClient) LibraryOptions(presenter alert.Presenter) library.Options {
	return library.Options{Service: f, PageSize: 6, FetchAllSize: 100, Presenter: presenter, Logger: logging.Discard()}
}

func (f *fakeClient) FindBookByID(_ context.Context, id int) (domain.Book, error) {
	for _, b := range f.books {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Book{}, &testNotFound{}
}

func (f *fakeClient) FindAllBooks(_ context.Context, page, size int) (domain.Page[domain.Book], error) {
	return domain.Page[domain.Book]{Content: f.books, Number: page, Size: size, TotalElements: len(f.books), TotalPages: 1, First: true, Last: true}, nil
}

func (f *fakeClient) BorrowBook(_ context.Context, id int) (int, error) {
	if f.borrowErr != nil {
		return 0, f.borrowErr
	}
	f.borrowed = append(f.borrowed, id)
	return id, nil
}

func (f *fakeClient) ReturnBorrowedBook(_ context.Context, id int) (int, error) {
	f.returned = append(f.returned, id)
	return id, nil
}

func (f *fakeClient) SaveFeedback(_ context.Context, req domain.FeedbackRequest) (int, error) {
	f.feedback = append(f.feedback, req)
	return 1, nil
}

func (f *fakeClient) Version() string { return "1.2.3" }

type testNotFound struct{}

func (*testNotFound) Error() string { return "book not found" }

// captureConsole redirects colored console output for the test.
func captureConsole(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	t.Cleanup(colors.SetOutput(&out, &errOut))
	return &out, &errOut
}
