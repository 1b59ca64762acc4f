package state

import (
	"context"
	"sync"

	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/cristianoliveira/booknet/internal/library"
)

func pageOf[T any](items []T, page, size int) domain.Page[T] {
	total := len(items)
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return domain.Page[T]{
		Content:       append([]T(nil), items[start:end]...),
		Number:        page,
		Size:          size,
		TotalElements: total,
		TotalPages:    pages,
		First:         page == 0,
		Last:          page >= pages-1,
	}
}

type fakeService struct {
	mu       sync.Mutex
	books    []domain.Book
	borrowed []domain.BorrowedBook
	calls    map[string][]int
	feedback []domain.FeedbackRequest
}

var _ library.Service = (*fakeService)(nil)

func newFakeService() *fakeService {
	return &fakeService{
		books: []domain.Book{
			{ID: 1, Title: "Dune", AuthorName: "Frank Herbert", Owner: "ana"},
			{ID: 2, Title: "Foundation", AuthorName: "Isaac Asimov", Owner: "bo"},
			{ID: 3, Title: "Hyperion", AuthorName: "Dan Simmons", Owner: "cy"},
		},
		borrowed: []domain.BorrowedBook{
			{ID: 7, Title: "Solaris", AuthorName: "Stanislaw Lem"},
			{ID: 8, Title: "Ubik", AuthorName: "Philip K. Dick", Returned: true},
		},
		calls: make(map[string][]int),
	}
}

func (f *fakeService) record(op string, v int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op] = append(f.calls[op], v)
}

func (f *fakeService) called(op string) []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.calls[op]...)
}

func (f *fakeService) FindAllBooks(_ context.Context, page, size int) (domain.Page[domain.Book], error) {
	f.record("catalog", page)
	return pageOf(f.books, page, size), nil
}

func (f *fakeService) FindAllBooksByOwner(_ context.Context, page, size int) (domain.Page[domain.Book], error) {
	f.record("my-books", page)
	return pageOf(f.books, page, size), nil
}

func (f *fakeService) FindAllBorrowedBooks(_ context.Context, page, size int) (domain.Page[domain.BorrowedBook], error) {
	f.record("borrowed", page)
	return pageOf(f.borrowed, page, size), nil
}

func (f *fakeService) FindAllReturnedBooks(_ context.Context, page, size int) (domain.Page[domain.BorrowedBook], error) {
	f.record("returned", page)
	return pageOf(f.borrowed, page, size), nil
}

func (f *fakeService) FindAllReservedBooks(_ context.Context, page, size int) (domain.Page[domain.Book], error) {
	f.record("reservations", page)
	return pageOf(f.books, page, size), nil
}

func (f *fakeService) BorrowBook(_ context.Context, id int) (int, error) {
	f.record("borrow", id)
	return id, nil
}

func (f *fakeService) ReserveBook(_ context.Context, id int) (int, error) {
	f.record("reserve", id)
	return id, nil
}

func (f *fakeService) CancelReservation(_ context.Context, id int) error {
	f.record("cancel", id)
	return nil
}

func (f *fakeService) ReturnBorrowedBook(_ context.Context, id int) (int, error) {
	f.record("return", id)
	return id, nil
}

func (f *fakeService) ApproveReturnBorrowedBook(_ context.Context, id int) (int, error) {
	f.record("approve", id)
	return id, nil
}

func (f *fakeService) UpdateShareableStatus(_ context.Context, id int) (int, error) {
	f.record("share", id)
	return id, nil
}

func (f *fakeService) UpdateArchivedStatus(_ context.Context, id int) (int, error) {
	f.record("archive", id)
	return id, nil
}

func (f *fakeService) SaveFeedback(_ context.Context, req domain.FeedbackRequest) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feedback = append(f.feedback, req)
	return 1, nil
}

type fakeDirectory struct {
	mu     sync.Mutex
	list   []domain.Notification
	marked []int
	all    int
}

func (d *fakeDirectory) GetUserNotifications(context.Context) ([]domain.Notification, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.Notification(nil), d.list...), nil
}

func (d *fakeDirectory) MarkNotificationAsRead(_ context.Context, id int) (domain.Notification, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.marked = append(d.marked, id)
	return domain.Notification{ID: &id, Read: true}, nil
}

func (d *fakeDirectory) MarkAllNotificationsAsRead(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.all++
	return nil
}
