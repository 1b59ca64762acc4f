package library

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/api"
	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/cristianoliveira/booknet/internal/logging"
	"github.com/cristianoliveira/booknet/internal/paged"
)

const (
	// ActionReturn is the key of the borrowed view's return action.
	ActionReturn = "return"

	returnedMessage = "Book has been returned and the owner is notified"
)

// FeedbackSection is a section whose items can be returned with feedback.
type FeedbackSection interface {
	Section
	// ReturnWithFeedback returns the book at index and attaches a feedback.
	ReturnWithFeedback(ctx context.Context, index int, note float64, comment string) (bool, error)
}

// Feedback is the optional review attached to a return.
type Feedback struct {
	Note    float64
	Comment string
}

type borrowedSection struct {
	*section[domain.BorrowedBook]
	opts Options
}

var _ FeedbackSection = (*borrowedSection)(nil)

func newBorrowed(o Options) *borrowedSection {
	s := &borrowedSection{opts: o}
	s.section = &section[domain.BorrowedBook]{
		List:    paged.New(listConfig[domain.BorrowedBook](o, Borrowed, "borrowed books", o.PageSize, o.Service.FindAllBorrowedBooks, titleAuthor, borrowedID)),
		id:      Borrowed,
		title:   "Borrowed",
		columns: borrowedColumns(),
		row:     borrowedRow,
		rowID:   borrowedID,
		actions: []paged.Action[domain.BorrowedBook]{s.returnAction(nil)},
		keys:    map[string]string{ActionReturn: "t"},
	}
	return s
}

func (s *borrowedSection) returnAction(fb *Feedback) paged.Action[domain.BorrowedBook] {
	return paged.Action[domain.BorrowedBook]{
		Key:     ActionReturn,
		Label:   "Return",
		Guard:   func(b domain.BorrowedBook) bool { return !b.Returned },
		Policy:  paged.Reload,
		Success: returnedMessage,
		Do: func(ctx context.Context, b domain.BorrowedBook) error {
			return returnBook(ctx, s.opts.Service, s.opts.Presenter, s.opts.Logger, b.ID, fb)
		},
	}
}

func (s *borrowedSection) ReturnWithFeedback(ctx context.Context, index int, note float64, comment string) (bool, error) {
	item, ok := s.Item(index)
	if !ok {
		return false, fmt.Errorf("%s: %w %d", s.id, ErrNoSelection, index)
	}
	fb := &Feedback{Note: note, Comment: comment}
	if err := api.ValidateFeedback(fb.request(item.ID)); err != nil {
		for _, msg := range api.Messages(err) {
			s.opts.Presenter.Show(alert.Error, "Feedback", msg)
		}
		return false, err
	}
	return s.Apply(ctx, s.returnAction(fb), item)
}

func (f *Feedback) request(bookID int) domain.FeedbackRequest {
	return domain.FeedbackRequest{BookID: bookID, Note: f.Note, Comment: f.Comment}
}

// ReturnBook returns the book with id and, when fb is set, submits the
// feedback afterwards. The feedback is validated before any request. A
// feedback failure is reported through presenter but does not undo the
// return, so it is not returned as an error.
func ReturnBook(ctx context.Context, svc Service, presenter alert.Presenter, id int, fb *Feedback) error {
	if presenter == nil {
		presenter = alert.Discard()
	}
	if fb != nil {
		if err := api.ValidateFeedback(fb.request(id)); err != nil {
			return err
		}
	}
	return returnBook(ctx, svc, presenter, logging.GetGlobal(), id, fb)
}

func returnBook(ctx context.Context, svc Service, presenter alert.Presenter, logger logging.Logger, id int, fb *Feedback) error {
	if _, err := svc.ReturnBorrowedBook(ctx, id); err != nil {
		return err
	}
	if fb == nil {
		return nil
	}
	if _, err := svc.SaveFeedback(ctx, fb.request(id)); err != nil {
		logger.Warn("feedback not saved", "book", id, "error", err)
		for _, msg := range api.Messages(err) {
			presenter.Show(alert.Warning, "Feedback not saved", msg)
		}
		return nil
	}
	logger.Info("feedback saved", "book", id, "note", fb.Note)
	return nil
}
