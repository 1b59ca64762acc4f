package library

import (
	"context"
	"fmt"
	"sort"

	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/api"
)

// Action keys accepted by Act.
const (
	ActionBorrow  = "borrow"
	ActionReserve = "reserve"
	ActionCancel  = "cancel"
	ActionApprove = "approve"
	ActionArchive = "archive"
	ActionShare   = "share"
)

type directAction struct {
	label   string
	do      func(ctx context.Context, svc Service, id int) error
	success string
}

func ignoreID(fn func(context.Context, int) (int, error)) func(context.Context, int) error {
	return func(ctx context.Context, id int) error {
		_, err := fn(ctx, id)
		return err
	}
}

var directActions = map[string]directAction{
	ActionBorrow: {
		label:   "Borrow",
		do:      func(ctx context.Context, svc Service, id int) error { return ignoreID(svc.BorrowBook)(ctx, id) },
		success: borrowedMessage,
	},
	ActionReserve: {
		label:   "Reserve",
		do:      func(ctx context.Context, svc Service, id int) error { return ignoreID(svc.ReserveBook)(ctx, id) },
		success: reservedMessage,
	},
	ActionCancel: {
		label:   "Cancel reservation",
		do:      func(ctx context.Context, svc Service, id int) error { return svc.CancelReservation(ctx, id) },
		success: cancelledMessage,
	},
	ActionApprove: {
		label:   "Approve return",
		do:      func(ctx context.Context, svc Service, id int) error { return ignoreID(svc.ApproveReturnBorrowedBook)(ctx, id) },
		success: approvedMessage,
	},
	ActionArchive: {
		label:   "Archive",
		do:      func(ctx context.Context, svc Service, id int) error { return ignoreID(svc.UpdateArchivedStatus)(ctx, id) },
		success: "Archived status updated",
	},
	ActionShare: {
		label:   "Share",
		do:      func(ctx context.Context, svc Service, id int) error { return ignoreID(svc.UpdateShareableStatus)(ctx, id) },
		success: "Shareable status updated",
	},
}

// ActionKeys lists the keys Act accepts, return included.
func ActionKeys() []string {
	keys := make([]string, 0, len(directActions)+1)
	for k := range directActions {
		keys = append(keys, k)
	}
	keys = append(keys, ActionReturn)
	sort.Strings(keys)
	return keys
}

// Act runs the action with key against the book with id, outside any list.
// The outcome is shown through presenter with the same messages the views
// use. Returning a book goes through ReturnBook with fb.
func Act(ctx context.Context, svc Service, presenter alert.Presenter, key string, id int, fb *Feedback) error {
	if presenter == nil {
		presenter = alert.Discard()
	}
	a, ok := directActions[key]
	if key == ActionReturn {
		a, ok = directAction{label: "Return", success: returnedMessage}, true
		a.do = func(ctx context.Context, svc Service, id int) error {
			return ReturnBook(ctx, svc, presenter, id, fb)
		}
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, key)
	}
	if err := a.do(ctx, svc, id); err != nil {
		for _, msg := range api.Messages(err) {
			presenter.Show(alert.Error, a.label, msg)
		}
		return err
	}
	presenter.Show(alert.Success, a.label, a.success)
	return nil
}
