package paged

import (
	"context"
	"errors"

	"github.com/cristianoliveira/booknet/internal/alert"
)

// Policy says how a successful action is reflected locally.
type Policy int

const (
	// Reload refetches the working set and the current page. Used by actions
	// that change which items belong to the collection, since those shift
	// page boundaries and counts.
	Reload Policy = iota
	// Patch applies Action.Patch to the matching item in place, with no
	// request beyond the mutation itself.
	Patch
)

// Action is a mutation offered on the items of a list.
type Action[T any] struct {
	Key   string
	Label string
	// Guard, when set, must accept the item or the action is skipped
	// without any request.
	Guard  func(T) bool
	Do     func(ctx context.Context, item T) error
	Policy Policy
	// Patch returns the item as it looks after the action. Required for the
	// Patch policy.
	Patch func(T) T
	// Success, when set, is shown after the action and its follow-up.
	Success string
}

// Allowed reports whether the action applies to item.
func (a Action[T]) Allowed(item T) bool {
	return a.Guard == nil || a.Guard(item)
}

// Apply runs action on item. A rejected guard returns false with no request.
// On failure every server message is alerted and local state is untouched.
func (l *List[T]) Apply(ctx context.Context, action Action[T], item T) (bool, error) {
	if !l.Active() {
		return false, ErrNotActive
	}
	if !action.Allowed(item) {
		l.logger.Debug("action not allowed", "action", action.Key, "id", l.cfg.ID(item))
		return false, nil
	}
	if err := action.Do(ctx, item); err != nil {
		l.logger.Warn("action failed", "action", action.Key, "id", l.cfg.ID(item), "error", err)
		if !errors.Is(err, context.Canceled) {
			l.fail(action.Label, err)
		}
		return true, err
	}
	l.logger.Info("action applied", "action", action.Key, "id", l.cfg.ID(item))

	switch action.Policy {
	case Patch:
		l.patch(l.cfg.ID(item), action.Patch)
	default:
		if err := l.Reload(ctx); err != nil {
			return true, err
		}
	}
	if action.Success != "" {
		l.cfg.Presenter.Show(alert.Success, action.Label, action.Success)
	}
	return true, nil
}

// patch rewrites every copy of the item with id in the working set and the
// page slice, then re-derives the render set. Counts and the page index do
// not change.
func (l *List[T]) patch(id int, fn func(T) T) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	for i := range l.working {
		if l.cfg.ID(l.working[i]) == id {
			l.working[i] = fn(l.working[i])
		}
	}
	for i := range l.slice.Content {
		if l.cfg.ID(l.slice.Content[i]) == id {
			l.slice.Content[i] = fn(l.slice.Content[i])
		}
	}
	l.rederive()
	l.mu.Unlock()
	l.changed()
}
