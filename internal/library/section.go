package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianoliveira/booknet/internal/paged"
	"github.com/cristianoliveira/booknet/internal/query"
)

var (
	// ErrUnknownAction is returned by Perform for a key the section does not offer.
	ErrUnknownAction = errors.New("unknown action")
	// ErrNoSelection is returned by Perform when index is outside the rendered rows.
	ErrNoSelection = errors.New("no item at index")
)

// ActionInfo describes an action offered by a section.
type ActionInfo struct {
	Key      string
	Shortcut string
	Label    string
}

// Row is one rendered item.
type Row struct {
	ID    int
	Cells []string
}

// View is the rendered state of a section.
type View struct {
	Mode          paged.Mode
	Query         string
	Columns       []string
	Rows          []Row
	Page          int
	TotalPages    int
	TotalElements int
	IsLastPage    bool
	HasPrevious   bool
	HasNext       bool
	Message       string
	Loading       bool
	CorpusSize    int
	CorpusPartial bool
}

// Section is one book view. Only one section is expected to be active at a
// time; callers Activate on mount and Deactivate on unmount.
type Section interface {
	ID() string
	Title() string
	Activate(ctx context.Context) error
	Deactivate()
	Active() bool
	Reload(ctx context.Context) error

	GoTo(ctx context.Context, page int) error
	First(ctx context.Context) error
	Previous(ctx context.Context) error
	Next(ctx context.Context) error
	Last(ctx context.Context) error

	SetQuery(text string)
	Bind(b *query.Broadcaster) (unbind func())
	OnChange(fn func()) (cancel func())

	View() View
	Actions() []ActionInfo
	// Available lists the actions whose guard accepts the row at index.
	Available(index int) []ActionInfo
	// Perform runs the action with key on the row at index. It reports
	// whether a request was sent.
	Perform(ctx context.Context, key string, index int) (bool, error)
}

type section[T any] struct {
	*paged.List[T]
	id      string
	title   string
	columns []string
	row     func(T) []string
	rowID   func(T) int
	actions []paged.Action[T]
	keys    map[string]string
}

func (s *section[T]) ID() string    { return s.id }
func (s *section[T]) Title() string { return s.title }

func (s *section[T]) View() View {
	snap := s.Snapshot()
	rows := make([]Row, len(snap.Items))
	for i, item := range snap.Items {
		rows[i] = Row{ID: s.rowID(item), Cells: s.row(item)}
	}
	return View{
		Mode:          snap.Mode,
		Query:         snap.Query,
		Columns:       s.columns,
		Rows:          rows,
		Page:          snap.Page,
		TotalPages:    snap.TotalPages,
		TotalElements: snap.TotalElements,
		IsLastPage:    snap.IsLastPage,
		HasPrevious:   snap.HasPrevious(),
		HasNext:       snap.HasNext(),
		Message:       snap.Message,
		Loading:       snap.Loading,
		CorpusSize:    snap.CorpusSize,
		CorpusPartial: snap.CorpusPartial,
	}
}

func (s *section[T]) info(a paged.Action[T]) ActionInfo {
	return ActionInfo{Key: a.Key, Shortcut: s.keys[a.Key], Label: a.Label}
}

func (s *section[T]) Actions() []ActionInfo {
	out := make([]ActionInfo, 0, len(s.actions))
	for _, a := range s.actions {
		out = append(out, s.info(a))
	}
	return out
}

func (s *section[T]) Available(index int) []ActionInfo {
	item, ok := s.Item(index)
	if !ok {
		return nil
	}
	var out []ActionInfo
	for _, a := range s.actions {
		if a.Allowed(item) {
			out = append(out, s.info(a))
		}
	}
	return out
}

func (s *section[T]) action(key string) (paged.Action[T], bool) {
	for _, a := range s.actions {
		if a.Key == key {
			return a, true
		}
	}
	return paged.Action[T]{}, false
}

func (s *section[T]) Perform(ctx context.Context, key string, index int) (bool, error) {
	a, ok := s.action(key)
	if !ok {
		return false, fmt.Errorf("%s: %w: %s", s.id, ErrUnknownAction, key)
	}
	item, ok := s.Item(index)
	if !ok {
		return false, fmt.Errorf("%s: %w %d", s.id, ErrNoSelection, index)
	}
	return s.Apply(ctx, a, item)
}
