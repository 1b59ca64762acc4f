// Package paged presents a server-paginated collection with instant
// client-side search across the whole collection.
//
// A List holds two datasets: the working set, a best-effort snapshot of
// every item fetched with one oversized page, and the page slice, the page
// currently browsed. The rendered items come from the page slice while the
// query is empty and from the filtered working set otherwise.
package paged

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/api"
	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/cristianoliveira/booknet/internal/logging"
	"github.com/cristianoliveira/booknet/internal/query"
	"github.com/cristianoliveira/booknet/internal/search"
	"golang.org/x/sync/errgroup"
)

// ErrNotActive is returned by operations on a list that is not active.
var ErrNotActive = errors.New("list not active")

const (
	DefaultPageSize     = 6
	DefaultFetchAllSize = 10000
)

// Mode is the list's presentation mode.
type Mode int

const (
	// Paged renders the page slice.
	Paged Mode = iota
	// Searching renders the working set filtered by the query.
	Searching
)

func (m Mode) String() string {
	if m == Searching {
		return "searching"
	}
	return "paged"
}

// FetchFunc loads one page of the collection.
type FetchFunc[T any] func(ctx context.Context, page, size int) (domain.Page[T], error)

// Config describes one collection.
type Config[T any] struct {
	// Name identifies the list in logs.
	Name string
	// Noun is the plural used in messages, e.g. "books".
	Noun         string
	PageSize     int
	FetchAllSize int
	Fetch        FetchFunc[T]
	// Fields returns the searchable text of an item.
	Fields func(T) []string
	// ID returns the identity used to patch items in place.
	ID        func(T) int
	Provider  search.Provider
	Presenter alert.Presenter
	Logger    logging.Logger
}

// List is a search-synchronized paged list. It is safe for concurrent use.
type List[T any] struct {
	cfg    Config[T]
	logger logging.Logger

	mu     sync.Mutex
	active bool

	working         []T
	workingLoaded   bool
	workingFallback bool
	loadingAll      bool
	allSeq          uint64
	allCancel       context.CancelFunc

	slice       domain.Page[T]
	sliceLoaded bool
	page        int
	requested   int
	loadingPage bool
	pageSeq     uint64
	pageCancel  context.CancelFunc

	query  string
	render []T

	listenersMu sync.RWMutex
	listeners   map[int]func()
	nextID      int
}

// New creates an inactive list.
func New[T any](cfg Config[T]) *List[T] {
	if cfg.Fetch == nil || cfg.Fields == nil || cfg.ID == nil {
		panic("paged.New: Fetch, Fields and ID are required")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.FetchAllSize <= 0 {
		cfg.FetchAllSize = DefaultFetchAllSize
	}
	if cfg.Noun == "" {
		cfg.Noun = "items"
	}
	if cfg.Provider == nil {
		cfg.Provider = search.NewSubstringProvider()
	}
	if cfg.Presenter == nil {
		cfg.Presenter = alert.Discard()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.GetGlobal()
	}
	return &List[T]{
		cfg:       cfg,
		logger:    logger.With("list", cfg.Name),
		render:    []T{},
		listeners: make(map[int]func()),
	}
}

// Name returns the configured list name.
func (l *List[T]) Name() string { return l.cfg.Name }

// OnChange registers fn to run after every state change and returns a
// function removing it. fn runs outside the list's lock.
func (l *List[T]) OnChange(fn func()) (cancel func()) {
	l.listenersMu.Lock()
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	l.listenersMu.Unlock()
	return func() {
		l.listenersMu.Lock()
		delete(l.listeners, id)
		l.listenersMu.Unlock()
	}
}

func (l *List[T]) changed() {
	l.listenersMu.RLock()
	fns := make([]func(), 0, len(l.listeners))
	for _, fn := range l.listeners {
		fns = append(fns, fn)
	}
	l.listenersMu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}

// Bind subscribes the list to b. The current query is applied immediately.
// The returned function releases the subscription.
func (l *List[T]) Bind(b *query.Broadcaster) (unbind func()) {
	sub := b.Subscribe(l.SetQuery)
	return sub.Unsubscribe
}

// Activate marks the list active and loads the working set and the first
// page concurrently. Load failures are reported through the presenter; the
// list stays usable with whatever data arrived.
func (l *List[T]) Activate(ctx context.Context) error {
	l.mu.Lock()
	l.active = true
	l.requested = 0
	l.mu.Unlock()
	return l.reload(ctx, 0)
}

// Reload refetches the working set and the current page.
func (l *List[T]) Reload(ctx context.Context) error {
	l.mu.Lock()
	if !l.active {
		l.mu.Unlock()
		return ErrNotActive
	}
	page := l.page
	l.mu.Unlock()
	return l.reload(ctx, page)
}

func (l *List[T]) reload(ctx context.Context, page int) error {
	var g errgroup.Group
	g.Go(func() error {
		l.loadAll(ctx)
		return nil
	})
	g.Go(func() error {
		l.loadPage(ctx, page)
		return nil
	})
	return g.Wait()
}

// Deactivate cancels in-flight requests and discards their responses.
func (l *List[T]) Deactivate() {
	l.mu.Lock()
	l.active = false
	l.allSeq++
	l.pageSeq++
	if l.allCancel != nil {
		l.allCancel()
		l.allCancel = nil
	}
	if l.pageCancel != nil {
		l.pageCancel()
		l.pageCancel = nil
	}
	l.loadingAll, l.loadingPage = false, false
	l.mu.Unlock()
}

// Active reports whether the list is active.
func (l *List[T]) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// loadAll fetches the whole collection as one oversized page.
func (l *List[T]) loadAll(ctx context.Context) {
	l.mu.Lock()
	if l.allCancel != nil {
		l.allCancel()
	}
	l.allSeq++
	seq := l.allSeq
	actx, cancel := context.WithCancel(ctx)
	l.allCancel = cancel
	l.loadingAll = true
	l.mu.Unlock()
	defer cancel()

	res, err := l.cfg.Fetch(actx, 0, l.cfg.FetchAllSize)

	l.mu.Lock()
	if seq != l.allSeq || !l.active {
		l.mu.Unlock()
		return
	}
	l.allCancel = nil
	l.loadingAll = false
	if err != nil {
		// Degrade to searching the loaded page only.
		l.working = cloneItems(l.slice.Items())
		l.workingFallback = true
		l.logger.Warn("fetch-all failed, searching current page only", "error", err)
	} else {
		l.working = cloneItems(res.Items())
		l.workingFallback = false
		l.logger.Debug("working set loaded", "count", len(l.working))
	}
	l.workingLoaded = true
	l.rederive()
	l.mu.Unlock()
	l.changed()
}

// loadPage fetches one page, superseding any page request in flight.
func (l *List[T]) loadPage(ctx context.Context, page int) error {
	l.mu.Lock()
	if l.pageCancel != nil {
		l.pageCancel()
	}
	l.pageSeq++
	seq := l.pageSeq
	pctx, cancel := context.WithCancel(ctx)
	l.pageCancel = cancel
	l.requested = page
	l.loadingPage = true
	l.mu.Unlock()
	defer cancel()
	l.changed()

	res, err := l.cfg.Fetch(pctx, page, l.cfg.PageSize)

	l.mu.Lock()
	if seq != l.pageSeq || !l.active {
		l.mu.Unlock()
		l.logger.Debug("discarding superseded page response", "page", page)
		return nil
	}
	l.pageCancel = nil
	l.loadingPage = false
	if err != nil {
		l.requested = l.page
		l.mu.Unlock()
		if errors.Is(err, context.Canceled) {
			l.changed()
			return err
		}
		l.logger.Warn("page fetch failed", "page", page, "error", err)
		l.fail(fmt.Sprintf("Could not load %s", l.cfg.Noun), err)
		l.changed()
		return err
	}
	l.slice = res
	l.slice.Content = cloneItems(res.Items())
	l.sliceLoaded = true
	l.page = page
	if l.workingFallback {
		l.working = cloneItems(l.slice.Content)
	}
	l.rederive()
	l.mu.Unlock()
	l.changed()
	return nil
}

// fail reports err through the presenter, one alert per message.
func (l *List[T]) fail(title string, err error) {
	for _, msg := range api.Messages(err) {
		l.cfg.Presenter.Show(alert.Error, title, msg)
	}
}

// SetQuery applies a search query. A blank query returns the list to Paged
// mode, rendering the page slice again.
func (l *List[T]) SetQuery(text string) {
	q := query.Normalize(text)
	l.mu.Lock()
	if q == l.query {
		l.mu.Unlock()
		return
	}
	l.query = q
	l.rederive()
	l.mu.Unlock()
	l.changed()
}

// rederive recomputes the render set. Callers hold l.mu.
func (l *List[T]) rederive() {
	if l.query == "" {
		l.render = cloneItems(l.slice.Items())
		return
	}
	l.render = search.Filter(l.working, l.cfg.Fields, l.cfg.Provider, l.query)
}

func (l *List[T]) modeLocked() Mode {
	if l.query == "" {
		return Paged
	}
	return Searching
}

// Mode returns the current mode.
func (l *List[T]) Mode() Mode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.modeLocked()
}

// GoTo loads page. Navigation only happens in Paged mode; in Searching mode
// it is a no-op. Bounds are the caller's responsibility.
func (l *List[T]) GoTo(ctx context.Context, page int) error {
	l.mu.Lock()
	if !l.active {
		l.mu.Unlock()
		return ErrNotActive
	}
	if l.modeLocked() == Searching {
		l.mu.Unlock()
		return nil
	}
	l.mu.Unlock()
	return l.loadPage(ctx, page)
}

// First loads page 0.
func (l *List[T]) First(ctx context.Context) error {
	return l.GoTo(ctx, 0)
}

// Previous loads the page before the most recently requested one.
func (l *List[T]) Previous(ctx context.Context) error {
	l.mu.Lock()
	page := l.requested - 1
	l.mu.Unlock()
	return l.GoTo(ctx, page)
}

// Next loads the page after the most recently requested one.
func (l *List[T]) Next(ctx context.Context) error {
	l.mu.Lock()
	page := l.requested + 1
	l.mu.Unlock()
	return l.GoTo(ctx, page)
}

// Last loads page totalPages-1.
func (l *List[T]) Last(ctx context.Context) error {
	l.mu.Lock()
	page := l.slice.TotalPages - 1
	l.mu.Unlock()
	return l.GoTo(ctx, page)
}

// IsLastPage reports whether the current page is the last one. With zero
// total pages the last page is -1, so it is never reached.
func (l *List[T]) IsLastPage() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return isLastPage(l.page, l.slice.TotalPages)
}

func isLastPage(page, totalPages int) bool {
	return page == totalPages-1
}

// Corpus returns a copy of the working set: the searchable collection.
func (l *List[T]) Corpus() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneItems(l.working)
}

// Item returns the rendered item at index.
func (l *List[T]) Item(index int) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var zero T
	if index < 0 || index >= len(l.render) {
		return zero, false
	}
	return l.render[index], true
}

func cloneItems[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
