package paged

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/api"
	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/cristianoliveira/booknet/internal/logging"
	"github.com/cristianoliveira/booknet/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService pages over a fixed slice of books and counts requests.
type fakeService struct {
	mu       sync.Mutex
	items    []domain.Book
	allErr   error
	pageErr  error
	allCalls int
	calls    []int // requested pages, excluding fetch-all
	gates    map[int]chan struct{}
}

func (s *fakeService) fetch(ctx context.Context, page, size int) (domain.Page[domain.Book], error) {
	s.mu.Lock()
	fetchAll := size >= DefaultFetchAllSize
	if fetchAll {
		s.allCalls++
	} else {
		s.calls = append(s.calls, page)
	}
	gate := s.gates[page]
	allErr, pageErr := s.allErr, s.pageErr
	items := s.items
	s.mu.Unlock()

	if gate != nil && !fetchAll {
		<-gate
	}
	if fetchAll && allErr != nil {
		return domain.Page[domain.Book]{}, allErr
	}
	if !fetchAll && pageErr != nil {
		return domain.Page[domain.Book]{}, pageErr
	}
	total := (len(items) + size - 1) / size
	start := page * size
	if start > len(items) {
		start = len(items)
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return domain.Page[domain.Book]{
		Content:       items[start:end],
		Number:        page,
		Size:          size,
		TotalElements: len(items),
		TotalPages:    total,
	}, nil
}

func (s *fakeService) pageCalls() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.calls...)
}

func (s *fakeService) fetchAllCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allCalls
}

func bookFields(b domain.Book) []string { return []string{b.Title, b.Synopsis} }
func bookID(b domain.Book) int          { return b.ID }

func newBookList(svc *fakeService, pageSize int, alerts alert.Presenter) *List[domain.Book] {
	return New(Config[domain.Book]{
		Name:      "catalog",
		Noun:      "books",
		PageSize:  pageSize,
		Fetch:     svc.fetch,
		Fields:    bookFields,
		ID:        bookID,
		Presenter: alerts,
		Logger:    logging.Discard(),
	})
}

func duneAndFoo() []domain.Book {
	return []domain.Book{
		{ID: 1, Title: "Dune", Synopsis: "desert"},
		{ID: 2, Title: "Foo", Synopsis: "bar"},
	}
}

func manyBooks(n int) []domain.Book {
	out := make([]domain.Book, n)
	for i := range out {
		out[i] = domain.Book{ID: i + 1, Title: "Book", Synopsis: "s"}
	}
	out[n-1].Title = "Needle"
	return out
}

func titles(items []domain.Book) []string {
	out := make([]string, len(items))
	for i, b := range items {
		out[i] = b.Title
	}
	return out
}

func TestActivateLoadsWorkingSetAndFirstPage(t *testing.T) {
	svc := &fakeService{items: manyBooks(8)}
	l := newBookList(svc, 6, nil)

	require.NoError(t, l.Activate(context.Background()))

	snap := l.Snapshot()
	assert.Equal(t, Paged, snap.Mode)
	assert.Len(t, snap.Items, 6)
	assert.Equal(t, 0, snap.Page)
	assert.Equal(t, 2, snap.TotalPages)
	assert.Equal(t, 8, snap.CorpusSize)
	assert.Len(t, l.Corpus(), 8)
	assert.Equal(t, 1, svc.fetchAllCalls())
	assert.Equal(t, []int{0}, svc.pageCalls())
	assert.False(t, snap.Loading)
}

func TestSearchFiltersWholeCollection(t *testing.T) {
	svc := &fakeService{items: manyBooks(8)}
	l := newBookList(svc, 6, nil)
	require.NoError(t, l.Activate(context.Background()))

	l.SetQuery("needle")

	snap := l.Snapshot()
	assert.Equal(t, Searching, snap.Mode)
	assert.Equal(t, []string{"Needle"}, titles(snap.Items), "match lives on page 2 but search covers everything")
}

func TestSearchExamples(t *testing.T) {
	svc := &fakeService{items: duneAndFoo()}
	l := newBookList(svc, 6, nil)
	require.NoError(t, l.Activate(context.Background()))

	l.SetQuery("dun")
	snap := l.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "Dune", snap.Items[0].Title)
	assert.Empty(t, snap.Message)

	l.SetQuery("zzz")
	snap = l.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Equal(t, `No books found matching "zzz"`, snap.Message)
	assert.Contains(t, snap.Message, "zzz")
}

func TestSearchMatchesSecondFieldCaseInsensitive(t *testing.T) {
	svc := &fakeService{items: duneAndFoo()}
	l := newBookList(svc, 6, nil)
	require.NoError(t, l.Activate(context.Background()))

	l.SetQuery("  DESERT ")

	assert.Equal(t, []string{"Dune"}, titles(l.Snapshot().Items))
}

func TestClearingQueryReturnsToPagedSlice(t *testing.T) {
	for _, blank := range []string{"", "   "} {
		svc := &fakeService{items: manyBooks(8)}
		l := newBookList(svc, 6, nil)
		require.NoError(t, l.Activate(context.Background()))
		pageItems := l.Snapshot().Items

		l.SetQuery("needle")
		require.Equal(t, Searching, l.Mode())
		l.SetQuery(blank)

		snap := l.Snapshot()
		assert.Equal(t, Paged, snap.Mode)
		assert.Equal(t, pageItems, snap.Items)
	}
}

func TestSearchBeforeLoadYieldsNoMatchesNotError(t *testing.T) {
	svc := &fakeService{items: duneAndFoo()}
	l := newBookList(svc, 6, nil)

	l.SetQuery("dune")

	snap := l.Snapshot()
	assert.Equal(t, Searching, snap.Mode)
	assert.Empty(t, snap.Items)
	assert.Equal(t, `No books found matching "dune"`, snap.Message)
}

func TestWorkingSetArrivingWhileSearchingRefilters(t *testing.T) {
	svc := &fakeService{items: duneAndFoo()}
	l := newBookList(svc, 6, nil)
	l.SetQuery("dune")

	require.NoError(t, l.Activate(context.Background()))

	assert.Equal(t, []string{"Dune"}, titles(l.Snapshot().Items))
}

func TestFetchAllFailureFallsBackToPage(t *testing.T) {
	svc := &fakeService{items: manyBooks(8), allErr: errors.New("too large")}
	alerts := alert.NewLog(0, nil)
	l := newBookList(svc, 6, alerts)

	require.NoError(t, l.Activate(context.Background()))

	snap := l.Snapshot()
	assert.Len(t, snap.Items, 6)
	assert.Equal(t, 6, snap.CorpusSize)
	assert.True(t, snap.CorpusPartial)
	assert.Equal(t, 0, alerts.Len(), "degraded search is not an error for the user")

	l.SetQuery("needle")
	assert.Empty(t, l.Snapshot().Items, "search only covers the loaded page")
}

func TestPageFailureKeepsPreviousSliceAndAlerts(t *testing.T) {
	svc := &fakeService{items: manyBooks(8)}
	alerts := alert.NewLog(0, nil)
	l := newBookList(svc, 6, alerts)
	require.NoError(t, l.Activate(context.Background()))

	svc.mu.Lock()
	svc.pageErr = &api.Error{StatusCode: 500, Message: "Internal error"}
	svc.mu.Unlock()
	err := l.Next(context.Background())

	require.Error(t, err)
	snap := l.Snapshot()
	assert.Equal(t, 0, snap.Page)
	assert.Len(t, snap.Items, 6)
	latest, ok := alerts.Latest()
	require.True(t, ok)
	assert.Equal(t, "Internal error", latest.Message)
}

func TestNavigation(t *testing.T) {
	svc := &fakeService{items: manyBooks(20)}
	l := newBookList(svc, 6, nil)
	ctx := context.Background()
	require.NoError(t, l.Activate(ctx))

	require.NoError(t, l.Next(ctx))
	assert.Equal(t, 1, l.Snapshot().Page)
	require.NoError(t, l.Last(ctx))
	assert.Equal(t, 3, l.Snapshot().Page)
	assert.True(t, l.IsLastPage())
	require.NoError(t, l.Previous(ctx))
	assert.Equal(t, 2, l.Snapshot().Page)
	require.NoError(t, l.First(ctx))
	assert.Equal(t, 0, l.Snapshot().Page)
	require.NoError(t, l.GoTo(ctx, 2))
	assert.Equal(t, 2, l.Snapshot().Page)

	assert.Equal(t, []int{0, 1, 3, 2, 0, 2}, svc.pageCalls())
	assert.Equal(t, 1, svc.fetchAllCalls(), "navigation never refetches the working set")
}

func TestNavigationIgnoredWhileSearching(t *testing.T) {
	svc := &fakeService{items: manyBooks(20)}
	l := newBookList(svc, 6, nil)
	ctx := context.Background()
	require.NoError(t, l.Activate(ctx))
	l.SetQuery("book")

	require.NoError(t, l.Next(ctx))

	assert.Equal(t, []int{0}, svc.pageCalls())
}

func TestIsLastPage(t *testing.T) {
	assert.True(t, isLastPage(0, 1))
	assert.True(t, isLastPage(3, 4))
	assert.False(t, isLastPage(2, 4))
	assert.False(t, isLastPage(0, 0), "zero pages means last page is -1")

	svc := &fakeService{}
	l := newBookList(svc, 6, nil)
	require.NoError(t, l.Activate(context.Background()))
	snap := l.Snapshot()
	assert.Equal(t, 0, snap.TotalPages)
	assert.False(t, snap.IsLastPage)
	assert.False(t, l.IsLastPage())
	assert.Equal(t, "No books to show", snap.Message)
}

func TestStalePageResponseIsDiscarded(t *testing.T) {
	svc := &fakeService{items: manyBooks(20), gates: map[int]chan struct{}{}}
	l := newBookList(svc, 6, nil)
	ctx := context.Background()
	require.NoError(t, l.Activate(ctx))

	slow := make(chan struct{})
	svc.mu.Lock()
	svc.gates[1] = slow
	svc.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- l.GoTo(ctx, 1) }()
	require.Eventually(t, func() bool { return len(svc.pageCalls()) == 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, l.GoTo(ctx, 2))
	close(slow)
	require.NoError(t, <-done)

	snap := l.Snapshot()
	assert.Equal(t, 2, snap.Page, "the later navigation wins even though page 1 resolved last")
	assert.Equal(t, 13, snap.Items[0].ID)
}

func TestNavigationCancelsInFlightRequest(t *testing.T) {
	svc := &fakeService{items: manyBooks(20)}
	cancelled := make(chan struct{})
	started := make(chan struct{})
	l := New(Config[domain.Book]{
		Name: "catalog", Noun: "books", PageSize: 6,
		Fetch: func(ctx context.Context, page, size int) (domain.Page[domain.Book], error) {
			if page == 1 && size == 6 {
				close(started)
				<-ctx.Done()
				close(cancelled)
				return domain.Page[domain.Book]{}, ctx.Err()
			}
			return svc.fetch(ctx, page, size)
		},
		Fields: bookFields, ID: bookID, Logger: logging.Discard(),
	})
	ctx := context.Background()
	require.NoError(t, l.Activate(ctx))

	go l.GoTo(ctx, 1)
	<-started
	require.NoError(t, l.GoTo(ctx, 2))

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("superseded request was not cancelled")
	}
	assert.Equal(t, 2, l.Snapshot().Page)
}

func TestDeactivate(t *testing.T) {
	svc := &fakeService{items: duneAndFoo()}
	l := newBookList(svc, 6, nil)
	require.NoError(t, l.Activate(context.Background()))

	l.Deactivate()

	assert.False(t, l.Active())
	assert.ErrorIs(t, l.GoTo(context.Background(), 0), ErrNotActive)
	assert.ErrorIs(t, l.Reload(context.Background()), ErrNotActive)
}

func TestBindFollowsBroadcasterAcrossLists(t *testing.T) {
	b := query.NewBroadcaster()
	first := newBookList(&fakeService{items: duneAndFoo()}, 6, nil)
	require.NoError(t, first.Activate(context.Background()))
	unbind := first.Bind(b)

	b.Update("DUNE")
	assert.Equal(t, Searching, first.Mode())
	unbind()
	first.Deactivate()

	second := newBookList(&fakeService{items: duneAndFoo()}, 6, nil)
	require.NoError(t, second.Activate(context.Background()))
	defer second.Bind(b)()

	snap := second.Snapshot()
	assert.Equal(t, "dune", snap.Query, "the query carries over to the next view")
	assert.Equal(t, []string{"Dune"}, titles(snap.Items))

	b.Update("foo")
	assert.Equal(t, "dune", first.Snapshot().Query, "unbound lists stop following")
}

func TestOnChangeFires(t *testing.T) {
	svc := &fakeService{items: duneAndFoo()}
	l := newBookList(svc, 6, nil)
	var mu sync.Mutex
	n := 0
	cancel := l.OnChange(func() {
		mu.Lock()
		n++
		mu.Unlock()
	})

	require.NoError(t, l.Activate(context.Background()))
	cancel()
	l.SetQuery("x")

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, n, 2)
	before := n
	l.SetQuery("y")
	assert.Equal(t, before, n)
}

func TestItem(t *testing.T) {
	l := newBookList(&fakeService{items: duneAndFoo()}, 6, nil)
	require.NoError(t, l.Activate(context.Background()))

	b, ok := l.Item(1)
	assert.True(t, ok)
	assert.Equal(t, "Foo", b.Title)
	_, ok = l.Item(5)
	assert.False(t, ok)
}

func TestNewPanicsWithoutFetch(t *testing.T) {
	assert.Panics(t, func() { New(Config[domain.Book]{}) })
}

func TestSnapshotPagingHints(t *testing.T) {
	s := Snapshot[domain.Book]{Mode: Paged, Page: 0, TotalPages: 3}
	assert.False(t, s.HasPrevious())
	assert.True(t, s.HasNext())
	s.Page = 2
	assert.True(t, s.HasPrevious())
	assert.False(t, s.HasNext())
	s.Mode = Searching
	assert.False(t, s.HasPrevious())
}
