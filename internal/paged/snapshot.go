package paged

import "fmt"

// Snapshot is a consistent copy of a list's visible state.
type Snapshot[T any] struct {
	Mode  Mode
	Query string
	// Items is the render set.
	Items         []T
	Page          int
	TotalPages    int
	TotalElements int
	IsLastPage    bool
	// Message explains an empty render set; "" when there are items.
	Message       string
	Loading       bool
	CorpusSize    int
	CorpusPartial bool
}

// HasPrevious reports whether a page before the current one exists.
func (s Snapshot[T]) HasPrevious() bool {
	return s.Mode == Paged && s.Page > 0
}

// HasNext reports whether a page after the current one exists.
func (s Snapshot[T]) HasNext() bool {
	return s.Mode == Paged && s.Page < s.TotalPages-1
}

// Snapshot returns the current state.
func (l *List[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := Snapshot[T]{
		Mode:          l.modeLocked(),
		Query:         l.query,
		Items:         cloneItems(l.render),
		Page:          l.page,
		TotalPages:    l.slice.TotalPages,
		TotalElements: l.slice.TotalElements,
		IsLastPage:    isLastPage(l.page, l.slice.TotalPages),
		Loading:       l.loadingAll || l.loadingPage,
		CorpusSize:    len(l.working),
		CorpusPartial: l.workingFallback,
	}
	if len(s.Items) == 0 {
		s.Message = l.emptyMessage()
	}
	return s
}

func (l *List[T]) emptyMessage() string {
	if l.query != "" {
		return fmt.Sprintf("No %s found matching \"%s\"", l.cfg.Noun, l.query)
	}
	if l.loadingPage && !l.sliceLoaded {
		return "Loading..."
	}
	return fmt.Sprintf("No %s to show", l.cfg.Noun)
}
