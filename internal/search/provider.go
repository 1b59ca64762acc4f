// Package search matches list items against a free-text query. Callers
// choose which text fields of an item take part; providers decide what a
// match is.
package search

// Provider matches a query against the searchable fields of one item.
type Provider interface {
	// Match returns true if the fields match the query. An empty query
	// matches everything.
	Match(fields []string, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{CaseInsensitive: true}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ForMode returns the provider named mode. Unknown modes fall back to
// substring matching.
func ForMode(mode string, opts ...Option) Provider {
	if mode == "token" {
		return NewTokenProvider(opts...)
	}
	return NewSubstringProvider(opts...)
}

// Filter returns the items whose fields match query, preserving order.
// The result is never nil.
func Filter[T any](items []T, fields func(T) []string, p Provider, query string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if p.Match(fields(item), query) {
			out = append(out, item)
		}
	}
	return out
}
