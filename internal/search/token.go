package search

import "strings"

// TokenProvider splits the query on whitespace and requires every token to
// appear in at least one field, so "dune herbert" matches a book whose title
// holds one word and author the other.
type TokenProvider struct {
	inner Provider
}

// NewTokenProvider creates a new token search provider.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{inner: NewSubstringProvider(opts...)}
}

// Match returns true if all tokens match some field.
func (p *TokenProvider) Match(fields []string, query string) bool {
	for _, token := range strings.Fields(query) {
		if !p.inner.Match(fields, token) {
			return false
		}
	}
	return true
}

// Name returns the provider name.
func (p *TokenProvider) Name() string {
	return "token"
}
