package search

import "strings"

// SubstringProvider matches if any field contains the query as a substring.
type SubstringProvider struct {
	opts Options
}

// NewSubstringProvider creates a new substring search provider.
func NewSubstringProvider(opts ...Option) Provider {
	return &SubstringProvider{opts: applyOptions(opts)}
}

// Match returns true if any field contains the query substring.
func (p *SubstringProvider) Match(fields []string, query string) bool {
	if query == "" {
		return true
	}
	if p.opts.CaseInsensitive {
		query = strings.ToLower(query)
	}
	for _, field := range fields {
		if field == "" {
			continue
		}
		if p.opts.CaseInsensitive {
			field = strings.ToLower(field)
		}
		if strings.Contains(field, query) {
			return true
		}
	}
	return false
}

// Name returns the provider name.
func (p *SubstringProvider) Name() string {
	return "substring"
}
