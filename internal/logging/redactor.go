package logging

import (
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

var (
	segmentSplitter = regexp.MustCompile(`[^a-z0-9]+`)
	// bearerPattern catches credentials embedded in free-form values such as
	// a logged request header.
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-_.=]+`)
)

// redactor masks values whose key names a credential.
type redactor struct {
	sensitiveWords map[string]bool
}

func newRedactor() *redactor {
	words := []string{"secret", "password", "token", "authorization", "auth", "bearer", "credential", "jwt"}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return &redactor{sensitiveWords: m}
}

// redact walks flattened key-value pairs and returns a copy where sensitive
// values are masked. String values carrying a bearer token are scrubbed
// regardless of their key.
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	result := make([]any, len(pairs))
	copy(result, pairs)
	for i := 0; i+1 < len(result); i += 2 {
		key, ok := result[i].(string)
		if !ok {
			continue
		}
		if r.isSensitive(key) {
			result[i+1] = redacted
			continue
		}
		if s, ok := result[i+1].(string); ok {
			result[i+1] = scrubBearer(s)
		}
	}
	return result
}

// isSensitive reports whether any segment of key is a sensitive word.
// Segments are split on non-alphanumeric characters.
func (r *redactor) isSensitive(key string) bool {
	for _, part := range segmentSplitter.Split(strings.ToLower(key), -1) {
		if r.sensitiveWords[part] {
			return true
		}
	}
	return false
}

func scrubBearer(value string) string {
	return bearerPattern.ReplaceAllString(value, "Bearer "+redacted)
}
