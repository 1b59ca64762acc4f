// Package format provides output formatting for CLI commands: notification
// listings, book views and book details.
package format

import (
	"fmt"
	"io"

	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/cristianoliveira/booknet/internal/library"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// FormatNotifications writes notifications, newest first as given.
	FormatNotifications(notifications []domain.Notification, writer io.Writer) error

	// FormatView writes the rendered rows of a library view.
	FormatView(view library.View, writer io.Writer) error

	// FormatBook writes the details of a single book.
	FormatBook(book domain.Book, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeSimple prints one aligned line per record.
	FormatterTypeSimple FormatterType = "simple"

	// FormatterTypeTable prints a bordered table with headers.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeCompact prints only messages or titles.
	FormatterTypeCompact FormatterType = "compact"

	// FormatterTypeJSON prints the records as JSON.
	FormatterTypeJSON FormatterType = "json"
)

// ParseFormatterType validates a formatter name.
func ParseFormatterType(name string) (FormatterType, error) {
	switch t := FormatterType(name); t {
	case FormatterTypeSimple, FormatterTypeTable, FormatterTypeCompact, FormatterTypeJSON:
		return t, nil
	}
	return "", fmt.Errorf("invalid format %q: expected simple, table, compact or json", name)
}

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeTable:
		return NewTableFormatter()
	case FormatterTypeCompact:
		return NewCompactFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		return NewSimpleFormatter()
	}
}

// pageSummary describes the position of a view, e.g. "page 1/3, 14 books".
func pageSummary(v library.View) string {
	if v.Query != "" {
		return fmt.Sprintf("%d matching %q", len(v.Rows), v.Query)
	}
	if v.TotalPages == 0 {
		return "page 0/0"
	}
	return fmt.Sprintf("page %d/%d, %d total", v.Page+1, v.TotalPages, v.TotalElements)
}

func idString(n domain.Notification) string {
	if !n.HasID() {
		return "-"
	}
	return fmt.Sprintf("%d", n.IDValue())
}

func readMarker(n domain.Notification) string {
	if n.Read {
		return " "
	}
	return "*"
}

func statusString(n domain.Notification) string {
	if n.Status == domain.StatusUnspecified {
		return "-"
	}
	return n.Status.String()
}

// truncateString shortens s to width runes, ending in "..." when cut.
func truncateString(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width < 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
