package format

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/cristianoliveira/booknet/internal/library"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SimpleFormatter prints one aligned line per record.
type SimpleFormatter struct{}

// NewSimpleFormatter creates a new SimpleFormatter.
func NewSimpleFormatter() *SimpleFormatter {
	return &SimpleFormatter{}
}

// FormatNotifications formats notifications in simple format. Unread
// notifications are marked with "*".
func (f *SimpleFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	for _, n := range notifications {
		_, err := fmt.Fprintf(writer, "%s %-4s  %-15s  %s\n", readMarker(n), idString(n), statusString(n), truncateString(n.Message, 60))
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatView formats view rows separated by " | ", followed by a summary.
func (f *SimpleFormatter) FormatView(view library.View, writer io.Writer) error {
	if len(view.Rows) == 0 {
		_, err := fmt.Fprintln(writer, view.Message)
		return err
	}
	for _, row := range view.Rows {
		if _, err := fmt.Fprintln(writer, strings.Join(row.Cells, " | ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(writer, "(%s)\n", pageSummary(view))
	return err
}

// FormatBook formats book details as key: value lines.
func (f *SimpleFormatter) FormatBook(book domain.Book, writer io.Writer) error {
	for _, kv := range bookFields(book) {
		if _, err := fmt.Fprintf(writer, "%-10s %s\n", kv[0]+":", kv[1]); err != nil {
			return err
		}
	}
	return nil
}

func bookFields(b domain.Book) [][2]string {
	return [][2]string{
		{"ID", fmt.Sprintf("%d", b.ID)},
		{"Title", b.Title},
		{"Author", b.AuthorName},
		{"ISBN", b.ISBN},
		{"Owner", b.Owner},
		{"Rate", fmt.Sprintf("%.1f", b.Rate)},
		{"Shareable", yesNo(b.Shareable)},
		{"Archived", yesNo(b.Archived)},
		{"Synopsis", b.Synopsis},
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// CompactFormatter prints only the message or title of each record.
type CompactFormatter struct{}

// NewCompactFormatter creates a new CompactFormatter.
func NewCompactFormatter() *CompactFormatter {
	return &CompactFormatter{}
}

// FormatNotifications prints one message per line.
func (f *CompactFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	for _, n := range notifications {
		if _, err := fmt.Fprintln(writer, n.Message); err != nil {
			return err
		}
	}
	return nil
}

// FormatView prints the title column of every row.
func (f *CompactFormatter) FormatView(view library.View, writer io.Writer) error {
	title := 0
	for i, c := range view.Columns {
		if c == "Title" {
			title = i
		}
	}
	for _, row := range view.Rows {
		if title >= len(row.Cells) {
			continue
		}
		if _, err := fmt.Fprintln(writer, row.Cells[title]); err != nil {
			return err
		}
	}
	return nil
}

// FormatBook prints the book title.
func (f *CompactFormatter) FormatBook(book domain.Book, writer io.Writer) error {
	_, err := fmt.Fprintln(writer, book.Title)
	return err
}

// JSONFormatter formats records as indented JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type jsonView struct {
	View          string              `json:"view,omitempty"`
	Query         string              `json:"query,omitempty"`
	Page          int                 `json:"page"`
	TotalPages    int                 `json:"totalPages"`
	TotalElements int                 `json:"totalElements"`
	Items         []map[string]string `json:"items"`
}

func (f *JSONFormatter) write(v any, writer io.Writer) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	_, err = fmt.Fprintln(writer, string(data))
	return err
}

// FormatNotifications formats notifications as a JSON array.
func (f *JSONFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	return f.write(notifications, writer)
}

// FormatView formats the rows as objects keyed by column name.
func (f *JSONFormatter) FormatView(view library.View, writer io.Writer) error {
	out := jsonView{
		Query:         view.Query,
		Page:          view.Page,
		TotalPages:    view.TotalPages,
		TotalElements: view.TotalElements,
		Items:         make([]map[string]string, 0, len(view.Rows)),
	}
	for _, row := range view.Rows {
		item := make(map[string]string, len(view.Columns))
		for i, c := range view.Columns {
			if i < len(row.Cells) {
				item[strings.ToLower(c)] = row.Cells[i]
			}
		}
		out.Items = append(out.Items, item)
	}
	return f.write(out, writer)
}

// FormatBook formats the book as a JSON object.
func (f *JSONFormatter) FormatBook(book domain.Book, writer io.Writer) error {
	book.Cover = nil
	return f.write(book, writer)
}
