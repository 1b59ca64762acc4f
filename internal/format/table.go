package format

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/cristianoliveira/booknet/internal/library"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// HeaderStyle styles the header row.
	HeaderStyle lipgloss.Style

	// BorderStyle styles the table border.
	BorderStyle lipgloss.Style

	// MaxCellWidth truncates longer cells; 0 disables truncation.
	MaxCellWidth int
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() TableConfig {
	return TableConfig{
		HeaderStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1),
		BorderStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		MaxCellWidth: 40,
	}
}

// TableFormatter formats records as bordered tables.
type TableFormatter struct {
	config TableConfig
	cell   lipgloss.Style
}

// NewTableFormatter creates a TableFormatter with the default configuration.
func NewTableFormatter() *TableFormatter {
	return NewTableFormatterWithConfig(DefaultTableConfig())
}

// NewTableFormatterWithConfig creates a TableFormatter with config.
func NewTableFormatterWithConfig(config TableConfig) *TableFormatter {
	return &TableFormatter{config: config, cell: lipgloss.NewStyle().Padding(0, 1)}
}

func (f *TableFormatter) render(headers []string, rows [][]string, writer io.Writer) error {
	if f.config.MaxCellWidth > 0 {
		for _, row := range rows {
			for i := range row {
				row[i] = truncateString(row[i], f.config.MaxCellWidth)
			}
		}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(f.config.BorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return f.config.HeaderStyle
			}
			return f.cell
		}).
		Headers(headers...).
		Rows(rows...)
	_, err := fmt.Fprintln(writer, t.Render())
	return err
}

// FormatNotifications formats notifications as a table.
func (f *TableFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	if len(notifications) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(notifications))
	for _, n := range notifications {
		rows = append(rows, []string{idString(n), statusString(n), yesNo(n.Read), n.BookTitle, n.Message})
	}
	return f.render([]string{"ID", "Status", "Read", "Book", "Message"}, rows, writer)
}

// FormatView formats view rows as a table followed by the page summary.
func (f *TableFormatter) FormatView(view library.View, writer io.Writer) error {
	if len(view.Rows) == 0 {
		_, err := fmt.Fprintln(writer, view.Message)
		return err
	}
	rows := make([][]string, 0, len(view.Rows))
	for _, r := range view.Rows {
		rows = append(rows, append([]string(nil), r.Cells...))
	}
	if err := f.render(view.Columns, rows, writer); err != nil {
		return err
	}
	_, err := fmt.Fprintln(writer, pageSummary(view))
	return err
}

// FormatBook formats book details as a two-column table.
func (f *TableFormatter) FormatBook(book domain.Book, writer io.Writer) error {
	fields := bookFields(book)
	rows := make([][]string, 0, len(fields))
	for _, kv := range fields {
		rows = append(rows, []string{kv[0], kv[1]})
	}
	return f.render([]string{"Field", "Value"}, rows, writer)
}
