// Package render holds the pure lipgloss rendering functions of the TUI.
package render

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/colors"
	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/cristianoliveira/booknet/internal/library"
)

const (
	idWidth          = 5
	columnGap        = 2
	minColumnWidth   = 6
	defaultWidth     = 80
	unreadSymbol     = "●"
	readSymbol       = "○"
	statusWidth      = 15
	ageWidth         = 4
	notificationsGap = 8
)

var (
	accent   = lipgloss.Color(ansiColorNumber(colors.Blue))
	muted    = lipgloss.Color("241")
	selected = lipgloss.NewStyle().Background(accent).Foreground(lipgloss.Color("0"))
)

// TabsState defines the inputs of the header line.
type TabsState struct {
	Titles     []string
	Active     int
	Unread     int
	User       string
	Connection string
	Width      int
}

// Tabs renders the view tabs with the unread badge and user on the right.
func Tabs(state TabsState) string {
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(muted)

	parts := make([]string, len(state.Titles))
	for i, title := range state.Titles {
		label := fmt.Sprintf("%d %s", i+1, title)
		if i == state.Active {
			parts[i] = activeStyle.Render(label)
		} else {
			parts[i] = inactiveStyle.Render(label)
		}
	}
	left := strings.Join(parts, "  ")

	right := fmt.Sprintf("✉ %d", state.Unread)
	if state.User != "" {
		right += "  " + state.User
	}
	if state.Connection != "" {
		right += " " + connectionSymbol(state.Connection)
	}

	width := state.Width
	if width <= 0 {
		width = defaultWidth
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func connectionSymbol(state string) string {
	switch state {
	case "connected":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Green))).Render("●")
	case "connecting":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Yellow))).Render("◌")
	case "disconnected":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Red))).Render("○")
	default:
		return ""
	}
}

// SearchLine renders the search input, or the active query when not editing.
func SearchLine(editing bool, input, query string) string {
	if editing {
		return input
	}
	if query == "" {
		return lipgloss.NewStyle().Foreground(muted).Render("/ to search")
	}
	return fmt.Sprintf("Search: %s", query)
}

// ColumnWidths splits width across columns. The first column is the id.
func ColumnWidths(columns []string, width int) []int {
	if width <= 0 {
		width = defaultWidth
	}
	widths := make([]int, len(columns))
	if len(columns) == 0 {
		return widths
	}
	widths[0] = idWidth
	rest := len(columns) - 1
	if rest == 0 {
		return widths
	}
	avail := width - idWidth - columnGap*rest
	each := avail / rest
	if each < minColumnWidth {
		each = minColumnWidth
	}
	for i := 1; i < len(columns); i++ {
		widths[i] = each
	}
	return widths
}

func fit(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		if width <= 3 {
			return string([]rune(s)[:width])
		}
		return string([]rune(s)[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

func line(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = fit(cell, w)
	}
	return strings.Join(parts, strings.Repeat(" ", columnGap))
}

// Header renders the table header for columns.
func Header(columns []string, width int) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	upper := make([]string, len(columns))
	for i, c := range columns {
		upper[i] = strings.ToUpper(c)
	}
	return headerStyle.Render(line(upper, ColumnWidths(columns, width)))
}

// RowState defines the inputs needed to render an item row.
type RowState struct {
	Columns  []string
	Row      library.Row
	Width    int
	Selected bool
}

// Row renders a single item row.
func Row(state RowState) string {
	out := line(state.Row.Cells, ColumnWidths(state.Columns, state.Width))
	if state.Selected {
		return selected.Render(out)
	}
	return out
}

// Body renders the rows of a view, or its empty message.
func Body(view library.View, cursor, width int) string {
	if len(view.Rows) == 0 {
		return lipgloss.NewStyle().Foreground(muted).Render(view.Message)
	}
	lines := make([]string, len(view.Rows))
	for i, r := range view.Rows {
		lines[i] = Row(RowState{Columns: view.Columns, Row: r, Width: width, Selected: i == cursor})
	}
	return strings.Join(lines, "\n")
}

// Pager renders the page position or the search summary of a view.
func Pager(view library.View) string {
	style := lipgloss.NewStyle().Foreground(muted)
	var s string
	if view.Query != "" {
		s = fmt.Sprintf("%d of %d match", len(view.Rows), view.CorpusSize)
		if view.CorpusPartial {
			s += " (current page only)"
		}
	} else {
		page, total := view.Page+1, view.TotalPages
		if total == 0 {
			page = 0
		}
		s = fmt.Sprintf("page %d/%d", page, total)
		if view.HasPrevious {
			s = "« " + s
		}
		if view.HasNext {
			s += " »"
		}
	}
	if view.Loading {
		s += "  loading..."
	}
	return style.Render(s)
}

// NotificationRowState defines the inputs of a notification panel row.
type NotificationRowState struct {
	Notification domain.Notification
	Width        int
	Selected     bool
	Now          time.Time
}

// NotificationRow renders one notification: read marker, status, message
// and age.
func NotificationRow(state NotificationRowState) string {
	n := state.Notification
	marker := unreadSymbol
	if n.Read {
		marker = readSymbol
	}
	status := string(n.Status)
	if status == "" {
		status = "-"
	}
	width := state.Width
	if width <= 0 {
		width = defaultWidth
	}
	msgWidth := width - statusWidth - ageWidth - notificationsGap
	if msgWidth < 10 {
		msgWidth = 10
	}
	out := fmt.Sprintf("%s  %s  %s  %*s",
		marker,
		fit(status, statusWidth),
		fit(n.Message, msgWidth),
		ageWidth, calculateAge(n.CreatedAt, state.Now),
	)
	if state.Selected {
		return selected.Render(out)
	}
	if n.Read {
		return lipgloss.NewStyle().Foreground(muted).Render(out)
	}
	return out
}

// Panel renders the notification panel with a title line.
func Panel(notifications []domain.Notification, cursor, width, maxRows int, focused bool, now time.Time) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(accent).Render(fmt.Sprintf("Notifications (%d)", len(notifications)))
	if !focused {
		title = lipgloss.NewStyle().Bold(true).Foreground(muted).Render(fmt.Sprintf("Notifications (%d)", len(notifications)))
	}
	if len(notifications) == 0 {
		return title + "\n" + lipgloss.NewStyle().Foreground(muted).Render("No notifications")
	}
	start := 0
	if maxRows > 0 && cursor >= maxRows {
		start = cursor - maxRows + 1
	}
	end := len(notifications)
	if maxRows > 0 && end > start+maxRows {
		end = start + maxRows
	}
	lines := []string{title}
	for i := start; i < end; i++ {
		lines = append(lines, NotificationRow(NotificationRowState{
			Notification: notifications[i],
			Width:        width,
			Selected:     focused && i == cursor,
			Now:          now,
		}))
	}
	return strings.Join(lines, "\n")
}

// ToneStyle returns the style used for alerts of tone.
func ToneStyle(t alert.Tone) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch t {
	case alert.Error:
		return base.Foreground(lipgloss.Color(ansiColorNumber(colors.Red)))
	case alert.Warning:
		return base.Foreground(lipgloss.Color(ansiColorNumber(colors.Yellow)))
	case alert.Success:
		return base.Foreground(lipgloss.Color(ansiColorNumber(colors.Green)))
	case alert.Info:
		return base.Foreground(lipgloss.Color(ansiColorNumber(colors.Cyan)))
	default:
		return base.Foreground(lipgloss.Color(ansiColorNumber(colors.Magenta)))
	}
}

// Status renders the latest alert, or an empty line.
func Status(a alert.Alert, visible bool) string {
	if !visible {
		return ""
	}
	return ToneStyle(a.Tone).Render(a.Text())
}

// FooterState defines the inputs needed to render footer help text.
type FooterState struct {
	SearchMode   bool
	FeedbackMode bool
	PanelFocused bool
	Actions      []library.ActionInfo
	Feedback     bool
}

// Footer renders the footer with help text.
func Footer(state FooterState) string {
	helpStyle := lipgloss.NewStyle().Foreground(muted)

	var help []string
	switch {
	case state.SearchMode:
		help = append(help, "ESC/Enter: done", "ctrl+u: clear")
	case state.FeedbackMode:
		help = append(help, "Enter: return with feedback (note comment)", "ESC: cancel")
	case state.PanelFocused:
		help = append(help, "j/k: move", "m: mark read", "M: mark all read", "u: unread only", "n: close")
	default:
		help = append(help, "j/k: move", "h/l: page", "g/G: first/last", "/: search")
		for _, a := range state.Actions {
			help = append(help, fmt.Sprintf("%s: %s", a.Shortcut, strings.ToLower(a.Label)))
		}
		if state.Feedback {
			help = append(help, "f: return with feedback")
		}
		help = append(help, "n: notifications", "r: reload")
	}
	help = append(help, "q: quit")

	return helpStyle.Render(strings.Join(help, "  |  "))
}

func calculateAge(timestamp string, now time.Time) string {
	if timestamp == "" {
		return ""
	}
	t, err := parseTimestamp(timestamp)
	if err != nil {
		return ""
	}
	if now.IsZero() {
		now = time.Now()
	}

	duration := now.Sub(t)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	} else if duration < time.Hour {
		return fmt.Sprintf("%dm", int(duration.Minutes()))
	} else if duration < 24*time.Hour {
		return fmt.Sprintf("%dh", int(duration.Hours()))
	}
	return fmt.Sprintf("%dd", int(duration.Hours()/24))
}

// parseTimestamp accepts RFC 3339 and the zone-less form the server sends.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05.999999999", s, time.Local)
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
