package render

import (
	"strings"
	"testing"
	"time"

	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/cristianoliveira/booknet/internal/library"
	"github.com/stretchr/testify/assert"
)

func TestTabsShowsActiveViewUnreadAndUser(t *testing.T) {
	out := Tabs(TabsState{
		Titles: []string{"Catalog", "My books"},
		Active: 1,
		Unread: 3,
		User:   "Ann",
		Width:  60,
	})
	assert.Contains(t, out, "1 Catalog")
	assert.Contains(t, out, "2 My books")
	assert.Contains(t, out, "✉ 3  Ann")
}

func TestColumnWidths(t *testing.T) {
	assert.Equal(t, []int{5, 35, 35}, ColumnWidths([]string{"ID", "Title", "Author"}, 79))
	assert.Equal(t, []int{5, minColumnWidth, minColumnWidth}, ColumnWidths([]string{"ID", "Title", "Author"}, 10))
	assert.Equal(t, []int{5}, ColumnWidths([]string{"ID"}, 80))
	assert.Empty(t, ColumnWidths(nil, 80))
}

func TestFit(t *testing.T) {
	assert.Equal(t, "abc   ", fit("abc", 6))
	assert.Equal(t, "abc...", fit("abcdefgh", 6))
	assert.Equal(t, "ab", fit("abcdef", 2))
}

func TestBodyRendersRowsOrMessage(t *testing.T) {
	view := library.View{
		Columns: []string{"ID", "Title"},
		Rows:    []library.Row{{ID: 1, Cells: []string{"1", "Dune"}}, {ID: 2, Cells: []string{"2", "Emma"}}},
	}
	out := Body(view, 1, 40)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Dune")
	assert.Contains(t, lines[1], "Emma")

	empty := library.View{Message: `No books found matching "zzz"`}
	assert.Contains(t, Body(empty, 0, 40), `No books found matching "zzz"`)
}

func TestPager(t *testing.T) {
	assert.Contains(t, Pager(library.View{Page: 1, TotalPages: 3, HasPrevious: true, HasNext: true}), "« page 2/3 »")
	assert.Contains(t, Pager(library.View{TotalPages: 0}), "page 0/0")
	assert.Contains(t, Pager(library.View{Query: "dune", Rows: make([]library.Row, 2), CorpusSize: 9}), "2 of 9 match")
	assert.Contains(t, Pager(library.View{Query: "x", CorpusPartial: true}), "current page only")
	assert.Contains(t, Pager(library.View{Loading: true}), "loading...")
}

func TestNotificationRow(t *testing.T) {
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	unread := NotificationRow(NotificationRowState{
		Notification: domain.Notification{Status: domain.StatusBorrowed, Message: "Dune was borrowed", CreatedAt: "2026-01-02T10:00:00Z"},
		Width:        80,
		Now:          now,
	})
	assert.True(t, strings.HasPrefix(unread, unreadSymbol))
	assert.Contains(t, unread, "BORROWED")
	assert.Contains(t, unread, "Dune was borrowed")
	assert.Contains(t, unread, "2h")

	read := NotificationRow(NotificationRowState{Notification: domain.Notification{Read: true, Message: "old"}, Width: 80, Now: now})
	assert.Contains(t, read, readSymbol)
}

func TestPanel(t *testing.T) {
	ns := []domain.Notification{{Message: "a"}, {Message: "b"}, {Message: "c"}}
	out := Panel(ns, 2, 60, 2, true, time.Now())
	assert.Contains(t, out, "Notifications (3)")
	assert.NotContains(t, out, "  a ")
	assert.Contains(t, out, "c")

	assert.Contains(t, Panel(nil, 0, 60, 5, false, time.Now()), "No notifications")
}

func TestCalculateAge(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "30s", calculateAge("2026-01-09T23:59:30Z", now))
	assert.Equal(t, "5m", calculateAge("2026-01-09T23:55:00Z", now))
	assert.Equal(t, "3d", calculateAge("2026-01-07T00:00:00Z", now))
	assert.Equal(t, "", calculateAge("", now))
	assert.Equal(t, "", calculateAge("yesterday", now))
}

func TestParseTimestampWithoutZone(t *testing.T) {
	ts, err := parseTimestamp("2026-01-09T23:55:00.123")
	assert.NoError(t, err)
	assert.Equal(t, 55, ts.Minute())
}

func TestStatusAndFooter(t *testing.T) {
	a := alert.Alert{Tone: alert.Success, Title: "Return Approved", Message: "Dune"}
	assert.Contains(t, Status(a, true), "Return Approved: Dune")
	assert.Empty(t, Status(a, false))

	footer := Footer(FooterState{Actions: []library.ActionInfo{{Key: "borrow", Shortcut: "b", Label: "Borrow"}}, Feedback: true})
	assert.Contains(t, footer, "b: borrow")
	assert.Contains(t, footer, "f: return with feedback")
	assert.Contains(t, Footer(FooterState{SearchMode: true}), "ctrl+u: clear")
	assert.Contains(t, Footer(FooterState{PanelFocused: true}), "M: mark all read")
}

func TestAnsiColorNumber(t *testing.T) {
	assert.Equal(t, "34", ansiColorNumber("\033[0;34m"))
	assert.Equal(t, "", ansiColorNumber("x"))
}
