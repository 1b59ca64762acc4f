package domain

import (
	"fmt"
	"strings"
)

// Read filter constants.
const (
	ReadFilterRead   = "read"
	ReadFilterUnread = "unread"
)

// Filter holds filter criteria for notification listings.
type Filter struct {
	Status     NotificationStatus
	AnyStatus  bool
	ReadFilter string // "read", "unread", or "" (no filter)
	Query      string
}

// FilterOptions holds filter parameters as given on the command line.
type FilterOptions struct {
	Status     string
	ReadFilter string
	Query      string
}

// ToFilter converts FilterOptions to a Filter. An empty status matches any
// status; "unspecified" selects notifications without a known status.
func (fo FilterOptions) ToFilter() (Filter, error) {
	f := Filter{AnyStatus: true, Query: strings.ToLower(strings.TrimSpace(fo.Query))}
	switch raw := strings.TrimSpace(fo.Status); {
	case raw == "":
	case strings.EqualFold(raw, "unspecified"):
		f.AnyStatus = false
	default:
		status := ParseNotificationStatus(raw)
		if status == StatusUnspecified {
			return Filter{}, fmt.Errorf("invalid status %q: expected BORROWED, RETURNED, RETURN_APPROVED or unspecified", fo.Status)
		}
		f.Status, f.AnyStatus = status, false
	}
	switch fo.ReadFilter {
	case "", ReadFilterRead, ReadFilterUnread:
		f.ReadFilter = fo.ReadFilter
	default:
		return Filter{}, fmt.Errorf("invalid read filter %q: expected %q or %q", fo.ReadFilter, ReadFilterRead, ReadFilterUnread)
	}
	return f, nil
}

// IsEmpty reports whether the filter accepts every notification.
func (f Filter) IsEmpty() bool {
	return f.AnyStatus && f.ReadFilter == "" && f.Query == ""
}

// Matches reports whether n passes the filter.
func (f Filter) Matches(n Notification) bool {
	if !f.AnyStatus && n.Status != f.Status {
		return false
	}
	switch f.ReadFilter {
	case ReadFilterRead:
		if !n.Read {
			return false
		}
	case ReadFilterUnread:
		if n.Read {
			return false
		}
	}
	if f.Query != "" {
		msg := strings.ToLower(n.Message)
		title := strings.ToLower(n.BookTitle)
		if !strings.Contains(msg, f.Query) && !strings.Contains(title, f.Query) {
			return false
		}
	}
	return true
}

// FilterNotifications returns the notifications passing filter, keeping
// their order. The result is never nil.
func FilterNotifications(notifs []Notification, filter Filter) []Notification {
	result := make([]Notification, 0, len(notifs))
	for _, n := range notifs {
		if filter.Matches(n) {
			result = append(result, n)
		}
	}
	return result
}

// FilterByReadStatus is shorthand for a read/unread-only filter.
func FilterByReadStatus(notifs []Notification, readFilter string) []Notification {
	return FilterNotifications(notifs, Filter{AnyStatus: true, ReadFilter: readFilter})
}
