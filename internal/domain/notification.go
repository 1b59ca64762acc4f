// Package domain provides the client-side model of the book network:
// notifications, catalog books, borrow records and server pages.
package domain

import (
	"fmt"
	"strings"
)

// NotificationStatus is the event kind carried by a notification.
type NotificationStatus string

const (
	StatusBorrowed       NotificationStatus = "BORROWED"
	StatusReturned       NotificationStatus = "RETURNED"
	StatusReturnApproved NotificationStatus = "RETURN_APPROVED"
	StatusUnspecified    NotificationStatus = ""
)

// IsValid reports whether the status is one the server is known to send.
func (s NotificationStatus) IsValid() bool {
	switch s {
	case StatusBorrowed, StatusReturned, StatusReturnApproved:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s NotificationStatus) String() string {
	return string(s)
}

// ParseNotificationStatus normalizes a raw status. Unknown values map to
// StatusUnspecified rather than failing.
func ParseNotificationStatus(raw string) NotificationStatus {
	s := NotificationStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if s.IsValid() {
		return s
	}
	return StatusUnspecified
}

// Notification is a single event pushed to, or listed for, the current user.
// ID is nil until the server has persisted the record.
type Notification struct {
	ID        *int               `json:"id"`
	Status    NotificationStatus `json:"status"`
	Message   string             `json:"message"`
	BookTitle string             `json:"bookTitle,omitempty"`
	Read      bool               `json:"read"`
	CreatedAt string             `json:"createdAt,omitempty"`
}

// HasID reports whether the notification has been persisted.
func (n Notification) HasID() bool {
	return n.ID != nil
}

// IDValue returns the identifier, or 0 when absent.
func (n Notification) IDValue() int {
	if n.ID == nil {
		return 0
	}
	return *n.ID
}

// SameID reports whether both notifications carry the same persisted id.
func (n Notification) SameID(other Notification) bool {
	return n.ID != nil && other.ID != nil && *n.ID == *other.ID
}

// String renders a short human-readable form used by logs and the CLI.
func (n Notification) String() string {
	id := "-"
	if n.ID != nil {
		id = fmt.Sprintf("%d", *n.ID)
	}
	return fmt.Sprintf("#%s [%s] %s", id, n.Status, n.Message)
}

// IntPtr returns a pointer to v. Handy for building notifications in tests
// and fixtures.
func IntPtr(v int) *int {
	return &v
}

// CountUnread returns the number of notifications whose read flag is false.
func CountUnread(notifications []Notification) int {
	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count
}
