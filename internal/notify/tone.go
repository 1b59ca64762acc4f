package notify

import (
	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/domain"
)

type presentation struct {
	tone  alert.Tone
	title string
}

var statusPresentation = map[domain.NotificationStatus]presentation{
	domain.StatusBorrowed:       {alert.Info, "Book Borrowed"},
	domain.StatusReturned:       {alert.Warning, "Book Returned"},
	domain.StatusReturnApproved: {alert.Success, "Return Approved"},
}

// AlertFor returns the tone and title shown for a live notification.
func AlertFor(status domain.NotificationStatus) (alert.Tone, string) {
	if p, ok := statusPresentation[status]; ok {
		return p.tone, p.title
	}
	return alert.Neutral, "New Notification"
}
