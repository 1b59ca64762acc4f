package alert

import (
	"sync"
	"time"
)

// Log keeps presented alerts in memory for surfaces that render them later,
// such as the TUI status line.
type Log struct {
	mu      sync.RWMutex
	alerts  []Alert
	limit   int
	onAlert func(Alert)
	nowFunc func() time.Time
}

var _ Presenter = (*Log)(nil)

// NewLog creates an alert log retaining at most limit entries (0 keeps all).
// onAlert, when set, is called after each alert is recorded.
func NewLog(limit int, onAlert func(Alert)) *Log {
	return &Log{limit: limit, onAlert: onAlert, nowFunc: time.Now}
}

// Show records the alert.
func (l *Log) Show(tone Tone, title, message string) {
	a := Alert{Tone: tone, Title: title, Message: message, Timestamp: l.nowFunc()}
	l.mu.Lock()
	l.alerts = append(l.alerts, a)
	if l.limit > 0 && len(l.alerts) > l.limit {
		l.alerts = append([]Alert(nil), l.alerts[len(l.alerts)-l.limit:]...)
	}
	cb := l.onAlert
	l.mu.Unlock()

	if cb != nil {
		cb(a)
	}
}

// Latest returns the most recent alert.
func (l *Log) Latest() (Alert, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.alerts) == 0 {
		return Alert{}, false
	}
	return l.alerts[len(l.alerts)-1], true
}

// All returns a copy of the recorded alerts, oldest first.
func (l *Log) All() []Alert {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Alert, len(l.alerts))
	copy(out, l.alerts)
	return out
}

// Len returns the number of recorded alerts.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.alerts)
}

// Clear drops every recorded alert.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.alerts = nil
}
