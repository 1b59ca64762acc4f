// Package alert presents transient user-facing messages.
//
// Core packages raise alerts through a Presenter and never print directly,
// so the same code runs under the CLI and the TUI.
package alert

import "time"

// Tone classifies an alert for styling.
type Tone int

const (
	Neutral Tone = iota
	Info
	Success
	Warning
	Error
)

func (t Tone) String() string {
	switch t {
	case Info:
		return "info"
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "neutral"
	}
}

// Alert is one presented message.
type Alert struct {
	Tone      Tone
	Title     string
	Message   string
	Timestamp time.Time
}

// Text joins title and message the way single-line surfaces show them.
func (a Alert) Text() string {
	switch {
	case a.Title == "":
		return a.Message
	case a.Message == "":
		return a.Title
	default:
		return a.Title + ": " + a.Message
	}
}

// Presenter displays alerts to the user.
type Presenter interface {
	Show(tone Tone, title, message string)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(tone Tone, title, message string)

// Show calls f.
func (f PresenterFunc) Show(tone Tone, title, message string) { f(tone, title, message) }

// Discard returns a presenter that drops every alert.
func Discard() Presenter {
	return PresenterFunc(func(Tone, string, string) {})
}
