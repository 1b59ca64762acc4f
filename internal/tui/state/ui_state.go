package state

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

type inputMode int

const (
	modeNormal inputMode = iota
	modeSearch
	modeFeedback
)

// UIState manages the UI-only state of the TUI: sizes, cursors, input mode
// and the notification panel. Business state lives in the sections and the
// notification source.
type UIState struct {
	viewport viewport.Model
	width    int
	height   int

	cursor      int
	panelCursor int

	mode       inputMode
	search     textinput.Model
	feedback   textinput.Model
	panelOpen  bool
	unreadOnly bool
}

// NewUIState creates a new UIState instance with default values.
func NewUIState() *UIState {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search title, synopsis or author"
	search.CharLimit = 200

	feedback := textinput.New()
	feedback.Prompt = "feedback> "
	feedback.Placeholder = "4 loved it"
	feedback.CharLimit = 1000

	u := &UIState{
		width:    defaultViewportWidth,
		height:   defaultViewportHeight,
		search:   search,
		feedback: feedback,
	}
	u.UpdateViewportSize()
	return u
}

// GetViewport returns the list viewport.
func (u *UIState) GetViewport() *viewport.Model {
	return &u.viewport
}

// GetWidth returns the current width of the UI.
func (u *UIState) GetWidth() int {
	return u.width
}

// SetSize updates the UI dimensions and resizes the viewport.
func (u *UIState) SetSize(width, height int) {
	u.width, u.height = width, height
	if width <= 0 {
		u.width = defaultViewportWidth
	}
	if height <= 0 {
		u.height = defaultViewportHeight
	}
	u.UpdateViewportSize()
}

// UpdateViewportSize sizes the viewport to what the chrome and the
// notification panel leave.
func (u *UIState) UpdateViewportSize() {
	h := u.height - chromeLines
	if u.panelOpen {
		h -= panelRows + 1
	}
	if h < 1 {
		h = 1
	}
	content := u.viewport.View()
	offset := u.viewport.YOffset
	u.viewport = viewport.New(u.width, h)
	u.viewport.SetContent(content)
	u.viewport.SetYOffset(offset)
}

// GetCursor returns the list cursor.
func (u *UIState) GetCursor() int {
	return u.cursor
}

// MoveCursor moves the list cursor by delta within [0, n).
func (u *UIState) MoveCursor(delta, n int) {
	u.cursor = clamp(u.cursor+delta, n)
	u.ensureVisible()
}

// ResetCursor puts the list cursor on the first row.
func (u *UIState) ResetCursor() {
	u.cursor = 0
	u.viewport.SetYOffset(0)
}

// ClampCursor keeps the cursor inside a list of n rows.
func (u *UIState) ClampCursor(n int) {
	u.cursor = clamp(u.cursor, n)
	u.ensureVisible()
}

func (u *UIState) clampPanel(n int) {
	u.panelCursor = clamp(u.panelCursor, n)
}

// MovePanelCursor moves the notification cursor by delta within [0, n).
func (u *UIState) MovePanelCursor(delta, n int) {
	u.panelCursor = clamp(u.panelCursor+delta, n)
}

// ensureVisible scrolls the viewport so the cursor row is shown.
func (u *UIState) ensureVisible() {
	h := u.viewport.Height
	if h <= 0 {
		return
	}
	switch {
	case u.cursor < u.viewport.YOffset:
		u.viewport.SetYOffset(u.cursor)
	case u.cursor >= u.viewport.YOffset+h:
		u.viewport.SetYOffset(u.cursor - h + 1)
	}
}

// TogglePanel opens or closes the notification panel.
func (u *UIState) TogglePanel() {
	u.panelOpen = !u.panelOpen
	u.UpdateViewportSize()
}

func clamp(v, n int) int {
	if n <= 0 || v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
