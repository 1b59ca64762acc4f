package alert

import (
	"sync"

	"github.com/cristianoliveira/booknet/internal/colors"
)

// ColorOutput is the subset of the colors package the console presenter uses.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
	Notice(title string, msgs ...string)
}

// Console prints alerts through colored terminal output.
type Console struct {
	out        ColorOutput
	mu         sync.Mutex
	inHandling bool
}

var _ Presenter = (*Console)(nil)

// NewConsole creates a console presenter writing through out.
func NewConsole(out ColorOutput) *Console {
	if out == nil {
		panic("NewConsole: out dependency cannot be nil")
	}
	return &Console{out: out}
}

// NewDefaultConsole creates a console presenter backed by the colors package.
func NewDefaultConsole() *Console {
	return NewConsole(colorsOutput{})
}

// Show prints the alert. Re-entrant calls (an output failure raising another
// alert) are printed without taking the guard again.
func (c *Console) Show(tone Tone, title, message string) {
	c.mu.Lock()
	if c.inHandling {
		c.mu.Unlock()
		c.out.Error(Alert{Title: title, Message: message}.Text())
		return
	}
	c.inHandling = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.inHandling = false
		c.mu.Unlock()
	}()

	text := Alert{Title: title, Message: message}.Text()
	switch tone {
	case Error:
		c.out.Error(text)
	case Warning:
		c.out.Warning(text)
	case Success:
		c.out.Success(text)
	case Info:
		c.out.Info(text)
	default:
		c.out.Notice(title, message)
	}
}

type colorsOutput struct{}

func (colorsOutput) Error(msgs ...string)                { colors.Error(msgs...) }
func (colorsOutput) Warning(msgs ...string)              { colors.Warning(msgs...) }
func (colorsOutput) Info(msgs ...string)                 { colors.Info(msgs...) }
func (colorsOutput) Success(msgs ...string)              { colors.Success(msgs...) }
func (colorsOutput) Notice(title string, msgs ...string) { colors.Notice(title, msgs...) }
