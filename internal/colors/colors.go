// Package colors provides color output utilities.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Color constants
const (
	Red     = "\033[0;31m"
	Green   = "\033[0;32m"
	Yellow  = "\033[1;33m"
	Blue    = "\033[0;34m"
	Magenta = "\033[0;35m"
	Cyan    = "\033[0;36m"
	Reset   = "\033[0m"
)

const checkmark = "✓"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	debugEnabled = false
	quiet        = false
	logger       Logger
	loggerMu     sync.RWMutex

	outMu  sync.Mutex
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	// inFallback guards against a failing writer recursing through Warning.
	inFallback bool
)

func init() {
	if val := os.Getenv("BOOKNET_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// SetQuiet suppresses informational output. Errors and warnings still print.
func SetQuiet(enabled bool) {
	quiet = enabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

// SetOutput redirects console output. Nil keeps the current writer.
// It returns a function restoring the previous writers.
func SetOutput(out, errOut io.Writer) func() {
	outMu.Lock()
	defer outMu.Unlock()
	prevOut, prevErr := stdout, stderr
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
	return func() {
		outMu.Lock()
		defer outMu.Unlock()
		stdout, stderr = prevOut, prevErr
	}
}

func mirror(level, msg string, args ...any) {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l == nil {
		return
	}
	switch level {
	case "debug":
		l.Debug(msg, args...)
	case "warn":
		l.Warn(msg, args...)
	case "error":
		l.Error(msg, args...)
	default:
		l.Info(msg, args...)
	}
}

// emit writes one formatted line. A write failure is reported once on the
// raw stderr stream and never recurses.
func emit(toErr bool, line string) {
	outMu.Lock()
	w := stdout
	if toErr {
		w = stderr
	}
	_, err := fmt.Fprintln(w, line)
	if err == nil || inFallback {
		outMu.Unlock()
		return
	}
	inFallback = true
	outMu.Unlock()

	fmt.Fprintf(os.Stderr, "Warning: failed to print message: %v\n", err)

	outMu.Lock()
	inFallback = false
	outMu.Unlock()
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	msg := strings.Join(msgs, " ")
	mirror("error", msg)
	emit(true, fmt.Sprintf("%sError:%s %s%s", Red, Reset, msg, Reset))
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	msg := strings.Join(msgs, " ")
	mirror("warn", msg)
	emit(true, fmt.Sprintf("%sWarning:%s %s%s", Yellow, Reset, msg, Reset))
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	msg := strings.Join(msgs, " ")
	mirror("info", msg, "type", "success")
	if quiet {
		return
	}
	emit(false, fmt.Sprintf("%s%s%s %s%s", Green, checkmark, Reset, msg, Reset))
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	msg := strings.Join(msgs, " ")
	mirror("info", msg)
	if quiet {
		return
	}
	emit(false, fmt.Sprintf("%s%s%s", Blue, msg, Reset))
}

// Notice outputs a neutral message with a bold title to stdout.
func Notice(title string, msgs ...string) {
	msg := strings.Join(msgs, " ")
	mirror("info", msg, "title", title)
	if quiet {
		return
	}
	emit(false, fmt.Sprintf("%s%s:%s %s", Magenta, title, Reset, msg))
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	if !debugEnabled {
		return
	}
	msg := strings.Join(msgs, " ")
	mirror("debug", msg)
	emit(true, fmt.Sprintf("%sDebug:%s %s%s", Cyan, Reset, msg, Reset))
}
