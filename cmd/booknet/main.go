package main

import (
	"errors"
	"os"

	"github.com/cristianoliveira/booknet/cmd"
	"github.com/cristianoliveira/booknet/internal/colors"
)

func main() {
	os.Exit(run(cmd.Execute))
}

// reportedError marks a failure that was already shown to the user through
// an alert.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// run executes the CLI and maps its outcome to an exit code.
func run(execute func() error) int {
	err := execute()
	if err == nil {
		return 0
	}
	var reported reportedError
	if !errors.As(err, &reported) {
		colors.Error(err.Error())
	}
	return 1
}
