package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// confirmInput is where confirmation answers are read from. Tests replace it.
var confirmInput io.Reader = os.Stdin

// confirm asks question and reports whether the user answered yes.
func confirm(question string) bool {
	fmt.Print(question + " (y/N): ")
	answer, err := bufio.NewReader(confirmInput).ReadString('\n')
	if err != nil && answer == "" {
		// If we can't read, assume no
		return false
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}
