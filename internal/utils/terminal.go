package utils

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// ReadHidden prompts on stderr and reads one line from the terminal without
// echoing it. Used for invite codes, which carry a space key.
// Returns an error if stdin is not a terminal.
func ReadHidden(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read hidden input: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	input, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return input, nil
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
