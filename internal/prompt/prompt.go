package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Prompter asks the interactive questions of the install flow. The
// orchestrator depends on this interface so tests can script answers.
type Prompter interface {
	// Confirm asks a yes/no question and returns true for yes. Empty
	// input counts as no.
	Confirm(question string) (bool, error)
	// SelectIndex prints the numbered options and reads a 1-based choice.
	// Non-numeric or out-of-range input is an error; there is no retry.
	SelectIndex(title string, options []string) (int, error)
}

// Console is the production Prompter reading from stdin.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter wired to stdin/stdout.
func New() *Console {
	return &Console{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// NewFrom builds a Console over arbitrary streams, used by tests.
func NewFrom(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. "y" and "yes" (any case) are yes,
// everything else is no.
func (c *Console) Confirm(question string) (bool, error) {
	fmt.Fprintf(c.out, "%s [y/N]: ", color.New(color.FgYellow).Sprint(question))
	answer, err := c.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// SelectIndex prints the options numbered from 1 and reads one choice.
func (c *Console) SelectIndex(title string, options []string) (int, error) {
	fmt.Fprintln(c.out, title)
	for i, opt := range options {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprintf(c.out, "Enter choice [1-%d]: ", len(options))

	answer, err := c.readLine()
	if err != nil {
		return 0, err
	}
	choice, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("invalid selection %q: not a number", answer)
	}
	if choice < 1 || choice > len(options) {
		return 0, fmt.Errorf("invalid selection %d: must be between 1 and %d", choice, len(options))
	}
	return choice, nil
}
