package runner

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/jeevanism/win-odoo-installer/internal/logger"
)

// Spec describes one external command invocation.
type Spec struct {
	Name string            // executable name, resolved via PATH
	Args []string          // arguments
	Dir  string            // working directory; empty means inherit
	Env  map[string]string // extra environment variables layered on os.Environ()
}

// Runner executes external commands and probes PATH. The orchestrator
// depends on this interface so tests can substitute a recording fake.
type Runner interface {
	// Run executes the command, streaming its output to the console, and
	// returns an error for any nonzero exit code.
	Run(spec Spec) error
	// LookPath reports where name resolves on PATH, or an error when it
	// does not resolve at all.
	LookPath(name string) (string, error)
}

// Exec is the production Runner backed by os/exec.
type Exec struct{}

// New returns the production runner.
func New() *Exec {
	return &Exec{}
}

// Run executes the command synchronously, inheriting the process
// environment plus any overrides from spec.Env. Stdout and stderr go
// straight to the console so the user sees the underlying tool's output.
func (e *Exec) Run(spec Spec) error {
	cmd := exec.Command(spec.Name, spec.Args...)
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}
	cmd.Env = os.Environ()
	for k, v := range spec.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	logger.Debug("[DEBUG] Running command: %s %s\n", spec.Name, strings.Join(spec.Args, " "))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %s %s failed: %w", spec.Name, strings.Join(spec.Args, " "), err)
	}
	return nil
}

// LookPath wraps exec.LookPath.
func (e *Exec) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
