package builder

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner executes assembled command lines, streaming their output.
type Runner struct {
	// Dir is the working directory for every command. Empty means the
	// current directory.
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes argv. A missing executable is reported as its own error so
// callers can tell "tool not installed" apart from "build failed".
func (r *Runner) Run(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("%s executable not found in PATH: %w", argv[0], err)
	}

	cmd := exec.Command(path, argv[1:]...)
	cmd.Dir = r.Dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", strings.Join(argv, " "), err)
	}
	return nil
}
